package aggregate

import (
	"log/slog"

	"github.com/fieldlens/fieldlens/internal/models"
)

// Summary output caps.
const (
	maxTopThemes       = 5
	maxRecommendations = 10
	maxImmediate       = 10
	maxHighlightQuotes = 10
	quotesPerProfile   = 2
)

// GenerateSummary assembles the run's InsightSummary from the profiles and
// one Analysis. Pure computation: taking the analysis as an argument keeps
// themes and conflicts consistent with each other and keeps this function
// free of generation calls. An empty profile set yields a zero-valued
// summary, never an error.
func GenerateSummary(profiles []*models.StakeholderProfile, analysis Analysis) *models.InsightSummary {
	slog.Info("generating summary", "stakeholders", len(profiles))

	summary := &models.InsightSummary{
		TotalStakeholders: len(profiles),
	}

	if len(profiles) > 0 {
		summary.StanceBreakdown = map[models.Stance]int{}
	}
	for _, p := range profiles {
		summary.TotalInteractions += p.TotalInteractions
		summary.StanceBreakdown[p.Stance]++
	}

	// Date range spans every profile's contact window.
	for _, p := range profiles {
		if !p.FirstContact.IsZero() {
			if summary.DateRange.From.IsZero() || p.FirstContact.Before(summary.DateRange.From) {
				summary.DateRange.From = p.FirstContact
			}
			if summary.DateRange.To.IsZero() || p.FirstContact.After(summary.DateRange.To) {
				summary.DateRange.To = p.FirstContact
			}
		}
		if !p.LastContact.IsZero() {
			if summary.DateRange.From.IsZero() || p.LastContact.Before(summary.DateRange.From) {
				summary.DateRange.From = p.LastContact
			}
			if summary.DateRange.To.IsZero() || p.LastContact.After(summary.DateRange.To) {
				summary.DateRange.To = p.LastContact
			}
		}
	}

	for _, t := range analysis.Themes {
		switch t.Category {
		case "concern":
			if len(summary.TopConcerns) < maxTopThemes {
				summary.TopConcerns = append(summary.TopConcerns, t)
			}
		case "need":
			if len(summary.TopNeeds) < maxTopThemes {
				summary.TopNeeds = append(summary.TopNeeds, t)
			}
		case "risk":
			if len(summary.KeyRisks) < maxTopThemes {
				summary.KeyRisks = append(summary.KeyRisks, t.Description)
			}
		case "opportunity":
			if len(summary.KeyOpportunities) < maxTopThemes {
				summary.KeyOpportunities = append(summary.KeyOpportunities, t.Description)
			}
		}
	}

	for _, c := range analysis.Conflicts {
		if c.ResolutionStatus == models.ConflictUnresolved {
			summary.ActiveConflicts = append(summary.ActiveConflicts, c)
		}
	}

	// Recommendations come from the first three themes, two actions each.
	for i, t := range analysis.Themes {
		if i == 3 {
			break
		}
		for j, action := range t.RecommendedActions {
			if j == 2 || len(summary.StrategicRecommendations) == maxRecommendations {
				break
			}
			summary.StrategicRecommendations = append(summary.StrategicRecommendations, action)
		}
	}

	for _, p := range profiles {
		taken := 0
		for _, q := range p.HighlightQuotes {
			if taken == quotesPerProfile || len(summary.HighlightQuotes) == maxHighlightQuotes {
				break
			}
			if q.IsHighlight {
				summary.HighlightQuotes = append(summary.HighlightQuotes, q)
				taken++
			}
		}
	}

	// Immediate actions come from recorded interaction follow-ups.
	for _, p := range profiles {
		for _, interaction := range p.Interactions {
			for _, followUp := range interaction.FollowUps {
				if len(summary.ImmediateActions) == maxImmediate {
					return summary
				}
				item := models.NewActionItem(followUp)
				item.Stakeholder = p.Name
				summary.ImmediateActions = append(summary.ImmediateActions, item)
			}
		}
	}

	return summary
}
