// Package aggregate finds cross-stakeholder patterns: recurring themes,
// conflicts between groups, prioritized concern/need lists, and the run's
// final insight summary.
package aggregate

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/fieldlens/fieldlens/internal/llm"
	"github.com/fieldlens/fieldlens/internal/models"
)

// Prompt size caps. Long engagements can accumulate far more evidence than
// a single analysis call can carry.
const (
	maxPromptConcerns = 30
	maxPromptNeeds    = 30
	maxPromptQuotes   = 20

	analysisMaxTokens   = 3000
	analysisTemperature = 0.2

	analysisSystemPrompt = "You are a stakeholder research analyst. Identify patterns objectively."
)

const themeAnalysisPrompt = `You are an expert at synthesizing stakeholder research for product management.

Analyze the following aggregated stakeholder data and identify key themes, patterns, and conflicts.

STAKEHOLDER CONCERNS (aggregated):
%s

STAKEHOLDER NEEDS (aggregated):
%s

KEY QUOTES:
%s

STAKEHOLDER STANCES:
%s

Identify:
1. Common themes across stakeholders
2. Conflicts or tensions between different groups
3. Strategic risks and opportunities
4. Recommended actions

Return JSON:

` + "```json" + `
{
    "themes": [
        {
            "name": "Theme name",
            "description": "Detailed description",
            "category": "concern|need|opportunity|risk",
            "frequency": 3,
            "stakeholders": ["Names who share this theme"],
            "severity": "high|medium|low",
            "urgency": "immediate|short-term|long-term",
            "recommended_actions": ["Action 1", "Action 2"]
        }
    ],
    "conflicts": [
        {
            "description": "What the conflict is about",
            "parties": ["Group/Person 1", "Group/Person 2"],
            "conflict_type": "priority|resource|approach|political",
            "severity": "high|medium|low",
            "evidence": ["Quote or observation"],
            "impact_on_initiative": "How this affects the project",
            "resolution_approach": "Recommended approach"
        }
    ],
    "key_risks": ["Risk 1", "Risk 2"],
    "key_opportunities": ["Opportunity 1", "Opportunity 2"],
    "strategic_recommendations": ["Recommendation 1", "Recommendation 2"]
}
` + "```" + `

Return ONLY the JSON.`

type analysisResponseWire struct {
	Themes []struct {
		Name               string   `json:"name"`
		Description        string   `json:"description"`
		Category           string   `json:"category"`
		Frequency          int      `json:"frequency"`
		Stakeholders       []string `json:"stakeholders"`
		Severity           string   `json:"severity"`
		Urgency            string   `json:"urgency"`
		RecommendedActions []string `json:"recommended_actions"`
	} `json:"themes"`
	Conflicts []struct {
		Description        string   `json:"description"`
		Parties            []string `json:"parties"`
		ConflictType       string   `json:"conflict_type"`
		Severity           string   `json:"severity"`
		Evidence           []string `json:"evidence"`
		ImpactOnInitiative string   `json:"impact_on_initiative"`
		ResolutionApproach string   `json:"resolution_approach"`
	} `json:"conflicts"`
	KeyRisks                 []string `json:"key_risks"`
	KeyOpportunities         []string `json:"key_opportunities"`
	StrategicRecommendations []string `json:"strategic_recommendations"`
}

// Analysis is the atomic result of one cross-stakeholder analysis call.
// Themes and conflicts come from the same response, so they are mutually
// consistent within one Analysis value.
type Analysis struct {
	Themes                   []models.Theme
	Conflicts                []models.Conflict
	KeyRisks                 []string
	KeyOpportunities         []string
	StrategicRecommendations []string
}

// Aggregator finds patterns across the full profile set.
type Aggregator struct {
	gen llm.Generator
}

// New creates an Aggregator backed by the given generator.
func New(gen llm.Generator) *Aggregator {
	return &Aggregator{gen: gen}
}

// Analyze issues one generation call over the aggregated evidence and
// returns themes and conflicts together. Fewer than one profile yields an
// empty analysis without a call. A malformed response yields an empty
// analysis; a single malformed theme or conflict entry is skipped without
// discarding the rest.
func (a *Aggregator) Analyze(ctx context.Context, profiles []*models.StakeholderProfile) Analysis {
	slog.Info("analyzing cross-stakeholder patterns", "stakeholders", len(profiles))

	if len(profiles) == 0 {
		return Analysis{}
	}

	response, err := a.gen.Generate(ctx, llm.Request{
		System:      analysisSystemPrompt,
		Prompt:      buildAnalysisPrompt(profiles),
		MaxTokens:   analysisMaxTokens,
		Temperature: analysisTemperature,
	})
	if err != nil {
		slog.Error("analysis generation failed", "error", err)
		return Analysis{}
	}

	wire, err := llm.ParseJSONResponse[analysisResponseWire](response)
	if err != nil {
		slog.Error("failed to parse analysis response", "error", err)
		return Analysis{}
	}

	analysis := Analysis{
		KeyRisks:                 wire.KeyRisks,
		KeyOpportunities:         wire.KeyOpportunities,
		StrategicRecommendations: wire.StrategicRecommendations,
	}

	for _, t := range wire.Themes {
		if t.Name == "" && t.Description == "" {
			slog.Warn("skipping empty theme entry")
			continue
		}
		urgency := t.Urgency
		if urgency == "" {
			urgency = "short-term"
		}
		analysis.Themes = append(analysis.Themes, models.Theme{
			Name:               t.Name,
			Description:        t.Description,
			Category:           t.Category,
			Frequency:          t.Frequency,
			Stakeholders:       t.Stakeholders,
			Severity:           models.ParseSeverity(t.Severity),
			Urgency:            urgency,
			RecommendedActions: t.RecommendedActions,
		})
	}

	for _, c := range wire.Conflicts {
		if c.Description == "" {
			slog.Warn("skipping empty conflict entry")
			continue
		}
		conflictType := c.ConflictType
		if conflictType == "" {
			conflictType = "priority"
		}
		analysis.Conflicts = append(analysis.Conflicts, models.Conflict{
			Description:        c.Description,
			Parties:            c.Parties,
			ConflictType:       conflictType,
			Severity:           models.ParseSeverity(c.Severity),
			Evidence:           c.Evidence,
			ImpactOnInitiative: c.ImpactOnInitiative,
			ResolutionStatus:   models.ConflictUnresolved,
			ResolutionApproach: c.ResolutionApproach,
		})
	}

	return analysis
}

// FindCommonThemes returns the theme half of one analysis call.
func (a *Aggregator) FindCommonThemes(ctx context.Context, profiles []*models.StakeholderProfile) []models.Theme {
	return a.Analyze(ctx, profiles).Themes
}

// FindConflicts returns the conflict half of one analysis call. Conflicts
// need at least two stakeholders.
func (a *Aggregator) FindConflicts(ctx context.Context, profiles []*models.StakeholderProfile) []models.Conflict {
	if len(profiles) < 2 {
		return nil
	}
	return a.Analyze(ctx, profiles).Conflicts
}

func buildAnalysisPrompt(profiles []*models.StakeholderProfile) string {
	var concerns, needs, quotes, stances []string
	for _, p := range profiles {
		for _, c := range p.AllConcerns {
			concerns = append(concerns, fmt.Sprintf("[%s] %s (severity: %s)", p.Name, c.Description, c.Severity))
		}
		for _, n := range p.AllNeeds {
			needs = append(needs, fmt.Sprintf("[%s] %s (priority: %s)", p.Name, n.Description, n.Priority))
		}
		for i, q := range p.HighlightQuotes {
			if i == 3 {
				break
			}
			quotes = append(quotes, fmt.Sprintf("[%s] %q", p.Name, q.Text))
		}
		stances = append(stances, fmt.Sprintf("- %s: %s", p.Name, p.Stance))
	}

	return fmt.Sprintf(themeAnalysisPrompt,
		joinCapped(concerns, maxPromptConcerns, "No concerns recorded"),
		joinCapped(needs, maxPromptNeeds, "No needs recorded"),
		joinCapped(quotes, maxPromptQuotes, "No quotes recorded"),
		joinCapped(stances, len(stances), "No stance data"),
	)
}

func joinCapped(items []string, limit int, empty string) string {
	if len(items) == 0 {
		return empty
	}
	if len(items) > limit {
		items = items[:limit]
	}
	return strings.Join(items, "\n")
}
