package models

import (
	"fmt"
	"strings"
	"time"
)

// DateRange is a closed interval; either bound may be zero when unknown.
type DateRange struct {
	From time.Time `json:"from,omitzero"`
	To   time.Time `json:"to,omitzero"`
}

// InsightSummary is the cross-stakeholder aggregate produced once per run.
// A pure read model: nothing mutates it after construction.
type InsightSummary struct {
	TotalStakeholders int       `json:"total_stakeholders"`
	TotalInteractions int       `json:"total_interactions"`
	DateRange         DateRange `json:"date_range"`

	StanceBreakdown map[Stance]int `json:"stance_breakdown,omitempty"`

	TopConcerns []Theme `json:"top_concerns,omitempty"`
	TopNeeds    []Theme `json:"top_needs,omitempty"`

	KeyRisks         []string `json:"key_risks,omitempty"`
	KeyOpportunities []string `json:"key_opportunities,omitempty"`

	ActiveConflicts []Conflict `json:"active_conflicts,omitempty"`

	StrategicRecommendations []string     `json:"strategic_recommendations,omitempty"`
	ImmediateActions         []ActionItem `json:"immediate_actions,omitempty"`

	HighlightQuotes []Quote `json:"highlight_quotes,omitempty"`
}

// DiscoveryReport is the final assembled report for one discovery run.
// ActionPlan and SourceDocuments are attached by the orchestrator after
// assembly; everything else is fixed at construction.
type DiscoveryReport struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	GeneratedAt time.Time `json:"generated_at,omitzero"`
	GeneratedBy string    `json:"generated_by,omitempty"`

	ExecutiveSummary    string                `json:"executive_summary,omitempty"`
	Summary             *InsightSummary       `json:"insight_summary,omitempty"`
	StakeholderProfiles []*StakeholderProfile `json:"stakeholder_profiles,omitempty"`
	Influence           *InfluenceMatrix      `json:"influence_matrix,omitempty"`
	Themes              []Theme               `json:"themes_and_patterns,omitempty"`
	Conflicts           []Conflict            `json:"conflicts_and_risks,omitempty"`
	Recommendations     []string              `json:"recommendations,omitempty"`
	ActionPlan          []ActionItem          `json:"action_plan,omitempty"`

	SourceDocuments []*DocumentContent `json:"source_documents,omitempty"`
	AllQuotes       []Quote            `json:"all_quotes,omitempty"`
}

// NewDiscoveryReport returns a report with id and timestamp defaults set.
func NewDiscoveryReport(title string) *DiscoveryReport {
	now := time.Now().UTC()
	return &DiscoveryReport{
		ID:          "report_" + now.Format("20060102_150405"),
		Title:       title,
		GeneratedAt: now,
		GeneratedBy: "fieldlens",
	}
}

// GenerateExecutiveSummary renders the markdown executive summary from the
// attached insight summary. Empty when no summary is attached.
func (r *DiscoveryReport) GenerateExecutiveSummary() string {
	if r.Summary == nil {
		return ""
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# Stakeholder Discovery Report: %s\n", r.Title)
	if !r.GeneratedAt.IsZero() {
		fmt.Fprintf(&b, "\nGenerated: %s\n", r.GeneratedAt.Format("January 2, 2006"))
	}

	b.WriteString("\n## Overview\n")
	fmt.Fprintf(&b, "- **Total Stakeholders Analyzed:** %d\n", r.Summary.TotalStakeholders)
	fmt.Fprintf(&b, "- **Total Interactions:** %d\n", r.Summary.TotalInteractions)

	if len(r.Summary.StanceBreakdown) > 0 {
		b.WriteString("\n## Stakeholder Sentiment\n")
		for _, stance := range []Stance{StanceChampion, StanceSupporter, StanceNeutral, StanceSkeptic, StanceBlocker} {
			if n := r.Summary.StanceBreakdown[stance]; n > 0 {
				fmt.Fprintf(&b, "- %s: %d\n", titleCase(string(stance)), n)
			}
		}
	}

	if len(r.Summary.TopConcerns) > 0 {
		b.WriteString("\n## Top Concerns\n")
		for _, t := range r.Summary.TopConcerns[:min(3, len(r.Summary.TopConcerns))] {
			fmt.Fprintf(&b, "- **%s**: %s\n", t.Name, t.Description)
		}
	}

	if len(r.Summary.TopNeeds) > 0 {
		b.WriteString("\n## Top Needs\n")
		for _, t := range r.Summary.TopNeeds[:min(3, len(r.Summary.TopNeeds))] {
			fmt.Fprintf(&b, "- **%s**: %s\n", t.Name, t.Description)
		}
	}

	if len(r.Summary.StrategicRecommendations) > 0 {
		b.WriteString("\n## Strategic Recommendations\n")
		for _, rec := range r.Summary.StrategicRecommendations[:min(5, len(r.Summary.StrategicRecommendations))] {
			fmt.Fprintf(&b, "- %s\n", rec)
		}
	}

	return b.String()
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
