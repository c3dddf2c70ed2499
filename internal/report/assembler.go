// Package report assembles the final discovery report from the pipeline's
// outputs.
package report

import (
	"github.com/fieldlens/fieldlens/internal/models"
)

// Inputs carries everything the assembler combines into one report.
type Inputs struct {
	Title     string
	Profiles  []*models.StakeholderProfile
	Summary   *models.InsightSummary
	Influence *models.InfluenceMatrix
	Themes    []models.Theme
	Conflicts []models.Conflict
}

// Assemble builds the discovery report and renders its executive summary.
// ActionPlan and SourceDocuments are attached by the orchestrator afterward.
func Assemble(in Inputs) *models.DiscoveryReport {
	r := models.NewDiscoveryReport(in.Title)
	r.StakeholderProfiles = in.Profiles
	r.Summary = in.Summary
	r.Influence = in.Influence
	r.Themes = in.Themes
	r.Conflicts = in.Conflicts

	if in.Summary != nil {
		r.Recommendations = in.Summary.StrategicRecommendations
		r.AllQuotes = in.Summary.HighlightQuotes
	}

	r.ExecutiveSummary = r.GenerateExecutiveSummary()
	return r
}
