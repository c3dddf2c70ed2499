package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fieldlens/fieldlens/internal/models"
)

func TestRenderProfileList(t *testing.T) {
	alice := models.NewStakeholderProfile("Alice Johnson", "VP Engineering", "Engineering")
	alice.Stance = models.StanceChampion
	bob := models.NewStakeholderProfile("Bob Smith", "CFO", "Finance")
	bob.Stance = models.StanceBlocker

	out := RenderProfileList([]*models.StakeholderProfile{alice, bob})

	assert.Contains(t, out, "Alice Johnson")
	assert.Contains(t, out, "VP Engineering")
	assert.Contains(t, out, "Bob Smith")
	assert.Contains(t, out, "blocker")
}

func TestRenderProfileList_Empty(t *testing.T) {
	out := RenderProfileList(nil)
	assert.Contains(t, out, "No stakeholder profiles")
}

func TestRenderProfile(t *testing.T) {
	p := models.NewStakeholderProfile("Alice Johnson", "VP", "Engineering")
	p.TopConcerns = []models.Concern{{Description: "Budget overrun risk", Severity: models.SeverityHigh}}
	p.HighlightQuotes = []models.Quote{{Text: "We are already over"}}
	p.Relationships = []models.Relationship{{TargetName: "Bob Smith", Type: models.RelReportsTo}}

	out := RenderProfile(p)

	assert.Contains(t, out, "Alice Johnson")
	assert.Contains(t, out, "Budget overrun risk")
	assert.Contains(t, out, "We are already over")
	assert.Contains(t, out, "Bob Smith")
}

func TestRenderReport(t *testing.T) {
	r := models.NewDiscoveryReport("Q2 Discovery")
	r.Summary = &models.InsightSummary{
		TotalStakeholders: 2,
		StanceBreakdown:   map[models.Stance]int{models.StanceSkeptic: 1},
	}
	r.Themes = []models.Theme{{Name: "Budget pressure", Description: "Cost dominates"}}
	r.Recommendations = []string{"Brief the CFO early"}

	out := RenderReport(r)

	assert.Contains(t, out, "Q2 Discovery")
	assert.Contains(t, out, "Budget pressure")
	assert.Contains(t, out, "Brief the CFO early")
}
