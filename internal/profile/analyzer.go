package profile

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/fieldlens/fieldlens/internal/llm"
	"github.com/fieldlens/fieldlens/internal/models"
)

const (
	analyzeMaxTokens   = 1500
	analyzeTemperature = 0.2

	analyzeSystemPrompt = "You are a stakeholder analyst. Provide objective assessments based on evidence."
)

const analysisPrompt = `You are an expert stakeholder analyst for product management.

Based on the following stakeholder information, analyze and determine:
1. Their influence level in decision-making
2. Their stance toward the initiative
3. Their communication and decision-making preferences

STAKEHOLDER INFORMATION:
Name: %s
Role: %s
Department: %s

CONCERNS:
%s

NEEDS:
%s

GOALS:
%s

KEY QUOTES:
%s

TOTAL INTERACTIONS: %d

Analyze this stakeholder and return JSON:

` + "```json" + `
{
    "influence_level": "decision_maker|key_influencer|contributor|informed",
    "influence_scope": "What areas/decisions do they influence?",
    "stance": "champion|supporter|neutral|skeptic|blocker",
    "stance_confidence": 0.8,
    "stance_reasoning": "Why you assessed this stance",
    "communication_preference": "detailed|executive_summary|visual",
    "decision_style": "data-driven|consensus|gut_feel",
    "engagement_recommendations": ["List of recommendations for engaging this stakeholder"],
    "risk_factors": ["Potential risks or blockers related to this stakeholder"]
}
` + "```" + `

Guidelines:
- influence_level: Based on their role and scope
  - decision_maker: Can approve/reject initiatives
  - key_influencer: Strongly shapes decisions
  - contributor: Provides input but limited influence
  - informed: Needs to know but doesn't influence
- stance: Based on their expressed concerns, needs, and quotes
  - champion: Actively advocates
  - supporter: Generally positive
  - neutral: No strong opinion
  - skeptic: Has doubts
  - blocker: Actively opposed
- Be objective and base assessments on evidence

Return ONLY the JSON.`

// analysisWire mirrors the analysis prompt's JSON schema.
type analysisWire struct {
	InfluenceLevel          string   `json:"influence_level"`
	InfluenceScope          string   `json:"influence_scope"`
	Stance                  string   `json:"stance"`
	StanceConfidence        float64  `json:"stance_confidence"`
	StanceReasoning         string   `json:"stance_reasoning"`
	CommunicationPreference string   `json:"communication_preference"`
	DecisionStyle           string   `json:"decision_style"`
	EngagementRecs          []string `json:"engagement_recommendations"`
	RiskFactors             []string `json:"risk_factors"`
}

// Analyzer classifies a profile's influence level and stance from its
// accumulated evidence.
type Analyzer struct {
	gen llm.Generator
}

// NewAnalyzer creates an Analyzer backed by the given generator.
func NewAnalyzer(gen llm.Generator) *Analyzer {
	return &Analyzer{gen: gen}
}

// Analyze runs one classification call and writes the result onto the
// profile. A generation or parse failure leaves the profile untouched:
// an earlier successful analysis must never be reset to defaults by a
// later failed one.
func (a *Analyzer) Analyze(ctx context.Context, p *models.StakeholderProfile) {
	slog.Info("analyzing profile", "name", p.Name)

	prompt := fmt.Sprintf(analysisPrompt,
		p.Name, p.Role, p.Department,
		formatConcerns(p.TopConcerns),
		formatNeeds(p.TopNeeds),
		formatList(p.Goals, "No goals recorded"),
		formatQuotes(p.HighlightQuotes),
		p.TotalInteractions,
	)

	response, err := a.gen.Generate(ctx, llm.Request{
		System:      analyzeSystemPrompt,
		Prompt:      prompt,
		MaxTokens:   analyzeMaxTokens,
		Temperature: analyzeTemperature,
	})
	if err != nil {
		slog.Error("analysis generation failed, profile unchanged", "name", p.Name, "error", err)
		return
	}

	wire, err := llm.ParseJSONResponse[analysisWire](response)
	if err != nil {
		slog.Error("failed to parse analysis response, profile unchanged", "name", p.Name, "error", err)
		return
	}

	p.InfluenceLevel = models.ParseInfluenceLevel(wire.InfluenceLevel)
	p.InfluenceScope = wire.InfluenceScope
	p.Stance = models.ParseStance(wire.Stance)
	if wire.StanceConfidence > 0 && wire.StanceConfidence <= 1 {
		p.StanceConfidence = wire.StanceConfidence
	} else {
		p.StanceConfidence = 0.5
	}
	if wire.CommunicationPreference != "" {
		p.CommunicationPreference = wire.CommunicationPreference
	}
	if wire.DecisionStyle != "" {
		p.DecisionStyle = wire.DecisionStyle
	}
	p.UpdatedAt = time.Now().UTC()
}

// AnalyzeAll analyzes every profile with at least one interaction.
func (a *Analyzer) AnalyzeAll(ctx context.Context, profiles []*models.StakeholderProfile) {
	for _, p := range profiles {
		if p.TotalInteractions > 0 {
			a.Analyze(ctx, p)
		}
	}
}

func formatConcerns(concerns []models.Concern) string {
	if len(concerns) == 0 {
		return "No concerns recorded"
	}
	var b strings.Builder
	for _, c := range concerns {
		fmt.Fprintf(&b, "- %s (severity: %s)\n", c.Description, c.Severity)
	}
	return strings.TrimRight(b.String(), "\n")
}

func formatNeeds(needs []models.Need) string {
	if len(needs) == 0 {
		return "No needs recorded"
	}
	var b strings.Builder
	for _, n := range needs {
		fmt.Fprintf(&b, "- %s (priority: %s)\n", n.Description, n.Priority)
	}
	return strings.TrimRight(b.String(), "\n")
}

func formatQuotes(quotes []models.Quote) string {
	if len(quotes) == 0 {
		return "No quotes recorded"
	}
	var b strings.Builder
	for i, q := range quotes {
		if i == 5 {
			break
		}
		fmt.Fprintf(&b, "- %q (sentiment: %s)\n", q.Text, q.Sentiment)
	}
	return strings.TrimRight(b.String(), "\n")
}

func formatList(items []string, empty string) string {
	if len(items) == 0 {
		return empty
	}
	var b strings.Builder
	for _, s := range items {
		fmt.Fprintf(&b, "- %s\n", s)
	}
	return strings.TrimRight(b.String(), "\n")
}
