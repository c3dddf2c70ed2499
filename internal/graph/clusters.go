package graph

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/fieldlens/fieldlens/internal/llm"
	"github.com/fieldlens/fieldlens/internal/models"
)

const (
	clusterMaxTokens   = 2000
	clusterTemperature = 0.3

	clusterSystemPrompt = "You are an organizational dynamics expert. Analyze stakeholder groups objectively."
)

const clusterPrompt = `You are an expert at stakeholder analysis and organizational dynamics.

Analyze the following stakeholders and identify clusters/groups of aligned stakeholders.

STAKEHOLDERS:
%s

KNOWN RELATIONSHIPS:
%s

Identify clusters of stakeholders who:
1. Share similar concerns or needs
2. Have similar stances
3. Work closely together
4. Have aligned interests

Return JSON:

` + "```json" + `
{
    "clusters": [
        {
            "name": "Cluster name (e.g., 'Engineering Leadership', 'Finance Skeptics')",
            "members": ["Name1", "Name2"],
            "common_concerns": ["Shared concern 1", "Shared concern 2"],
            "common_needs": ["Shared need 1"],
            "overall_stance": "champion|supporter|neutral|skeptic|blocker",
            "collective_influence": 0.7,
            "engagement_strategy": "Recommendation for engaging this group"
        }
    ]
}
` + "```" + `

Return ONLY the JSON.`

type clusterWire struct {
	Clusters []struct {
		Name                string   `json:"name"`
		Members             []string `json:"members"`
		CommonConcerns      []string `json:"common_concerns"`
		CommonNeeds         []string `json:"common_needs"`
		OverallStance       string   `json:"overall_stance"`
		CollectiveInfluence *float64 `json:"collective_influence"`
		EngagementStrategy  string   `json:"engagement_strategy"`
	} `json:"clusters"`
}

// Clusterer groups stakeholders into aligned clusters via one generation
// call. Best-effort output, not reproducible across runs.
type Clusterer struct {
	gen llm.Generator
}

// NewClusterer creates a Clusterer backed by the given generator.
func NewClusterer(gen llm.Generator) *Clusterer {
	return &Clusterer{gen: gen}
}

// IdentifyClusters returns alignment clusters over the profiles. Fewer
// than two profiles yields no clusters without a generation call. A
// malformed response yields an empty list; a single malformed cluster
// entry is skipped without discarding the rest.
func (c *Clusterer) IdentifyClusters(ctx context.Context, profiles []*models.StakeholderProfile) []models.StakeholderCluster {
	slog.Info("identifying clusters", "stakeholders", len(profiles))

	if len(profiles) < 2 {
		return nil
	}

	response, err := c.gen.Generate(ctx, llm.Request{
		System:      clusterSystemPrompt,
		Prompt:      fmt.Sprintf(clusterPrompt, formatStakeholders(profiles), formatRelationships(profiles)),
		MaxTokens:   clusterMaxTokens,
		Temperature: clusterTemperature,
	})
	if err != nil {
		slog.Error("cluster generation failed", "error", err)
		return nil
	}

	wire, err := llm.ParseJSONResponse[clusterWire](response)
	if err != nil {
		slog.Error("failed to parse cluster response", "error", err)
		return nil
	}

	clusters := make([]models.StakeholderCluster, 0, len(wire.Clusters))
	for _, w := range wire.Clusters {
		if w.Name == "" && len(w.Members) == 0 {
			slog.Warn("skipping empty cluster entry")
			continue
		}
		influence := 0.5
		if w.CollectiveInfluence != nil {
			influence = min(max(*w.CollectiveInfluence, 0), 1)
		}
		clusters = append(clusters, models.StakeholderCluster{
			Name:                w.Name,
			Members:             w.Members,
			CommonConcerns:      w.CommonConcerns,
			CommonNeeds:         w.CommonNeeds,
			OverallStance:       models.ParseStance(w.OverallStance),
			CollectiveInfluence: influence,
			EngagementStrategy:  w.EngagementStrategy,
		})
	}
	return clusters
}

func formatStakeholders(profiles []*models.StakeholderProfile) string {
	var b strings.Builder
	for _, p := range profiles {
		concerns := joinDescriptions(p.TopConcerns, 3)
		needs := joinNeedDescriptions(p.TopNeeds, 3)
		fmt.Fprintf(&b, "- %s (%s, %s)\n  Stance: %s\n  Concerns: %s\n  Needs: %s\n",
			p.Name, p.Role, p.Department, p.Stance, concerns, needs)
	}
	return strings.TrimRight(b.String(), "\n")
}

func formatRelationships(profiles []*models.StakeholderProfile) string {
	var b strings.Builder
	for _, p := range profiles {
		for _, rel := range p.Relationships {
			fmt.Fprintf(&b, "- %s %s %s\n", p.Name, rel.Type, rel.TargetName)
		}
	}
	if b.Len() == 0 {
		return "No explicit relationships"
	}
	return strings.TrimRight(b.String(), "\n")
}

func joinDescriptions(concerns []models.Concern, limit int) string {
	parts := make([]string, 0, limit)
	for i, c := range concerns {
		if i == limit {
			break
		}
		parts = append(parts, c.Description)
	}
	if len(parts) == 0 {
		return "None"
	}
	return strings.Join(parts, ", ")
}

func joinNeedDescriptions(needs []models.Need, limit int) string {
	parts := make([]string, 0, limit)
	for i, n := range needs {
		if i == limit {
			break
		}
		parts = append(parts, n.Description)
	}
	if len(parts) == 0 {
		return "None"
	}
	return strings.Join(parts, ", ")
}
