package models

import "time"

// Relationship is a directed edge from its owning profile to another
// stakeholder. The target is referenced by name/id only; there is no
// back-pointer and reciprocity is never assumed.
type Relationship struct {
	TargetID   string `json:"target_id"`
	TargetName string `json:"target_name"`

	Type     RelationshipType     `json:"type"`
	Strength RelationshipStrength `json:"strength"`

	Context string `json:"context,omitempty"`

	// InfluenceDirection is a hint only; the mapper derives actual edge
	// direction from the relationship type.
	InfluenceDirection string  `json:"influence_direction,omitempty"` // outbound, inbound, bidirectional
	InfluenceWeight    float64 `json:"influence_weight" validate:"gte=0,lte=1"`
}

// InfluenceRanking holds the derived influence scores for one stakeholder.
// Scores are normalized to [0,100] by dividing by N-1.
type InfluenceRanking struct {
	StakeholderID   string `json:"stakeholder_id"`
	StakeholderName string `json:"stakeholder_name"`

	OutboundInfluence float64 `json:"outbound_influence"`
	InboundInfluence  float64 `json:"inbound_influence"`
	NetInfluence      float64 `json:"net_influence"` // outbound - inbound
	TotalConnections  int     `json:"total_connections"`

	Rank int `json:"rank"` // 1-based, by outbound influence descending
}

// StakeholderCluster is an AI-identified group of aligned stakeholders.
// Best-effort output: membership is not reproducible across runs.
type StakeholderCluster struct {
	Name    string   `json:"name"`
	Members []string `json:"members,omitempty"`

	CommonConcerns []string `json:"common_concerns,omitempty"`
	CommonNeeds    []string `json:"common_needs,omitempty"`
	OverallStance  Stance   `json:"overall_stance"`

	CollectiveInfluence float64 `json:"collective_influence"`
	EngagementStrategy  string  `json:"engagement_strategy,omitempty"`
}

// InfluenceMatrix is the derived influence graph over one run's profiles.
// Matrix indices follow the profile list's order at construction time and
// are not stable across runs. PowerBrokers, BridgeBuilders and
// IsolatedStakeholders are independently derived name lists; nothing
// enforces exclusivity between them.
type InfluenceMatrix struct {
	Stakeholders []string `json:"stakeholders,omitempty"`

	// Scores[i][j] is how much stakeholder i influences stakeholder j.
	Scores [][]float64 `json:"influence_scores,omitempty"`

	Rankings []InfluenceRanking   `json:"influence_rankings,omitempty"`
	Clusters []StakeholderCluster `json:"clusters,omitempty"`

	PowerBrokers         []string `json:"power_brokers,omitempty"`
	BridgeBuilders       []string `json:"bridge_builders,omitempty"`
	IsolatedStakeholders []string `json:"isolated_stakeholders,omitempty"`

	GeneratedAt     time.Time `json:"generated_at,omitzero"`
	BasedOnProfiles int       `json:"based_on_profiles"`
}

// RankingFor returns the ranking for a stakeholder name, or nil.
func (m *InfluenceMatrix) RankingFor(name string) *InfluenceRanking {
	for i := range m.Rankings {
		if m.Rankings[i].StakeholderName == name {
			return &m.Rankings[i]
		}
	}
	return nil
}

// ClusterFor returns the first cluster containing the stakeholder, or nil.
func (m *InfluenceMatrix) ClusterFor(name string) *StakeholderCluster {
	for i := range m.Clusters {
		for _, member := range m.Clusters[i].Members {
			if member == name {
				return &m.Clusters[i]
			}
		}
	}
	return nil
}
