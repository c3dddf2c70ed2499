// Package graph builds the directed influence graph over stakeholder
// profiles: the weight matrix, per-node rankings, derived role lists, and
// AI-identified alignment clusters.
package graph

import (
	"log/slog"
	"sort"
	"time"

	"github.com/fieldlens/fieldlens/internal/models"
)

// Weight floors applied per relationship type. A declared weight below the
// floor is raised to it; a higher declared weight wins.
const (
	managesFloor    = 0.7
	reportsToWeight = 0.7
	influencesFloor = 0.6
	alliesFloor     = 0.5
)

const powerBrokerThreshold = 30.0

// BuildInfluenceMatrix derives the influence graph from the profiles'
// declared relationships. Deterministic, no generation calls. Matrix
// indices follow the input order for this invocation only.
//
// Edge rules: manages raises the outbound weight to at least 0.7;
// reports_to is a pure redirect, it records only the inbound edge from the
// target and contributes no outbound edge; influences and allies_with raise
// the weight to 0.6 and 0.5. Multiple edges between the same ordered pair
// take the max, never the sum.
func BuildInfluenceMatrix(profiles []*models.StakeholderProfile) *models.InfluenceMatrix {
	slog.Info("building influence matrix", "stakeholders", len(profiles))

	matrix := &models.InfluenceMatrix{
		GeneratedAt:     time.Now().UTC(),
		BasedOnProfiles: len(profiles),
	}
	if len(profiles) == 0 {
		return matrix
	}

	n := len(profiles)
	names := make([]string, n)
	idToIdx := make(map[string]int, n)
	for i, p := range profiles {
		names[i] = p.Name
		idToIdx[p.ID] = i
	}

	scores := make([][]float64, n)
	for i := range scores {
		scores[i] = make([]float64, n)
	}

	for i, p := range profiles {
		for _, rel := range p.Relationships {
			j, ok := resolveTarget(idToIdx, rel)
			if !ok || j == i {
				continue
			}

			weight := rel.InfluenceWeight
			switch rel.Type {
			case models.RelManages:
				weight = max(weight, managesFloor)
			case models.RelReportsTo:
				// Influence flows from the target back to this profile.
				scores[j][i] = max(scores[j][i], reportsToWeight)
				continue
			case models.RelInfluences:
				weight = max(weight, influencesFloor)
			case models.RelAlliesWith:
				weight = max(weight, alliesFloor)
			}

			scores[i][j] = max(scores[i][j], weight)
		}
	}

	// Rankings normalize row/column sums to [0,100] by dividing by N-1.
	denom := float64(max(n-1, 1))
	rankings := make([]models.InfluenceRanking, n)
	for i, p := range profiles {
		var outbound, inbound float64
		for j := 0; j < n; j++ {
			outbound += scores[i][j]
			inbound += scores[j][i]
		}
		rankings[i] = models.InfluenceRanking{
			StakeholderID:     p.ID,
			StakeholderName:   p.Name,
			OutboundInfluence: outbound * 100 / denom,
			InboundInfluence:  inbound * 100 / denom,
			NetInfluence:      (outbound - inbound) * 100 / denom,
			TotalConnections:  len(p.Relationships),
		}
	}

	sort.SliceStable(rankings, func(i, j int) bool {
		return rankings[i].OutboundInfluence > rankings[j].OutboundInfluence
	})
	for i := range rankings {
		rankings[i].Rank = i + 1
	}

	var powerBrokers []string
	for _, r := range rankings[:min(3, len(rankings))] {
		if r.OutboundInfluence > powerBrokerThreshold {
			powerBrokers = append(powerBrokers, r.StakeholderName)
		}
	}

	// Bridge builders connect stakeholders across at least two departments.
	var bridgeBuilders []string
	for _, p := range profiles {
		departments := map[string]struct{}{}
		for _, rel := range p.Relationships {
			if j, ok := resolveTarget(idToIdx, rel); ok {
				departments[profiles[j].Department] = struct{}{}
			}
		}
		if len(departments) >= 2 {
			bridgeBuilders = append(bridgeBuilders, p.Name)
		}
	}

	// Isolation counts outgoing edges only; a profile every other profile
	// points at is still isolated if it declares nothing itself.
	var isolated []string
	for _, r := range rankings {
		if r.TotalConnections == 0 {
			isolated = append(isolated, r.StakeholderName)
		}
	}

	matrix.Stakeholders = names
	matrix.Scores = scores
	matrix.Rankings = rankings
	matrix.PowerBrokers = powerBrokers
	matrix.BridgeBuilders = bridgeBuilders
	matrix.IsolatedStakeholders = isolated
	return matrix
}

// resolveTarget maps a relationship to a matrix index, preferring the
// stable profile id and falling back to the normalized target name.
func resolveTarget(idToIdx map[string]int, rel models.Relationship) (int, bool) {
	if rel.TargetID != "" {
		if j, ok := idToIdx[rel.TargetID]; ok {
			return j, true
		}
	}
	j, ok := idToIdx[models.ProfileID(rel.TargetName)]
	return j, ok
}
