package graph

import (
	"sort"

	"github.com/fieldlens/fieldlens/internal/models"
)

// FindAllies returns profiles allied with the target: explicit allies_with
// edges pointing at it, plus any profile sharing a positive stance when the
// target itself is a champion or supporter.
func FindAllies(target *models.StakeholderProfile, all []*models.StakeholderProfile) []*models.StakeholderProfile {
	var allies []*models.StakeholderProfile
	seen := map[string]bool{}

	positive := target.Stance == models.StanceChampion || target.Stance == models.StanceSupporter

	for _, p := range all {
		if p.ID == target.ID {
			continue
		}
		for _, rel := range p.Relationships {
			if rel.TargetID == target.ID && rel.Type == models.RelAlliesWith {
				allies = append(allies, p)
				seen[p.ID] = true
				break
			}
		}
		if positive && !seen[p.ID] &&
			(p.Stance == models.StanceChampion || p.Stance == models.StanceSupporter) {
			allies = append(allies, p)
			seen[p.ID] = true
		}
	}
	return allies
}

// FindBlockers returns profiles likely to block the target: explicit
// conflicts_with edges pointing at it, plus any profile with a blocker stance.
func FindBlockers(target *models.StakeholderProfile, all []*models.StakeholderProfile) []*models.StakeholderProfile {
	var blockers []*models.StakeholderProfile
	seen := map[string]bool{}

	for _, p := range all {
		if p.ID == target.ID {
			continue
		}
		for _, rel := range p.Relationships {
			if rel.TargetID == target.ID && rel.Type == models.RelConflictsWith {
				blockers = append(blockers, p)
				seen[p.ID] = true
				break
			}
		}
		if p.Stance == models.StanceBlocker && !seen[p.ID] {
			blockers = append(blockers, p)
			seen[p.ID] = true
		}
	}
	return blockers
}

// DecisionChain orders profiles by decision-making power, decision makers
// first. Stable within a level.
func DecisionChain(profiles []*models.StakeholderProfile) []*models.StakeholderProfile {
	order := map[models.InfluenceLevel]int{
		models.InfluenceDecisionMaker: 0,
		models.InfluenceKeyInfluencer: 1,
		models.InfluenceContributor:   2,
		models.InfluenceInformed:      3,
	}

	out := make([]*models.StakeholderProfile, len(profiles))
	copy(out, profiles)
	sort.SliceStable(out, func(i, j int) bool {
		oi, ok := order[out[i].InfluenceLevel]
		if !ok {
			oi = 4
		}
		oj, ok := order[out[j].InfluenceLevel]
		if !ok {
			oj = 4
		}
		return oi < oj
	})
	return out
}

// InfluencePath finds the shortest directed path of names from source to
// target over declared relationships. Empty when no path exists.
func InfluencePath(source, target *models.StakeholderProfile, all []*models.StakeholderProfile) []string {
	idToProfile := make(map[string]*models.StakeholderProfile, len(all))
	for _, p := range all {
		idToProfile[p.ID] = p
	}

	type node struct {
		id   string
		path []string
	}

	queue := []node{{id: source.ID, path: []string{source.Name}}}
	visited := map[string]bool{source.ID: true}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		if cur.id == target.ID {
			return cur.path
		}

		p := idToProfile[cur.id]
		if p == nil {
			continue
		}
		for _, rel := range p.Relationships {
			next := idToProfile[rel.TargetID]
			if next == nil || visited[next.ID] {
				continue
			}
			visited[next.ID] = true
			path := append(append([]string{}, cur.path...), next.Name)
			queue = append(queue, node{id: next.ID, path: path})
		}
	}
	return nil
}
