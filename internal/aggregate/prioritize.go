package aggregate

import (
	"sort"

	"github.com/fieldlens/fieldlens/internal/models"
)

// RankedConcern is one concern group across the full profile set: every
// occurrence of the same case-normalized description, with the stakeholders
// who raised it and the worst severity seen.
type RankedConcern struct {
	Description  string                 `json:"description"`
	Category     models.ConcernCategory `json:"category"`
	Count        int                    `json:"count"`
	Stakeholders []string               `json:"stakeholders"`
	MaxSeverity  models.Severity        `json:"max_severity"`
	Quotes       []string               `json:"quotes,omitempty"`
}

// RankedNeed is the need-side equivalent of RankedConcern.
type RankedNeed struct {
	Description  string              `json:"description"`
	Category     models.NeedCategory `json:"category"`
	Count        int                 `json:"count"`
	Stakeholders []string            `json:"stakeholders"`
	MaxPriority  models.Priority     `json:"max_priority"`
	Quotes       []string            `json:"quotes,omitempty"`
}

// PrioritizeConcerns ranks every concern across all profiles by
// (occurrence count, max severity) descending. This operates on the full
// multiset, unlike a profile's own top-5 list. Pure computation.
func PrioritizeConcerns(profiles []*models.StakeholderProfile) []RankedConcern {
	groups := map[string]*RankedConcern{}
	var order []string

	for _, p := range profiles {
		for _, c := range p.AllConcerns {
			k := c.Key()
			g, ok := groups[k]
			if !ok {
				g = &RankedConcern{
					Description: c.Description,
					Category:    c.Category,
					MaxSeverity: models.SeverityLow,
				}
				groups[k] = g
				order = append(order, k)
			}
			g.Count++
			g.Stakeholders = append(g.Stakeholders, p.Name)
			if c.Severity.Weight() > g.MaxSeverity.Weight() {
				g.MaxSeverity = c.Severity
			}
			if c.Quote != "" {
				g.Quotes = append(g.Quotes, c.Quote)
			}
		}
	}

	out := make([]RankedConcern, 0, len(order))
	for _, k := range order {
		out = append(out, *groups[k])
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].MaxSeverity.Weight() > out[j].MaxSeverity.Weight()
	})
	return out
}

// PrioritizeNeeds ranks every need across all profiles by (occurrence
// count, max priority) descending. Pure computation.
func PrioritizeNeeds(profiles []*models.StakeholderProfile) []RankedNeed {
	groups := map[string]*RankedNeed{}
	var order []string

	for _, p := range profiles {
		for _, n := range p.AllNeeds {
			k := n.Key()
			g, ok := groups[k]
			if !ok {
				g = &RankedNeed{
					Description: n.Description,
					Category:    n.Category,
					MaxPriority: models.PriorityNiceToHave,
				}
				groups[k] = g
				order = append(order, k)
			}
			g.Count++
			g.Stakeholders = append(g.Stakeholders, p.Name)
			if n.Priority.Weight() > g.MaxPriority.Weight() {
				g.MaxPriority = n.Priority
			}
			if n.Quote != "" {
				g.Quotes = append(g.Quotes, n.Quote)
			}
		}
	}

	out := make([]RankedNeed, 0, len(order))
	for _, k := range order {
		out = append(out, *groups[k])
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].MaxPriority.Weight() > out[j].MaxPriority.Weight()
	})
	return out
}
