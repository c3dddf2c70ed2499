// Package profile accumulates extraction insights into durable stakeholder
// profiles and classifies influence and stance.
package profile

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/fieldlens/fieldlens/internal/models"
)

// Registry is the run-scoped profile store. It is caller-owned: each
// discovery run instantiates its own registry, so lifecycle and test
// isolation stay explicit. Single-writer; callers running concurrent
// merges must serialize per stakeholder name.
type Registry struct {
	profiles map[string]*models.StakeholderProfile
	order    []string // insertion order of profile ids
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{profiles: make(map[string]*models.StakeholderProfile)}
}

// Create adds a new profile for the given identity and returns it.
func (r *Registry) Create(name, role, department string) *models.StakeholderProfile {
	slog.Info("creating profile", "name", name)
	p := models.NewStakeholderProfile(name, role, department)
	r.profiles[p.ID] = p
	r.order = append(r.order, p.ID)
	return p
}

// Get returns a profile by id, or nil.
func (r *Registry) Get(id string) *models.StakeholderProfile {
	return r.profiles[id]
}

// GetByName looks a profile up by name, case-insensitively.
func (r *Registry) GetByName(name string) *models.StakeholderProfile {
	return r.profiles[models.ProfileID(name)]
}

// GetOrCreate returns the existing profile for name (case-insensitive
// match) or creates one. Two insights whose names differ only in casing
// land on the same profile.
func (r *Registry) GetOrCreate(name, role, department string) *models.StakeholderProfile {
	if p := r.GetByName(name); p != nil {
		return p
	}
	return r.Create(name, role, department)
}

// All returns every profile in creation order.
func (r *Registry) All() []*models.StakeholderProfile {
	out := make([]*models.StakeholderProfile, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.profiles[id])
	}
	return out
}

// Len returns the number of profiles.
func (r *Registry) Len() int { return len(r.profiles) }

// ByStance returns profiles with the given stance, in creation order.
func (r *Registry) ByStance(stance models.Stance) []*models.StakeholderProfile {
	var out []*models.StakeholderProfile
	for _, p := range r.All() {
		if p.Stance == stance {
			out = append(out, p)
		}
	}
	return out
}

// ByInfluence returns profiles with the given influence level, in creation order.
func (r *Registry) ByInfluence(level models.InfluenceLevel) []*models.StakeholderProfile {
	var out []*models.StakeholderProfile
	for _, p := range r.All() {
		if p.InfluenceLevel == level {
			out = append(out, p)
		}
	}
	return out
}

// AddInsight merges one insight into its stakeholder's profile, creating
// the profile when absent. Insights with no stakeholder name are skipped.
// Returns the profile, or nil when skipped.
func (r *Registry) AddInsight(insight models.StakeholderInsight) *models.StakeholderProfile {
	if insight.StakeholderName == "" {
		return nil
	}
	p := r.GetOrCreate(insight.StakeholderName, insight.StakeholderRole, insight.StakeholderDepartment)
	p.FillIdentity(insight)
	p.AddInsight(insight)
	return p
}

// AddRelationship records a directed edge from a profile to a named target,
// creating the target's profile when absent so the influence graph has a
// node for it. Duplicate edges by target id are ignored.
func (r *Registry) AddRelationship(p *models.StakeholderProfile, targetName string, relType models.RelationshipType, strength models.RelationshipStrength, context string) {
	target := r.GetOrCreate(targetName, "", "")
	p.AddRelationship(models.Relationship{
		TargetID:        target.ID,
		TargetName:      targetName,
		Type:            relType,
		Strength:        strength,
		Context:         context,
		InfluenceWeight: 0.5,
	})
}

// BuildFromInsights folds a batch of insights into the registry: each
// insight is merged into its stakeholder's profile, and every mentioned
// stakeholder becomes a collaborates edge.
func (r *Registry) BuildFromInsights(insights []models.StakeholderInsight) []*models.StakeholderProfile {
	slog.Info("building profiles", "insights", len(insights))

	for _, insight := range insights {
		p := r.AddInsight(insight)
		if p == nil {
			continue
		}
		for _, m := range insight.MentionedStakeholders {
			if m.Name == "" {
				continue
			}
			r.AddRelationship(p, m.Name, models.RelCollaborates, models.StrengthModerate, m.Context)
		}
	}

	return r.All()
}

// Export serializes every profile to JSON for a manual snapshot. This is a
// caller-invoked export, not automatic durability.
func (r *Registry) Export() ([]byte, error) {
	data, err := json.MarshalIndent(r.All(), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("export profiles: %w", err)
	}
	return data, nil
}

// Import loads profiles from a previous Export. Existing profiles with the
// same id are replaced. Returns the number of profiles imported.
func (r *Registry) Import(data []byte) (int, error) {
	var profiles []*models.StakeholderProfile
	if err := json.Unmarshal(data, &profiles); err != nil {
		return 0, fmt.Errorf("import profiles: %w", err)
	}
	count := 0
	for _, p := range profiles {
		if p == nil || p.ID == "" {
			slog.Error("skipping profile with no id on import")
			continue
		}
		if _, exists := r.profiles[p.ID]; !exists {
			r.order = append(r.order, p.ID)
		}
		r.profiles[p.ID] = p
		count++
	}
	return count, nil
}
