package models

import (
	"sort"
	"strings"
	"time"
)

// topItems caps the derived top-concern/top-need lists.
const topItems = 5

// ProfileID derives the registry identity key from a stakeholder name:
// lower-cased, spaces replaced with underscores. Two insights whose names
// differ only in casing resolve to the same profile.
func ProfileID(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "_")
}

// StakeholderProfile is the durable accumulation for one stakeholder across
// documents. Evidence only ever grows within a run; AddInsight appends and
// re-ranks, it never removes.
type StakeholderProfile struct {
	ID         string `json:"id"`
	Name       string `json:"name" validate:"required"`
	Role       string `json:"role,omitempty"`
	Department string `json:"department,omitempty"`
	Email      string `json:"email,omitempty"`

	// Influence and stance are assigned by the analyzer only; defaults hold
	// until a successful analysis.
	InfluenceLevel   InfluenceLevel `json:"influence_level"`
	InfluenceScope   string         `json:"influence_scope,omitempty"`
	Stance           Stance         `json:"stance"`
	StanceConfidence float64        `json:"stance_confidence"`

	AllConcerns []Concern `json:"all_concerns,omitempty"`
	TopConcerns []Concern `json:"top_concerns,omitempty"`
	AllNeeds    []Need    `json:"all_needs,omitempty"`
	TopNeeds    []Need    `json:"top_needs,omitempty"`

	Goals          []string `json:"goals,omitempty"`
	SuccessMetrics []string `json:"success_metrics,omitempty"`

	CommunicationPreference string `json:"communication_preference,omitempty"` // detailed, executive_summary, visual
	DecisionStyle           string `json:"decision_style,omitempty"`           // data-driven, consensus, gut_feel

	HighlightQuotes []Quote `json:"highlight_quotes,omitempty"`

	// Relationships are outgoing edges only; targets are referenced by name
	// and are not required to reciprocate.
	Relationships []Relationship `json:"relationships,omitempty"`

	Interactions      []InteractionSummary `json:"interactions,omitempty"`
	TotalInteractions int                  `json:"total_interactions"`
	FirstContact      time.Time            `json:"first_contact,omitzero"`
	LastContact       time.Time            `json:"last_contact,omitzero"`

	// EngagementScore starts at 0.5 and nudges up with each interaction,
	// capped at 1.0.
	EngagementScore float64 `json:"engagement_score"`
	Responsiveness  string  `json:"responsiveness,omitempty"` // high, medium, low

	SourceDocuments []string `json:"source_documents,omitempty"`

	CreatedAt time.Time `json:"created_at,omitzero"`
	UpdatedAt time.Time `json:"updated_at,omitzero"`
}

// NewStakeholderProfile creates a profile with its deterministic id and the
// documented defaults (contributor / neutral).
func NewStakeholderProfile(name, role, department string) *StakeholderProfile {
	now := time.Now().UTC()
	return &StakeholderProfile{
		ID:               ProfileID(name),
		Name:             name,
		Role:             role,
		Department:       department,
		InfluenceLevel:   InfluenceContributor,
		Stance:           StanceNeutral,
		StanceConfidence: 0.5,
		EngagementScore:  0.5,
		Responsiveness:   "medium",
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}

// AddInsight merges one extraction into the profile: appends concerns,
// needs, de-duplicated goals and highlight quotes, records provenance,
// widens the contact window, and recomputes the top-5 lists.
func (p *StakeholderProfile) AddInsight(insight StakeholderInsight) {
	p.AllConcerns = append(p.AllConcerns, insight.Concerns...)
	p.AllNeeds = append(p.AllNeeds, insight.Needs...)

	for _, g := range insight.Goals {
		if !containsString(p.Goals, g) {
			p.Goals = append(p.Goals, g)
		}
	}

	for _, q := range insight.KeyQuotes {
		if q.IsHighlight {
			p.HighlightQuotes = append(p.HighlightQuotes, q)
		}
	}

	if insight.SourceDocID != "" && !containsString(p.SourceDocuments, insight.SourceDocID) {
		p.SourceDocuments = append(p.SourceDocuments, insight.SourceDocID)
	}

	p.TotalInteractions++
	p.EngagementScore = min(1.0, 0.5+0.05*float64(p.TotalInteractions))

	if !insight.MeetingDate.IsZero() {
		if p.FirstContact.IsZero() || insight.MeetingDate.Before(p.FirstContact) {
			p.FirstContact = insight.MeetingDate
		}
		if p.LastContact.IsZero() || insight.MeetingDate.After(p.LastContact) {
			p.LastContact = insight.MeetingDate
		}
	}

	p.UpdatedAt = time.Now().UTC()
	p.updateTopItems()
}

// FillIdentity backfills role/department/email from an insight without
// overwriting values already set.
func (p *StakeholderProfile) FillIdentity(insight StakeholderInsight) {
	if p.Role == "" {
		p.Role = insight.StakeholderRole
	}
	if p.Department == "" {
		p.Department = insight.StakeholderDepartment
	}
	if p.Email == "" {
		p.Email = insight.StakeholderEmail
	}
}

// updateTopItems recomputes TopConcerns and TopNeeds: group by
// case-normalized description, rank by (count, max severity/priority)
// descending, keep the first-seen item of each of the top 5 groups.
// The sort is stable, so ties beyond severity keep insertion order.
func (p *StakeholderProfile) updateTopItems() {
	type group struct {
		count   int
		maxSev  int
		concern Concern
		need    Need
	}

	concernGroups := map[string]*group{}
	var concernOrder []string
	for _, c := range p.AllConcerns {
		k := c.Key()
		g, ok := concernGroups[k]
		if !ok {
			g = &group{concern: c}
			concernGroups[k] = g
			concernOrder = append(concernOrder, k)
		}
		g.count++
		if w := c.Severity.Weight(); w > g.maxSev {
			g.maxSev = w
		}
	}

	ranked := make([]*group, 0, len(concernOrder))
	for _, k := range concernOrder {
		ranked = append(ranked, concernGroups[k])
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].count != ranked[j].count {
			return ranked[i].count > ranked[j].count
		}
		return ranked[i].maxSev > ranked[j].maxSev
	})
	p.TopConcerns = p.TopConcerns[:0]
	for _, g := range ranked[:min(topItems, len(ranked))] {
		p.TopConcerns = append(p.TopConcerns, g.concern)
	}

	needGroups := map[string]*group{}
	var needOrder []string
	for _, n := range p.AllNeeds {
		k := n.Key()
		g, ok := needGroups[k]
		if !ok {
			g = &group{need: n}
			needGroups[k] = g
			needOrder = append(needOrder, k)
		}
		g.count++
		if w := n.Priority.Weight(); w > g.maxSev {
			g.maxSev = w
		}
	}

	ranked = ranked[:0]
	for _, k := range needOrder {
		ranked = append(ranked, needGroups[k])
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].count != ranked[j].count {
			return ranked[i].count > ranked[j].count
		}
		return ranked[i].maxSev > ranked[j].maxSev
	})
	p.TopNeeds = p.TopNeeds[:0]
	for _, g := range ranked[:min(topItems, len(ranked))] {
		p.TopNeeds = append(p.TopNeeds, g.need)
	}
}

// AddRelationship records a directed edge to another stakeholder, skipping
// exact duplicates by target id.
func (p *StakeholderProfile) AddRelationship(rel Relationship) {
	for _, r := range p.Relationships {
		if r.TargetID == rel.TargetID {
			return
		}
	}
	p.Relationships = append(p.Relationships, rel)
	p.UpdatedAt = time.Now().UTC()
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
