package models

import (
	"strings"
	"time"
)

// Quote is a direct quote captured from a stakeholder.
type Quote struct {
	Text        string    `json:"text"`
	Context     string    `json:"context,omitempty"` // what prompted the statement
	Topic       string    `json:"topic,omitempty"`
	Sentiment   Sentiment `json:"sentiment"`
	IsHighlight bool      `json:"is_highlight"` // surfaced in the executive summary
}

// Concern is a specific concern raised by a stakeholder. Value object, no
// identity of its own; grouping happens by case-normalized description.
type Concern struct {
	Description string          `json:"description" validate:"required"`
	Category    ConcernCategory `json:"category"`
	Severity    Severity        `json:"severity"`
	Quote       string          `json:"quote,omitempty"`

	// Resolution tracking
	IsAddressed     bool   `json:"is_addressed"`
	ResolutionNotes string `json:"resolution_notes,omitempty"`
}

// Key returns the case-normalized grouping key for frequency ranking.
func (c Concern) Key() string { return strings.ToLower(strings.TrimSpace(c.Description)) }

// Need is a specific need expressed by a stakeholder.
type Need struct {
	Description string       `json:"description" validate:"required"`
	Category    NeedCategory `json:"category"`
	Priority    Priority     `json:"priority"`
	Quote       string       `json:"quote,omitempty"`

	// Fulfillment tracking
	IsFulfilled      bool   `json:"is_fulfilled"`
	FulfillmentNotes string `json:"fulfillment_notes,omitempty"`
}

// Key returns the case-normalized grouping key for frequency ranking.
func (n Need) Key() string { return strings.ToLower(strings.TrimSpace(n.Description)) }

// MentionedStakeholder is another person referenced during an interaction.
// The relationship hint is free text from the extraction ("reports to",
// "works closely with") and feeds relationship edges downstream.
type MentionedStakeholder struct {
	Name             string    `json:"name"`
	Context          string    `json:"context,omitempty"`
	RelationshipHint string    `json:"relationship_hint,omitempty"`
	SentimentToward  Sentiment `json:"sentiment_toward,omitempty"`
}

// StakeholderInsight is everything extracted from one document about its
// primary stakeholder. Immutable once created: the extractor owns creation,
// the profile registry only reads from it.
type StakeholderInsight struct {
	// Source provenance
	SourceDocID    string    `json:"source_doc_id" validate:"required"`
	SourceDocTitle string    `json:"source_doc_title,omitempty"`
	MeetingDate    time.Time `json:"meeting_date,omitzero"`
	MeetingType    string    `json:"meeting_type,omitempty"` // interview, workshop, 1:1, group

	// Identity — Name is the join key into the profile registry
	StakeholderName       string `json:"stakeholder_name"`
	StakeholderRole       string `json:"stakeholder_role,omitempty"`
	StakeholderDepartment string `json:"stakeholder_department,omitempty"`
	StakeholderEmail      string `json:"stakeholder_email,omitempty"`

	Concerns    []Concern `json:"concerns,omitempty"`
	Needs       []Need    `json:"needs,omitempty"`
	Goals       []string  `json:"goals,omitempty"`
	Constraints []string  `json:"constraints,omitempty"`

	OverallSentiment Sentiment `json:"overall_sentiment"`
	SentimentDetails string    `json:"sentiment_details,omitempty"`

	KeyQuotes             []Quote                `json:"key_quotes,omitempty"`
	MentionedStakeholders []MentionedStakeholder `json:"mentioned_stakeholders,omitempty"`
	ActionItems           []ActionItem           `json:"action_items,omitempty"`

	// ExtractionConfidence is 0.0 when the generation output could not be
	// parsed; the insight then carries provenance only.
	ExtractionConfidence float64   `json:"extraction_confidence" validate:"gte=0,lte=1"`
	ExtractedAt          time.Time `json:"extracted_at,omitzero"`
}

// Theme is a pattern recurring across stakeholders, identified by the
// aggregator's analysis call.
type Theme struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category,omitempty"` // concern, need, opportunity, risk

	Frequency        int      `json:"frequency"` // stakeholders sharing the theme
	Stakeholders     []string `json:"stakeholders,omitempty"`
	SupportingQuotes []Quote  `json:"supporting_quotes,omitempty"`

	Severity Severity `json:"severity"`
	Urgency  string   `json:"urgency,omitempty"` // immediate, short-term, long-term

	RecommendedActions []string `json:"recommended_actions,omitempty"`
}

// Conflict is a tension between named stakeholders or groups.
type Conflict struct {
	Description string   `json:"description"`
	Parties     []string `json:"parties,omitempty"`

	ConflictType string   `json:"conflict_type,omitempty"` // priority, resource, approach, political
	Severity     Severity `json:"severity"`

	Evidence           []string `json:"evidence,omitempty"`
	ImpactOnInitiative string   `json:"impact_on_initiative,omitempty"`

	ResolutionStatus   ConflictStatus `json:"resolution_status"`
	ResolutionApproach string         `json:"resolution_approach,omitempty"`
}
