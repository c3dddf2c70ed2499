// Package models defines the data model for stakeholder discovery:
// per-document insights, accumulated profiles, the influence graph,
// cross-stakeholder aggregates and the final report.
//
// Enum-like types are plain strings so they survive JSON round-trips with
// LLM output. Every enum has a Parse function that maps unknown or missing
// values to a documented default instead of failing — LLM responses are
// untrusted input, and a single bad field must not discard a record.
package models

import "log/slog"

// Sentiment is the tone detected in a quote or an overall interaction.
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNeutral  Sentiment = "neutral"
	SentimentNegative Sentiment = "negative"
	SentimentMixed    Sentiment = "mixed"
)

// Severity grades how serious a concern is.
type Severity string

const (
	SeverityHigh   Severity = "high"
	SeverityMedium Severity = "medium"
	SeverityLow    Severity = "low"
)

// Weight returns the numeric rank used for severity tie-breaks.
func (s Severity) Weight() int {
	switch s {
	case SeverityHigh:
		return 3
	case SeverityMedium:
		return 2
	case SeverityLow:
		return 1
	}
	return 0
}

// Priority grades a need or action item.
type Priority string

const (
	PriorityMustHave   Priority = "must_have"
	PriorityShouldHave Priority = "should_have"
	PriorityNiceToHave Priority = "nice_to_have"
)

// Weight returns the numeric rank used for priority tie-breaks.
func (p Priority) Weight() int {
	switch p {
	case PriorityMustHave:
		return 3
	case PriorityShouldHave:
		return 2
	case PriorityNiceToHave:
		return 1
	}
	return 0
}

// InfluenceLevel places a stakeholder in the decision-making hierarchy.
type InfluenceLevel string

const (
	InfluenceDecisionMaker InfluenceLevel = "decision_maker" // has final say, can approve/reject
	InfluenceKeyInfluencer InfluenceLevel = "key_influencer" // strongly shapes decision makers
	InfluenceContributor   InfluenceLevel = "contributor"    // provides input, limited influence
	InfluenceInformed      InfluenceLevel = "informed"       // needs to know, does not influence
)

// Stance is a stakeholder's disposition toward the initiative.
type Stance string

const (
	StanceChampion  Stance = "champion"  // actively advocates
	StanceSupporter Stance = "supporter" // generally positive
	StanceNeutral   Stance = "neutral"   // no strong opinion
	StanceSkeptic   Stance = "skeptic"   // has doubts, needs convincing
	StanceBlocker   Stance = "blocker"   // actively opposed
)

// RelationshipType classifies a directed edge between two stakeholders.
type RelationshipType string

const (
	RelReportsTo     RelationshipType = "reports_to"
	RelManages       RelationshipType = "manages"
	RelCollaborates  RelationshipType = "collaborates"
	RelInfluences    RelationshipType = "influences"
	RelConflictsWith RelationshipType = "conflicts_with"
	RelAlliesWith    RelationshipType = "allies_with"
)

// RelationshipStrength grades how strong a relationship is.
type RelationshipStrength string

const (
	StrengthStrong   RelationshipStrength = "strong"
	StrengthModerate RelationshipStrength = "moderate"
	StrengthWeak     RelationshipStrength = "weak"
)

// ActionStatus is the lifecycle state of an action item.
type ActionStatus string

const (
	ActionPending    ActionStatus = "pending"
	ActionInProgress ActionStatus = "in_progress"
	ActionCompleted  ActionStatus = "completed"
	ActionCancelled  ActionStatus = "cancelled"
)

// ConcernCategory classifies a stakeholder concern.
type ConcernCategory string

const (
	ConcernBudget           ConcernCategory = "budget"
	ConcernTimeline         ConcernCategory = "timeline"
	ConcernResource         ConcernCategory = "resource"
	ConcernTechnical        ConcernCategory = "technical"
	ConcernPolitical        ConcernCategory = "political"
	ConcernChangeManagement ConcernCategory = "change_management"
	ConcernRisk             ConcernCategory = "risk"
	ConcernOther            ConcernCategory = "other"
)

// NeedCategory classifies a stakeholder need.
type NeedCategory string

const (
	NeedFunctional    NeedCategory = "functional"
	NeedInformation   NeedCategory = "information"
	NeedProcess       NeedCategory = "process"
	NeedCommunication NeedCategory = "communication"
	NeedSupport       NeedCategory = "support"
	NeedRecognition   NeedCategory = "recognition"
)

// ConflictStatus is the resolution state of an identified conflict.
type ConflictStatus string

const (
	ConflictUnresolved ConflictStatus = "unresolved"
	ConflictInProgress ConflictStatus = "in_progress"
	ConflictResolved   ConflictStatus = "resolved"
)

// DocType identifies the kind of source document.
type DocType string

const (
	DocTypeNote  DocType = "note"
	DocTypeSheet DocType = "sheet"
	DocTypeSlide DocType = "slide"
	DocTypePDF   DocType = "pdf"
	DocTypeOther DocType = "other"
)

// parseEnum is the shared tolerant-parsing policy: unknown or empty values
// fall back to the default and emit one structured warning.
func parseEnum[T ~string](field, raw string, def T, valid ...T) T {
	if raw == "" {
		return def
	}
	for _, v := range valid {
		if raw == string(v) {
			return v
		}
	}
	slog.Warn("unknown enum value, using default", "field", field, "value", raw, "default", string(def))
	return def
}

// ParseSentiment returns the sentiment for raw, defaulting to neutral.
func ParseSentiment(raw string) Sentiment {
	return parseEnum("sentiment", raw, SentimentNeutral,
		SentimentPositive, SentimentNeutral, SentimentNegative, SentimentMixed)
}

// ParseSeverity returns the severity for raw, defaulting to medium.
func ParseSeverity(raw string) Severity {
	return parseEnum("severity", raw, SeverityMedium,
		SeverityHigh, SeverityMedium, SeverityLow)
}

// ParsePriority returns the priority for raw, defaulting to should_have.
func ParsePriority(raw string) Priority {
	return parseEnum("priority", raw, PriorityShouldHave,
		PriorityMustHave, PriorityShouldHave, PriorityNiceToHave)
}

// ParseInfluenceLevel returns the influence level for raw, defaulting to contributor.
func ParseInfluenceLevel(raw string) InfluenceLevel {
	return parseEnum("influence_level", raw, InfluenceContributor,
		InfluenceDecisionMaker, InfluenceKeyInfluencer, InfluenceContributor, InfluenceInformed)
}

// ParseStance returns the stance for raw, defaulting to neutral.
func ParseStance(raw string) Stance {
	return parseEnum("stance", raw, StanceNeutral,
		StanceChampion, StanceSupporter, StanceNeutral, StanceSkeptic, StanceBlocker)
}

// ParseRelationshipType returns the relationship type for raw, defaulting to collaborates.
func ParseRelationshipType(raw string) RelationshipType {
	return parseEnum("relationship_type", raw, RelCollaborates,
		RelReportsTo, RelManages, RelCollaborates, RelInfluences, RelConflictsWith, RelAlliesWith)
}

// ParseRelationshipStrength returns the strength for raw, defaulting to moderate.
func ParseRelationshipStrength(raw string) RelationshipStrength {
	return parseEnum("strength", raw, StrengthModerate,
		StrengthStrong, StrengthModerate, StrengthWeak)
}

// ParseActionStatus returns the action status for raw, defaulting to pending.
func ParseActionStatus(raw string) ActionStatus {
	return parseEnum("status", raw, ActionPending,
		ActionPending, ActionInProgress, ActionCompleted, ActionCancelled)
}

// ParseConcernCategory returns the concern category for raw, defaulting to other.
func ParseConcernCategory(raw string) ConcernCategory {
	return parseEnum("category", raw, ConcernOther,
		ConcernBudget, ConcernTimeline, ConcernResource, ConcernTechnical,
		ConcernPolitical, ConcernChangeManagement, ConcernRisk, ConcernOther)
}

// ParseNeedCategory returns the need category for raw, defaulting to functional.
func ParseNeedCategory(raw string) NeedCategory {
	return parseEnum("category", raw, NeedFunctional,
		NeedFunctional, NeedInformation, NeedProcess, NeedCommunication,
		NeedSupport, NeedRecognition)
}

// ParseConflictStatus returns the conflict status for raw, defaulting to unresolved.
func ParseConflictStatus(raw string) ConflictStatus {
	return parseEnum("resolution_status", raw, ConflictUnresolved,
		ConflictUnresolved, ConflictInProgress, ConflictResolved)
}
