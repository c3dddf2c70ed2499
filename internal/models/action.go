package models

import (
	"time"

	"github.com/google/uuid"
)

// ActionItem is a follow-up captured during extraction or synthesized by the
// orchestrator. Items stay pending until Complete or Cancel; tracker sync
// records TrackerID without touching status.
type ActionItem struct {
	ID          string `json:"id"`
	Title       string `json:"title" validate:"required"`
	Description string `json:"description,omitempty"`

	Owner       string `json:"owner,omitempty"`
	Stakeholder string `json:"stakeholder,omitempty"`

	DueDate  time.Time    `json:"due_date,omitzero"`
	Priority Priority     `json:"priority"`
	Status   ActionStatus `json:"status"`

	SourceDocID       string    `json:"source_doc_id,omitempty"`
	SourceMeetingDate time.Time `json:"source_meeting_date,omitzero"`

	// TrackerID is set once the item has been mirrored onto the external
	// task tracker. Empty means not yet synced.
	TrackerID string `json:"tracker_id,omitempty"`
}

// NewActionItem returns an action item with a fresh short id and default
// pending status.
func NewActionItem(title string) ActionItem {
	return ActionItem{
		ID:       uuid.NewString()[:8],
		Title:    title,
		Priority: PriorityShouldHave,
		Status:   ActionPending,
	}
}

// Complete marks the item completed.
func (a *ActionItem) Complete() { a.Status = ActionCompleted }

// Cancel marks the item cancelled.
func (a *ActionItem) Cancel() { a.Status = ActionCancelled }

// IsOverdue reports whether the item is past due and still open.
func (a *ActionItem) IsOverdue(now time.Time) bool {
	if a.DueDate.IsZero() {
		return false
	}
	if a.Status == ActionCompleted || a.Status == ActionCancelled {
		return false
	}
	return now.After(a.DueDate)
}

// DaysUntilDue returns whole days until the due date, and false when no due
// date is set.
func (a *ActionItem) DaysUntilDue(now time.Time) (int, bool) {
	if a.DueDate.IsZero() {
		return 0, false
	}
	return int(a.DueDate.Sub(now).Hours() / 24), true
}

// InteractionSummary records one interaction with a stakeholder. FollowUps
// feed the summary's immediate-action synthesis.
type InteractionSummary struct {
	Date            time.Time `json:"date,omitzero"`
	Type            string    `json:"type,omitempty"` // interview, meeting, email, workshop
	DurationMinutes int       `json:"duration_minutes,omitempty"`
	Summary         string    `json:"summary,omitempty"`
	Sentiment       Sentiment `json:"sentiment,omitempty"`
	KeyTakeaways    []string  `json:"key_takeaways,omitempty"`
	FollowUps       []string  `json:"follow_ups,omitempty"`
	SourceDocID     string    `json:"source_doc_id,omitempty"`
}
