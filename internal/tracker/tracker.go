// Package tracker mirrors action items onto a task tracker. The pipeline
// records the tracker's id back onto each item; an unset id means the item
// was never synced, which is itself meaningful state.
package tracker

import (
	"context"
	"log/slog"
	"time"

	"github.com/fieldlens/fieldlens/internal/models"
)

// Task is the tracker-side view of an action item.
type Task struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Notes     string    `json:"notes,omitempty"`
	DueDate   time.Time `json:"due_date,omitzero"`
	Status    string    `json:"status"` // needsAction, completed
	CreatedAt time.Time `json:"created_at,omitzero"`
	UpdatedAt time.Time `json:"updated_at,omitzero"`
}

// Tracker is the task collaborator the pipeline consumes.
type Tracker interface {
	CreateTask(ctx context.Context, title, notes string, dueDate time.Time) (string, error)
	GetTask(ctx context.Context, id string) (*Task, error)
	CompleteTask(ctx context.Context, id string) error
	ListTasks(ctx context.Context) ([]Task, error)
}

// SyncActionItem mirrors one action item onto the tracker and records the
// returned id. A creation failure leaves TrackerID unset and is reported to
// the caller, who decides whether it aborts anything.
func SyncActionItem(ctx context.Context, t Tracker, item *models.ActionItem) error {
	notes := item.Description
	if item.Stakeholder != "" {
		notes += "\nStakeholder: " + item.Stakeholder
	}
	if item.SourceDocID != "" {
		notes += "\nSource: " + item.SourceDocID
	}

	id, err := t.CreateTask(ctx, item.Title, notes, item.DueDate)
	if err != nil {
		return err
	}
	item.TrackerID = id
	return nil
}

// BatchCreate mirrors a batch of action items, one at a time in list order.
// A single item's failure is logged and skipped, never aborting the batch.
// Returns the number of items synced.
func BatchCreate(ctx context.Context, t Tracker, items []models.ActionItem) ([]models.ActionItem, int) {
	synced := 0
	for i := range items {
		if items[i].TrackerID != "" {
			continue
		}
		if err := SyncActionItem(ctx, t, &items[i]); err != nil {
			slog.Error("failed to create tracker task", "title", items[i].Title, "error", err)
			continue
		}
		synced++
	}
	return items, synced
}

// SyncStatuses pulls each synced item's tracker status and completes local
// items the tracker reports done. Per-item failures are logged and skipped.
func SyncStatuses(ctx context.Context, t Tracker, items []models.ActionItem) []models.ActionItem {
	for i := range items {
		if items[i].TrackerID == "" {
			continue
		}
		task, err := t.GetTask(ctx, items[i].TrackerID)
		if err != nil {
			slog.Warn("failed to fetch tracker task", "id", items[i].TrackerID, "error", err)
			continue
		}
		switch task.Status {
		case "completed":
			items[i].Complete()
		case "needsAction":
			items[i].Status = models.ActionPending
		}
	}
	return items
}
