package tracker

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// SQLiteTracker implements Tracker on a local SQLite database. It stands in
// for a hosted task service and gives action items durable ids across runs.
type SQLiteTracker struct {
	db *sql.DB
}

// NewSQLiteTracker opens (or creates) the tracker database under basePath.
// Pass ":memory:" for an ephemeral tracker in tests.
func NewSQLiteTracker(basePath string) (*SQLiteTracker, error) {
	var dbPath string
	if basePath == ":memory:" {
		dbPath = ":memory:"
	} else {
		dbPath = filepath.Join(basePath, "tasks.db")
		if err := os.MkdirAll(basePath, 0755); err != nil {
			return nil, fmt.Errorf("create tracker directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	t := &SQLiteTracker{db: db}
	if err := t.initSchema(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return t, nil
}

func (t *SQLiteTracker) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS tasks (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		notes TEXT,
		due_date TEXT,
		status TEXT NOT NULL DEFAULT 'needsAction',
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_tasks_status ON tasks(status);
	CREATE INDEX IF NOT EXISTS idx_tasks_due ON tasks(due_date);
	`
	_, err := t.db.Exec(schema)
	return err
}

// CreateTask inserts a task and returns its id.
func (t *SQLiteTracker) CreateTask(ctx context.Context, title, notes string, dueDate time.Time) (string, error) {
	if title == "" {
		return "", fmt.Errorf("task title is required")
	}

	id := "t-" + uuid.New().String()[:8]
	now := time.Now().UTC()

	var due string
	if !dueDate.IsZero() {
		due = dueDate.Format(time.RFC3339)
	}

	_, err := t.db.ExecContext(ctx, `
		INSERT INTO tasks (id, title, notes, due_date, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, 'needsAction', ?, ?)
	`, id, title, notes, due, now.Format(time.RFC3339), now.Format(time.RFC3339))
	if err != nil {
		return "", fmt.Errorf("insert task: %w", err)
	}
	return id, nil
}

// GetTask retrieves a task by id.
func (t *SQLiteTracker) GetTask(ctx context.Context, id string) (*Task, error) {
	var task Task
	var due, createdAt, updatedAt sql.NullString
	var notes sql.NullString

	err := t.db.QueryRowContext(ctx, `
		SELECT id, title, notes, due_date, status, created_at, updated_at
		FROM tasks WHERE id = ?
	`, id).Scan(&task.ID, &task.Title, &notes, &due, &task.Status, &createdAt, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("task not found: %s", id)
	}
	if err != nil {
		return nil, fmt.Errorf("query task: %w", err)
	}

	task.Notes = notes.String
	if due.String != "" {
		task.DueDate, _ = time.Parse(time.RFC3339, due.String)
	}
	task.CreatedAt, _ = time.Parse(time.RFC3339, createdAt.String)
	task.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt.String)
	return &task, nil
}

// CompleteTask marks a task completed.
func (t *SQLiteTracker) CompleteTask(ctx context.Context, id string) error {
	result, err := t.db.ExecContext(ctx, `
		UPDATE tasks SET status = 'completed', updated_at = ? WHERE id = ?
	`, time.Now().UTC().Format(time.RFC3339), id)
	if err != nil {
		return fmt.Errorf("complete task: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("task not found: %s", id)
	}
	return nil
}

// ListTasks returns all tasks ordered by creation time.
func (t *SQLiteTracker) ListTasks(ctx context.Context) ([]Task, error) {
	rows, err := t.db.QueryContext(ctx, `
		SELECT id, title, notes, due_date, status, created_at, updated_at
		FROM tasks ORDER BY created_at
	`)
	if err != nil {
		return nil, fmt.Errorf("query tasks: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var tasks []Task
	for rows.Next() {
		var task Task
		var due, createdAt, updatedAt, notes sql.NullString
		if err := rows.Scan(&task.ID, &task.Title, &notes, &due, &task.Status, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		task.Notes = notes.String
		if due.String != "" {
			task.DueDate, _ = time.Parse(time.RFC3339, due.String)
		}
		task.CreatedAt, _ = time.Parse(time.RFC3339, createdAt.String)
		task.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt.String)
		tasks = append(tasks, task)
	}
	return tasks, nil
}

// Close releases the database handle.
func (t *SQLiteTracker) Close() error {
	return t.db.Close()
}
