// Package docstore provides document search and retrieval for the discovery
// pipeline. The pipeline treats document identity as opaque strings; this
// package owns resolving them.
package docstore

import (
	"context"
	"log/slog"
	"time"

	"github.com/fieldlens/fieldlens/internal/models"
)

// FileInfo is one search hit. ID is opaque to callers and only meaningful
// to the store that produced it.
type FileInfo struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	MimeType     string    `json:"mimeType,omitempty"`
	ModifiedTime time.Time `json:"modifiedTime,omitzero"`
}

// SearchQuery filters the store's documents. Zero-valued fields match
// everything.
type SearchQuery struct {
	Keywords  []string  // any keyword matching name or content
	Folder    string    // restrict to a folder subtree
	FileTypes []string  // extensions without the dot: "md", "txt"
	After     time.Time // modified on or after
	Before    time.Time // modified on or before
}

// Store is the document collaborator the pipeline consumes. A failed search
// surfaces as an empty result list; the orchestrator treats "no documents"
// as a legitimate empty run.
type Store interface {
	Search(ctx context.Context, query SearchQuery) ([]FileInfo, error)
	Read(ctx context.Context, id string) (*models.DocumentContent, error)
}

// meetingKeywords is the default query for discovery runs without an
// explicit keyword list.
var meetingKeywords = []string{"meeting", "interview", "notes", "1:1", "stakeholder"}

// FindMeetingNotes searches for meeting or interview documents in the given
// folder, most recently modified first.
func FindMeetingNotes(ctx context.Context, s Store, folder string) ([]FileInfo, error) {
	return s.Search(ctx, SearchQuery{
		Keywords: meetingKeywords,
		Folder:   folder,
	})
}

// ReadAll reads every listed document. One document's read failure is
// logged and skipped; it never aborts the batch.
func ReadAll(ctx context.Context, s Store, infos []FileInfo) []*models.DocumentContent {
	docs := make([]*models.DocumentContent, 0, len(infos))
	for _, info := range infos {
		doc, err := s.Read(ctx, info.ID)
		if err != nil || doc == nil {
			slog.Warn("skipping unreadable document", "id", info.ID, "error", err)
			continue
		}
		docs = append(docs, doc)
	}
	return docs
}
