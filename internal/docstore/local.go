package docstore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/fieldlens/fieldlens/internal/models"
)

// frontMatter is the optional YAML block at the top of a note, delimited by
// "---" lines. Every field is optional; missing values fall back to file
// metadata.
type frontMatter struct {
	Title string   `yaml:"title"`
	Date  string   `yaml:"date"` // YYYY-MM-DD
	Type  string   `yaml:"type"` // note, sheet, slide, pdf
	Owner string   `yaml:"owner"`
	URL   string   `yaml:"url"`
	Tags  []string `yaml:"tags"`
}

var defaultExtensions = []string{"md", "txt", "markdown"}

// LocalStore serves documents from a directory of markdown/text notes.
// Document ids are slash-separated paths relative to the root.
type LocalStore struct {
	fs   afero.Fs
	root string
}

// NewLocalStore creates a store over root on the OS filesystem.
func NewLocalStore(root string) *LocalStore {
	return NewLocalStoreFs(afero.NewOsFs(), root)
}

// NewLocalStoreFs creates a store over root on the given filesystem.
// Tests pass an in-memory fs.
func NewLocalStoreFs(fs afero.Fs, root string) *LocalStore {
	return &LocalStore{fs: fs, root: root}
}

// Search walks the root and returns files matching the query, most
// recently modified first.
func (s *LocalStore) Search(ctx context.Context, query SearchQuery) ([]FileInfo, error) {
	base := s.root
	if query.Folder != "" {
		base = filepath.Join(s.root, filepath.FromSlash(query.Folder))
	}

	extensions := query.FileTypes
	if len(extensions) == 0 {
		extensions = defaultExtensions
	}

	var hits []FileInfo
	err := afero.Walk(s.fs, base, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if info.IsDir() {
			return nil
		}
		if !matchesExtension(path, extensions) {
			return nil
		}
		if !query.After.IsZero() && info.ModTime().Before(query.After) {
			return nil
		}
		if !query.Before.IsZero() && info.ModTime().After(query.Before) {
			return nil
		}
		if len(query.Keywords) > 0 && !s.matchesKeywords(path, query.Keywords) {
			return nil
		}

		rel, err := filepath.Rel(s.root, path)
		if err != nil {
			return err
		}
		hits = append(hits, FileInfo{
			ID:           filepath.ToSlash(rel),
			Name:         info.Name(),
			MimeType:     mimeTypeFor(path),
			ModifiedTime: info.ModTime(),
		})
		return nil
	})
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("search documents: %w", err)
	}

	// Newest first, stable for equal times.
	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].ModifiedTime.After(hits[j].ModifiedTime)
	})
	return hits, nil
}

// Read loads one document by id, parsing YAML front matter when present.
func (s *LocalStore) Read(ctx context.Context, id string) (*models.DocumentContent, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	path := filepath.Join(s.root, filepath.FromSlash(id))
	raw, err := afero.ReadFile(s.fs, path)
	if err != nil {
		return nil, fmt.Errorf("read document %s: %w", id, err)
	}

	info, err := s.fs.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat document %s: %w", id, err)
	}

	fm, body := splitFrontMatter(string(raw))

	doc := &models.DocumentContent{
		ID:         id,
		Title:      fm.Title,
		DocType:    parseDocType(fm.Type),
		Content:    body,
		ModifiedAt: info.ModTime(),
		Owner:      fm.Owner,
		URL:        fm.URL,
		FolderPath: filepath.ToSlash(filepath.Dir(id)),
		Tags:       fm.Tags,
	}
	if doc.Title == "" {
		doc.Title = strings.TrimSuffix(info.Name(), filepath.Ext(info.Name()))
	}
	if fm.Date != "" {
		if d, err := time.Parse("2006-01-02", fm.Date); err == nil {
			doc.CreatedAt = d
			doc.ModifiedAt = d
		}
	}
	return doc, nil
}

func (s *LocalStore) matchesKeywords(path string, keywords []string) bool {
	name := strings.ToLower(filepath.Base(path))
	for _, kw := range keywords {
		if strings.Contains(name, strings.ToLower(kw)) {
			return true
		}
	}
	raw, err := afero.ReadFile(s.fs, path)
	if err != nil {
		return false
	}
	content := strings.ToLower(string(raw))
	for _, kw := range keywords {
		if strings.Contains(content, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}

// splitFrontMatter separates the YAML header from the body. Content without
// a header, or with a malformed header, comes back whole with zero metadata.
func splitFrontMatter(raw string) (frontMatter, string) {
	var fm frontMatter

	if !strings.HasPrefix(raw, "---\n") && !strings.HasPrefix(raw, "---\r\n") {
		return fm, raw
	}
	rest := raw[4:]
	end := strings.Index(rest, "\n---")
	if end < 0 {
		return fm, raw
	}
	header := rest[:end]
	body := rest[end+4:]
	body = strings.TrimPrefix(body, "\n")

	if err := yaml.Unmarshal([]byte(header), &fm); err != nil {
		return frontMatter{}, raw
	}
	return fm, body
}

func parseDocType(raw string) models.DocType {
	switch models.DocType(raw) {
	case models.DocTypeNote, models.DocTypeSheet, models.DocTypeSlide, models.DocTypePDF:
		return models.DocType(raw)
	}
	return models.DocTypeNote
}

func matchesExtension(path string, extensions []string) bool {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	for _, e := range extensions {
		if ext == strings.ToLower(e) {
			return true
		}
	}
	return false
}

func mimeTypeFor(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown":
		return "text/markdown"
	case ".txt":
		return "text/plain"
	}
	return "application/octet-stream"
}
