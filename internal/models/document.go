package models

import (
	"strings"
	"time"
)

// TableData is a table pulled out of a source document.
type TableData struct {
	Headers []string   `json:"headers,omitempty"`
	Rows    [][]string `json:"rows,omitempty"`
}

// Records converts the table into one map per row keyed by header.
func (t TableData) Records() []map[string]string {
	if len(t.Headers) == 0 {
		return nil
	}
	out := make([]map[string]string, 0, len(t.Rows))
	for _, row := range t.Rows {
		rec := make(map[string]string, len(t.Headers))
		for i, h := range t.Headers {
			if i < len(row) {
				rec[h] = row[i]
			} else {
				rec[h] = ""
			}
		}
		out = append(out, rec)
	}
	return out
}

// Section is a heading-delimited slice of a document.
type Section struct {
	Heading string `json:"heading,omitempty"`
	Level   int    `json:"level,omitempty"`
	Content string `json:"content"`
}

// DocumentContent is the raw content read from the document store. Identity
// is an opaque string owned by the store.
type DocumentContent struct {
	ID      string  `json:"id" validate:"required"`
	Title   string  `json:"title"`
	DocType DocType `json:"doc_type"`

	Content string      `json:"content"`
	Tables  []TableData `json:"tables,omitempty"`

	CreatedAt  time.Time `json:"created_at,omitzero"`
	ModifiedAt time.Time `json:"modified_at,omitzero"`
	Owner      string    `json:"owner,omitempty"`
	URL        string    `json:"url,omitempty"`

	FolderPath string   `json:"folder_path,omitempty"`
	Tags       []string `json:"tags,omitempty"`
}

// WordCount returns the approximate word count of the content.
func (d *DocumentContent) WordCount() int { return len(strings.Fields(d.Content)) }

// IsEmpty reports whether the document has no meaningful content.
func (d *DocumentContent) IsEmpty() bool { return strings.TrimSpace(d.Content) == "" }

// Date returns the best-known document date: modified time, falling back to
// created time. Zero when neither is known.
func (d *DocumentContent) Date() time.Time {
	if !d.ModifiedAt.IsZero() {
		return d.ModifiedAt
	}
	return d.CreatedAt
}

// Sections splits the content on markdown-style headings.
func (d *DocumentContent) Sections() []Section {
	var sections []Section
	current := Section{}
	var body []string

	flush := func() {
		current.Content = strings.Join(body, "\n")
		if current.Heading != "" || strings.TrimSpace(current.Content) != "" {
			sections = append(sections, current)
		}
		body = body[:0]
	}

	for _, line := range strings.Split(d.Content, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "#") {
			flush()
			heading := strings.TrimSpace(strings.TrimLeft(trimmed, "#"))
			current = Section{Heading: heading, Level: len(trimmed) - len(strings.TrimLeft(trimmed, "#"))}
			continue
		}
		body = append(body, line)
	}
	flush()
	return sections
}

// Search returns lines containing the keyword.
func (d *DocumentContent) Search(keyword string, caseSensitive bool) []string {
	var out []string
	needle := keyword
	if !caseSensitive {
		needle = strings.ToLower(keyword)
	}
	for _, line := range strings.Split(d.Content, "\n") {
		hay := line
		if !caseSensitive {
			hay = strings.ToLower(line)
		}
		if strings.Contains(hay, needle) {
			out = append(out, line)
		}
	}
	return out
}
