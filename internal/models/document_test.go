package models

import (
	"testing"
	"time"
)

func TestDocumentDateFallsBackToCreated(t *testing.T) {
	created := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
	modified := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

	d := DocumentContent{CreatedAt: created, ModifiedAt: modified}
	if !d.Date().Equal(modified) {
		t.Errorf("Date() = %v, want modified time when set", d.Date())
	}

	d.ModifiedAt = time.Time{}
	if !d.Date().Equal(created) {
		t.Errorf("Date() = %v, want created time as fallback", d.Date())
	}

	var empty DocumentContent
	if !empty.Date().IsZero() {
		t.Errorf("Date() = %v, want zero when nothing known", empty.Date())
	}
}

func TestDocumentSections(t *testing.T) {
	d := DocumentContent{Content: "intro line\n# Agenda\nitem one\nitem two\n## Risks\nbudget\n"}

	sections := d.Sections()
	if len(sections) != 3 {
		t.Fatalf("Sections() = %d, want 3", len(sections))
	}
	if sections[0].Heading != "" || sections[0].Content != "intro line" {
		t.Errorf("preamble section = %+v", sections[0])
	}
	if sections[1].Heading != "Agenda" || sections[1].Level != 1 {
		t.Errorf("section 1 = %+v, want Agenda level 1", sections[1])
	}
	if sections[2].Heading != "Risks" || sections[2].Level != 2 {
		t.Errorf("section 2 = %+v, want Risks level 2", sections[2])
	}
}

func TestDocumentSearch(t *testing.T) {
	d := DocumentContent{Content: "Budget is tight\nTimeline slipping\nbudget review Friday"}

	if got := d.Search("budget", false); len(got) != 2 {
		t.Errorf("case-insensitive search = %d lines, want 2", len(got))
	}
	if got := d.Search("budget", true); len(got) != 1 {
		t.Errorf("case-sensitive search = %d lines, want 1", len(got))
	}
}

func TestTableRecords(t *testing.T) {
	table := TableData{
		Headers: []string{"name", "role"},
		Rows:    [][]string{{"Alice", "VP"}, {"Bob"}},
	}
	recs := table.Records()
	if len(recs) != 2 {
		t.Fatalf("Records() = %d, want 2", len(recs))
	}
	if recs[0]["role"] != "VP" {
		t.Errorf("row 0 role = %q", recs[0]["role"])
	}
	if recs[1]["role"] != "" {
		t.Errorf("short row must pad missing cells, got %q", recs[1]["role"])
	}
}

func TestWordCountAndIsEmpty(t *testing.T) {
	d := DocumentContent{Content: "  \n\t"}
	if !d.IsEmpty() {
		t.Error("whitespace-only content must be empty")
	}
	d.Content = "three word line"
	if d.WordCount() != 3 {
		t.Errorf("WordCount = %d, want 3", d.WordCount())
	}
}
