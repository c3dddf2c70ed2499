package extract

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/fieldlens/fieldlens/internal/llm"
	"github.com/fieldlens/fieldlens/internal/models"
)

// fakeGenerator returns canned responses in order, recording each request.
type fakeGenerator struct {
	responses []string
	errs      []error
	requests  []llm.Request
}

func (f *fakeGenerator) Generate(ctx context.Context, req llm.Request) (string, error) {
	i := len(f.requests)
	f.requests = append(f.requests, req)
	if i < len(f.errs) && f.errs[i] != nil {
		return "", f.errs[i]
	}
	if i < len(f.responses) {
		return f.responses[i], nil
	}
	return "", errors.New("no canned response")
}

const goodResponse = "```json\n" + `{
	"stakeholder": {"name": "Alice Johnson", "role": "VP Engineering", "department": "Engineering", "email": ""},
	"meeting_type": "interview",
	"concerns": [
		{"description": "Budget overrun risk", "category": "budget", "severity": "high", "quote": "We are already over"},
		{"description": "", "category": "other", "severity": "low", "quote": ""}
	],
	"needs": [
		{"description": "Weekly status reports", "category": "information", "priority": "must_have", "quote": ""}
	],
	"goals": ["Ship Q2 roadmap"],
	"constraints": ["Headcount frozen"],
	"key_quotes": [
		{"text": "We are already over", "context": "budget discussion", "topic": "budget", "sentiment": "negative", "is_highlight": true}
	],
	"mentioned_stakeholders": [
		{"name": "Bob Smith", "context": "finance approval", "relationship_hint": "reports to"}
	],
	"action_items": [
		{"title": "Send revised budget", "description": "Include Q3", "owner": "Alice", "due_date": "2026-07-01", "priority": "must_have"},
		{"title": "Unscheduled cleanup", "description": "", "owner": "", "due_date": "null", "priority": "nice_to_have"}
	],
	"overall_sentiment": "mixed",
	"sentiment_details": "supportive but worried",
	"extraction_confidence": 0.85
}` + "\n```"

func testDoc() *models.DocumentContent {
	return &models.DocumentContent{
		ID:         "notes/alice.md",
		Title:      "Interview with Alice",
		Content:    "Alice raised budget concerns.",
		ModifiedAt: time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestExtractParsesFullResponse(t *testing.T) {
	gen := &fakeGenerator{responses: []string{goodResponse}}
	insight, err := New(gen).Extract(context.Background(), testDoc())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if insight.StakeholderName != "Alice Johnson" {
		t.Errorf("StakeholderName = %q", insight.StakeholderName)
	}
	if insight.SourceDocID != "notes/alice.md" {
		t.Errorf("SourceDocID = %q", insight.SourceDocID)
	}
	if len(insight.Concerns) != 1 {
		t.Fatalf("Concerns = %d, want empty description dropped", len(insight.Concerns))
	}
	if insight.Concerns[0].Severity != models.SeverityHigh {
		t.Errorf("Severity = %q", insight.Concerns[0].Severity)
	}
	if len(insight.Needs) != 1 || insight.Needs[0].Priority != models.PriorityMustHave {
		t.Errorf("Needs = %+v", insight.Needs)
	}
	if len(insight.MentionedStakeholders) != 1 || insight.MentionedStakeholders[0].Name != "Bob Smith" {
		t.Errorf("MentionedStakeholders = %+v", insight.MentionedStakeholders)
	}
	if insight.ExtractionConfidence != 0.85 {
		t.Errorf("ExtractionConfidence = %f", insight.ExtractionConfidence)
	}
	if insight.OverallSentiment != models.SentimentMixed {
		t.Errorf("OverallSentiment = %q", insight.OverallSentiment)
	}

	if len(insight.ActionItems) != 2 {
		t.Fatalf("ActionItems = %d", len(insight.ActionItems))
	}
	wantDue := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	if !insight.ActionItems[0].DueDate.Equal(wantDue) {
		t.Errorf("DueDate = %v, want %v", insight.ActionItems[0].DueDate, wantDue)
	}
	if !insight.ActionItems[1].DueDate.IsZero() {
		t.Errorf("null due date must stay zero, got %v", insight.ActionItems[1].DueDate)
	}
	if insight.ActionItems[0].Stakeholder != "Alice Johnson" {
		t.Errorf("action Stakeholder = %q", insight.ActionItems[0].Stakeholder)
	}
	if insight.ActionItems[0].SourceDocID != "notes/alice.md" {
		t.Errorf("action SourceDocID = %q", insight.ActionItems[0].SourceDocID)
	}
}

func TestExtractDefaultsConfidenceWhenAbsent(t *testing.T) {
	gen := &fakeGenerator{responses: []string{`{"stakeholder": {"name": "Alice"}}`}}
	insight, err := New(gen).Extract(context.Background(), testDoc())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if insight.ExtractionConfidence != 0.5 {
		t.Errorf("ExtractionConfidence = %f, want 0.5 default when absent", insight.ExtractionConfidence)
	}

	// An explicit zero is preserved, not replaced by the default.
	gen = &fakeGenerator{responses: []string{`{"stakeholder": {"name": "Alice"}, "extraction_confidence": 0.0}`}}
	insight, _ = New(gen).Extract(context.Background(), testDoc())
	if insight.ExtractionConfidence != 0.0 {
		t.Errorf("explicit zero confidence = %f, want 0.0", insight.ExtractionConfidence)
	}

	// Out-of-range values clamp.
	gen = &fakeGenerator{responses: []string{`{"stakeholder": {"name": "Alice"}, "extraction_confidence": 1.7}`}}
	insight, _ = New(gen).Extract(context.Background(), testDoc())
	if insight.ExtractionConfidence != 1.0 {
		t.Errorf("clamped confidence = %f, want 1.0", insight.ExtractionConfidence)
	}
}

func TestExtractDegradesOnGenerationFailure(t *testing.T) {
	gen := &fakeGenerator{errs: []error{errors.New("model unavailable")}}
	insight, err := New(gen).Extract(context.Background(), testDoc())
	if err != nil {
		t.Fatalf("generation failure must degrade, not error: %v", err)
	}
	if insight.ExtractionConfidence != 0.0 {
		t.Errorf("ExtractionConfidence = %f, want 0.0", insight.ExtractionConfidence)
	}
	if insight.SourceDocID != "notes/alice.md" {
		t.Errorf("minimal insight must keep provenance, got %q", insight.SourceDocID)
	}
	if insight.StakeholderName != "" {
		t.Errorf("minimal insight must carry no identity, got %q", insight.StakeholderName)
	}
}

func TestExtractDegradesOnUnparseableResponse(t *testing.T) {
	gen := &fakeGenerator{responses: []string{"Sorry, I can't help with that."}}
	insight, err := New(gen).Extract(context.Background(), testDoc())
	if err != nil {
		t.Fatalf("parse failure must degrade, not error: %v", err)
	}
	if insight.ExtractionConfidence != 0.0 {
		t.Errorf("ExtractionConfidence = %f, want 0.0", insight.ExtractionConfidence)
	}
}

func TestExtractNilDocument(t *testing.T) {
	gen := &fakeGenerator{}
	if _, err := New(gen).Extract(context.Background(), nil); err == nil {
		t.Error("nil document must be an error")
	}
	if len(gen.requests) != 0 {
		t.Error("nil document must not reach the generator")
	}
}

func TestExtractTruncatesLongContent(t *testing.T) {
	doc := testDoc()
	doc.Content = strings.Repeat("x", maxContentChars+5000)

	gen := &fakeGenerator{responses: []string{`{"stakeholder": {"name": "Alice"}}`}}
	if _, err := New(gen).Extract(context.Background(), doc); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(gen.requests) != 1 {
		t.Fatalf("requests = %d", len(gen.requests))
	}
	if strings.Count(gen.requests[0].Prompt, "x") > maxContentChars {
		t.Error("content must be truncated before prompting")
	}
}

func TestTruncateContentKeepsRunesIntact(t *testing.T) {
	// A multi-byte rune straddling the cut must be dropped whole.
	s := strings.Repeat("x", maxContentChars-1) + "é" + strings.Repeat("y", 100)
	got := truncateContent(s, maxContentChars)

	if !utf8.ValidString(got) {
		t.Error("truncated content must stay valid UTF-8")
	}
	if len(got) != maxContentChars-1 {
		t.Errorf("len = %d, want the straddling rune dropped", len(got))
	}
	if got := truncateContent("short", maxContentChars); got != "short" {
		t.Errorf("short content must pass through, got %q", got)
	}
}

func TestBatchExtractIsolatesFailures(t *testing.T) {
	docs := []*models.DocumentContent{
		{ID: "a.md", Title: "A", Content: "notes"},
		{ID: "b.md", Title: "B", Content: "notes"},
		{ID: "c.md", Title: "C", Content: "notes"},
	}
	gen := &fakeGenerator{
		responses: []string{
			`{"stakeholder": {"name": "Alice"}, "extraction_confidence": 0.9}`,
			"",
			`{"stakeholder": {"name": "Carol"}, "extraction_confidence": 0.9}`,
		},
		errs: []error{nil, errors.New("timeout"), nil},
	}

	insights := New(gen).BatchExtract(context.Background(), docs)
	if len(insights) != 3 {
		t.Fatalf("insights = %d, want one per document", len(insights))
	}
	if insights[0].StakeholderName != "Alice" || insights[2].StakeholderName != "Carol" {
		t.Errorf("neighbors of a failed document must survive: %q, %q",
			insights[0].StakeholderName, insights[2].StakeholderName)
	}
	if insights[1].ExtractionConfidence != 0.0 || insights[1].SourceDocID != "b.md" {
		t.Errorf("failed document must degrade to provenance-only: %+v", insights[1])
	}
}

func TestExtractActionItemsAndKeyQuotes(t *testing.T) {
	gen := &fakeGenerator{responses: []string{goodResponse, goodResponse}}
	e := New(gen)

	items, err := e.ExtractActionItems(context.Background(), testDoc())
	if err != nil || len(items) != 2 {
		t.Errorf("ExtractActionItems = %d items, err %v", len(items), err)
	}
	quotes, err := e.ExtractKeyQuotes(context.Background(), testDoc())
	if err != nil || len(quotes) != 1 {
		t.Errorf("ExtractKeyQuotes = %d quotes, err %v", len(quotes), err)
	}
}
