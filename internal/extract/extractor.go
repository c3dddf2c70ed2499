// Package extract turns raw documents into structured stakeholder insights
// via a single low-temperature generation call per document.
package extract

import (
	"context"
	"fmt"
	"log/slog"
	"time"
	"unicode/utf8"

	"github.com/fieldlens/fieldlens/internal/llm"
	"github.com/fieldlens/fieldlens/internal/models"
)

const (
	// maxContentChars bounds the prompt so long transcripts do not blow the
	// model's context window.
	maxContentChars = 15000

	extractMaxTokens   = 4000
	extractTemperature = 0.1

	systemPrompt = "You are a stakeholder research analyst. Extract information precisely and return valid JSON."
)

const extractionPrompt = `You are an expert at analyzing meeting notes and extracting stakeholder insights for product management.

Analyze the following meeting notes and extract structured information.

MEETING NOTES:
%s

DOCUMENT TITLE: %s
DOCUMENT DATE: %s

Extract the following information in JSON format:

` + "```json" + `
{
    "stakeholder": {
        "name": "Full name of the primary stakeholder",
        "role": "Their job title/role",
        "department": "Their department/team",
        "email": "Email if mentioned, otherwise empty string"
    },
    "meeting_type": "interview|workshop|1:1|group|other",
    "concerns": [
        {
            "description": "Description of the concern",
            "category": "budget|timeline|resource|technical|political|change_management|risk|other",
            "severity": "high|medium|low",
            "quote": "Direct quote if available, otherwise null"
        }
    ],
    "needs": [
        {
            "description": "Description of the need",
            "category": "functional|information|process|communication|support|recognition",
            "priority": "must_have|should_have|nice_to_have",
            "quote": "Direct quote if available, otherwise null"
        }
    ],
    "goals": ["List of stakeholder's goals/objectives mentioned"],
    "constraints": ["List of limitations or constraints they face"],
    "key_quotes": [
        {
            "text": "The exact quote",
            "context": "What prompted this statement",
            "topic": "What topic this relates to",
            "sentiment": "positive|neutral|negative|mixed",
            "is_highlight": true
        }
    ],
    "mentioned_stakeholders": [
        {
            "name": "Name of mentioned person",
            "context": "Why they were mentioned",
            "relationship_hint": "e.g., 'works closely with', 'reports to'"
        }
    ],
    "action_items": [
        {
            "title": "Action item title",
            "description": "More details",
            "owner": "Who should do this",
            "due_date": "YYYY-MM-DD if mentioned, otherwise null",
            "priority": "must_have|should_have|nice_to_have"
        }
    ],
    "overall_sentiment": "positive|neutral|negative|mixed",
    "sentiment_details": "Brief explanation of the overall sentiment",
    "extraction_confidence": 0.85
}
` + "```" + `

Guidelines:
- Be precise and extract only what's explicitly stated or clearly implied
- Use null for fields where information is not available
- Identify the PRIMARY stakeholder (the main person being interviewed/discussed)
- Capture direct quotes when possible - they are valuable evidence
- Rate extraction_confidence in [0,1] based on how clear and complete the notes are
- For concerns and needs, categorize appropriately based on content
- Mark quotes as is_highlight=true if they are particularly insightful or important

Return ONLY the JSON, no other text.`

// Extractor produces one StakeholderInsight per document.
type Extractor struct {
	gen llm.Generator
}

// New creates an Extractor backed by the given generator.
func New(gen llm.Generator) *Extractor {
	return &Extractor{gen: gen}
}

// Extract analyzes one document and returns the insight for its primary
// stakeholder. A generation or parse failure degrades to a minimal insight
// carrying provenance and confidence 0.0; it never returns an error for bad
// model output. Errors are reserved for caller mistakes (nil document).
func (e *Extractor) Extract(ctx context.Context, doc *models.DocumentContent) (models.StakeholderInsight, error) {
	if doc == nil {
		return models.StakeholderInsight{}, fmt.Errorf("nil document")
	}

	slog.Info("extracting insights", "doc", doc.Title)

	dateStr := "Unknown"
	if d := doc.Date(); !d.IsZero() {
		dateStr = d.Format("2006-01-02")
	}

	content := truncateContent(doc.Content, maxContentChars)

	response, err := e.gen.Generate(ctx, llm.Request{
		System:      systemPrompt,
		Prompt:      fmt.Sprintf(extractionPrompt, content, doc.Title, dateStr),
		MaxTokens:   extractMaxTokens,
		Temperature: extractTemperature,
	})
	if err != nil {
		slog.Error("generation failed, recording empty insight", "doc", doc.Title, "error", err)
		return minimalInsight(doc), nil
	}

	wire, err := llm.ParseJSONResponse[insightWire](response)
	if err != nil {
		slog.Error("failed to parse extraction response", "doc", doc.Title, "error", err)
		return minimalInsight(doc), nil
	}

	return buildInsight(wire, doc), nil
}

// BatchExtract processes documents in order. One document's failure never
// aborts the batch: Extract already degrades internally, and anything that
// still errors is skipped with a log.
func (e *Extractor) BatchExtract(ctx context.Context, docs []*models.DocumentContent) []models.StakeholderInsight {
	slog.Info("batch extracting insights", "documents", len(docs))

	insights := make([]models.StakeholderInsight, 0, len(docs))
	for _, doc := range docs {
		insight, err := e.Extract(ctx, doc)
		if err != nil {
			slog.Error("skipping document", "error", err)
			continue
		}
		insights = append(insights, insight)
	}

	slog.Info("extraction complete", "insights", len(insights))
	return insights
}

// ExtractActionItems returns only the action items found in a document.
func (e *Extractor) ExtractActionItems(ctx context.Context, doc *models.DocumentContent) ([]models.ActionItem, error) {
	insight, err := e.Extract(ctx, doc)
	if err != nil {
		return nil, err
	}
	return insight.ActionItems, nil
}

// ExtractKeyQuotes returns only the quotes found in a document.
func (e *Extractor) ExtractKeyQuotes(ctx context.Context, doc *models.DocumentContent) ([]models.Quote, error) {
	insight, err := e.Extract(ctx, doc)
	if err != nil {
		return nil, err
	}
	return insight.KeyQuotes, nil
}

// truncateContent cuts s to at most max bytes without splitting a rune.
func truncateContent(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}

func minimalInsight(doc *models.DocumentContent) models.StakeholderInsight {
	return models.StakeholderInsight{
		SourceDocID:          doc.ID,
		SourceDocTitle:       doc.Title,
		OverallSentiment:     models.SentimentNeutral,
		ExtractionConfidence: 0.0,
		ExtractedAt:          time.Now().UTC(),
	}
}
