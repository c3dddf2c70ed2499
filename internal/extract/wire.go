package extract

import (
	"time"

	"github.com/fieldlens/fieldlens/internal/models"
)

// insightWire mirrors the JSON schema the extraction prompt asks for. All
// enum-valued fields arrive as plain strings and go through the tolerant
// parse functions; a bad value defaults instead of discarding the record.
type insightWire struct {
	Stakeholder struct {
		Name       string `json:"name"`
		Role       string `json:"role"`
		Department string `json:"department"`
		Email      string `json:"email"`
	} `json:"stakeholder"`
	MeetingType string `json:"meeting_type"`
	Concerns    []struct {
		Description string `json:"description"`
		Category    string `json:"category"`
		Severity    string `json:"severity"`
		Quote       string `json:"quote"`
	} `json:"concerns"`
	Needs []struct {
		Description string `json:"description"`
		Category    string `json:"category"`
		Priority    string `json:"priority"`
		Quote       string `json:"quote"`
	} `json:"needs"`
	Goals       []string `json:"goals"`
	Constraints []string `json:"constraints"`
	KeyQuotes   []struct {
		Text        string `json:"text"`
		Context     string `json:"context"`
		Topic       string `json:"topic"`
		Sentiment   string `json:"sentiment"`
		IsHighlight bool   `json:"is_highlight"`
	} `json:"key_quotes"`
	MentionedStakeholders []struct {
		Name             string `json:"name"`
		Context          string `json:"context"`
		RelationshipHint string `json:"relationship_hint"`
	} `json:"mentioned_stakeholders"`
	ActionItems []struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		Owner       string `json:"owner"`
		DueDate     string `json:"due_date"`
		Priority    string `json:"priority"`
	} `json:"action_items"`
	OverallSentiment     string   `json:"overall_sentiment"`
	SentimentDetails     string   `json:"sentiment_details"`
	ExtractionConfidence *float64 `json:"extraction_confidence"`
}

func buildInsight(wire insightWire, doc *models.DocumentContent) models.StakeholderInsight {
	concerns := make([]models.Concern, 0, len(wire.Concerns))
	for _, c := range wire.Concerns {
		if c.Description == "" {
			continue
		}
		concerns = append(concerns, models.Concern{
			Description: c.Description,
			Category:    models.ParseConcernCategory(c.Category),
			Severity:    models.ParseSeverity(c.Severity),
			Quote:       c.Quote,
		})
	}

	needs := make([]models.Need, 0, len(wire.Needs))
	for _, n := range wire.Needs {
		if n.Description == "" {
			continue
		}
		needs = append(needs, models.Need{
			Description: n.Description,
			Category:    models.ParseNeedCategory(n.Category),
			Priority:    models.ParsePriority(n.Priority),
			Quote:       n.Quote,
		})
	}

	quotes := make([]models.Quote, 0, len(wire.KeyQuotes))
	for _, q := range wire.KeyQuotes {
		if q.Text == "" {
			continue
		}
		quotes = append(quotes, models.Quote{
			Text:        q.Text,
			Context:     q.Context,
			Topic:       q.Topic,
			Sentiment:   models.ParseSentiment(q.Sentiment),
			IsHighlight: q.IsHighlight,
		})
	}

	mentioned := make([]models.MentionedStakeholder, 0, len(wire.MentionedStakeholders))
	for _, m := range wire.MentionedStakeholders {
		if m.Name == "" {
			continue
		}
		mentioned = append(mentioned, models.MentionedStakeholder{
			Name:             m.Name,
			Context:          m.Context,
			RelationshipHint: m.RelationshipHint,
		})
	}

	actions := make([]models.ActionItem, 0, len(wire.ActionItems))
	for _, a := range wire.ActionItems {
		if a.Title == "" {
			continue
		}
		item := models.NewActionItem(a.Title)
		item.Description = a.Description
		item.Owner = a.Owner
		item.Stakeholder = wire.Stakeholder.Name
		item.Priority = models.ParsePriority(a.Priority)
		item.SourceDocID = doc.ID
		item.SourceMeetingDate = doc.ModifiedAt
		if a.DueDate != "" && a.DueDate != "null" {
			if due, err := time.Parse("2006-01-02", a.DueDate); err == nil {
				item.DueDate = due
			}
		}
		actions = append(actions, item)
	}

	meetingType := wire.MeetingType
	if meetingType == "" {
		meetingType = "interview"
	}

	confidence := 0.5
	if wire.ExtractionConfidence != nil {
		confidence = min(max(*wire.ExtractionConfidence, 0), 1)
	}

	return models.StakeholderInsight{
		SourceDocID:           doc.ID,
		SourceDocTitle:        doc.Title,
		MeetingDate:           doc.Date(),
		MeetingType:           meetingType,
		StakeholderName:       wire.Stakeholder.Name,
		StakeholderRole:       wire.Stakeholder.Role,
		StakeholderDepartment: wire.Stakeholder.Department,
		StakeholderEmail:      wire.Stakeholder.Email,
		Concerns:              concerns,
		Needs:                 needs,
		Goals:                 wire.Goals,
		Constraints:           wire.Constraints,
		OverallSentiment:      models.ParseSentiment(wire.OverallSentiment),
		SentimentDetails:      wire.SentimentDetails,
		KeyQuotes:             quotes,
		MentionedStakeholders: mentioned,
		ActionItems:           actions,
		ExtractionConfidence:  confidence,
		ExtractedAt:           time.Now().UTC(),
	}
}
