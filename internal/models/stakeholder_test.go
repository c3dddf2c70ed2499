package models

import (
	"testing"
	"time"
)

func TestProfileID(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Alice Johnson", "alice_johnson"},
		{"alice johnson", "alice_johnson"},
		{"  Bob Smith  ", "bob_smith"},
		{"ALICE", "alice"},
	}
	for _, c := range cases {
		if got := ProfileID(c.in); got != c.want {
			t.Errorf("ProfileID(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestAddInsightAccumulates(t *testing.T) {
	p := NewStakeholderProfile("Alice Johnson", "VP Engineering", "Engineering")

	day1 := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	day2 := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	p.AddInsight(StakeholderInsight{
		SourceDocID: "notes/a.md",
		MeetingDate: day2,
		Concerns:    []Concern{{Description: "Budget overrun", Severity: SeverityHigh}},
		Goals:       []string{"Ship Q2 roadmap"},
		KeyQuotes:   []Quote{{Text: "We cannot slip again", IsHighlight: true}},
	})
	p.AddInsight(StakeholderInsight{
		SourceDocID: "notes/b.md",
		MeetingDate: day1,
		Concerns:    []Concern{{Description: "budget overrun", Severity: SeverityLow}},
		Goals:       []string{"Ship Q2 roadmap"},
	})

	if p.TotalInteractions != 2 {
		t.Fatalf("TotalInteractions = %d, want 2", p.TotalInteractions)
	}
	if len(p.AllConcerns) != 2 {
		t.Errorf("AllConcerns = %d, want 2 (evidence never collapses)", len(p.AllConcerns))
	}
	if len(p.Goals) != 1 {
		t.Errorf("Goals = %v, want deduplicated single goal", p.Goals)
	}
	if len(p.HighlightQuotes) != 1 {
		t.Errorf("HighlightQuotes = %d, want 1", len(p.HighlightQuotes))
	}
	if !p.FirstContact.Equal(day1) || !p.LastContact.Equal(day2) {
		t.Errorf("contact window = [%v, %v], want [%v, %v]", p.FirstContact, p.LastContact, day1, day2)
	}
	if len(p.SourceDocuments) != 2 {
		t.Errorf("SourceDocuments = %v, want both docs", p.SourceDocuments)
	}
}

func TestTopConcernsRankByFrequencyThenSeverity(t *testing.T) {
	p := NewStakeholderProfile("Alice", "", "")

	// "slow builds" appears twice, everything else once. Among the
	// singletons, severity breaks the tie; beyond that insertion order
	// holds because the sort is stable.
	insight := StakeholderInsight{Concerns: []Concern{
		{Description: "flaky tests", Severity: SeverityLow},
		{Description: "slow builds", Severity: SeverityLow},
		{Description: "hiring freeze", Severity: SeverityHigh},
		{Description: "Slow Builds", Severity: SeverityMedium},
		{Description: "on-call load", Severity: SeverityLow},
	}}
	p.AddInsight(insight)

	if len(p.TopConcerns) != 4 {
		t.Fatalf("TopConcerns = %d groups, want 4", len(p.TopConcerns))
	}
	if p.TopConcerns[0].Description != "slow builds" {
		t.Errorf("rank 1 = %q, want most frequent group", p.TopConcerns[0].Description)
	}
	if p.TopConcerns[1].Description != "hiring freeze" {
		t.Errorf("rank 2 = %q, want highest severity singleton", p.TopConcerns[1].Description)
	}
	if p.TopConcerns[2].Description != "flaky tests" || p.TopConcerns[3].Description != "on-call load" {
		t.Errorf("tie order = %q, %q, want insertion order preserved",
			p.TopConcerns[2].Description, p.TopConcerns[3].Description)
	}
}

func TestTopConcernsCapAtFive(t *testing.T) {
	p := NewStakeholderProfile("Alice", "", "")
	var concerns []Concern
	for _, d := range []string{"a", "b", "c", "d", "e", "f", "g"} {
		concerns = append(concerns, Concern{Description: d, Severity: SeverityLow})
	}
	p.AddInsight(StakeholderInsight{Concerns: concerns})

	if len(p.TopConcerns) != 5 {
		t.Errorf("TopConcerns = %d, want capped at 5", len(p.TopConcerns))
	}
	if len(p.AllConcerns) != 7 {
		t.Errorf("AllConcerns = %d, want full multiset retained", len(p.AllConcerns))
	}
}

func TestFillIdentityDoesNotOverwrite(t *testing.T) {
	p := NewStakeholderProfile("Alice", "VP Engineering", "")
	p.FillIdentity(StakeholderInsight{
		StakeholderRole:       "Director",
		StakeholderDepartment: "Engineering",
		StakeholderEmail:      "alice@example.com",
	})

	if p.Role != "VP Engineering" {
		t.Errorf("Role = %q, existing value must win", p.Role)
	}
	if p.Department != "Engineering" {
		t.Errorf("Department = %q, empty field should backfill", p.Department)
	}
	if p.Email != "alice@example.com" {
		t.Errorf("Email = %q, empty field should backfill", p.Email)
	}
}

func TestAddRelationshipSkipsDuplicateTarget(t *testing.T) {
	p := NewStakeholderProfile("Alice", "", "")
	rel := Relationship{TargetID: "bob", TargetName: "Bob", Type: RelManages}
	p.AddRelationship(rel)
	p.AddRelationship(rel)
	p.AddRelationship(Relationship{TargetID: "carol", TargetName: "Carol", Type: RelAlliesWith})

	if len(p.Relationships) != 2 {
		t.Errorf("Relationships = %d, want duplicate target skipped", len(p.Relationships))
	}
}

func TestEngagementScoreCapped(t *testing.T) {
	p := NewStakeholderProfile("Alice", "", "")
	for i := 0; i < 20; i++ {
		p.AddInsight(StakeholderInsight{})
	}
	if p.EngagementScore > 1.0 {
		t.Errorf("EngagementScore = %f, want capped at 1.0", p.EngagementScore)
	}
}
