package models

import "testing"

func TestParseDefaultsForUnknownValues(t *testing.T) {
	if got := ParseStance("enthusiastic"); got != StanceNeutral {
		t.Errorf("ParseStance unknown = %q, want neutral", got)
	}
	if got := ParseSeverity(""); got != SeverityMedium {
		t.Errorf("ParseSeverity empty = %q, want medium", got)
	}
	if got := ParsePriority("p0"); got != PriorityShouldHave {
		t.Errorf("ParsePriority unknown = %q, want should_have", got)
	}
	if got := ParseInfluenceLevel("ceo"); got != InfluenceContributor {
		t.Errorf("ParseInfluenceLevel unknown = %q, want contributor", got)
	}
	if got := ParseSentiment("angry"); got != SentimentNeutral {
		t.Errorf("ParseSentiment unknown = %q, want neutral", got)
	}
}

func TestParseAcceptsKnownValues(t *testing.T) {
	if got := ParseStance("blocker"); got != StanceBlocker {
		t.Errorf("ParseStance(blocker) = %q", got)
	}
	if got := ParseRelationshipType("reports_to"); got != RelReportsTo {
		t.Errorf("ParseRelationshipType(reports_to) = %q", got)
	}
	if got := ParseConflictStatus("resolved"); got != ConflictResolved {
		t.Errorf("ParseConflictStatus(resolved) = %q", got)
	}
}

func TestSeverityWeightOrdering(t *testing.T) {
	if SeverityHigh.Weight() <= SeverityMedium.Weight() {
		t.Error("high must outweigh medium")
	}
	if SeverityMedium.Weight() <= SeverityLow.Weight() {
		t.Error("medium must outweigh low")
	}
	if Severity("bogus").Weight() != 0 {
		t.Error("unknown severity must weigh 0")
	}
}

func TestPriorityWeightOrdering(t *testing.T) {
	if PriorityMustHave.Weight() <= PriorityShouldHave.Weight() {
		t.Error("must_have must outweigh should_have")
	}
	if PriorityShouldHave.Weight() <= PriorityNiceToHave.Weight() {
		t.Error("should_have must outweigh nice_to_have")
	}
}
