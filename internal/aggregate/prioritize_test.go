package aggregate

import (
	"testing"

	"github.com/fieldlens/fieldlens/internal/models"
)

func TestPrioritizeConcernsGroupsByNormalizedKey(t *testing.T) {
	alice := models.NewStakeholderProfile("Alice", "", "")
	alice.AddInsight(models.StakeholderInsight{Concerns: []models.Concern{
		{Description: "Budget overrun", Severity: models.SeverityLow, Quote: "over already"},
		{Description: "slow reviews", Severity: models.SeverityHigh},
	}})
	bob := models.NewStakeholderProfile("Bob", "", "")
	bob.AddInsight(models.StakeholderInsight{Concerns: []models.Concern{
		{Description: "budget overrun", Severity: models.SeverityMedium},
	}})

	ranked := PrioritizeConcerns([]*models.StakeholderProfile{alice, bob})
	if len(ranked) != 2 {
		t.Fatalf("ranked = %d groups", len(ranked))
	}

	top := ranked[0]
	if top.Description != "Budget overrun" || top.Count != 2 {
		t.Errorf("top = %+v, want the doubly-raised concern first", top)
	}
	if top.MaxSeverity != models.SeverityMedium {
		t.Errorf("MaxSeverity = %q, want the worst seen", top.MaxSeverity)
	}
	if len(top.Stakeholders) != 2 {
		t.Errorf("Stakeholders = %v", top.Stakeholders)
	}
	if len(top.Quotes) != 1 {
		t.Errorf("Quotes = %v, empty quotes must not be collected", top.Quotes)
	}
}

func TestPrioritizeConcernsSeverityBreaksTies(t *testing.T) {
	p := models.NewStakeholderProfile("Alice", "", "")
	p.AddInsight(models.StakeholderInsight{Concerns: []models.Concern{
		{Description: "minor annoyance", Severity: models.SeverityLow},
		{Description: "major outage risk", Severity: models.SeverityHigh},
	}})

	ranked := PrioritizeConcerns([]*models.StakeholderProfile{p})
	if ranked[0].Description != "major outage risk" {
		t.Errorf("top = %q, severity must break equal counts", ranked[0].Description)
	}
}

func TestPrioritizeNeeds(t *testing.T) {
	alice := models.NewStakeholderProfile("Alice", "", "")
	alice.AddInsight(models.StakeholderInsight{Needs: []models.Need{
		{Description: "weekly digest", Priority: models.PriorityNiceToHave},
	}})
	bob := models.NewStakeholderProfile("Bob", "", "")
	bob.AddInsight(models.StakeholderInsight{Needs: []models.Need{
		{Description: "Weekly Digest", Priority: models.PriorityMustHave},
		{Description: "api access", Priority: models.PriorityShouldHave},
	}})

	ranked := PrioritizeNeeds([]*models.StakeholderProfile{alice, bob})
	if len(ranked) != 2 {
		t.Fatalf("ranked = %d groups", len(ranked))
	}
	if ranked[0].Description != "weekly digest" || ranked[0].Count != 2 {
		t.Errorf("top = %+v", ranked[0])
	}
	if ranked[0].MaxPriority != models.PriorityMustHave {
		t.Errorf("MaxPriority = %q", ranked[0].MaxPriority)
	}
}

func TestPrioritizeEmptyProfiles(t *testing.T) {
	if got := PrioritizeConcerns(nil); len(got) != 0 {
		t.Errorf("concerns = %v", got)
	}
	if got := PrioritizeNeeds(nil); len(got) != 0 {
		t.Errorf("needs = %v", got)
	}
}
