package profile

import (
	"testing"

	"github.com/fieldlens/fieldlens/internal/models"
)

func TestNameIdentityIsCaseInsensitive(t *testing.T) {
	r := NewRegistry()

	r.AddInsight(models.StakeholderInsight{
		StakeholderName: "Alice Johnson",
		StakeholderRole: "VP Engineering",
		Concerns:        []models.Concern{{Description: "budget", Severity: models.SeverityHigh}},
	})
	r.AddInsight(models.StakeholderInsight{
		StakeholderName: "alice johnson",
		Concerns:        []models.Concern{{Description: "timeline", Severity: models.SeverityLow}},
	})

	if r.Len() != 1 {
		t.Fatalf("Len = %d, want casing variants merged into one profile", r.Len())
	}
	p := r.GetByName("ALICE JOHNSON")
	if p == nil {
		t.Fatal("lookup by any casing must hit")
	}
	if p.TotalInteractions != 2 {
		t.Errorf("TotalInteractions = %d, want 2", p.TotalInteractions)
	}
	if p.Name != "Alice Johnson" {
		t.Errorf("Name = %q, first-seen spelling must win", p.Name)
	}
	if p.Role != "VP Engineering" {
		t.Errorf("Role = %q, later empty role must not erase", p.Role)
	}
}

func TestAddInsightSkipsEmptyName(t *testing.T) {
	r := NewRegistry()
	if p := r.AddInsight(models.StakeholderInsight{SourceDocID: "x.md"}); p != nil {
		t.Error("insight without a name must be skipped")
	}
	if r.Len() != 0 {
		t.Errorf("Len = %d, want 0", r.Len())
	}
}

func TestBuildFromInsightsCreatesMentionEdges(t *testing.T) {
	r := NewRegistry()
	profiles := r.BuildFromInsights([]models.StakeholderInsight{
		{
			StakeholderName: "Alice",
			MentionedStakeholders: []models.MentionedStakeholder{
				{Name: "Bob", Context: "works closely with"},
				{Name: ""},
			},
		},
	})

	if len(profiles) != 2 {
		t.Fatalf("profiles = %d, want Alice plus the mentioned Bob", len(profiles))
	}
	alice := r.GetByName("Alice")
	if len(alice.Relationships) != 1 {
		t.Fatalf("Relationships = %d", len(alice.Relationships))
	}
	rel := alice.Relationships[0]
	if rel.Type != models.RelCollaborates || rel.TargetID != models.ProfileID("Bob") {
		t.Errorf("mention edge = %+v", rel)
	}
	if bob := r.GetByName("Bob"); bob == nil || bob.TotalInteractions != 0 {
		t.Error("mention target must exist as a zero-interaction node")
	}
}

func TestAllPreservesCreationOrder(t *testing.T) {
	r := NewRegistry()
	r.Create("Carol", "", "")
	r.Create("Alice", "", "")
	r.Create("Bob", "", "")

	all := r.All()
	want := []string{"Carol", "Alice", "Bob"}
	for i, p := range all {
		if p.Name != want[i] {
			t.Errorf("All()[%d] = %q, want %q", i, p.Name, want[i])
		}
	}
}

func TestByStanceAndByInfluence(t *testing.T) {
	r := NewRegistry()
	a := r.Create("Alice", "", "")
	a.Stance = models.StanceBlocker
	b := r.Create("Bob", "", "")
	b.InfluenceLevel = models.InfluenceDecisionMaker

	if got := r.ByStance(models.StanceBlocker); len(got) != 1 || got[0].Name != "Alice" {
		t.Errorf("ByStance = %v", got)
	}
	if got := r.ByInfluence(models.InfluenceDecisionMaker); len(got) != 1 || got[0].Name != "Bob" {
		t.Errorf("ByInfluence = %v", got)
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	r := NewRegistry()
	p := r.Create("Alice", "VP", "Engineering")
	p.Stance = models.StanceChampion

	data, err := r.Export()
	if err != nil {
		t.Fatalf("export: %v", err)
	}

	fresh := NewRegistry()
	count, err := fresh.Import(data)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if count != 1 {
		t.Errorf("imported = %d, want 1", count)
	}
	got := fresh.GetByName("Alice")
	if got == nil || got.Stance != models.StanceChampion || got.Department != "Engineering" {
		t.Errorf("round-tripped profile = %+v", got)
	}
}

func TestImportSkipsProfilesWithoutID(t *testing.T) {
	r := NewRegistry()
	count, err := r.Import([]byte(`[{"id": "", "name": "ghost"}, {"id": "alice", "name": "Alice"}]`))
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if count != 1 || r.Len() != 1 {
		t.Errorf("count = %d, Len = %d, want malformed entry skipped", count, r.Len())
	}
}
