package graph

import (
	"testing"

	"github.com/fieldlens/fieldlens/internal/models"
)

func TestFindAlliesByEdgeAndStance(t *testing.T) {
	target := profileWith("Alice", "Eng")
	target.Stance = models.StanceChampion

	explicit := profileWith("Bob", "Eng", edge("Alice", models.RelAlliesWith, 0.5))
	sharedStance := profileWith("Carol", "Sales")
	sharedStance.Stance = models.StanceSupporter
	opponent := profileWith("Dave", "Finance")
	opponent.Stance = models.StanceBlocker

	allies := FindAllies(target, []*models.StakeholderProfile{target, explicit, sharedStance, opponent})
	if len(allies) != 2 {
		t.Fatalf("allies = %d, want explicit edge plus shared positive stance", len(allies))
	}
	names := map[string]bool{allies[0].Name: true, allies[1].Name: true}
	if !names["Bob"] || !names["Carol"] {
		t.Errorf("allies = %v", names)
	}
}

func TestFindAlliesNoStanceMatchForNeutralTarget(t *testing.T) {
	target := profileWith("Alice", "Eng") // neutral by default
	supporter := profileWith("Carol", "Sales")
	supporter.Stance = models.StanceSupporter

	allies := FindAllies(target, []*models.StakeholderProfile{target, supporter})
	if len(allies) != 0 {
		t.Errorf("allies = %d, stance matching only applies to positive targets", len(allies))
	}
}

func TestFindBlockers(t *testing.T) {
	target := profileWith("Alice", "Eng")
	rival := profileWith("Bob", "Eng", edge("Alice", models.RelConflictsWith, 0.5))
	blocker := profileWith("Carol", "Finance")
	blocker.Stance = models.StanceBlocker
	bystander := profileWith("Dave", "Sales")

	blockers := FindBlockers(target, []*models.StakeholderProfile{target, rival, blocker, bystander})
	if len(blockers) != 2 {
		t.Fatalf("blockers = %d", len(blockers))
	}
}

func TestDecisionChainOrdersByInfluence(t *testing.T) {
	informed := profileWith("Dave", "")
	informed.InfluenceLevel = models.InfluenceInformed
	maker := profileWith("Alice", "")
	maker.InfluenceLevel = models.InfluenceDecisionMaker
	influencer := profileWith("Bob", "")
	influencer.InfluenceLevel = models.InfluenceKeyInfluencer
	contributor := profileWith("Carol", "")

	chain := DecisionChain([]*models.StakeholderProfile{informed, contributor, maker, influencer})
	want := []string{"Alice", "Bob", "Carol", "Dave"}
	for i, p := range chain {
		if p.Name != want[i] {
			t.Errorf("chain[%d] = %q, want %q", i, p.Name, want[i])
		}
	}
}

func TestInfluencePathBFS(t *testing.T) {
	alice := profileWith("Alice", "", edge("Bob", models.RelManages, 0))
	bob := profileWith("Bob", "", edge("Carol", models.RelInfluences, 0))
	carol := profileWith("Carol", "")
	all := []*models.StakeholderProfile{alice, bob, carol}

	path := InfluencePath(alice, carol, all)
	want := []string{"Alice", "Bob", "Carol"}
	if len(path) != len(want) {
		t.Fatalf("path = %v, want %v", path, want)
	}
	for i := range want {
		if path[i] != want[i] {
			t.Errorf("path[%d] = %q, want %q", i, path[i], want[i])
		}
	}

	// Edges are directed: there is no path back.
	if back := InfluencePath(carol, alice, all); back != nil {
		t.Errorf("reverse path = %v, want none", back)
	}
}
