package graph

import (
	"context"
	"errors"
	"testing"

	"github.com/fieldlens/fieldlens/internal/llm"
	"github.com/fieldlens/fieldlens/internal/models"
)

type fakeGenerator struct {
	response string
	err      error
	calls    int
}

func (f *fakeGenerator) Generate(ctx context.Context, req llm.Request) (string, error) {
	f.calls++
	return f.response, f.err
}

const clusterResponse = "```json\n" + `{
	"clusters": [
		{
			"name": "Engineering Leadership",
			"members": ["Alice", "Bob"],
			"common_concerns": ["velocity"],
			"common_needs": ["headcount"],
			"overall_stance": "supporter",
			"collective_influence": 0.8,
			"engagement_strategy": "Monthly syncs"
		},
		{
			"name": "",
			"members": []
		},
		{
			"name": "Finance Skeptics",
			"members": ["Carol"],
			"overall_stance": "skeptic"
		}
	]
}` + "\n```"

func TestIdentifyClustersParsesResponse(t *testing.T) {
	profiles := []*models.StakeholderProfile{
		profileWith("Alice", "Eng"),
		profileWith("Bob", "Eng"),
		profileWith("Carol", "Finance"),
	}
	gen := &fakeGenerator{response: clusterResponse}

	clusters := NewClusterer(gen).IdentifyClusters(context.Background(), profiles)
	if len(clusters) != 2 {
		t.Fatalf("clusters = %d, want empty entry skipped", len(clusters))
	}
	if clusters[0].Name != "Engineering Leadership" || clusters[0].CollectiveInfluence != 0.8 {
		t.Errorf("cluster 0 = %+v", clusters[0])
	}
	if clusters[1].CollectiveInfluence != 0.5 {
		t.Errorf("missing collective_influence = %f, want 0.5 default", clusters[1].CollectiveInfluence)
	}
	if clusters[1].OverallStance != models.StanceSkeptic {
		t.Errorf("stance = %q", clusters[1].OverallStance)
	}
}

func TestIdentifyClustersNeedsTwoProfiles(t *testing.T) {
	gen := &fakeGenerator{response: clusterResponse}
	clusters := NewClusterer(gen).IdentifyClusters(context.Background(),
		[]*models.StakeholderProfile{profileWith("Alice", "Eng")})

	if clusters != nil {
		t.Errorf("clusters = %v, want none for a single profile", clusters)
	}
	if gen.calls != 0 {
		t.Error("a single profile must not trigger a generation call")
	}
}

func TestIdentifyClustersDegradesOnFailure(t *testing.T) {
	profiles := []*models.StakeholderProfile{
		profileWith("Alice", "Eng"),
		profileWith("Bob", "Eng"),
	}

	if got := NewClusterer(&fakeGenerator{err: errors.New("timeout")}).IdentifyClusters(context.Background(), profiles); got != nil {
		t.Errorf("generation failure = %v, want nil", got)
	}
	if got := NewClusterer(&fakeGenerator{response: "not json"}).IdentifyClusters(context.Background(), profiles); got != nil {
		t.Errorf("parse failure = %v, want nil", got)
	}
}
