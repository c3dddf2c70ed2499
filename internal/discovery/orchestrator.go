// Package discovery drives the stakeholder discovery pipeline end to end:
// gather documents, extract insights, build profiles, map relationships,
// aggregate patterns, optionally create follow-up tasks, assemble the
// report.
package discovery

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/fieldlens/fieldlens/internal/aggregate"
	"github.com/fieldlens/fieldlens/internal/docstore"
	"github.com/fieldlens/fieldlens/internal/extract"
	"github.com/fieldlens/fieldlens/internal/graph"
	"github.com/fieldlens/fieldlens/internal/llm"
	"github.com/fieldlens/fieldlens/internal/models"
	"github.com/fieldlens/fieldlens/internal/profile"
	"github.com/fieldlens/fieldlens/internal/report"
	"github.com/fieldlens/fieldlens/internal/tracker"
)

// State is the orchestrator's position in the run. Linear, no retries
// across steps: a step failure aborts the run unless the component already
// degrades internally.
type State string

const (
	StateIdle                 State = "idle"
	StateGatheringDocuments   State = "gathering_documents"
	StateReadingDocuments     State = "reading_documents"
	StateExtractingInsights   State = "extracting_insights"
	StateBuildingProfiles     State = "building_profiles"
	StateMappingRelationships State = "mapping_relationships"
	StateAggregatingInsights  State = "aggregating_insights"
	StateCreatingTasks        State = "creating_tasks"
	StateGeneratingReport     State = "generating_report"
	StateDone                 State = "done"
)

const followUpDueDays = 7

// Options configures one discovery run.
type Options struct {
	Title       string
	Folder      string
	Keywords    []string
	From, To    time.Time
	CreateTasks bool
	Analyze     bool // run per-profile stance/influence analysis
}

// Orchestrator wires the pipeline's components for a run.
type Orchestrator struct {
	store    docstore.Store
	tasks    tracker.Tracker // nil disables task creation
	extract  *extract.Extractor
	analyzer *profile.Analyzer
	cluster  *graph.Clusterer
	agg      *aggregate.Aggregator

	state    State
	registry *profile.Registry // profiles from the latest run
}

// New creates an Orchestrator. The tracker may be nil when follow-up task
// creation is disabled.
func New(gen llm.Generator, store docstore.Store, tasks tracker.Tracker) *Orchestrator {
	return &Orchestrator{
		store:    store,
		tasks:    tasks,
		extract:  extract.New(gen),
		analyzer: profile.NewAnalyzer(gen),
		cluster:  graph.NewClusterer(gen),
		agg:      aggregate.New(gen),
		state:    StateIdle,
	}
}

// State returns the orchestrator's current pipeline state.
func (o *Orchestrator) State() State { return o.state }

// Export returns a JSON snapshot of the profiles built by the latest run.
func (o *Orchestrator) Export() ([]byte, error) {
	if o.registry == nil {
		return nil, fmt.Errorf("no discovery run to export")
	}
	return o.registry.Export()
}

func (o *Orchestrator) transition(s State) {
	o.state = s
	slog.Info("pipeline state", "state", string(s))
}

// Run executes the full discovery pipeline and returns the report. Zero
// gathered documents short-circuits to an empty titled report; that is a
// legitimate outcome, not an error.
func (o *Orchestrator) Run(ctx context.Context, opts Options) (*models.DiscoveryReport, error) {
	if opts.Title == "" {
		opts.Title = "Stakeholder Discovery - " + time.Now().UTC().Format("2006-01-02")
	}
	slog.Info("starting discovery", "title", opts.Title)

	o.transition(StateGatheringDocuments)
	infos, err := o.gatherDocuments(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("gather documents: %w", err)
	}
	slog.Info("found documents", "count", len(infos))

	if len(infos) == 0 {
		slog.Warn("no documents found, producing empty report")
		o.transition(StateDone)
		return models.NewDiscoveryReport(opts.Title), nil
	}

	o.transition(StateReadingDocuments)
	docs := docstore.ReadAll(ctx, o.store, infos)
	slog.Info("read documents", "count", len(docs))

	o.transition(StateExtractingInsights)
	insights := o.extract.BatchExtract(ctx, docs)

	o.transition(StateBuildingProfiles)
	registry := profile.NewRegistry()
	o.registry = registry
	profiles := registry.BuildFromInsights(insights)
	if opts.Analyze {
		o.analyzer.AnalyzeAll(ctx, profiles)
	}
	slog.Info("built profiles", "count", len(profiles))

	o.transition(StateMappingRelationships)
	matrix := graph.BuildInfluenceMatrix(profiles)
	matrix.Clusters = o.cluster.IdentifyClusters(ctx, profiles)

	o.transition(StateAggregatingInsights)
	analysis := o.agg.Analyze(ctx, profiles)
	summary := aggregate.GenerateSummary(profiles, analysis)
	slog.Info("aggregated insights", "themes", len(analysis.Themes), "conflicts", len(analysis.Conflicts))

	var actionPlan []models.ActionItem
	if opts.CreateTasks && o.tasks != nil {
		o.transition(StateCreatingTasks)
		actionPlan = o.createTasks(ctx, profiles, insights)
		slog.Info("created tasks", "count", len(actionPlan))
	}

	o.transition(StateGeneratingReport)
	r := report.Assemble(report.Inputs{
		Title:     opts.Title,
		Profiles:  profiles,
		Summary:   summary,
		Influence: matrix,
		Themes:    analysis.Themes,
		Conflicts: analysis.Conflicts,
	})
	r.ActionPlan = actionPlan
	r.SourceDocuments = docs

	o.transition(StateDone)
	return r, nil
}

func (o *Orchestrator) gatherDocuments(ctx context.Context, opts Options) ([]docstore.FileInfo, error) {
	if len(opts.Keywords) > 0 || opts.Folder != "" {
		return o.store.Search(ctx, docstore.SearchQuery{
			Keywords: opts.Keywords,
			Folder:   opts.Folder,
			After:    opts.From,
			Before:   opts.To,
		})
	}
	// Default: recent meeting notes.
	query := docstore.SearchQuery{After: opts.From, Before: opts.To}
	if query.After.IsZero() {
		query.After = time.Now().AddDate(0, 0, -30)
	}
	query.Keywords = []string{"meeting", "interview", "notes", "1:1", "stakeholder"}
	return o.store.Search(ctx, query)
}

// createTasks mirrors every extracted action item onto the tracker and
// synthesizes one follow-up per skeptic or blocker, due in a week. Tracker
// failures for individual items never abort the run.
func (o *Orchestrator) createTasks(ctx context.Context, profiles []*models.StakeholderProfile, insights []models.StakeholderInsight) []models.ActionItem {
	var items []models.ActionItem
	for _, insight := range insights {
		items = append(items, insight.ActionItems...)
	}

	items, synced := tracker.BatchCreate(ctx, o.tasks, items)
	slog.Info("synced action items", "synced", synced, "total", len(items))

	for _, p := range profiles {
		if p.Stance != models.StanceSkeptic && p.Stance != models.StanceBlocker {
			continue
		}
		followUp := models.NewActionItem(fmt.Sprintf("Follow up with %s: address concerns and build alignment", p.Name))
		followUp.Stakeholder = p.Name
		followUp.DueDate = time.Now().UTC().AddDate(0, 0, followUpDueDays)
		followUp.Description = "Key concerns: " + topConcernList(p)

		if err := tracker.SyncActionItem(ctx, o.tasks, &followUp); err != nil {
			slog.Error("failed to create follow-up task", "stakeholder", p.Name, "error", err)
		}
		items = append(items, followUp)
	}
	return items
}

func topConcernList(p *models.StakeholderProfile) string {
	var descs []string
	for i, c := range p.TopConcerns {
		if i == 3 {
			break
		}
		descs = append(descs, c.Description)
	}
	if len(descs) == 0 {
		return "none recorded"
	}
	return strings.Join(descs, ", ")
}
