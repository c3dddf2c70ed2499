package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/fieldlens/fieldlens/internal/discovery"
	"github.com/fieldlens/fieldlens/internal/models"
	"github.com/fieldlens/fieldlens/internal/ui"
)

var (
	discoverTitle    string
	discoverFolder   string
	discoverKeywords []string
	discoverFrom     string
	discoverTo       string
	discoverNoTasks  bool
	discoverNoLLM    bool
	discoverJSONOut  string
)

var discoverCmd = &cobra.Command{
	Use:   "discover",
	Short: "Run stakeholder discovery over your meeting notes",
	Long: `Discover scans the configured notes directory for meeting notes and
transcripts, extracts stakeholder insights from each document, and builds
profiles, an influence map, and a discovery report.

By default it looks at documents from the last 30 days whose names or
contents mention meetings. Use --folder or --keyword to search
differently, and --from/--to to change the date window.`,
	RunE: runDiscover,
}

func init() {
	rootCmd.AddCommand(discoverCmd)

	discoverCmd.Flags().StringVarP(&discoverTitle, "title", "t", "", "report title")
	discoverCmd.Flags().StringVarP(&discoverFolder, "folder", "f", "", "restrict search to a subfolder of the notes dir")
	discoverCmd.Flags().StringSliceVarP(&discoverKeywords, "keyword", "k", nil, "keywords to match (repeatable)")
	discoverCmd.Flags().StringVar(&discoverFrom, "from", "", "only documents modified on or after this date (YYYY-MM-DD)")
	discoverCmd.Flags().StringVar(&discoverTo, "to", "", "only documents modified on or before this date (YYYY-MM-DD)")
	discoverCmd.Flags().BoolVar(&discoverNoTasks, "no-tasks", false, "skip creating tracker tasks from action items")
	discoverCmd.Flags().BoolVar(&discoverNoLLM, "no-analysis", false, "skip per-profile stance and influence analysis")
	discoverCmd.Flags().StringVarP(&discoverJSONOut, "json", "j", "", "also write the full report as JSON to this file")
}

func parseDateFlag(name, value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --%s date %q (expected YYYY-MM-DD)", name, value)
	}
	return t, nil
}

func runDiscover(cmd *cobra.Command, args []string) error {
	from, err := parseDateFlag("from", discoverFrom)
	if err != nil {
		return err
	}
	to, err := parseDateFlag("to", discoverTo)
	if err != nil {
		return err
	}

	trk, err := newTracker()
	if err != nil {
		return err
	}
	if trk != nil {
		defer func() { _ = trk.Close() }()
	}

	orch := discovery.New(newGenerator(), newStore(), trk)

	ui.RenderPageHeader("Stakeholder Discovery", "Scanning "+GetConfig().Notes.Dir)

	opts := discovery.Options{
		Title:       discoverTitle,
		Folder:      discoverFolder,
		Keywords:    discoverKeywords,
		From:        from,
		To:          to,
		CreateTasks: trk != nil && !discoverNoTasks,
		Analyze:     !discoverNoLLM,
	}

	report, err := orch.Run(cmd.Context(), opts)
	if err != nil {
		return fmt.Errorf("discovery failed: %w", err)
	}

	fmt.Print(ui.RenderReport(report))

	if err := saveRun(report); err != nil {
		return err
	}
	if discoverJSONOut != "" {
		if err := writeReportJSON(report, discoverJSONOut); err != nil {
			return err
		}
		fmt.Println(ui.StyleSubtle.Render("Report written to " + discoverJSONOut))
	}
	return nil
}

// saveRun persists the report and its profiles under the output dir so that
// `fieldlens profiles` can browse the latest run.
func saveRun(report *models.DiscoveryReport) error {
	outDir := GetConfig().Output.Dir
	if outDir == "" {
		return nil
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output dir %s: %w", outDir, err)
	}

	if err := writeReportJSON(report, filepath.Join(outDir, "report.json")); err != nil {
		return err
	}

	data, err := json.MarshalIndent(report.StakeholderProfiles, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal profiles: %w", err)
	}
	if err := os.WriteFile(filepath.Join(outDir, "profiles.json"), data, 0o644); err != nil {
		return fmt.Errorf("failed to write profiles: %w", err)
	}
	return nil
}

func writeReportJSON(report *models.DiscoveryReport, path string) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write report to %s: %w", path, err)
	}
	return nil
}
