package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/fieldlens/fieldlens/internal/discovery"
	"github.com/fieldlens/fieldlens/internal/ui"
	"github.com/fieldlens/fieldlens/internal/watch"
)

var watchDebounce time.Duration

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Re-run discovery whenever your notes change",
	Long: `Watch monitors the notes directory and re-runs stakeholder discovery
each time a note is added or edited. Changes are debounced so a burst of
editor saves triggers a single run. Press Ctrl+C to stop.`,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", watch.DefaultDebounce, "wait this long after the last change before re-running")
}

func runWatch(cmd *cobra.Command, args []string) error {
	trk, err := newTracker()
	if err != nil {
		return err
	}
	if trk != nil {
		defer func() { _ = trk.Close() }()
	}

	gen := newGenerator()
	store := newStore()
	notesDir := GetConfig().Notes.Dir

	ui.RenderPageHeader("Watch Mode", "Watching "+notesDir)

	handler := func(ctx context.Context, changed []string) {
		fmt.Println(ui.StylePrimary.Render("Changed: ") + strings.Join(changed, ", "))

		orch := discovery.New(gen, store, trk)
		report, err := orch.Run(ctx, discovery.Options{
			CreateTasks: trk != nil,
			Analyze:     true,
		})
		if err != nil {
			fmt.Println(ui.StyleError.Render("Discovery failed: " + err.Error()))
			return
		}

		fmt.Print(ui.RenderReport(report))
		if err := saveRun(report); err != nil {
			fmt.Println(ui.StyleError.Render(err.Error()))
		}
	}

	w, err := watch.New(watch.Config{
		Root:     notesDir,
		Debounce: watchDebounce,
		Handler:  handler,
	})
	if err != nil {
		return err
	}
	if err := w.Start(); err != nil {
		return err
	}
	defer w.Stop()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig

	fmt.Println(ui.StyleSubtle.Render("Stopping watch mode."))
	return nil
}
