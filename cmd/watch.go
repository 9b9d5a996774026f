package cmd

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/docuscan/cli/internal/analyzer"
	"github.com/docuscan/cli/internal/dashboard"
	"github.com/docuscan/cli/internal/grouping"
	"github.com/docuscan/cli/internal/storage"
	"github.com/docuscan/cli/internal/watch"
)

// watchCmd represents the watch command
var watchCmd = &cobra.Command{
	Use:   "watch [path]",
	Short: "Re-run the analysis whenever project files change",
	Long: `Watch monitors the project for file changes and re-runs the analysis
after changes settle. A status dashboard is served over HTTP and pushes
every update to connected browsers.

Press Ctrl+C to stop.

Example usage:
  docuscan watch                       # Watch current directory
  docuscan watch --save                # Keep analysis.json current
  docuscan watch --no-dashboard        # Disable the HTTP dashboard`,
	Args: cobra.MaximumNArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().Bool("save", false, "Write the analysis to a JSON file after every run")
	watchCmd.Flags().String("out", "analysis.json", "Path of the saved analysis file")
	watchCmd.Flags().Int("debounce", 0, "Debounce window in milliseconds (overrides config)")
	watchCmd.Flags().Bool("no-dashboard", false, "Do not serve the status dashboard")
}

func runWatch(cmd *cobra.Command, args []string) error {
	absPath, err := resolveTarget(args)
	if err != nil {
		return err
	}

	app := appFrom(cmd)
	save, _ := cmd.Flags().GetBool("save")
	outPath, _ := cmd.Flags().GetString("out")
	noDashboard, _ := cmd.Flags().GetBool("no-dashboard")

	debounceMillis := app.Config.Watch.DebounceMillis
	if v, _ := cmd.Flags().GetInt("debounce"); v > 0 {
		debounceMillis = v
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var dash *dashboard.Server
	if !noDashboard {
		dash = dashboard.NewServer(app.Config.Watch.DashboardAddr, app.Logger)
		go func() {
			if err := dash.Run(ctx); err != nil {
				app.Logger.Warnf("dashboard stopped: %v\n", err)
			}
		}()
	}

	a := analyzer.New(app.Config, app.Logger)
	fileStore := storage.NewFileStore()
	runs := 0

	runOnce := func(runCtx context.Context) {
		runs++
		publish(dash, dashboard.Status{State: "analyzing", Runs: runs})

		analysis, err := a.Analyze(runCtx, absPath)
		if err != nil {
			app.Logger.Warnf("analysis failed: %v\n", err)
			publish(dash, dashboard.Status{
				State:     "error",
				Runs:      runs,
				LastRun:   time.Now().UTC(),
				LastError: err.Error(),
			})
			return
		}

		chunks := grouping.Group(analysis.Routes, analysis.Controllers, analysis.Services, analysis.Types)
		app.Logger.Logf("analyzed %s: %d routes in %d modules (%.2fs)\n",
			absPath, analysis.Metadata.TotalRoutes, len(chunks), analysis.Metadata.AnalysisTime)

		if save {
			if saveErr := fileStore.SaveAnalysis(analysis, outPath); saveErr != nil {
				app.Logger.Warnf("failed to save analysis: %v\n", saveErr)
			}
		}

		publish(dash, dashboard.Status{
			State:       "idle",
			Framework:   analysis.Framework,
			TotalRoutes: analysis.Metadata.TotalRoutes,
			Modules:     len(chunks),
			Runs:        runs,
			LastRun:     time.Now().UTC(),
		})
	}

	// one run up front so the dashboard is populated before any change
	runOnce(ctx)

	app.Logger.Logf("watching %s for changes\n", absPath)
	w := watch.New(absPath, app.Config.Analysis.ExcludePaths,
		time.Duration(debounceMillis)*time.Millisecond, app.Logger, runOnce)
	return w.Run(ctx)
}

func publish(dash *dashboard.Server, status dashboard.Status) {
	if dash != nil {
		dash.Publish(status)
	}
}
