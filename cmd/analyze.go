package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/docuscan/cli/internal/analyzer"
	"github.com/docuscan/cli/internal/domain"
	"github.com/docuscan/cli/internal/storage"
	"github.com/docuscan/cli/internal/ui"
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze [path]",
	Short: "Analyze a TypeScript project and extract its API structure",
	Long: `Analyze scans the specified project (or current directory) to:
- Detect the web framework in use (Express, NestJS, Fastify, Koa)
- Extract routes, controllers, services and types
- Report summary metadata for the run

Example usage:
  docuscan analyze                     # Analyze current directory
  docuscan analyze /path/to/project    # Analyze specific directory
  docuscan analyze --output json       # Output results as JSON
  docuscan analyze --save              # Also write analysis.json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().BoolP("detailed", "d", false, "Show controllers, services and types in text output")
	analyzeCmd.Flags().Bool("save", false, "Save the analysis to a JSON file")
	analyzeCmd.Flags().String("out", "analysis.json", "Path of the saved analysis file")
	analyzeCmd.Flags().String("parser", "", "Type extraction backend (regex, ast)")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	absPath, err := resolveTarget(args)
	if err != nil {
		return err
	}

	app := appFrom(cmd)
	verbose, _ := cmd.Flags().GetBool("verbose")
	detailed, _ := cmd.Flags().GetBool("detailed")
	save, _ := cmd.Flags().GetBool("save")
	outPath, _ := cmd.Flags().GetString("out")
	format := outputFormat(cmd, app)

	if parser, _ := cmd.Flags().GetString("parser"); parser != "" {
		app.Config.Analysis.Parser = parser
	}
	if verbose {
		app.Logger.Logf("Analyzing project at: %s\n", absPath)
	}

	ctx := cmd.Context()
	analysis, err := runAnalysis(ctx, app, absPath, format)
	if err != nil {
		return err
	}

	if save {
		if saveErr := storage.NewFileStore().SaveAnalysis(analysis, outPath); saveErr != nil {
			app.Logger.Warnf("failed to save analysis: %v\n", saveErr)
		} else if verbose {
			app.Logger.Logf("saved analysis to %s\n", outPath)
		}
	}

	switch format {
	case "json":
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(analysis)
	default:
		fmt.Print(ui.RenderAnalysis(analysis, detailed || app.Config.Output.Detailed))
		return nil
	}
}

// runAnalysis executes the pipeline, behind a spinner for text output so
// JSON stays machine-readable.
func runAnalysis(ctx context.Context, app *AppConfig, absPath, format string) (*domain.Analysis, error) {
	a := analyzer.New(app.Config, app.Logger)

	if format == "json" {
		return a.Analyze(ctx, absPath)
	}

	var analysis *domain.Analysis
	err := ui.RunSpinner(ctx, "Analyzing project...", func() error {
		var e error
		analysis, e = a.Analyze(ctx, absPath)
		return e
	})
	return analysis, err
}

// resolveTarget turns the optional positional argument into an absolute,
// existing path.
func resolveTarget(args []string) (string, error) {
	targetPath := "."
	if len(args) > 0 {
		targetPath = args[0]
	}

	absPath, err := filepath.Abs(targetPath)
	if err != nil {
		return "", fmt.Errorf("failed to resolve path: %w", err)
	}
	if _, err := os.Stat(absPath); os.IsNotExist(err) {
		return "", fmt.Errorf("path does not exist: %s", absPath)
	}
	return absPath, nil
}
