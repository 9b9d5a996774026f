package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/docuscan/cli/internal/grouping"
	"github.com/docuscan/cli/internal/ui"
)

// modulesCmd represents the modules command
var modulesCmd = &cobra.Command{
	Use:   "modules [path]",
	Short: "Show how routes group into documentation modules",
	Long: `Modules runs the analysis and prints the documentation modules the
routes would be grouped into, without generating any documentation.

Useful for previewing what "docuscan generate" would produce.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runModules,
}

func init() {
	rootCmd.AddCommand(modulesCmd)
}

func runModules(cmd *cobra.Command, args []string) error {
	absPath, err := resolveTarget(args)
	if err != nil {
		return err
	}

	app := appFrom(cmd)
	format := outputFormat(cmd, app)

	analysis, err := runAnalysis(cmd.Context(), app, absPath, format)
	if err != nil {
		return err
	}

	chunks := grouping.Group(analysis.Routes, analysis.Controllers, analysis.Services, analysis.Types)

	switch format {
	case "json":
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(chunks)
	default:
		fmt.Print(ui.RenderModules(chunks))
		return nil
	}
}
