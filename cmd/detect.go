package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/docuscan/cli/internal/analyzer"
	"github.com/docuscan/cli/internal/ui"
)

// detectCmd represents the detect command
var detectCmd = &cobra.Command{
	Use:   "detect [path]",
	Short: "Detect the web framework used by a project",
	Long: `Detect inspects the project manifest and a sample of source files to
identify the web framework in use, reporting a confidence score and the
evidence behind it.

Example usage:
  docuscan detect                     # Detect framework in current directory
  docuscan detect /path/to/project    # Detect framework in specific directory`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDetect,
}

func init() {
	rootCmd.AddCommand(detectCmd)
}

func runDetect(cmd *cobra.Command, args []string) error {
	absPath, err := resolveTarget(args)
	if err != nil {
		return err
	}

	app := appFrom(cmd)
	detection := analyzer.New(app.Config, app.Logger).Detect(absPath)

	switch outputFormat(cmd, app) {
	case "json":
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(detection)
	default:
		fmt.Print(ui.RenderDetection(detection))
		return nil
	}
}
