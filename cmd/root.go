package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/docuscan/cli/internal/config"
	"github.com/docuscan/cli/internal/logger"
)

// Context key for shared command dependencies
const ConfigKey = "config"

// AppConfig holds the shared configuration and dependencies
type AppConfig struct {
	Config *config.Config
	Logger logger.Logger
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "docuscan",
	Short: "API documentation generator for TypeScript projects",
	Long: `Docuscan analyzes TypeScript and JavaScript codebases to extract API
structure - routes, controllers, services and types - without executing
any project code.

The extracted structure can be printed, saved as JSON, grouped into
documentation modules, or turned into Markdown/MDX documentation with
an LLM provider. Watch mode keeps the analysis current as files change.`,
	Version: Version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		configPath, _ := cmd.Flags().GetString("config")
		cfg, err := config.Load(configPath)
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		app := &AppConfig{Config: cfg, Logger: logger.NewUILogger()}
		cmd.SetContext(context.WithValue(cmd.Context(), ConfigKey, app))
		return nil
	},
}

// appFrom extracts the shared dependencies placed in the command context.
func appFrom(cmd *cobra.Command) *AppConfig {
	if app, ok := cmd.Context().Value(ConfigKey).(*AppConfig); ok && app != nil {
		return app
	}
	return &AppConfig{Config: config.DefaultConfig(), Logger: logger.NewUILogger()}
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.ExecuteContext(context.Background())
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringP("output", "o", "", "output format (text, json)")
	rootCmd.PersistentFlags().StringP("config", "c", "", "path to config file")
}

// outputFormat resolves the effective output format: flag, then config.
func outputFormat(cmd *cobra.Command, app *AppConfig) string {
	if v, _ := cmd.Flags().GetString("output"); v != "" {
		return v
	}
	if app.Config.Output.Format != "" {
		return app.Config.Output.Format
	}
	return "text"
}
