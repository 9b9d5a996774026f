package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/docuscan/cli/internal/domain"
	"github.com/docuscan/cli/internal/generator"
	"github.com/docuscan/cli/internal/grouping"
	"github.com/docuscan/cli/internal/llm"
	"github.com/docuscan/cli/internal/storage"
)

// generateCmd represents the generate command
var generateCmd = &cobra.Command{
	Use:   "generate [path]",
	Short: "Generate API documentation with an LLM provider",
	Long: `Generate analyzes the project, groups routes into documentation
modules, and asks the configured LLM provider to write one document per
module plus a project overview.

The provider API key is read from the GEMINI_API_KEY environment
variable (a .env file in the working directory is honored). When a
document database is configured, the analysis run and every generated
document are persisted as well; database failures never abort
generation.

Example usage:
  docuscan generate                         # Write docs/ for current directory
  docuscan generate --docs-dir api-docs     # Custom output directory
  docuscan generate --mdx                   # MDX files with front matter`,
	Args: cobra.MaximumNArgs(1),
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().String("docs-dir", "", "Directory for generated documentation files")
	generateCmd.Flags().Bool("mdx", false, "Write MDX files with front matter instead of Markdown")
	generateCmd.Flags().String("model", "", "Override the configured LLM model")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	absPath, err := resolveTarget(args)
	if err != nil {
		return err
	}

	app := appFrom(cmd)
	ctx := cmd.Context()

	docsDir, _ := cmd.Flags().GetString("docs-dir")
	if docsDir == "" {
		docsDir = app.Config.Output.DocsDir
	}
	mdx, _ := cmd.Flags().GetBool("mdx")
	if !mdx {
		mdx = app.Config.Output.MDX
	}
	model, _ := cmd.Flags().GetString("model")
	if model == "" {
		model = app.Config.AI.Model
	}

	if app.Config.AI.APIKey == "" {
		return fmt.Errorf("no API key configured: set GEMINI_API_KEY in the environment or a .env file")
	}

	analysis, err := runAnalysis(ctx, app, absPath, outputFormat(cmd, app))
	if err != nil {
		return err
	}
	chunks := grouping.Group(analysis.Routes, analysis.Controllers, analysis.Services, analysis.Types)
	if len(chunks) == 0 {
		app.Logger.Log("no routes found, nothing to document")
		return nil
	}

	client, err := llm.NewGeminiClient(ctx, app.Config.AI.APIKey, model)
	if err != nil {
		return fmt.Errorf("failed to create LLM client: %w", err)
	}
	defer client.Close()

	gen, err := generator.New(client, app.Logger, generator.Options{
		DocsDir: docsDir,
		MDX:     mdx,
		Source:  absPath,
	})
	if err != nil {
		return err
	}

	docs, err := gen.Generate(ctx, analysis, chunks)
	if err != nil {
		return err
	}
	app.Logger.Logf("generated %d documents in %s\n", len(docs), docsDir)

	persistRun(ctx, app, absPath, analysis, docs)
	return nil
}

// persistRun stores the analysis and documents when a database is
// configured. Persistence problems are reported but never fail the run.
func persistRun(ctx context.Context, app *AppConfig, source string, analysis *domain.Analysis, docs []domain.Document) {
	if !app.Config.Database.Enabled || len(docs) == 0 {
		return
	}

	store, err := storage.NewPostgresStore(ctx, app.Config.Database.URL)
	if err != nil {
		app.Logger.Warnf("database unavailable, skipping persistence: %v\n", err)
		return
	}
	defer store.Close()

	runID := docs[0].RunID
	if err := store.SaveAnalysis(ctx, runID, source, analysis); err != nil {
		app.Logger.Warnf("failed to persist analysis run: %v\n", err)
		return
	}
	for _, doc := range docs {
		if err := store.SaveDocument(ctx, doc); err != nil {
			app.Logger.Warnf("failed to persist document %s: %v\n", doc.Module, err)
		}
	}
	app.Logger.Logf("persisted run %s with %d documents\n", runID, len(docs))
}
