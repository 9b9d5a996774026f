package generator

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/docuscan/cli/internal/domain"
	"github.com/docuscan/cli/internal/llm"
	"github.com/docuscan/cli/internal/logger"
)

// Options controls where and how documentation files are written.
type Options struct {
	DocsDir string
	MDX     bool
	// Source labels the documents, typically the analyzed project path.
	Source string
}

// Generator turns module chunks into documentation files through an
// LLM client. A provider failure on one module never aborts the run;
// the analysis artifacts stay valid regardless.
type Generator struct {
	client llm.Client
	engine *Engine
	log    logger.Logger
	opts   Options
}

func New(client llm.Client, log logger.Logger, opts Options) (*Generator, error) {
	engine, err := NewEngine()
	if err != nil {
		return nil, err
	}
	if opts.DocsDir == "" {
		opts.DocsDir = "docs"
	}
	return &Generator{client: client, engine: engine, log: log, opts: opts}, nil
}

// Generate writes one documentation file per module plus a project
// overview, and returns the produced document records. Modules whose
// generation fails are skipped with a warning.
func (g *Generator) Generate(ctx context.Context, analysis *domain.Analysis, chunks map[string]domain.ModuleChunk) ([]domain.Document, error) {
	if err := os.MkdirAll(g.opts.DocsDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create docs directory: %w", err)
	}

	runID := uuid.NewString()
	var docs []domain.Document

	names := make([]string, 0, len(chunks))
	for name := range chunks {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		doc, err := g.generateModule(ctx, runID, name, analysis, chunks[name])
		if err != nil {
			g.log.Warnf("documentation for module %s failed: %v\n", name, err)
			continue
		}
		docs = append(docs, *doc)
	}

	if overview, err := g.generateOverview(ctx, runID, analysis, names, chunks); err != nil {
		g.log.Warnf("project overview failed: %v\n", err)
	} else {
		docs = append(docs, *overview)
	}

	return docs, nil
}

func (g *Generator) generateModule(ctx context.Context, runID, name string, analysis *domain.Analysis, chunk domain.ModuleChunk) (*domain.Document, error) {
	chunkJSON, err := json.MarshalIndent(chunk, "", "  ")
	if err != nil {
		return nil, err
	}

	prompt, err := g.engine.ModulePrompt(ModulePromptData{
		Module:    name,
		Framework: analysis.Framework,
		MDX:       g.opts.MDX,
		ChunkJSON: string(chunkJSON),
	})
	if err != nil {
		return nil, err
	}

	content, err := g.client.Generate(ctx, prompt)
	if err != nil {
		return nil, err
	}

	return g.writeDocument(runID, name, content)
}

func (g *Generator) generateOverview(ctx context.Context, runID string, analysis *domain.Analysis, names []string, chunks map[string]domain.ModuleChunk) (*domain.Document, error) {
	analysisJSON, err := json.MarshalIndent(analysis, "", "  ")
	if err != nil {
		return nil, err
	}

	prompt, err := g.engine.OverviewPrompt(OverviewPromptData{
		Framework:    analysis.Framework,
		MDX:          g.opts.MDX,
		TotalRoutes:  analysis.Metadata.TotalRoutes,
		ModuleCount:  len(chunks),
		Modules:      strings.Join(names, ", "),
		AnalysisJSON: string(analysisJSON),
	})
	if err != nil {
		return nil, err
	}

	content, err := g.client.Generate(ctx, prompt)
	if err != nil {
		return nil, err
	}

	return g.writeDocument(runID, "overview", content)
}

// writeDocument persists one documentation file and builds its record.
func (g *Generator) writeDocument(runID, module, content string) (*domain.Document, error) {
	ext := ".md"
	if g.opts.MDX {
		ext = ".mdx"
		content = mdxFrontMatter(module) + content
	}

	path := filepath.Join(g.opts.DocsDir, module+ext)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return nil, fmt.Errorf("failed to write %s: %w", path, err)
	}
	g.log.Logf("wrote %s\n", path)

	return &domain.Document{
		ID:        uuid.NewString(),
		RunID:     runID,
		Module:    module,
		Content:   content,
		Source:    g.opts.Source,
		Provider:  providerOf(g.client.Name()),
		Model:     modelOf(g.client.Name()),
		Timestamp: time.Now().UTC(),
		Metadata:  map[string]string{"file": path},
	}, nil
}

func mdxFrontMatter(module string) string {
	return fmt.Sprintf("---\ntitle: %s\ngenerated: true\n---\n\n", module)
}

// Client names follow the provider:model convention.
func providerOf(name string) string {
	if idx := strings.Index(name, ":"); idx >= 0 {
		return name[:idx]
	}
	return name
}

func modelOf(name string) string {
	if idx := strings.Index(name, ":"); idx >= 0 {
		return name[idx+1:]
	}
	return ""
}
