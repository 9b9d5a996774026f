package generator

import (
	"bytes"
	"embed"
	"fmt"
	"path/filepath"
	"strings"
	"text/template"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// ModulePromptData feeds the per-module documentation prompt.
type ModulePromptData struct {
	Module    string
	Framework string
	MDX       bool
	ChunkJSON string
}

// OverviewPromptData feeds the project-overview prompt.
type OverviewPromptData struct {
	Framework    string
	MDX          bool
	TotalRoutes  int
	ModuleCount  int
	Modules      string
	AnalysisJSON string
}

// Engine loads and executes the embedded prompt templates.
type Engine struct {
	templates map[string]*template.Template
}

func NewEngine() (*Engine, error) {
	e := &Engine{templates: make(map[string]*template.Template)}
	if err := e.loadTemplates(); err != nil {
		return nil, fmt.Errorf("failed to load templates: %w", err)
	}
	return e, nil
}

func (e *Engine) loadTemplates() error {
	entries, err := templateFS.ReadDir("templates")
	if err != nil {
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".tmpl") {
			continue
		}
		data, err := templateFS.ReadFile(filepath.Join("templates", entry.Name()))
		if err != nil {
			return err
		}
		name := strings.TrimSuffix(entry.Name(), ".tmpl")
		tmpl, err := template.New(name).Parse(string(data))
		if err != nil {
			return fmt.Errorf("failed to parse template %s: %w", entry.Name(), err)
		}
		e.templates[name] = tmpl
	}
	return nil
}

// ModulePrompt renders the per-module documentation prompt.
func (e *Engine) ModulePrompt(data ModulePromptData) (string, error) {
	return e.render("module_docs", data)
}

// OverviewPrompt renders the project overview prompt.
func (e *Engine) OverviewPrompt(data OverviewPromptData) (string, error) {
	return e.render("overview_docs", data)
}

func (e *Engine) render(name string, data interface{}) (string, error) {
	tmpl, exists := e.templates[name]
	if !exists {
		return "", fmt.Errorf("template %s not found", name)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("template %s execution failed: %w", name, err)
	}
	return buf.String(), nil
}
