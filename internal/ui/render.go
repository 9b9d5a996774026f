package ui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/docuscan/cli/internal/domain"
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("69"))
	sectionStyle = lipgloss.NewStyle().Bold(true)
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("243"))
)

// RenderAnalysis returns a nicely formatted, styled string for the analysis output.
func RenderAnalysis(analysis *domain.Analysis, detailed bool) string {
	if analysis == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render("📘 API Analysis Results"))
	b.WriteString("\n")
	b.WriteString(strings.Repeat("=", 24))
	b.WriteString("\n\n")

	summary := []string{
		fmt.Sprintf("🧭 Framework: %s", analysis.Framework),
		fmt.Sprintf("🛣️  Routes: %d", analysis.Metadata.TotalRoutes),
		fmt.Sprintf("🎛️  Controllers: %d", analysis.Metadata.TotalControllers),
		fmt.Sprintf("🔧 Services: %d", analysis.Metadata.TotalServices),
		fmt.Sprintf("🧩 Types: %d", analysis.Metadata.TotalTypes),
		fmt.Sprintf("⏱️  Analysis Time: %.2fs", analysis.Metadata.AnalysisTime),
	}
	b.WriteString(strings.Join(summary, "\n"))
	b.WriteString("\n")

	if len(analysis.Routes) > 0 {
		b.WriteString("\n")
		b.WriteString(sectionStyle.Render("Routes"))
		b.WriteString("\n")
		for _, r := range analysis.Routes {
			fmt.Fprintf(&b, "  %-7s %-40s %s\n", r.Method, r.Path, dimStyle.Render(r.Handler))
		}
	}

	if detailed {
		if len(analysis.Controllers) > 0 {
			b.WriteString("\n")
			b.WriteString(sectionStyle.Render("Controllers"))
			b.WriteString("\n")
			for _, c := range analysis.Controllers {
				fmt.Fprintf(&b, "  %s %s\n", c.Name, dimStyle.Render(c.FilePath))
			}
		}
		if len(analysis.Services) > 0 {
			b.WriteString("\n")
			b.WriteString(sectionStyle.Render("Services"))
			b.WriteString("\n")
			for _, s := range analysis.Services {
				fmt.Fprintf(&b, "  %s %s\n", s.Name, dimStyle.Render(s.FilePath))
			}
		}
		if len(analysis.Types) > 0 {
			b.WriteString("\n")
			b.WriteString(sectionStyle.Render("Types"))
			b.WriteString("\n")
			for _, t := range analysis.Types {
				fmt.Fprintf(&b, "  %-10s %s (%d properties)\n", t.Kind, t.Name, len(t.Properties))
			}
		}
	}

	return b.String()
}

// RenderDetection formats a framework detection result with its evidence list.
func RenderDetection(det *domain.Detection) string {
	if det == nil {
		return ""
	}
	var b strings.Builder
	b.WriteString(headerStyle.Render("🧭 Framework Detection"))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "Framework:  %s\n", det.Framework)
	fmt.Fprintf(&b, "Confidence: %d%%\n", det.Confidence)
	if len(det.Indicators) > 0 {
		b.WriteString("\nEvidence:\n")
		for _, ind := range det.Indicators {
			fmt.Fprintf(&b, "  • %s\n", ind)
		}
	}
	return b.String()
}

// RenderModules formats module chunks grouped by name.
func RenderModules(chunks map[string]domain.ModuleChunk) string {
	names := make([]string, 0, len(chunks))
	for name := range chunks {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString(headerStyle.Render("📦 Documentation Modules"))
	b.WriteString("\n")
	for _, name := range names {
		chunk := chunks[name]
		b.WriteString("\n")
		fmt.Fprintf(&b, "%s (%d routes)\n", sectionStyle.Render(name), len(chunk.Routes))
		for _, r := range chunk.Routes {
			fmt.Fprintf(&b, "  %-7s %s\n", r.Method, r.Path)
		}
	}
	return b.String()
}
