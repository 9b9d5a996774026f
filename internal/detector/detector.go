package detector

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/docuscan/cli/internal/domain"
)

const (
	// weight added per matched manifest dependency
	dependencyWeight = 60
	// weight added per matched source-level indicator
	sourceWeight = 20
	// minimum score for a named framework; below it we fall back to generic
	minConfidence = 30
	// maximum number of source files sampled for syntactic indicators
	maxSampleFiles = 50
)

// signature describes how one framework announces itself: manifest
// dependency names plus syntactic fragments found in source files.
// Table order is the tie-break priority order.
type signature struct {
	framework    domain.Framework
	dependencies []string
	indicators   []string
}

var signatures = []signature{
	{
		framework:    domain.FrameworkNestJS,
		dependencies: []string{"@nestjs/core", "@nestjs/common", "@nestjs/platform-express"},
		indicators:   []string{"@Controller(", "@Injectable(", "@Module(", "NestFactory.create"},
	},
	{
		framework:    domain.FrameworkExpress,
		dependencies: []string{"express"},
		indicators:   []string{"express()", "require('express')", `require("express")`, "from 'express'", `from "express"`},
	},
	{
		framework:    domain.FrameworkFastify,
		dependencies: []string{"fastify"},
		indicators:   []string{"fastify(", "Fastify(", ".register(", "from 'fastify'"},
	},
	{
		framework:    domain.FrameworkKoa,
		dependencies: []string{"koa", "koa-router", "@koa/router"},
		indicators:   []string{"new Koa(", "ctx.body", "from 'koa'", `require("koa")`},
	},
}

// Detector scores framework signatures against a project directory.
type Detector struct{}

func New() *Detector { return &Detector{} }

// Detect inspects the project manifest and a bounded sample of source
// files and returns the best-guess framework with confidence and
// supporting evidence. It never fails: an unreadable root yields
// unknown with confidence 0 and an explanatory indicator.
func (d *Detector) Detect(rootPath string) *domain.Detection {
	info, err := os.Stat(rootPath)
	if err != nil || !info.IsDir() {
		return &domain.Detection{
			Framework:  domain.FrameworkUnknown,
			Confidence: 0,
			Indicators: []string{fmt.Sprintf("project root not readable: %s", rootPath)},
		}
	}

	scores := make(map[domain.Framework]int)
	evidence := make(map[domain.Framework][]string)

	deps := readManifestDependencies(rootPath)
	for _, sig := range signatures {
		for _, dep := range sig.dependencies {
			if version, ok := deps[dep]; ok {
				scores[sig.framework] += dependencyWeight
				evidence[sig.framework] = append(evidence[sig.framework],
					fmt.Sprintf("dependency %s@%s in package.json", dep, version))
			}
		}
	}

	for _, sample := range sampleSourceFiles(rootPath) {
		for _, sig := range signatures {
			for _, ind := range sig.indicators {
				if strings.Contains(sample.content, ind) {
					scores[sig.framework] += sourceWeight
					evidence[sig.framework] = append(evidence[sig.framework],
						fmt.Sprintf("pattern %q in %s", ind, sample.relPath))
				}
			}
		}
	}

	// First framework reaching the maximum score in table order wins.
	best := domain.FrameworkUnknown
	bestScore := 0
	for _, sig := range signatures {
		if s := scores[sig.framework]; s > bestScore {
			bestScore = s
			best = sig.framework
		}
	}

	if bestScore == 0 {
		return &domain.Detection{
			Framework:  domain.FrameworkUnknown,
			Confidence: 0,
			Indicators: []string{"no framework indicators found"},
		}
	}

	confidence := bestScore
	if confidence > 100 {
		confidence = 100
	}

	if confidence < minConfidence {
		return &domain.Detection{
			Framework:  domain.FrameworkGeneric,
			Confidence: confidence,
			Indicators: append(evidence[best], "partial match only, treating project as generic"),
		}
	}

	return &domain.Detection{
		Framework:  best,
		Confidence: confidence,
		Indicators: evidence[best],
	}
}

// readManifestDependencies merges dependencies and devDependencies from
// package.json. A missing or malformed manifest yields an empty map.
func readManifestDependencies(rootPath string) map[string]string {
	deps := make(map[string]string)

	data, err := os.ReadFile(filepath.Join(rootPath, "package.json"))
	if err != nil {
		return deps
	}

	var manifest struct {
		Dependencies    map[string]string `json:"dependencies"`
		DevDependencies map[string]string `json:"devDependencies"`
	}
	if err := json.Unmarshal(data, &manifest); err != nil {
		return deps
	}

	for name, version := range manifest.Dependencies {
		deps[name] = version
	}
	for name, version := range manifest.DevDependencies {
		deps[name] = version
	}
	return deps
}

type sampledFile struct {
	relPath string
	content string
}

// sampleSourceFiles reads up to maxSampleFiles TypeScript/JavaScript
// files, pruning dependency and build directories.
func sampleSourceFiles(rootPath string) []sampledFile {
	var samples []sampledFile

	skipDirs := map[string]bool{
		"node_modules": true, ".git": true, "dist": true,
		"build": true, "coverage": true, "vendor": true,
	}

	filepath.WalkDir(rootPath, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if entry.IsDir() {
			if skipDirs[entry.Name()] {
				return filepath.SkipDir
			}
			return nil
		}
		if len(samples) >= maxSampleFiles {
			return filepath.SkipAll
		}
		switch filepath.Ext(path) {
		case ".ts", ".tsx", ".js", ".mjs":
		default:
			return nil
		}
		content, readErr := os.ReadFile(path)
		if readErr != nil {
			return nil
		}
		rel, _ := filepath.Rel(rootPath, path)
		samples = append(samples, sampledFile{relPath: rel, content: string(content)})
		return nil
	})

	return samples
}
