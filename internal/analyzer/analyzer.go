package analyzer

import (
	"context"
	"time"

	"github.com/docuscan/cli/internal/config"
	"github.com/docuscan/cli/internal/detector"
	"github.com/docuscan/cli/internal/domain"
	"github.com/docuscan/cli/internal/extractor"
	"github.com/docuscan/cli/internal/logger"
	"github.com/docuscan/cli/internal/scanner"
)

// Analyzer runs the full pipeline: framework detection, source
// scanning, per-file extraction, and aggregation. Each run is
// self-contained; files are processed sequentially and nothing is
// shared between runs.
type Analyzer struct {
	cfg      *config.Config
	log      logger.Logger
	detector *detector.Detector
	scanner  *scanner.Scanner
}

func New(cfg *config.Config, log logger.Logger) *Analyzer {
	return &Analyzer{
		cfg:      cfg,
		log:      log,
		detector: detector.New(),
		scanner:  scanner.New(cfg.Analysis, log),
	}
}

// Detect exposes framework detection on its own, for the detect command.
func (a *Analyzer) Detect(rootPath string) *domain.Detection {
	return a.detector.Detect(rootPath)
}

// Analyze builds a fresh Analysis for the project at rootPath. The
// metadata counts always equal the corresponding list lengths at the
// moment the result is assembled.
func (a *Analyzer) Analyze(ctx context.Context, rootPath string) (*domain.Analysis, error) {
	started := time.Now()

	detection := a.detector.Detect(rootPath)
	ext := extractor.New(string(detection.Framework))

	var merged extractor.Result
	err := a.scanner.Walk(rootPath, func(f scanner.File) error {
		res := ext.ExtractFile(f.RelPath, f.Content)
		if a.cfg.Analysis.Parser == "ast" {
			if astTypes, astErr := extractor.ExtractTypesAST(ctx, f.RelPath, f.Content); astErr == nil {
				res.Types = astTypes
			} else {
				a.log.Warnf("ast parse failed for %s, keeping regex types: %v\n", f.RelPath, astErr)
			}
		}
		merged.Merge(res)
		return nil
	})
	if err != nil {
		return nil, err
	}

	analysis := &domain.Analysis{
		Framework:   string(detection.Framework),
		Routes:      emptyIfNil(merged.Routes),
		Controllers: emptyIfNil(merged.Controllers),
		Services:    emptyIfNil(merged.Services),
		Types:       emptyIfNil(merged.Types),
	}
	analysis.Metadata = domain.Metadata{
		TotalRoutes:      len(analysis.Routes),
		TotalControllers: len(analysis.Controllers),
		TotalServices:    len(analysis.Services),
		TotalTypes:       len(analysis.Types),
		AnalysisTime:     time.Since(started).Seconds(),
	}
	return analysis, nil
}

// emptyIfNil keeps the JSON schema stable: list fields serialize as []
// rather than null.
func emptyIfNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
