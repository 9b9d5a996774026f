package scanner

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/go-enry/go-enry/v2"

	"github.com/docuscan/cli/internal/config"
	"github.com/docuscan/cli/internal/logger"
)

// File is one scanned source file: its path relative to the project
// root and its full text content.
type File struct {
	RelPath string
	Content string
}

// sourceLanguages are the enry language names the extractor understands.
var sourceLanguages = map[string]bool{
	"TypeScript": true,
	"TSX":        true,
	"JavaScript": true,
}

// Scanner walks a project directory and yields source files, pruning
// dependency and build directories entirely for performance.
type Scanner struct {
	excludes   map[string]bool
	extensions map[string]bool
	log        logger.Logger
}

func New(cfg config.AnalysisConfig, log logger.Logger) *Scanner {
	excludes := make(map[string]bool, len(cfg.ExcludePaths))
	for _, p := range cfg.ExcludePaths {
		excludes[p] = true
	}
	extensions := make(map[string]bool, len(cfg.Extensions))
	for _, ext := range cfg.Extensions {
		extensions[ext] = true
	}
	return &Scanner{excludes: excludes, extensions: extensions, log: log}
}

// Walk traverses the tree under rootPath and calls fn for every
// readable source file. The sequence is finite and restartable: each
// call performs a fresh traversal in deterministic (lexical) order.
//
// Unreadable and binary files are skipped with a warning. The only
// fatal condition is a root that does not exist or is not a directory.
func (s *Scanner) Walk(rootPath string, fn func(File) error) error {
	info, err := os.Stat(rootPath)
	if err != nil {
		return fmt.Errorf("cannot scan %s: %w", rootPath, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("cannot scan %s: not a directory", rootPath)
	}

	return filepath.WalkDir(rootPath, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			s.log.Warnf("skipping %s: %v\n", path, err)
			if entry != nil && entry.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if entry.IsDir() {
			if path != rootPath && s.excludes[entry.Name()] {
				return filepath.SkipDir
			}
			return nil
		}

		// Symlinks are not followed, to avoid cycles.
		if entry.Type()&fs.ModeSymlink != 0 {
			return nil
		}

		if !s.extensions[filepath.Ext(path)] {
			return nil
		}

		content, readErr := os.ReadFile(path)
		if readErr != nil {
			s.log.Warnf("skipping unreadable file %s: %v\n", path, readErr)
			return nil
		}
		if enry.IsBinary(content) {
			s.log.Warnf("skipping binary file %s\n", path)
			return nil
		}
		if lang := enry.GetLanguage(filepath.Base(path), content); !sourceLanguages[lang] {
			return nil
		}

		rel, relErr := filepath.Rel(rootPath, path)
		if relErr != nil {
			rel = path
		}
		return fn(File{RelPath: filepath.ToSlash(rel), Content: string(content)})
	})
}

// Scan collects all source files under rootPath.
func (s *Scanner) Scan(rootPath string) ([]File, error) {
	var files []File
	err := s.Walk(rootPath, func(f File) error {
		files = append(files, f)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}
