package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config represents the docuscan configuration
type Config struct {
	// Analysis settings
	Analysis AnalysisConfig `json:"analysis" yaml:"analysis"`

	// Output settings
	Output OutputConfig `json:"output" yaml:"output"`

	// AI documentation generation settings
	AI AIConfig `json:"ai" yaml:"ai"`

	// Document database settings
	Database DatabaseConfig `json:"database" yaml:"database"`

	// Watch mode settings
	Watch WatchConfig `json:"watch" yaml:"watch"`
}

// AnalysisConfig contains analysis-specific settings
type AnalysisConfig struct {
	// Paths to exclude from analysis (pruned, not descended into)
	ExcludePaths []string `json:"exclude_paths" yaml:"exclude_paths"`

	// File extensions treated as source files
	Extensions []string `json:"extensions" yaml:"extensions"`

	// Whether to follow symbolic links
	FollowSymlinks bool `json:"follow_symlinks" yaml:"follow_symlinks"`

	// Parser selects the type-extraction backend: "regex" (default) or "ast"
	Parser string `json:"parser" yaml:"parser"`
}

// OutputConfig contains output formatting settings
type OutputConfig struct {
	// Default output format (text, json)
	Format string `json:"format" yaml:"format"`

	// Directory for generated documentation files
	DocsDir string `json:"docs_dir" yaml:"docs_dir"`

	// Whether generated files carry MDX front matter
	MDX bool `json:"mdx" yaml:"mdx"`

	// Whether to show detailed information by default
	Detailed bool `json:"detailed" yaml:"detailed"`
}

// AIConfig contains LLM provider settings
type AIConfig struct {
	// Provider name; only "gemini" is currently wired
	Provider string `json:"provider" yaml:"provider"`

	// Model identifier passed to the provider
	Model string `json:"model" yaml:"model"`

	// APIKey is normally supplied via GEMINI_API_KEY, not the config file
	APIKey string `json:"-" yaml:"-"`
}

// DatabaseConfig contains document store settings
type DatabaseConfig struct {
	// Enabled toggles persistence; analysis never depends on it
	Enabled bool `json:"enabled" yaml:"enabled"`

	// URL is a Postgres connection string (DOCUSCAN_DATABASE_URL overrides)
	URL string `json:"url" yaml:"url"`
}

// WatchConfig contains watch-mode settings
type WatchConfig struct {
	// DebounceMillis is the quiet period after the last change event
	DebounceMillis int `json:"debounce_ms" yaml:"debounce_ms"`

	// DashboardAddr is the listen address of the status dashboard
	DashboardAddr string `json:"dashboard_addr" yaml:"dashboard_addr"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Analysis: AnalysisConfig{
			ExcludePaths: []string{
				".git",
				"node_modules",
				"dist",
				"build",
				"coverage",
				"vendor",
				".next",
				".turbo",
			},
			Extensions:     []string{".ts", ".tsx", ".js", ".mjs"},
			FollowSymlinks: false,
			Parser:         "regex",
		},
		Output: OutputConfig{
			Format:   "text",
			DocsDir:  "docs",
			MDX:      false,
			Detailed: false,
		},
		AI: AIConfig{
			Provider: "gemini",
			Model:    "gemini-2.0-flash",
		},
		Database: DatabaseConfig{
			Enabled: false,
		},
		Watch: WatchConfig{
			DebounceMillis: 500,
			DashboardAddr:  "127.0.0.1:7317",
		},
	}
}

// Load loads configuration from defaults, an optional config file, and
// environment variables, in that precedence order.
func Load(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	if configPath == "" {
		configPath = findConfigFile()
	}

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			data, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
			if err := unmarshalConfig(configPath, data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config file %s: %w", configPath, err)
			}
		}
	}

	applyEnv(cfg)
	return cfg, nil
}

func unmarshalConfig(path string, data []byte, cfg *Config) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yaml.Unmarshal(data, cfg)
	default:
		return json.Unmarshal(data, cfg)
	}
}

// applyEnv overlays environment variables onto the loaded configuration.
// A .env file in the working directory is honored when present.
func applyEnv(cfg *Config) {
	_ = godotenv.Load()

	if v := os.Getenv("GEMINI_API_KEY"); v != "" {
		cfg.AI.APIKey = v
	}
	if v := os.Getenv("DOCUSCAN_MODEL"); v != "" {
		cfg.AI.Model = v
	}
	if v := os.Getenv("DOCUSCAN_DATABASE_URL"); v != "" {
		cfg.Database.URL = v
		cfg.Database.Enabled = true
	}
	if v := os.Getenv("DOCUSCAN_DOCS_DIR"); v != "" {
		cfg.Output.DocsDir = v
	}
}

// Save saves configuration to a file
func Save(cfg *Config, configPath string) error {
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	var data []byte
	var err error
	switch strings.ToLower(filepath.Ext(configPath)) {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(cfg)
	default:
		data, err = json.MarshalIndent(cfg, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// findConfigFile looks for config files in common locations
func findConfigFile() string {
	candidates := []string{
		".docuscan.json",
		".docuscan.yaml",
		".docuscan.yml",
	}

	for _, candidate := range candidates {
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}

	homeDir, err := os.UserHomeDir()
	if err == nil {
		for _, candidate := range candidates {
			path := filepath.Join(homeDir, candidate)
			if _, err := os.Stat(path); err == nil {
				return path
			}
		}
	}

	return ""
}

// Path returns the config file path to use for writes
func Path(explicitPath string) string {
	if explicitPath != "" {
		return explicitPath
	}
	if found := findConfigFile(); found != "" {
		return found
	}
	return ".docuscan.json"
}
