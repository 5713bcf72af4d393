// Package config loads dupehound configuration from TOML, YAML, or JSON
// files with layered defaults.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/dupehound/dupehound/pkg/detect"
)

// Config holds all configuration options for dupehound.
type Config struct {
	// Detection thresholds
	Detection DetectionConfig `koanf:"detection"`

	// Languages restricts scanning to these language names. Empty means
	// every supported language.
	Languages []string `koanf:"languages"`

	// File exclusion patterns
	Exclude ExcludeConfig `koanf:"exclude"`

	// Cache settings
	Cache CacheConfig `koanf:"cache"`

	// Output settings
	Output OutputConfig `koanf:"output"`
}

// DetectionConfig defines the matcher thresholds.
type DetectionConfig struct {
	MinLines            int     `koanf:"min_lines"`
	MinTokens           int     `koanf:"min_tokens"`
	SimilarityThreshold float64 `koanf:"similarity_threshold"`
}

// ExcludeConfig defines file exclusion patterns.
type ExcludeConfig struct {
	Patterns   []string `koanf:"patterns"`
	Extensions []string `koanf:"extensions"`
	Dirs       []string `koanf:"dirs"`
	Gitignore  bool     `koanf:"gitignore"`
}

// CacheConfig controls analysis result caching.
type CacheConfig struct {
	Enabled bool   `koanf:"enabled"`
	Dir     string `koanf:"dir"`
	TTL     int    `koanf:"ttl"` // TTL in hours
}

// OutputConfig controls output formatting.
type OutputConfig struct {
	Format  string `koanf:"format"` // text, json, markdown, csv, toon
	Color   bool   `koanf:"color"`
	Verbose bool   `koanf:"verbose"`
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Detection: DetectionConfig{
			MinLines:            detect.DefaultMinLines,
			MinTokens:           detect.DefaultMinTokens,
			SimilarityThreshold: detect.DefaultSimilarityThreshold,
		},
		Exclude: ExcludeConfig{
			Patterns: []string{
				"*.min.js",
				"*.min.css",
			},
			Extensions: []string{
				".lock",
				".sum",
			},
			Dirs: []string{
				"vendor",
				"node_modules",
				".git",
				".dupehound",
				"dist",
				"build",
				"__pycache__",
			},
			Gitignore: true,
		},
		Cache: CacheConfig{
			Enabled: true,
			Dir:     ".dupehound/cache",
			TTL:     24,
		},
		Output: OutputConfig{
			Format:  "text",
			Color:   true,
			Verbose: false,
		},
	}
}

// Detection returns the thresholds as a detector configuration.
func (c *Config) DetectorConfig() detect.Config {
	return detect.Config{
		MinLines:            c.Detection.MinLines,
		MinTokens:           c.Detection.MinTokens,
		SimilarityThreshold: c.Detection.SimilarityThreshold,
	}
}

// Load loads configuration from a file.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	cfg := DefaultConfig()

	var parser koanf.Parser
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		parser = toml.Parser()
	}

	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadOrDefault tries to load config from standard locations or returns
// defaults.
func LoadOrDefault() *Config {
	configNames := []string{
		"dupehound.toml",
		"dupehound.yaml",
		"dupehound.yml",
		"dupehound.json",
		".dupehound.toml",
		".dupehound.yaml",
		".dupehound.yml",
		".dupehound.json",
	}

	searchDirs := []string{".", ".dupehound"}

	for _, dir := range searchDirs {
		for _, name := range configNames {
			path := filepath.Join(dir, name)
			if _, err := os.Stat(path); err == nil {
				cfg, err := Load(path)
				if err == nil {
					return cfg
				}
			}
		}
	}

	return DefaultConfig()
}

// ShouldExclude checks if a path should be excluded from analysis.
func (c *Config) ShouldExclude(path string) bool {
	for _, dir := range c.Exclude.Dirs {
		if strings.Contains(path, string(filepath.Separator)+dir+string(filepath.Separator)) ||
			strings.HasPrefix(path, dir+string(filepath.Separator)) {
			return true
		}
	}

	ext := filepath.Ext(path)
	for _, excludeExt := range c.Exclude.Extensions {
		if ext == excludeExt {
			return true
		}
	}

	base := filepath.Base(path)
	for _, pattern := range c.Exclude.Patterns {
		if matched, _ := filepath.Match(pattern, base); matched {
			return true
		}
	}

	return false
}
