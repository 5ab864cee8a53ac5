package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config holds all configuration options for bigo.
type Config struct {
	// Analysis settings
	Analysis AnalysisConfig `koanf:"analysis" toml:"analysis"`

	// Thresholds for flagging functions
	Thresholds ThresholdConfig `koanf:"thresholds" toml:"thresholds"`

	// File exclusion patterns
	Exclude ExcludeConfig `koanf:"exclude" toml:"exclude"`

	// Cache settings
	Cache CacheConfig `koanf:"cache" toml:"cache"`

	// Output settings
	Output OutputConfig `koanf:"output" toml:"output"`

	// Watch mode settings
	Watch WatchConfig `koanf:"watch" toml:"watch"`
}

// AnalysisConfig controls how estimation runs.
type AnalysisConfig struct {
	// Fingerprints toggles structural pattern matching. With it off,
	// every function is estimated compositionally.
	Fingerprints bool `koanf:"fingerprints" toml:"fingerprints"`
	// Workers caps the parallel analysis pool; 0 means 2x NumCPU.
	Workers int `koanf:"workers" toml:"workers"`
}

// ThresholdConfig defines when an estimate is flagged as a finding.
type ThresholdConfig struct {
	// MaxDegree is the highest polynomial degree that passes without a
	// warning.
	MaxDegree int `koanf:"max_degree" toml:"max_degree"`
	// FlagExponential reports every exponential function.
	FlagExponential bool `koanf:"flag_exponential" toml:"flag_exponential"`
	// FlagEstimates reports functions whose cost is tainted by
	// unresolved calls.
	FlagEstimates bool `koanf:"flag_estimates" toml:"flag_estimates"`
}

// ExcludeConfig defines file exclusion patterns.
type ExcludeConfig struct {
	Patterns   []string `koanf:"patterns" toml:"patterns"`
	Extensions []string `koanf:"extensions" toml:"extensions"`
	Dirs       []string `koanf:"dirs" toml:"dirs"`
	Gitignore  bool     `koanf:"gitignore" toml:"gitignore"`
}

// CacheConfig controls caching behavior.
type CacheConfig struct {
	Enabled bool   `koanf:"enabled" toml:"enabled"`
	Dir     string `koanf:"dir" toml:"dir"`
	TTL     int    `koanf:"ttl" toml:"ttl"` // TTL in hours
}

// OutputConfig controls output formatting.
type OutputConfig struct {
	Format  string `koanf:"format" toml:"format"` // text, json, markdown, toon
	Color   bool   `koanf:"color" toml:"color"`
	Verbose bool   `koanf:"verbose" toml:"verbose"`
}

// WatchConfig controls watch mode.
type WatchConfig struct {
	// DebounceMs is how long to coalesce filesystem events before
	// re-analyzing.
	DebounceMs int `koanf:"debounce_ms" toml:"debounce_ms"`
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Analysis: AnalysisConfig{
			Fingerprints: true,
			Workers:      0,
		},
		Thresholds: ThresholdConfig{
			MaxDegree:       2,
			FlagExponential: true,
			FlagEstimates:   false,
		},
		Exclude: ExcludeConfig{
			Patterns: []string{
				"*_test.c",
				"*_test.cpp",
				"*.generated.c",
			},
			Extensions: []string{
				".o",
				".a",
				".so",
			},
			Dirs: []string{
				"vendor",
				"node_modules",
				".git",
				".bigo",
				"third_party",
				"build",
				"cmake-build-debug",
				"cmake-build-release",
			},
			Gitignore: true,
		},
		Cache: CacheConfig{
			Enabled: true,
			Dir:     ".bigo/cache",
			TTL:     24,
		},
		Output: OutputConfig{
			Format:  "text",
			Color:   true,
			Verbose: false,
		},
		Watch: WatchConfig{
			DebounceMs: 500,
		},
	}
}

// Load loads configuration from a file.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	cfg := DefaultConfig()

	// Determine parser based on extension
	var parser koanf.Parser
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".toml":
		parser = toml.Parser()
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		// Try to detect from content or default to TOML
		parser = toml.Parser()
	}

	// Load the config file
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}

	// Unmarshal into config struct
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// FindConfig returns the first config file found in the standard search
// locations, or "" when none exists.
func FindConfig() string {
	configNames := []string{
		"bigo.toml",
		"bigo.yaml",
		"bigo.yml",
		"bigo.json",
		".bigo.toml",
		".bigo.yaml",
		".bigo.yml",
		".bigo.json",
	}

	// Search in current directory and .bigo directory
	searchDirs := []string{".", ".bigo"}

	for _, dir := range searchDirs {
		for _, name := range configNames {
			path := filepath.Join(dir, name)
			if _, err := os.Stat(path); err == nil {
				return path
			}
		}
	}
	return ""
}

// LoadOrDefault tries to load config from standard locations or returns defaults.
func LoadOrDefault() *Config {
	if path := FindConfig(); path != "" {
		if cfg, err := Load(path); err == nil {
			return cfg
		}
	}
	return DefaultConfig()
}

// Validate reports the first configuration value that is out of range.
func (c *Config) Validate() error {
	if c.Thresholds.MaxDegree < 0 {
		return fmt.Errorf("thresholds.max_degree must be >= 0, got %d", c.Thresholds.MaxDegree)
	}
	switch c.Output.Format {
	case "text", "json", "markdown", "toon":
	default:
		return fmt.Errorf("output.format must be one of text, json, markdown, toon; got %q", c.Output.Format)
	}
	if c.Cache.TTL < 0 {
		return fmt.Errorf("cache.ttl must be >= 0, got %d", c.Cache.TTL)
	}
	if c.Watch.DebounceMs <= 0 {
		return fmt.Errorf("watch.debounce_ms must be > 0, got %d", c.Watch.DebounceMs)
	}
	if c.Analysis.Workers < 0 {
		return fmt.Errorf("analysis.workers must be >= 0, got %d", c.Analysis.Workers)
	}
	return nil
}

// ShouldExclude checks if a path should be excluded from analysis.
func (c *Config) ShouldExclude(path string) bool {
	// Check directory exclusions
	for _, dir := range c.Exclude.Dirs {
		if strings.Contains(path, string(filepath.Separator)+dir+string(filepath.Separator)) ||
			strings.HasPrefix(path, dir+string(filepath.Separator)) {
			return true
		}
	}

	// Check extension exclusions
	ext := filepath.Ext(path)
	for _, excludeExt := range c.Exclude.Extensions {
		if ext == excludeExt {
			return true
		}
	}

	// Check pattern exclusions
	base := filepath.Base(path)
	for _, pattern := range c.Exclude.Patterns {
		if matched, _ := filepath.Match(pattern, base); matched {
			return true
		}
	}

	return false
}
