// Package config loads archdrift configuration from defaults and optional files.
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
)

// Config holds all configuration options for archdrift.
type Config struct {
	// Extract controls the extraction engine.
	Extract ExtractConfig `koanf:"extract"`

	// History controls snapshot sampling.
	History HistoryConfig `koanf:"history"`

	// Output settings for console rendering.
	Output OutputConfig `koanf:"output"`
}

// ExtractConfig controls file selection and manifest handling.
type ExtractConfig struct {
	// ExcludeDirs are path tokens matched as case-sensitive substrings;
	// any file whose path contains one is skipped.
	ExcludeDirs []string `koanf:"exclude_dirs"`

	// EndpointExtensions is the allowlist of source extensions scanned
	// for endpoint declarations.
	EndpointExtensions []string `koanf:"endpoint_extensions"`

	// CallExtensions is the (narrower) allowlist scanned for outbound
	// call sites.
	CallExtensions []string `koanf:"call_extensions"`

	// ExcludedScopes are Maven dependency scopes that do not count as
	// production dependencies.
	ExcludedScopes []string `koanf:"excluded_scopes"`
}

// HistoryConfig controls the history walker.
type HistoryConfig struct {
	// Branches is the ordered candidate list probed for the primary branch.
	Branches []string `koanf:"branches"`

	// Frequency is the default sampling frequency: weekly or monthly.
	Frequency string `koanf:"frequency"`

	// Periods is the default number of sampling periods.
	Periods int `koanf:"periods"`
}

// OutputConfig controls console output formatting.
type OutputConfig struct {
	Format  string `koanf:"format"` // text, json, markdown
	Color   bool   `koanf:"color"`
	Verbose bool   `koanf:"verbose"`
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Extract: ExtractConfig{
			ExcludeDirs: []string{
				"node_modules",
				"frontend",
				"client",
				"web",
				"ui",
				"dist",
				"build",
				"__mocks__",
				"test",
			},
			EndpointExtensions: []string{".py", ".js", ".ts", ".java", ".kt", ".php", ".go"},
			CallExtensions:     []string{".py", ".js", ".ts", ".java", ".kt"},
			ExcludedScopes:     []string{"test", "provided", "system", "import"},
		},
		History: HistoryConfig{
			Branches:  []string{"main", "master", "develop"},
			Frequency: "monthly",
			Periods:   24,
		},
		Output: OutputConfig{
			Format:  "text",
			Color:   true,
			Verbose: false,
		},
	}
}

// Load loads configuration from a file, layered over defaults.
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

// LoadOrDefault tries standard config locations, falling back to defaults.
func LoadOrDefault() *Config {
	names := []string{
		"archdrift.toml",
		"archdrift.yaml",
		"archdrift.yml",
		"archdrift.json",
		".archdrift.toml",
		".archdrift.yaml",
		".archdrift.yml",
		".archdrift.json",
	}

	for _, name := range names {
		if _, err := os.Stat(name); err == nil {
			if cfg, err := Load(name); err == nil {
				return cfg
			}
		}
	}

	return DefaultConfig()
}

// ShouldExclude reports whether a path contains any excluded directory token.
// Tokens match as case-sensitive substrings of the full path.
func (c *Config) ShouldExclude(path string) bool {
	for _, token := range c.Extract.ExcludeDirs {
		if strings.Contains(path, token) {
			return true
		}
	}
	return false
}

// HasEndpointExtension reports whether the file is in the endpoint allowlist.
func (c *Config) HasEndpointExtension(path string) bool {
	return hasExtension(path, c.Extract.EndpointExtensions)
}

// HasCallExtension reports whether the file is in the call-site allowlist.
func (c *Config) HasCallExtension(path string) bool {
	return hasExtension(path, c.Extract.CallExtensions)
}

// ScopeExcluded reports whether a Maven dependency scope is non-production.
func (c *Config) ScopeExcluded(scope string) bool {
	for _, s := range c.Extract.ExcludedScopes {
		if s == scope {
			return true
		}
	}
	return false
}

func hasExtension(path string, exts []string) bool {
	ext := filepath.Ext(path)
	for _, e := range exts {
		if ext == e {
			return true
		}
	}
	return false
}
