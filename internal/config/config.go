package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"gopkg.in/yaml.v3"

	"github.com/aromatt/shape/internal/shaper"
)

// Config represents the complete configuration for shape
type Config struct {
	Patterns        []PatternRule `yaml:"patterns"`
	Naming          NamingConfig  `yaml:"naming"`
	DescribeNumbers bool          `yaml:"describe_numbers"`
	Sort            bool          `yaml:"sort"`
	Output          OutputConfig  `yaml:"output"`
}

// PatternRule is one ordered regex rewrite applied to mapping keys
type PatternRule struct {
	Pattern string `yaml:"pattern"`
	Replace string `yaml:"replace"`

	// compiled regex (not serialized)
	regex *regexp.Regexp
}

// NamingConfig controls key-case normalization
type NamingConfig struct {
	// Normalize is one of none|snake|camel|pascal|kebab|screaming-snake
	Normalize string `yaml:"normalize"`
}

// OutputConfig controls how the inferred shape is rendered
type OutputConfig struct {
	// Indent pretty-prints the JSON output with this many spaces; 0 is
	// compact
	Indent int `yaml:"indent"`
	// Schema emits a JSON Schema document instead of the raw shape
	Schema bool `yaml:"schema"`
}

// NewConfig creates a new Config with default values
func NewConfig() *Config {
	return &Config{
		Patterns: []PatternRule{},
		Naming: NamingConfig{
			Normalize: "none",
		},
		DescribeNumbers: false,
		Sort:            false,
		Output: OutputConfig{
			Indent: 0,
			Schema: false,
		},
	}
}

// LoadConfig loads configuration from a YAML file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Start with defaults
	cfg := NewConfig()

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Compile regex patterns up front so a broken rule fails at load
	// time, not mid-shaping
	if err := cfg.compilePatterns(); err != nil {
		return nil, fmt.Errorf("failed to compile patterns: %w", err)
	}

	return cfg, nil
}

// FindConfigFile searches for a config file in current directory and parents
func FindConfigFile() string {
	configNames := []string{".shape.yml", ".shape.yaml", "shape.yml", "shape.yaml"}

	currentDir, err := os.Getwd()
	if err != nil {
		return ""
	}

	// Search up the directory tree
	for {
		for _, name := range configNames {
			configPath := filepath.Join(currentDir, name)
			if _, err := os.Stat(configPath); err == nil {
				return configPath
			}
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			// Reached root directory
			break
		}
		currentDir = parentDir
	}

	return ""
}

// compilePatterns compiles all regex patterns in the config
func (c *Config) compilePatterns() error {
	for i := range c.Patterns {
		rule := &c.Patterns[i]
		regex, err := regexp.Compile(rule.Pattern)
		if err != nil {
			return fmt.Errorf("invalid key pattern '%s': %w", rule.Pattern, err)
		}
		rule.regex = regex
	}
	return nil
}

// ShaperOptions converts the config into shaper options
func (c *Config) ShaperOptions() shaper.Options {
	patterns := make([]shaper.KeyPattern, 0, len(c.Patterns))
	for _, rule := range c.Patterns {
		patterns = append(patterns, shaper.KeyPattern{
			Pattern: rule.Pattern,
			Replace: rule.Replace,
		})
	}
	normalize := c.Naming.Normalize
	if normalize == "none" {
		normalize = ""
	}
	return shaper.Options{
		KeyPatterns:     patterns,
		NormalizeKeys:   normalize,
		DescribeNumbers: c.DescribeNumbers,
		Sort:            c.Sort,
	}
}
