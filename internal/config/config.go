// Package config loads the optional pathkit.yaml file of a target directory.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/vvka-141/pathkit/internal/template"
	"github.com/vvka-141/pathkit/pkg/pathkit"
)

// ErrConfigNotFound is returned when the config file does not exist.
// Callers can check for this with errors.Is(err, config.ErrConfigNotFound).
var ErrConfigNotFound = errors.New("config file not found")

type CollapseConfig struct {
	Template   string `yaml:"template"`
	Separator  string `yaml:"separator,omitempty"`
	StartDepth int    `yaml:"start_depth,omitempty"`
	// Rename is "moved" (default) or "collisions"
	Rename string `yaml:"rename,omitempty"`
}

type RenameConfig struct {
	Template  string `yaml:"template"`
	Recursive bool   `yaml:"recursive,omitempty"`
}

type TreeConfig struct {
	Depth int `yaml:"depth,omitempty"`
}

type ProjectConfig struct {
	Collapse CollapseConfig `yaml:"collapse"`
	Rename   RenameConfig   `yaml:"rename"`
	Tree     TreeConfig     `yaml:"tree"`
}

// Load reads pathkit.yaml from dir and validates it.
func Load(dir string) (*ProjectConfig, error) {
	configPath := filepath.Join(dir, pathkit.ConfigFileName)
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cfg ProjectConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", pathkit.ErrInvalidConfig, configPath, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", configPath, err)
	}
	return &cfg, nil
}

// Validate checks values that can be checked without touching the target tree.
func (c *ProjectConfig) Validate() error {
	if c.Collapse.StartDepth < 0 {
		return fmt.Errorf("%w: collapse.start_depth must not be negative", pathkit.ErrInvalidConfig)
	}
	if c.Tree.Depth < 0 {
		return fmt.Errorf("%w: tree.depth must not be negative", pathkit.ErrInvalidConfig)
	}
	if _, err := pathkit.ParseRenamePolicy(c.Collapse.Rename); err != nil {
		return fmt.Errorf("collapse.rename: %w", err)
	}

	separator := c.Collapse.Separator
	if separator == "" {
		separator = pathkit.DefaultSeparator
	}
	if err := template.CheckSeparator(separator); err != nil {
		return fmt.Errorf("collapse.separator: %w", err)
	}
	for key, tmpl := range map[string]string{
		"collapse.template": c.Collapse.Template,
		"rename.template":   c.Rename.Template,
	} {
		if tmpl == "" {
			continue
		}
		if _, err := template.NewParser(separator).Parse(tmpl); err != nil {
			return fmt.Errorf("%w: %s: %w", pathkit.ErrInvalidConfig, key, err)
		}
	}
	return nil
}
