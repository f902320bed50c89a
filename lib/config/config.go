// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// EnvironmentVariable names the config file when no --config flag is
// given.
const EnvironmentVariable = "AGENTS_CONFIG"

// Config is the configuration for the agents CLI.
type Config struct {
	// Registry locates the repository that hosts templates.
	Registry RegistryConfig `yaml:"registry"`

	// TargetDir is where templates are materialized, relative to the
	// working directory unless absolute.
	// Default: .agents
	TargetDir string `yaml:"target_dir"`
}

// RegistryConfig locates the template registry on GitHub.
type RegistryConfig struct {
	// Owner is the GitHub user or organization owning the registry.
	Owner string `yaml:"owner"`

	// Repo is the registry repository name.
	Repo string `yaml:"repo"`

	// DefaultBranch is loaded from when a template has no version tags.
	// Default: main
	DefaultBranch string `yaml:"default_branch"`

	// TemplatesPath is the directory in the repository holding one
	// subdirectory per template.
	// Default: templates
	TemplatesPath string `yaml:"templates_path"`

	// APIURL is the GitHub REST API root. Set it for GitHub Enterprise.
	// Default: https://api.github.com
	APIURL string `yaml:"api_url"`

	// RawURL is the root serving raw file content.
	// Default: https://raw.githubusercontent.com
	RawURL string `yaml:"raw_url"`

	// Token authenticates registry requests. Empty means anonymous,
	// which works for public registries at a lower rate limit.
	// Default: ${GITHUB_TOKEN}
	Token string `yaml:"token"`
}

// Default returns the built-in configuration, pointing at the public
// template registry.
func Default() *Config {
	return &Config{
		Registry: RegistryConfig{
			Owner:         "bureau-foundation",
			Repo:          "agent-templates",
			DefaultBranch: "main",
			TemplatesPath: "templates",
			APIURL:        "https://api.github.com",
			RawURL:        "https://raw.githubusercontent.com",
			Token:         "${GITHUB_TOKEN}",
		},
		TargetDir: ".agents",
	}
}

// Load loads configuration from the file named by AGENTS_CONFIG, or
// returns the expanded defaults when it is not set.
func Load() (*Config, error) {
	configPath := os.Getenv(EnvironmentVariable)
	if configPath == "" {
		cfg := Default()
		cfg.expandVariables()
		return cfg, nil
	}
	return LoadFile(configPath)
}

// LoadFile loads configuration from a specific file path. Fields the
// file does not set keep their defaults.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	if err := cfg.loadFile(path); err != nil {
		return nil, err
	}

	cfg.expandVariables()

	return cfg, nil
}

// loadFile decodes a configuration file over the current config.
func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".jsonc":
		data = jsonc.ToJSON(data)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing config %s: %w", path, err)
	}
	return nil
}

// expandVariables expands ${VAR} and ${VAR:-default} patterns in the
// fields that commonly reference the environment.
func (c *Config) expandVariables() {
	c.Registry.Token = expandVars(c.Registry.Token)
	c.Registry.APIURL = expandVars(c.Registry.APIURL)
	c.Registry.RawURL = expandVars(c.Registry.RawURL)
	c.TargetDir = expandVars(c.TargetDir)
}

// varPattern matches ${VAR} and ${VAR:-default}.
var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

func expandVars(s string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		if len(parts) < 2 {
			return match
		}

		name := parts[1]
		defaultValue := ""
		if len(parts) >= 3 {
			defaultValue = parts[2]
		}

		if value := os.Getenv(name); value != "" {
			return value
		}
		return defaultValue
	})
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs []error

	if c.Registry.Owner == "" {
		errs = append(errs, fmt.Errorf("registry.owner is required"))
	}
	if c.Registry.Repo == "" {
		errs = append(errs, fmt.Errorf("registry.repo is required"))
	}
	if strings.Contains(c.Registry.Owner, "/") || strings.Contains(c.Registry.Repo, "/") {
		errs = append(errs, fmt.Errorf("registry.owner and registry.repo must not contain '/'"))
	}
	if c.Registry.DefaultBranch == "" {
		errs = append(errs, fmt.Errorf("registry.default_branch is required"))
	}
	if strings.Contains(c.Registry.TemplatesPath, "..") {
		errs = append(errs, fmt.Errorf("registry.templates_path must stay inside the repository"))
	}

	for _, field := range []struct {
		name  string
		value string
	}{
		{"registry.api_url", c.Registry.APIURL},
		{"registry.raw_url", c.Registry.RawURL},
	} {
		parsed, err := url.Parse(field.value)
		if err != nil || parsed.Scheme != "https" || parsed.Host == "" {
			errs = append(errs, fmt.Errorf("%s must be an https URL (got %q)", field.name, field.value))
		}
	}

	if c.TargetDir == "" {
		errs = append(errs, fmt.Errorf("target_dir is required"))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}
