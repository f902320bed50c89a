// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/bureau-foundation/agent-templates/cmd/agents/cli"
	"github.com/bureau-foundation/agent-templates/lib/clock"
	"github.com/bureau-foundation/agent-templates/lib/config"
	"github.com/bureau-foundation/agent-templates/lib/github"
	"github.com/bureau-foundation/agent-templates/lib/registry"
	"github.com/bureau-foundation/agent-templates/lib/template"
	"github.com/bureau-foundation/agent-templates/lib/tui"
)

// Environment carries the process-level dependencies commands share.
// main builds the real one; tests substitute fakes.
type Environment struct {
	Console *cli.Console

	// Clock stamps manifests and judges rate-limit windows.
	Clock clock.Clock

	// HTTPClient reaches the registry. Nil means http.DefaultClient.
	HTTPClient *http.Client

	// Logger overrides the logger built from --verbose. Tests set it
	// to capture diagnostics.
	Logger *slog.Logger

	// Interactive reports whether stdin and stdout are terminals, which
	// gates the template picker.
	Interactive func() bool

	// Pick runs the interactive picker over candidate names and returns
	// the chosen one.
	Pick func(ctx context.Context, title string, candidates []tui.Candidate) (string, error)
}

// globalParams are the flags every registry-facing command accepts.
type globalParams struct {
	ConfigPath string `json:"-" flag:"config" desc:"configuration file (default: $AGENTS_CONFIG, else built-in defaults)"`
	Verbose    bool   `json:"-" flag:"verbose,v" desc:"log registry diagnostics to stderr"`
}

// loadConfig reads the configuration named by --config, falling back to
// $AGENTS_CONFIG and then the built-in defaults.
func (params *globalParams) loadConfig() (*config.Config, error) {
	var cfg *config.Config
	var err error
	if params.ConfigPath != "" {
		cfg, err = config.LoadFile(params.ConfigPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, cli.Validation("%w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, cli.Validation("invalid configuration: %w", err)
	}
	return cfg, nil
}

func (environment *Environment) logger(params *globalParams) *slog.Logger {
	if environment.Logger != nil {
		return environment.Logger
	}
	return cli.NewCommandLogger(params.Verbose)
}

// openRegistry builds the GitHub-backed registry described by cfg.
func (environment *Environment) openRegistry(cfg *config.Config, logger *slog.Logger) (*registry.GitHub, error) {
	client, err := github.NewClient(github.Config{
		BaseURL:    cfg.Registry.APIURL,
		RawBaseURL: cfg.Registry.RawURL,
		Token:      cfg.Registry.Token,
		HTTPClient: environment.HTTPClient,
		Clock:      environment.Clock,
		Logger:     logger,
	})
	if err != nil {
		return nil, cli.Validation("configuring registry client: %w", err)
	}
	templates, err := registry.NewGitHub(client, registry.GitHubConfig{
		Owner:         cfg.Registry.Owner,
		Repo:          cfg.Registry.Repo,
		TemplatesPath: cfg.Registry.TemplatesPath,
	})
	if err != nil {
		return nil, cli.Validation("configuring registry: %w", err)
	}
	return templates, nil
}

// categorize attaches a CLI error category to a library error so that
// main picks the right exit status.
func categorize(err error) error {
	if err == nil {
		return nil
	}
	var toolError *cli.ToolError
	if errors.As(err, &toolError) {
		return err
	}

	var notFound *template.NotFoundError
	var cycle *template.CycleError
	switch {
	case errors.Is(err, template.ErrEmptyName), errors.Is(err, template.ErrInvalidName):
		return cli.Validation("%w", err)
	case errors.As(err, &cycle):
		return cli.Conflict("%w", err)
	case errors.As(err, &notFound), errors.Is(err, template.ErrNotFound):
		return cli.NotFound("%w", err)
	case github.IsTransient(err):
		return cli.Transient("%w", err)
	case github.IsAccessDenied(err):
		return fmt.Errorf("%w\n\nThe registry refused access; set registry.token in the configuration or export GITHUB_TOKEN", err)
	}

	var urlError *url.Error
	if errors.As(err, &urlError) {
		return cli.Transient("%w", err)
	}
	return err
}
