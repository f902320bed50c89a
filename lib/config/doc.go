// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides configuration loading for the agents CLI.
//
// Configuration is loaded from a single file specified by either the
// AGENTS_CONFIG environment variable (via [Load]) or a --config flag
// (via [LoadFile]). With neither, [Default] is used as is. There is no
// ~/.config discovery and no automatic file search.
//
// Files are YAML. A file ending in .json or .jsonc is read as JSON with
// comments and trailing commas allowed.
//
// Variable expansion is performed after loading on registry.token,
// registry.api_url and target_dir: ${VAR} and ${VAR:-default} patterns
// are expanded from the environment. The default token is
// ${GITHUB_TOKEN}, so an exported token is picked up without a config
// file.
//
// Key exports:
//
//   - [Config] -- registry location, credentials and target directory
//   - [Default] -- the built-in registry settings
//   - [Load] and [LoadFile] -- the two entry points for loading
//
// This package depends on no other packages in this module.
package config
