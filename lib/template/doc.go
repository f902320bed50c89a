// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package template resolves and materializes agent instruction
// templates from a registry.
//
// A template is a named directory of instruction files plus a
// template.yaml metadata document declaring its version and the other
// templates it depends on. Loading a template:
//
//   - picks a revision: the explicit "<name>/<version>" tag, else the
//     highest "<name>/v<semver>" tag, else the default branch
//   - downloads the template's files into "<target>/<name>/"
//   - records provenance in the target's manifest
//   - recurses into each declared dependency, depth-first in document
//     order
//
// Identity is the template name alone. The first revision loaded for a
// name wins for the whole session; later requests for the same name are
// reported as skipped. A name that reappears on its own ancestry chain
// aborts the session with a *CycleError.
//
// The registry is reached through the Registry interface so that the
// loader can be exercised against an in-memory registry in tests and
// against GitHub (see lib/registry) in production.
package template
