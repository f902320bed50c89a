// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package github

import "context"

// authenticator provides Authorization header values for GitHub API
// requests. An empty header means the request is sent anonymously.
type authenticator interface {
	AuthorizationHeader(ctx context.Context) (string, error)
}

// tokenAuth is a static Bearer token authenticator for personal access
// tokens and fine-grained tokens.
type tokenAuth struct {
	header string
}

func newTokenAuth(token string) *tokenAuth {
	return &tokenAuth{header: "Bearer " + token}
}

func (auth *tokenAuth) AuthorizationHeader(_ context.Context) (string, error) {
	return auth.header, nil
}

// anonymousAuth sends no credentials.
type anonymousAuth struct{}

func (anonymousAuth) AuthorizationHeader(_ context.Context) (string, error) {
	return "", nil
}
