// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package github

import "time"

// Content entry types returned by the contents API.
const (
	ContentTypeFile    = "file"
	ContentTypeDir     = "dir"
	ContentTypeSymlink = "symlink"
	ContentTypeSubmod  = "submodule"
)

// ContentEntry is one item of a repository contents listing, or the
// single item returned when the path names a file.
type ContentEntry struct {
	Type        string `json:"type"`
	Name        string `json:"name"`
	Path        string `json:"path"`
	SHA         string `json:"sha"`
	Size        int64  `json:"size"`
	URL         string `json:"url"`
	HTMLURL     string `json:"html_url"`
	DownloadURL string `json:"download_url"`
}

// GitRef is a git reference such as refs/tags/review/v1.2.0.
type GitRef struct {
	Ref    string    `json:"ref"`
	NodeID string    `json:"node_id"`
	URL    string    `json:"url"`
	Object RefObject `json:"object"`
}

// RefObject is the object a reference points to. For annotated tags
// Type is "tag" and SHA names the tag object, not the commit.
type RefObject struct {
	SHA  string `json:"sha"`
	Type string `json:"type"`
	URL  string `json:"url"`
}

// RepoCommit is a commit as returned by the repository commits API.
type RepoCommit struct {
	SHA     string     `json:"sha"`
	HTMLURL string     `json:"html_url"`
	Commit  CommitData `json:"commit"`
}

// CommitData holds the git-level commit fields.
type CommitData struct {
	Message   string       `json:"message"`
	Author    CommitAuthor `json:"author"`
	Committer CommitAuthor `json:"committer"`
}

// CommitAuthor identifies the author or committer of a commit.
type CommitAuthor struct {
	Name  string    `json:"name"`
	Email string    `json:"email"`
	Date  time.Time `json:"date"`
}
