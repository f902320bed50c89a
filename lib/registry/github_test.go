// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package registry

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/bureau-foundation/agent-templates/lib/github"
	"github.com/bureau-foundation/agent-templates/lib/template"
)

// fakeGitHub serves the handful of GitHub endpoints the registry uses
// for a repository "acme/agents" with templates under "templates/".
func fakeGitHub(t *testing.T) *httptest.Server {
	t.Helper()
	var server *httptest.Server
	server = httptest.NewTLSServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		path := request.URL.EscapedPath()
		switch {
		case path == "/repos/acme/agents/contents/templates/review" && request.URL.Query().Get("ref") == "review/v1.0.0":
			json.NewEncoder(writer).Encode([]github.ContentEntry{
				{Type: "file", Name: "AGENTS.md", Path: "templates/review/AGENTS.md", DownloadURL: server.URL + "/raw/acme/agents/review/v1.0.0/templates/review/AGENTS.md"},
				{Type: "dir", Name: "extras", Path: "templates/review/extras"},
				{Type: "symlink", Name: "link", Path: "templates/review/link"},
			})
		case path == "/repos/acme/agents/contents/templates" && request.URL.Query().Get("ref") == "main":
			json.NewEncoder(writer).Encode([]github.ContentEntry{
				{Type: "dir", Name: "review", Path: "templates/review"},
				{Type: "dir", Name: "style", Path: "templates/style"},
			})
		case path == "/repos/acme/agents/contents/templates/README.md":
			json.NewEncoder(writer).Encode(github.ContentEntry{
				Type: "file", Name: "README.md", Path: "templates/README.md",
				DownloadURL: server.URL + "/raw/acme/agents/main/templates/README.md",
			})
		case path == "/repos/acme/agents/git/matching-refs/tags/README.md/v":
			json.NewEncoder(writer).Encode([]github.GitRef{})
		case path == "/repos/acme/agents/git/matching-refs/tags/review/v":
			json.NewEncoder(writer).Encode([]github.GitRef{
				{Ref: "refs/tags/review/v1.0.0"},
				{Ref: "refs/tags/review/v1.1.0"},
			})
		case path == "/repos/acme/agents/commits/review/v1.0.0":
			writer.Write([]byte(`{"sha":"0123456789abcdef0123456789abcdef01234567"}`))
		case path == "/raw/acme/agents/review/v1.0.0/templates/review/template.yaml":
			writer.Write([]byte("version: 1.0.0\n"))
		case path == "/raw/acme/agents/review/v1.0.0/templates/review/AGENTS.md":
			writer.Write([]byte("# Review\n"))
		default:
			writer.WriteHeader(http.StatusNotFound)
			fmt.Fprintf(writer, `{"message":"Not Found","path":%q}`, path)
		}
	}))
	t.Cleanup(server.Close)
	return server
}

func newTestRegistry(t *testing.T, server *httptest.Server) *GitHub {
	t.Helper()
	client, err := github.NewClient(github.Config{
		BaseURL:    server.URL,
		RawBaseURL: server.URL + "/raw",
		HTTPClient: server.Client(),
	})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	registry, err := NewGitHub(client, GitHubConfig{Owner: "acme", Repo: "agents", TemplatesPath: "/templates/"})
	if err != nil {
		t.Fatalf("NewGitHub: %v", err)
	}
	return registry
}

func TestNewGitHub_Validation(t *testing.T) {
	client, err := github.NewClient(github.Config{})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	if _, err := NewGitHub(nil, GitHubConfig{Owner: "a", Repo: "b"}); err == nil {
		t.Error("expected error without client")
	}
	if _, err := NewGitHub(client, GitHubConfig{Owner: "a"}); err == nil {
		t.Error("expected error without repo")
	}
}

func TestGitHub_Source(t *testing.T) {
	registry := newTestRegistry(t, fakeGitHub(t))
	if got := registry.Source(); got != "https://github.com/acme/agents" {
		t.Errorf("Source() = %q", got)
	}
}

func TestGitHub_ListDir(t *testing.T) {
	registry := newTestRegistry(t, fakeGitHub(t))
	entries, err := registry.ListDir(context.Background(), "review/v1.0.0", "review")
	if err != nil {
		t.Fatalf("ListDir: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("entries = %+v", entries)
	}
	if entries[0].Path != "review/AGENTS.md" || entries[0].Type != template.EntryTypeFile {
		t.Errorf("entries[0] = %+v", entries[0])
	}
	if entries[1].Type != template.EntryTypeDir {
		t.Errorf("entries[1].Type = %q, want dir", entries[1].Type)
	}
	if entries[2].Type != "symlink" {
		t.Errorf("entries[2].Type = %q, want symlink", entries[2].Type)
	}
}

func TestGitHub_ListDirRoot(t *testing.T) {
	registry := newTestRegistry(t, fakeGitHub(t))
	entries, err := registry.ListDir(context.Background(), "main", "")
	if err != nil {
		t.Fatalf("ListDir: %v", err)
	}
	if len(entries) != 2 || entries[0].Name != "review" || entries[1].Path != "style" {
		t.Errorf("entries = %+v", entries)
	}
}

func TestGitHub_ListDirNotFound(t *testing.T) {
	registry := newTestRegistry(t, fakeGitHub(t))
	_, err := registry.ListDir(context.Background(), "main", "ghost")
	if !errors.Is(err, template.ErrNotFound) {
		t.Fatalf("error = %v, want template.ErrNotFound", err)
	}
	if !github.IsNotFound(err) {
		t.Errorf("GitHub error lost from chain: %v", err)
	}
}

func TestGitHub_ListDirFileIsNotFound(t *testing.T) {
	registry := newTestRegistry(t, fakeGitHub(t))
	_, err := registry.ListDir(context.Background(), "main", "README.md")
	if !errors.Is(err, template.ErrNotFound) {
		t.Fatalf("error = %v, want template.ErrNotFound", err)
	}
}

func TestGitHub_LoadFileUnderTemplatesRoot(t *testing.T) {
	registry := newTestRegistry(t, fakeGitHub(t))
	loader, err := template.NewLoader(template.LoaderConfig{
		Registry:      registry,
		DefaultBranch: "main",
		Source:        registry.Source(),
	})
	if err != nil {
		t.Fatalf("NewLoader: %v", err)
	}

	target := t.TempDir()
	result, err := loader.Load(context.Background(), template.Ref{Name: "README.md"}, target)
	var notFoundError *template.NotFoundError
	if !errors.As(err, &notFoundError) {
		t.Fatalf("Load = %v, want *template.NotFoundError", err)
	}
	if notFoundError.Name != "README.md" {
		t.Errorf("NotFoundError.Name = %q, want README.md", notFoundError.Name)
	}
	if result != nil && len(result.Loaded) != 0 {
		t.Errorf("Loaded = %+v, want nothing", result.Loaded)
	}
	if _, statErr := os.Stat(filepath.Join(target, "README.md")); !os.IsNotExist(statErr) {
		t.Errorf("stat %s: %v, want not exist", filepath.Join(target, "README.md"), statErr)
	}
}

func TestGitHub_ListTags(t *testing.T) {
	registry := newTestRegistry(t, fakeGitHub(t))
	tags, err := registry.ListTags(context.Background(), "review/v")
	if err != nil {
		t.Fatalf("ListTags: %v", err)
	}
	if !reflect.DeepEqual(tags, []string{"review/v1.0.0", "review/v1.1.0"}) {
		t.Errorf("tags = %v", tags)
	}
}

func TestGitHub_ResolveCommit(t *testing.T) {
	registry := newTestRegistry(t, fakeGitHub(t))
	commit, err := registry.ResolveCommit(context.Background(), "review/v1.0.0")
	if err != nil {
		t.Fatalf("ResolveCommit: %v", err)
	}
	if !strings.HasPrefix(commit, "0123456789ab") {
		t.Errorf("commit = %q", commit)
	}
}

func TestGitHub_ReadFile(t *testing.T) {
	registry := newTestRegistry(t, fakeGitHub(t))
	data, err := registry.ReadFile(context.Background(), "review/v1.0.0", "review/template.yaml")
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(data) != "version: 1.0.0\n" {
		t.Errorf("data = %q", data)
	}

	_, err = registry.ReadFile(context.Background(), "main", "review/template.yaml")
	if !errors.Is(err, template.ErrNotFound) {
		t.Errorf("missing file error = %v, want template.ErrNotFound", err)
	}
}

// TestGitHub_LoadEndToEnd runs the loader against the fake GitHub to
// check the adapter satisfies the loader's expectations.
func TestGitHub_LoadEndToEnd(t *testing.T) {
	registry := newTestRegistry(t, fakeGitHub(t))
	loader, err := template.NewLoader(template.LoaderConfig{
		Registry:      registry,
		DefaultBranch: "main",
		Source:        registry.Source(),
	})
	if err != nil {
		t.Fatalf("NewLoader: %v", err)
	}

	result, err := loader.Load(context.Background(), template.Ref{Name: "review", Version: "v1.0.0"}, t.TempDir())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(result.Loaded) != 1 {
		t.Fatalf("Loaded = %+v", result.Loaded)
	}
	entry := result.Loaded[0]
	if entry.Version != "1.0.0" || entry.Commit != "0123456789ab" || entry.Source != "https://github.com/acme/agents" {
		t.Errorf("entry = %+v", entry)
	}
}
