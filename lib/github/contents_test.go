// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package github

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/bureau-foundation/agent-templates/lib/netutil"
)

func TestGetContents_Directory(t *testing.T) {
	var receivedPath, receivedRef string
	server := httptest.NewTLSServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		receivedPath = request.URL.Path
		receivedRef = request.URL.Query().Get("ref")
		json.NewEncoder(writer).Encode([]ContentEntry{
			{Type: ContentTypeFile, Name: "AGENTS.md", Path: "templates/review/AGENTS.md", DownloadURL: "https://raw.example/AGENTS.md"},
			{Type: ContentTypeDir, Name: "examples", Path: "templates/review/examples"},
		})
	}))
	defer server.Close()

	client := newTestClient(t, server)
	entries, err := client.GetContents(context.Background(), "owner", "repo", "templates/review", "review/v1.2.0")
	if err != nil {
		t.Fatalf("GetContents: %v", err)
	}

	if receivedPath != "/repos/owner/repo/contents/templates/review" {
		t.Errorf("path = %s", receivedPath)
	}
	if receivedRef != "review/v1.2.0" {
		t.Errorf("ref = %q, want %q", receivedRef, "review/v1.2.0")
	}
	if len(entries) != 2 || entries[0].Name != "AGENTS.md" || entries[1].Type != ContentTypeDir {
		t.Errorf("entries = %+v", entries)
	}
}

func TestGetContents_SingleFile(t *testing.T) {
	server := httptest.NewTLSServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		json.NewEncoder(writer).Encode(ContentEntry{Type: ContentTypeFile, Name: "template.yaml", Size: 42})
	}))
	defer server.Close()

	client := newTestClient(t, server)
	entries, err := client.GetContents(context.Background(), "owner", "repo", "templates/review/template.yaml", "main")
	if err != nil {
		t.Fatalf("GetContents: %v", err)
	}
	if len(entries) != 1 || entries[0].Name != "template.yaml" || entries[0].Size != 42 {
		t.Errorf("entries = %+v, want one template.yaml entry", entries)
	}
}

func TestGetContents_NotFound(t *testing.T) {
	server := httptest.NewTLSServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		writer.WriteHeader(http.StatusNotFound)
		writer.Write([]byte(`{"message":"Not Found"}`))
	}))
	defer server.Close()

	client := newTestClient(t, server)
	_, err := client.GetContents(context.Background(), "owner", "repo", "templates/missing", "main")
	if !IsNotFound(err) {
		t.Fatalf("expected IsNotFound, got %v", err)
	}
}

func TestGetRawFile(t *testing.T) {
	var receivedPath, receivedAuth string
	server := httptest.NewTLSServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		receivedPath = request.URL.Path
		receivedAuth = request.Header.Get("Authorization")
		writer.Write([]byte("version: 1.0.0\n"))
	}))
	defer server.Close()

	client := newTestClient(t, server)
	data, err := client.GetRawFile(context.Background(), "owner", "repo", "review/v1.0.0", "templates/review/template.yaml")
	if err != nil {
		t.Fatalf("GetRawFile: %v", err)
	}
	if string(data) != "version: 1.0.0\n" {
		t.Errorf("data = %q", data)
	}
	if receivedPath != "/raw/owner/repo/review/v1.0.0/templates/review/template.yaml" {
		t.Errorf("path = %s", receivedPath)
	}
	if receivedAuth != "Bearer test-token" {
		t.Errorf("raw host request missing token, Authorization = %q", receivedAuth)
	}
}

func TestDownload_ForeignHostGetsNoToken(t *testing.T) {
	foreignAuth := "unset"
	foreign := httptest.NewTLSServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		foreignAuth = request.Header.Get("Authorization")
		writer.Write([]byte("payload"))
	}))
	defer foreign.Close()

	api := httptest.NewTLSServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		t.Errorf("unexpected request to API host: %s", request.URL.Path)
	}))
	defer api.Close()

	// Both servers share the httptest root CA, so one client trusts both.
	client := newTestClient(t, api)
	data, err := client.Download(context.Background(), foreign.URL+"/file.md")
	if err != nil {
		t.Fatalf("Download: %v", err)
	}
	if string(data) != "payload" {
		t.Errorf("data = %q", data)
	}
	if foreignAuth != "" {
		t.Errorf("foreign host received Authorization %q", foreignAuth)
	}
}

func TestDownload_TooLarge(t *testing.T) {
	server := httptest.NewTLSServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		writer.Write([]byte(strings.Repeat("x", int(netutil.MaxDownloadSize)+1)))
	}))
	defer server.Close()

	client := newTestClient(t, server)
	_, err := client.Download(context.Background(), server.URL+"/raw/big")
	if !errors.Is(err, netutil.ErrTooLarge) {
		t.Fatalf("expected ErrTooLarge, got %v", err)
	}
}
