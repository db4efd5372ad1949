package fetch

import (
	"archive/zip"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func writeZip(t *testing.T, path string, files map[string]string) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	w := zip.NewWriter(f)
	for name, body := range files {
		entry, err := w.Create(name)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := entry.Write([]byte(body)); err != nil {
			t.Fatal(err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestFetchLocalZip(t *testing.T) {
	zipPath := filepath.Join(t.TempDir(), "bundle.zip")
	writeZip(t, zipPath, map[string]string{
		"myapp/app.py":           "print('hi')",
		"myapp/requirements.txt": "flask\n",
	})

	dir, err := New("").Fetch(context.Background(), zipPath)
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	defer os.RemoveAll(dir)

	data, err := os.ReadFile(filepath.Join(dir, "myapp", "requirements.txt"))
	if err != nil {
		t.Fatalf("extracted file missing: %v", err)
	}
	if string(data) != "flask\n" {
		t.Errorf("extracted content = %q", data)
	}
}

func TestFetchUnsupportedLocator(t *testing.T) {
	_, err := New("").Fetch(context.Background(), "ftp://example.com/repo")
	if err == nil {
		t.Fatal("Fetch() error = nil, want unsupported locator error")
	}
	var fe *Error
	if !errors.As(err, &fe) {
		t.Fatalf("Fetch() error = %T, want *Error", err)
	}
	if fe.Locator != "ftp://example.com/repo" {
		t.Errorf("Locator = %q", fe.Locator)
	}
}

func TestDownloadAndExtract(t *testing.T) {
	zipPath := filepath.Join(t.TempDir(), "archive.zip")
	writeZip(t, zipPath, map[string]string{
		"repo-main/package.json": `{"dependencies":{"express":"^4.18.0"}}`,
	})
	payload, err := os.ReadFile(zipPath)
	if err != nil {
		t.Fatal(err)
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(payload)
	}))
	defer srv.Close()

	f := New("")
	dir, err := f.downloadAndExtract(context.Background(), srv.URL, "github.com/user/repo")
	if err != nil {
		t.Fatalf("downloadAndExtract() error = %v", err)
	}
	defer os.RemoveAll(dir)

	if _, err := os.Stat(filepath.Join(dir, "repo-main", "package.json")); err != nil {
		t.Errorf("extracted file missing: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "repo.zip")); !os.IsNotExist(err) {
		t.Errorf("temporary archive should be removed, stat err = %v", err)
	}
}

func TestDownloadAndExtractBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	_, err := New("").downloadAndExtract(context.Background(), srv.URL, "github.com/user/repo")
	var fe *Error
	if !errors.As(err, &fe) {
		t.Fatalf("downloadAndExtract() error = %v, want *Error", err)
	}
}

func TestParseGitHubRepo(t *testing.T) {
	tests := []struct {
		locator string
		owner   string
		repo    string
		wantErr bool
	}{
		{"https://github.com/user/repo", "user", "repo", false},
		{"github.com/user/repo.git", "user", "repo", false},
		{"https://github.com/user/repo/tree/main/sub", "user", "repo", false},
		{"https://github.com/user", "", "", true},
	}
	for _, tt := range tests {
		owner, repo, err := parseGitHubRepo(tt.locator)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseGitHubRepo(%q) error = %v, wantErr %v", tt.locator, err, tt.wantErr)
			continue
		}
		if owner != tt.owner || repo != tt.repo {
			t.Errorf("parseGitHubRepo(%q) = %q/%q, want %q/%q", tt.locator, owner, repo, tt.owner, tt.repo)
		}
	}
}

func TestUnzipRejectsEscapingEntry(t *testing.T) {
	zipPath := filepath.Join(t.TempDir(), "evil.zip")
	writeZip(t, zipPath, map[string]string{
		"../escape.txt": "nope",
	})

	if err := unzip(zipPath, t.TempDir()); err == nil {
		t.Fatal("unzip() accepted an entry escaping the destination")
	}
}
