// Package fetch resolves a repository locator (GitHub URL or local zip) to a
// local directory tree the analyzer can walk.
package fetch

import (
	"archive/zip"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/go-github/v56/github"
	"github.com/sirupsen/logrus"
	"golang.org/x/oauth2"
)

// Error wraps any failure to materialize a repository from a locator.
type Error struct {
	Locator string
	Err     error
}

func (e *Error) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.Locator, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// branchCandidates are tried in order when the locator does not pin a ref.
var branchCandidates = []string{"main", "master", "develop"}

// Fetcher downloads and extracts repository archives.
type Fetcher struct {
	gh   *github.Client
	http *http.Client
}

// New builds a Fetcher. token may be empty for anonymous access to public
// repositories.
func New(token string) *Fetcher {
	hc := &http.Client{Timeout: 2 * time.Minute}
	var gh *github.Client
	if token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		gh = github.NewClient(oauth2.NewClient(context.Background(), ts))
	} else {
		gh = github.NewClient(nil)
	}
	return &Fetcher{gh: gh, http: hc}
}

// Fetch materializes the repository named by locator into a fresh temp
// directory and returns its path. The caller owns cleanup.
func (f *Fetcher) Fetch(ctx context.Context, locator string) (string, error) {
	switch {
	case strings.HasSuffix(locator, ".zip") && !strings.Contains(locator, "://"):
		return f.extractLocalZip(locator)
	case strings.Contains(locator, "github.com"):
		return f.fetchGitHub(ctx, locator)
	default:
		return "", &Error{Locator: locator, Err: errors.New("unsupported repository locator")}
	}
}

func (f *Fetcher) extractLocalZip(path string) (string, error) {
	dir, err := os.MkdirTemp("", "arvo-repo-*")
	if err != nil {
		return "", &Error{Locator: path, Err: err}
	}
	if err := unzip(path, dir); err != nil {
		os.RemoveAll(dir)
		return "", &Error{Locator: path, Err: err}
	}
	return dir, nil
}

func (f *Fetcher) fetchGitHub(ctx context.Context, locator string) (string, error) {
	// A pinned archive URL skips ref resolution entirely.
	if strings.Contains(locator, "/archive/") {
		return f.downloadAndExtract(ctx, locator, locator)
	}

	owner, repo, err := parseGitHubRepo(locator)
	if err != nil {
		return "", &Error{Locator: locator, Err: err}
	}

	var lastErr error
	for _, branch := range branchCandidates {
		u, _, err := f.gh.Repositories.GetArchiveLink(ctx, owner, repo, github.Zipball,
			&github.RepositoryContentGetOptions{Ref: branch}, 3)
		if err != nil {
			lastErr = err
			continue
		}
		dir, err := f.downloadAndExtract(ctx, u.String(), locator)
		if err == nil {
			logrus.WithFields(logrus.Fields{"repo": owner + "/" + repo, "ref": branch}).Debug("archive fetched")
			return dir, nil
		}
		lastErr = err
	}
	return "", &Error{Locator: locator, Err: fmt.Errorf("no fetchable branch (tried %s): %w",
		strings.Join(branchCandidates, ", "), lastErr)}
}

func (f *Fetcher) downloadAndExtract(ctx context.Context, archiveURL, locator string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, archiveURL, nil)
	if err != nil {
		return "", &Error{Locator: locator, Err: err}
	}
	resp, err := f.http.Do(req)
	if err != nil {
		return "", &Error{Locator: locator, Err: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", &Error{Locator: locator, Err: fmt.Errorf("archive download returned %s", resp.Status)}
	}

	dir, err := os.MkdirTemp("", "arvo-repo-*")
	if err != nil {
		return "", &Error{Locator: locator, Err: err}
	}
	zipPath := filepath.Join(dir, "repo.zip")
	out, err := os.Create(zipPath)
	if err != nil {
		os.RemoveAll(dir)
		return "", &Error{Locator: locator, Err: err}
	}
	if _, err := io.Copy(out, resp.Body); err != nil {
		out.Close()
		os.RemoveAll(dir)
		return "", &Error{Locator: locator, Err: err}
	}
	out.Close()

	if err := unzip(zipPath, dir); err != nil {
		os.RemoveAll(dir)
		return "", &Error{Locator: locator, Err: err}
	}
	os.Remove(zipPath)
	return dir, nil
}

// parseGitHubRepo extracts owner/repo from a GitHub URL, tolerating a .git
// suffix and extra path segments.
func parseGitHubRepo(locator string) (owner, repo string, err error) {
	raw := locator
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "", "", fmt.Errorf("bad locator: %w", err)
	}
	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return "", "", errors.New("locator is not an owner/repo GitHub URL")
	}
	return parts[0], strings.TrimSuffix(parts[1], ".git"), nil
}

// unzip extracts src into dst, refusing entries that escape dst.
func unzip(src, dst string) error {
	r, err := zip.OpenReader(src)
	if err != nil {
		return fmt.Errorf("open archive: %w", err)
	}
	defer r.Close()

	for _, f := range r.File {
		target := filepath.Join(dst, f.Name)
		if !strings.HasPrefix(target, filepath.Clean(dst)+string(os.PathSeparator)) {
			return fmt.Errorf("archive entry escapes destination: %s", f.Name)
		}
		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(target, 0o755); err != nil {
				return err
			}
			continue
		}
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return err
		}
		rc, err := f.Open()
		if err != nil {
			return err
		}
		out, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, f.Mode())
		if err != nil {
			rc.Close()
			return err
		}
		_, err = io.Copy(out, rc)
		rc.Close()
		out.Close()
		if err != nil {
			return err
		}
	}
	return nil
}
