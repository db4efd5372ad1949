// Package rewrite points hardcoded local endpoints in application code at
// the deployed address.
package rewrite

import (
	"io/fs"
	"os"
	"path/filepath"
	"regexp"

	"github.com/sirupsen/logrus"
)

// A loopback reference with an explicit port collapses to the bare address
// (the deployed port is already the application port); scheme-prefixed bare
// localhost keeps a scheme.
var (
	localhostPortRe = regexp.MustCompile(`localhost:\d+`)
	loopbackPortRe  = regexp.MustCompile(`127\.0\.0\.1:\d+`)
	schemeRe        = regexp.MustCompile(`https?://localhost\b`)
)

// textExts are the file types worth scanning.
var textExts = map[string]bool{
	".py": true, ".js": true, ".json": true, ".env": true, ".yml": true, ".yaml": true,
}

// Rewrite replaces loopback references under root with publicAddr and
// returns the files it changed (paths relative to root). Running it again
// with the same address is a no-op. Per-file failures are logged and
// skipped, never fatal.
func Rewrite(root, publicAddr string) ([]string, error) {
	var modified []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			logrus.WithError(err).WithField("path", path).Warn("skipping unreadable entry")
			return nil
		}
		if d.IsDir() {
			if name := d.Name(); name == ".git" || name == "node_modules" {
				return filepath.SkipDir
			}
			return nil
		}
		if !textExts[filepath.Ext(d.Name())] && d.Name() != ".env" {
			return nil
		}
		changed, err := rewriteFile(path, publicAddr)
		if err != nil {
			logrus.WithError(err).WithField("path", path).Warn("could not rewrite file")
			return nil
		}
		if changed {
			rel, relErr := filepath.Rel(root, path)
			if relErr != nil {
				rel = path
			}
			modified = append(modified, filepath.ToSlash(rel))
		}
		return nil
	})
	if err != nil {
		return modified, err
	}
	return modified, nil
}

func rewriteFile(path, publicAddr string) (bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return false, err
	}
	original := string(data)

	content := localhostPortRe.ReplaceAllString(original, publicAddr)
	content = loopbackPortRe.ReplaceAllString(content, publicAddr)
	content = schemeRe.ReplaceAllString(content, "http://"+publicAddr)

	if content == original {
		return false, nil
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return false, err
	}
	return true, nil
}
