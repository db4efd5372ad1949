package analyzer

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// pythonManifests are the files whose presence marks a Python project.
var pythonManifests = []string{"requirements.txt", "setup.py", "pyproject.toml", "Pipfile"}

// candidateSubdirs are checked, in order, when a manifest is not at the root.
// "" means the root itself.
var candidateSubdirs = []string{"", "app", "src", "server", "backend"}

// rootMarkers are files/dirs that make a lone subdirectory look like the real
// project root (archives often nest the repo one level deep).
var rootMarkers = []string{"README.md", "requirements.txt", "package.json", ".gitignore", "app", "src"}

// Analyze inspects a repository tree and classifies it. An unrecognized but
// readable tree yields a profile with Language set to "unknown"; only an
// unreadable root is an error.
func Analyze(root string) (*Profile, error) {
	if _, err := os.Stat(root); err != nil {
		return nil, fmt.Errorf("cannot read repository root: %w", err)
	}
	dir := effectiveRoot(root)

	p := &Profile{Language: LangUnknown}
	switch {
	case isPython(dir):
		analyzePython(dir, p)
	case isNodeJS(dir):
		analyzeNodeJS(dir, p)
	case isJava(dir):
		analyzeJava(dir, p)
	case isPHP(dir):
		analyzePHP(dir, p)
	}

	if p.Language != LangUnknown {
		p.FilesToModify = findLoopbackFiles(dir)
	}
	return p, nil
}

// effectiveRoot compensates for archive layouts that nest the project one
// level deep: a root holding exactly one entry, a directory, which itself
// contains a recognizable project marker.
func effectiveRoot(root string) string {
	entries, err := os.ReadDir(root)
	if err != nil || len(entries) != 1 || !entries[0].IsDir() {
		return root
	}
	nested := filepath.Join(root, entries[0].Name())
	for _, marker := range rootMarkers {
		if fileExists(nested, marker) {
			return nested
		}
	}
	return root
}

func isPython(dir string) bool {
	for _, sub := range candidateSubdirs {
		d := filepath.Join(dir, sub)
		for _, m := range pythonManifests {
			if fileExists(d, m) {
				return true
			}
		}
	}
	// Last resort: any .py file anywhere in the tree.
	return hasFileWithSuffix(dir, ".py")
}

func isNodeJS(dir string) bool {
	return fileExists(dir, "package.json")
}

func isJava(dir string) bool {
	return fileExists(dir, "pom.xml") || fileExists(dir, "build.gradle") || fileExists(dir, "gradle.properties")
}

func isPHP(dir string) bool {
	return fileExists(dir, "composer.json") || fileExists(dir, "composer.lock")
}

// --- helpers ---

func fileExists(dir, name string) bool {
	_, err := os.Stat(filepath.Join(dir, name))
	return err == nil
}

// cdPrefix prepends a directory change when the app lives below the repo root.
func cdPrefix(appRoot string, cmds []string) []string {
	if appRoot == "" || appRoot == "." {
		return cmds
	}
	out := make([]string, len(cmds))
	for i, c := range cmds {
		out[i] = fmt.Sprintf("cd %s && %s", appRoot, c)
	}
	return out
}

func relAppRoot(root, dir string) string {
	rel, err := filepath.Rel(root, dir)
	if err != nil || rel == "." {
		return ""
	}
	return filepath.ToSlash(rel)
}

// stripVersion removes a version constraint from a requirements line
// (==, >=, <= operators).
func stripVersion(line string) string {
	for _, op := range []string{"==", ">=", "<="} {
		if i := strings.Index(line, op); i >= 0 {
			line = line[:i]
		}
	}
	return strings.TrimSpace(line)
}
