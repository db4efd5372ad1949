package analyzer

import (
	"os"
	"path/filepath"
	"strings"
)

// Bounds for the fallback tree walk. Detection heuristics should never crawl
// a pathological tree to completion.
const (
	walkMaxDepth   = 8
	walkMaxEntries = 10000
)

type walkItem struct {
	path  string
	depth int
}

// boundedWalk traverses dir iteratively with an explicit queue, skipping
// dependency/VCS noise, calling fn for every regular file. fn returns false
// to stop early.
func boundedWalk(dir string, fn func(path string, name string) bool) {
	queue := []walkItem{{path: dir, depth: 0}}
	seen := 0

	for len(queue) > 0 {
		item := queue[0]
		queue = queue[1:]

		entries, err := os.ReadDir(item.path)
		if err != nil {
			continue
		}
		for _, e := range entries {
			seen++
			if seen > walkMaxEntries {
				return
			}
			name := e.Name()
			if e.IsDir() {
				if skipDir(name) || item.depth+1 > walkMaxDepth {
					continue
				}
				queue = append(queue, walkItem{path: filepath.Join(item.path, name), depth: item.depth + 1})
				continue
			}
			if !fn(filepath.Join(item.path, name), name) {
				return
			}
		}
	}
}

func skipDir(name string) bool {
	switch name {
	case ".git", "node_modules", "__pycache__", ".venv", "venv", "target", "dist", "build", "vendor", ".next", ".cache":
		return true
	}
	return false
}

func hasFileWithSuffix(dir, suffix string) bool {
	found := false
	boundedWalk(dir, func(_, name string) bool {
		if strings.HasSuffix(name, suffix) {
			found = true
			return false
		}
		return true
	})
	return found
}

// loopbackExts are the text-like files worth scanning for hardcoded local
// endpoints.
var loopbackExts = map[string]bool{
	".py": true, ".js": true, ".json": true, ".env": true, ".yml": true, ".yaml": true,
}

const loopbackScanCap = 1 << 20 // skip files larger than 1 MiB

// findLoopbackFiles lists files that reference a local loopback endpoint and
// would need rewriting after deployment. Unreadable files are skipped.
func findLoopbackFiles(dir string) []string {
	var out []string
	boundedWalk(dir, func(path, name string) bool {
		if !loopbackExts[filepath.Ext(name)] && name != ".env" {
			return true
		}
		info, err := os.Stat(path)
		if err != nil || info.Size() > loopbackScanCap {
			return true
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return true
		}
		s := string(data)
		if strings.Contains(s, "localhost") || strings.Contains(s, "127.0.0.1") {
			if rel, err := filepath.Rel(dir, path); err == nil {
				out = append(out, filepath.ToSlash(rel))
			}
		}
		return true
	})
	return out
}
