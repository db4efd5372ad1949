package analyzer

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
)

// pythonFrameworkOrder is the priority used both for dependency matching and
// for the indicator-file fallback. The indicator sets overlap (app.py/main.py
// signal flask, fastapi and bottle alike); first match in this order wins.
var pythonFrameworkOrder = []string{"flask", "django", "fastapi", "bottle"}

var pythonIndicators = map[string][]string{
	"flask":   {"app.py", "main.py", "wsgi.py"},
	"django":  {"manage.py", "settings.py"},
	"fastapi": {"main.py", "app.py"},
	"bottle":  {"app.py", "main.py"},
}

func analyzePython(root string, p *Profile) {
	p.Language = LangPython

	appDir := root
	for _, sub := range candidateSubdirs {
		d := root
		if sub != "" {
			d = filepath.Join(root, sub)
		}
		req := filepath.Join(d, "requirements.txt")
		if _, err := os.Stat(req); err != nil {
			continue
		}
		appDir = d
		p.Dependencies = parseRequirements(req)
		break
	}

	// Dependencies first, indicator files second.
	for _, fw := range pythonFrameworkOrder {
		if p.HasDependency(fw) {
			p.Framework = fw
			break
		}
	}
	if p.Framework == "" {
	scan:
		for _, fw := range pythonFrameworkOrder {
			for _, sub := range candidateSubdirs {
				d := root
				if sub != "" {
					d = filepath.Join(root, sub)
				}
				for _, indicator := range pythonIndicators[fw] {
					if fileExists(d, indicator) {
						p.Framework = fw
						appDir = d
						break scan
					}
				}
			}
		}
	}

	p.AppRoot = relAppRoot(root, appDir)

	switch p.Framework {
	case "flask":
		p.StartCommands = cdPrefix(p.AppRoot, []string{"python app.py", "flask run"})
		p.Port = 5000
	case "django":
		p.StartCommands = cdPrefix(p.AppRoot, []string{"python manage.py runserver 0.0.0.0:8000"})
		p.Port = 8000
	case "fastapi":
		p.StartCommands = cdPrefix(p.AppRoot, []string{"uvicorn main:app --host 0.0.0.0 --port 8000"})
		p.Port = 8000
	default:
		// Plain Python app, including bottle.
		p.StartCommands = cdPrefix(p.AppRoot, []string{"python app.py"})
		p.Port = 5000
	}
}

// parseRequirements extracts package names from a requirements.txt, dropping
// version constraints and comment/blank lines. Order follows the manifest.
func parseRequirements(path string) []string {
	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer f.Close()

	var deps []string
	s := bufio.NewScanner(f)
	for s.Scan() {
		line := strings.TrimSpace(s.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if name := stripVersion(line); name != "" {
			deps = append(deps, name)
		}
	}
	return deps
}
