package analyzer

import (
	"reflect"
	"testing"
)

func TestAnalyzeNodeJSExpress(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "package.json", `{
  "name": "demo",
  "scripts": {"start": "node server.js"},
  "dependencies": {"express": "^4.18.0"}
}`)

	p, err := Analyze(dir)
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if p.Language != LangNodeJS {
		t.Errorf("expected language nodejs, got %s", p.Language)
	}
	if p.Framework != "express" {
		t.Errorf("expected framework express, got %q", p.Framework)
	}
	if p.Port != 3000 {
		t.Errorf("expected port 3000, got %d", p.Port)
	}
	want := []string{"npm start", "node server.js"}
	if !reflect.DeepEqual(p.StartCommands, want) {
		t.Errorf("expected start commands %v, got %v", want, p.StartCommands)
	}
}

func TestAnalyzeNodeJSDevScriptOnly(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "package.json", `{"scripts": {"dev": "vite"}, "dependencies": {"vue": "^3"}}`)

	p, err := Analyze(dir)
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if p.Framework != "vue" {
		t.Errorf("expected framework vue, got %q", p.Framework)
	}
	if !reflect.DeepEqual(p.StartCommands, []string{"npm run dev"}) {
		t.Errorf("unexpected start commands %v", p.StartCommands)
	}
}

func TestAnalyzeNodeJSFrameworkPriority(t *testing.T) {
	// express outranks react when both are present.
	dir := t.TempDir()
	writeFile(t, dir, "package.json", `{"dependencies": {"react": "^18", "express": "^4"}}`)

	p, err := Analyze(dir)
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if p.Framework != "express" {
		t.Errorf("expected express from priority order, got %q", p.Framework)
	}
}

// A broken manifest must not abort the analysis: the language classification
// stands and the rest falls back to defaults.
func TestAnalyzeNodeJSMalformedManifest(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "package.json", `{"dependencies": {`)

	p, err := Analyze(dir)
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if p.Language != LangNodeJS {
		t.Errorf("expected language nodejs, got %s", p.Language)
	}
	if p.Framework != "" {
		t.Errorf("expected no framework, got %q", p.Framework)
	}
	if p.Port != 3000 {
		t.Errorf("expected default port 3000, got %d", p.Port)
	}
	if len(p.Dependencies) != 0 {
		t.Errorf("expected no dependencies, got %v", p.Dependencies)
	}
}

func TestParsePackageJSONDependencyOrder(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "package.json", `{
  "dependencies": {"zlib-wrapper": "1", "axios": "1", "morgan": "1"}
}`)

	pkg, err := parsePackageJSON(dir + "/package.json")
	if err != nil {
		t.Fatalf("parsePackageJSON failed: %v", err)
	}
	want := []string{"zlib-wrapper", "axios", "morgan"}
	if !reflect.DeepEqual(pkg.dependencies, want) {
		t.Errorf("expected manifest order %v, got %v", want, pkg.dependencies)
	}
}
