package analyzer

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestAnalyzeFlask(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "requirements.txt", "flask==2.3.3\n")
	writeFile(t, dir, "app.py", "print('hello localhost:5000')\n")

	p, err := Analyze(dir)
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if p.Language != LangPython {
		t.Errorf("expected language python, got %s", p.Language)
	}
	if p.Framework != "flask" {
		t.Errorf("expected framework flask, got %q", p.Framework)
	}
	if p.Port != 5000 {
		t.Errorf("expected port 5000, got %d", p.Port)
	}
	want := []string{"python app.py", "flask run"}
	if !reflect.DeepEqual(p.StartCommands, want) {
		t.Errorf("expected start commands %v, got %v", want, p.StartCommands)
	}
	if !reflect.DeepEqual(p.Dependencies, []string{"flask"}) {
		t.Errorf("expected dependencies [flask], got %v", p.Dependencies)
	}
	if len(p.FilesToModify) != 1 || p.FilesToModify[0] != "app.py" {
		t.Errorf("expected files to modify [app.py], got %v", p.FilesToModify)
	}
}

func TestAnalyzeDjangoIndicatorOnly(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "manage.py", "#!/usr/bin/env python\n")

	p, err := Analyze(dir)
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if p.Language != LangPython {
		t.Errorf("expected language python, got %s", p.Language)
	}
	if p.Framework != "django" {
		t.Errorf("expected framework django, got %q", p.Framework)
	}
	if p.Port != 8000 {
		t.Errorf("expected port 8000, got %d", p.Port)
	}
	want := []string{"python manage.py runserver 0.0.0.0:8000"}
	if !reflect.DeepEqual(p.StartCommands, want) {
		t.Errorf("expected start commands %v, got %v", want, p.StartCommands)
	}
}

// app.py and main.py indicate flask, fastapi and bottle alike; the fixed
// priority order picks flask. Known-ambiguous by construction of the tables.
func TestAnalyzePythonAmbiguousIndicatorsPrefersFlask(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "app.py", "")
	writeFile(t, dir, "main.py", "")

	p, err := Analyze(dir)
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if p.Framework != "flask" {
		t.Errorf("expected flask from priority order, got %q", p.Framework)
	}
}

func TestAnalyzePythonManifestInSubdir(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "app/requirements.txt", "fastapi>=0.100\nuvicorn\n")
	writeFile(t, dir, "app/main.py", "")

	p, err := Analyze(dir)
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if p.Framework != "fastapi" {
		t.Errorf("expected framework fastapi, got %q", p.Framework)
	}
	if p.AppRoot != "app" {
		t.Errorf("expected app root %q, got %q", "app", p.AppRoot)
	}
	want := []string{"cd app && uvicorn main:app --host 0.0.0.0 --port 8000"}
	if !reflect.DeepEqual(p.StartCommands, want) {
		t.Errorf("expected start commands %v, got %v", want, p.StartCommands)
	}
	if !reflect.DeepEqual(p.Dependencies, []string{"fastapi", "uvicorn"}) {
		t.Errorf("expected dependencies in manifest order, got %v", p.Dependencies)
	}
}

func TestAnalyzeNestedArchiveRoot(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "repo-main/requirements.txt", "flask\n")
	writeFile(t, dir, "repo-main/app.py", "")

	p, err := Analyze(dir)
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if p.Language != LangPython || p.Framework != "flask" {
		t.Errorf("nested root not resolved: language=%s framework=%q", p.Language, p.Framework)
	}
}

func TestAnalyzeJava(t *testing.T) {
	tests := []struct {
		name      string
		files     map[string]string
		framework string
		build     []string
		start     []string
	}{
		{
			name:      "maven",
			files:     map[string]string{"pom.xml": "<project/>"},
			framework: "maven",
			build:     []string{"mvn clean install"},
			start:     []string{"java -jar target/*.jar"},
		},
		{
			name:      "gradle",
			files:     map[string]string{"build.gradle": ""},
			framework: "gradle",
			build:     []string{"./gradlew build"},
			start:     []string{"java -jar build/libs/*.jar"},
		},
		{
			name:      "gradle.properties only",
			files:     map[string]string{"gradle.properties": ""},
			framework: "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			for name, content := range tt.files {
				writeFile(t, dir, name, content)
			}
			p, err := Analyze(dir)
			if err != nil {
				t.Fatalf("Analyze failed: %v", err)
			}
			if p.Language != LangJava {
				t.Errorf("expected language java, got %s", p.Language)
			}
			if p.Framework != tt.framework {
				t.Errorf("expected framework %q, got %q", tt.framework, p.Framework)
			}
			if p.Port != 8080 {
				t.Errorf("expected port 8080, got %d", p.Port)
			}
			if !reflect.DeepEqual(p.BuildCommands, tt.build) {
				t.Errorf("expected build commands %v, got %v", tt.build, p.BuildCommands)
			}
			if !reflect.DeepEqual(p.StartCommands, tt.start) {
				t.Errorf("expected start commands %v, got %v", tt.start, p.StartCommands)
			}
		})
	}
}

func TestAnalyzePHP(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "composer.json", `{"require": {"laravel/laravel": "^10.0", "php": ">=8.1"}}`)

	p, err := Analyze(dir)
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if p.Language != LangPHP {
		t.Errorf("expected language php, got %s", p.Language)
	}
	if p.Framework != "laravel" {
		t.Errorf("expected framework laravel, got %q", p.Framework)
	}
	if p.Port != 8000 {
		t.Errorf("expected port 8000, got %d", p.Port)
	}
	if !reflect.DeepEqual(p.StartCommands, []string{"php -S 0.0.0.0:8000"}) {
		t.Errorf("unexpected start commands %v", p.StartCommands)
	}
	if !reflect.DeepEqual(p.Dependencies, []string{"laravel/laravel", "php"}) {
		t.Errorf("expected dependencies in manifest order, got %v", p.Dependencies)
	}
}

func TestAnalyzeUnknown(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "README.md", "just docs\n")

	p, err := Analyze(dir)
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if p.Language != LangUnknown {
		t.Errorf("expected language unknown, got %s", p.Language)
	}
	if p.Framework != "" || len(p.Dependencies) != 0 || len(p.StartCommands) != 0 {
		t.Errorf("unknown profile should be empty, got %+v", p)
	}
}

func TestAnalyzeMissingRoot(t *testing.T) {
	if _, err := Analyze(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Fatal("expected error for unreadable root")
	}
}
