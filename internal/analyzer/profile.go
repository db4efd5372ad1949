package analyzer

import "strings"

// Languages the analyzer can classify. Detection is attempted in this order
// and the first match wins.
const (
	LangPython  = "python"
	LangNodeJS  = "nodejs"
	LangJava    = "java"
	LangPHP     = "php"
	LangUnknown = "unknown"
)

// Profile is the result of analyzing a repository tree. It is built once per
// analysis and not mutated afterwards.
type Profile struct {
	Language      string   `json:"language" yaml:"language"`                           // python, nodejs, java, php, unknown
	Framework     string   `json:"framework,omitempty" yaml:"framework,omitempty"`     // flask, express, maven, laravel, ...
	Dependencies  []string `json:"dependencies,omitempty" yaml:"dependencies,omitempty"` // manifest order
	StartCommands []string `json:"startCommands,omitempty" yaml:"startCommands,omitempty"`
	BuildCommands []string `json:"buildCommands,omitempty" yaml:"buildCommands,omitempty"`
	Port          int      `json:"port" yaml:"port"`
	AppRoot       string   `json:"appRoot,omitempty" yaml:"appRoot,omitempty"` // relative to repo root, "" when the app lives at the root
	FilesToModify []string `json:"filesToModify,omitempty" yaml:"filesToModify,omitempty"`
}

// HasDependency reports whether name appears among the parsed dependencies,
// case-insensitively.
func (p *Profile) HasDependency(name string) bool {
	for _, d := range p.Dependencies {
		if strings.EqualFold(d, name) {
			return true
		}
	}
	return false
}
