package tfgen

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/arvoai/arvo/internal/analyzer"
	"gopkg.in/yaml.v3"
)

// WriteConfig lays the rendered Terraform out as one file per logical
// section, plus the analyzed profile for later inspection.
func WriteConfig(dir string, cfg *Config, p *analyzer.Profile) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create terraform dir: %w", err)
	}

	files := map[string]string{
		"main.tf":      cfg.Main,
		"variables.tf": cfg.Variables,
		"outputs.tf":   cfg.Outputs,
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", name, err)
		}
	}

	if p != nil {
		data, err := yaml.Marshal(p)
		if err != nil {
			return fmt.Errorf("marshal profile: %w", err)
		}
		if err := os.WriteFile(filepath.Join(dir, "profile.yaml"), data, 0o644); err != nil {
			return fmt.Errorf("write profile.yaml: %w", err)
		}
	}
	return nil
}
