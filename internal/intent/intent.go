// Package intent extracts structured deployment requirements from free-text
// user input with keyword heuristics.
package intent

import (
	"strings"

	"github.com/arvoai/arvo/internal/strategy"
)

var knownFrameworks = []string{"flask", "django", "fastapi", "express", "react", "vue", "spring", "laravel"}

var knownRegions = []string{"us-east-1", "us-west-2", "eu-west-1", "ap-southeast-1"}

// Parse scans text for a cloud provider, a framework mention, and a region.
// The provider defaults to AWS. The framework is a hint only; detection from
// the repository always wins.
func Parse(text string) strategy.Request {
	lower := strings.ToLower(text)

	req := strategy.Request{Provider: strategy.ProviderAWS}
	switch {
	case strings.Contains(lower, "aws") || strings.Contains(lower, "amazon"):
		req.Provider = strategy.ProviderAWS
	case strings.Contains(lower, "gcp") || strings.Contains(lower, "google"):
		req.Provider = strategy.ProviderGCP
	}

	for _, fw := range knownFrameworks {
		if strings.Contains(lower, fw) {
			req.FrameworkHint = fw
			break
		}
	}
	for _, region := range knownRegions {
		if strings.Contains(lower, region) {
			req.Region = region
			break
		}
	}
	return req
}

// ExtractLocator pulls the first repository locator out of the text: a
// github.com URL or a .zip path. Empty when none is present.
func ExtractLocator(text string) string {
	for _, word := range strings.Fields(text) {
		if strings.Contains(word, "github.com") || strings.HasSuffix(word, ".zip") {
			return strings.Trim(word, `"'`)
		}
	}
	return ""
}
