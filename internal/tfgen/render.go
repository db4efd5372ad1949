// Package tfgen renders provider-specific Terraform for a deployment. Output
// is deterministic: no timestamps, no generated IDs.
package tfgen

import (
	"fmt"

	"github.com/arvoai/arvo/internal/analyzer"
	"github.com/arvoai/arvo/internal/strategy"
)

// UnsupportedProviderError reports a provider outside the supported set.
type UnsupportedProviderError struct {
	Provider string
}

func (e *UnsupportedProviderError) Error() string {
	return fmt.Sprintf("unsupported provider: %q (supported: aws, gcp)", e.Provider)
}

// Config is the rendered Terraform, one string per file.
type Config struct {
	Main      string
	Variables string
	Outputs   string
}

// Render produces the Terraform for a deployment. The strategy kind selects
// the recorded template family only; the rendered body currently does not
// differ per kind.
func Render(st strategy.Strategy, p *analyzer.Profile, req strategy.Request) (*Config, error) {
	switch req.Provider {
	case strategy.ProviderAWS:
		return &Config{
			Main:      awsMain(p),
			Variables: awsVariables,
			Outputs:   awsOutputs,
		}, nil
	case strategy.ProviderGCP:
		return &Config{
			Main:      gcpMain(p),
			Variables: gcpVariables,
			Outputs:   gcpOutputs,
		}, nil
	default:
		return nil, &UnsupportedProviderError{Provider: req.Provider}
	}
}
