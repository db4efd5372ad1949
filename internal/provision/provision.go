// Package provision applies rendered Terraform and reports where the
// application ended up.
package provision

import (
	"context"
	"fmt"

	"github.com/arvoai/arvo/internal/strategy"
)

// Output is what the caller needs after infrastructure exists.
type Output struct {
	PublicAddress string `json:"publicAddress"`
	InstanceID    string `json:"instanceId"`
}

// Error is a provider-reported provisioning failure.
type Error struct {
	Step string // init, plan, apply, output
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("provisioning failed at %s: %v", e.Step, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Executor provisions the Terraform in dir. Implementations: Terraform (real)
// and Demo (synthetic, no provider contact).
type Executor interface {
	Apply(ctx context.Context, dir string, req strategy.Request) (*Output, error)
}
