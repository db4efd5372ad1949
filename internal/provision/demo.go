package provision

import (
	"context"

	"github.com/arvoai/arvo/internal/strategy"
	"github.com/sirupsen/logrus"
)

// Fixed synthetic results for runs without cloud credentials.
const (
	DemoPublicAddress = "52.23.45.67"
	DemoInstanceID    = "i-1234567890abcdef0"
)

// Demo is an Executor that never contacts a provider; it returns the same
// synthetic address every time so the rest of the pipeline can be exercised.
type Demo struct{}

func (Demo) Apply(_ context.Context, dir string, _ strategy.Request) (*Output, error) {
	logrus.WithField("dir", dir).Info("demo mode: skipping terraform, no resources created")
	return &Output{PublicAddress: DemoPublicAddress, InstanceID: DemoInstanceID}, nil
}
