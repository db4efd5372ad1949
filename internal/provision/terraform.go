package provision

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strings"

	"github.com/arvoai/arvo/internal/strategy"
	"github.com/sirupsen/logrus"
)

// Terraform runs the terraform binary against a rendered config directory.
type Terraform struct{}

func (t *Terraform) Apply(ctx context.Context, dir string, req strategy.Request) (*Output, error) {
	varArgs := regionVarArgs(req)
	steps := [][]string{
		{"init", "-no-color"},
		append([]string{"plan", "-no-color"}, varArgs...),
		append([]string{"apply", "-auto-approve", "-no-color"}, varArgs...),
	}
	for _, args := range steps {
		logrus.WithField("step", args[0]).Info("terraform")
		if _, err := runTerraform(ctx, dir, args...); err != nil {
			return nil, &Error{Step: args[0], Err: err}
		}
	}

	raw, err := runTerraform(ctx, dir, "output", "-json")
	if err != nil {
		return nil, &Error{Step: "output", Err: err}
	}
	out, err := parseOutputs(raw)
	if err != nil {
		return nil, &Error{Step: "output", Err: err}
	}
	return out, nil
}

// regionVarArgs overrides the rendered region variable when the request
// names a region; otherwise the variable default applies. Plan and apply
// must carry the same vars or the apply would diverge from the plan.
func regionVarArgs(req strategy.Request) []string {
	if req.Region == "" {
		return nil
	}
	switch req.Provider {
	case strategy.ProviderAWS:
		return []string{"-var", "aws_region=" + req.Region}
	case strategy.ProviderGCP:
		return []string{"-var", "gcp_region=" + req.Region}
	}
	return nil
}

func runTerraform(ctx context.Context, dir string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, "terraform", args...)
	cmd.Dir = dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = strings.TrimSpace(stdout.String())
		}
		return nil, fmt.Errorf("terraform %s: %w: %s", args[0], err, msg)
	}
	return stdout.Bytes(), nil
}

// parseOutputs digs the values out of `terraform output -json`.
func parseOutputs(raw []byte) (*Output, error) {
	var doc map[string]struct {
		Value any `json:"value"`
	}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse terraform outputs: %w", err)
	}

	out := &Output{}
	if v, ok := doc["public_ip"]; ok {
		out.PublicAddress, _ = v.Value.(string)
	}
	if v, ok := doc["instance_id"]; ok {
		out.InstanceID, _ = v.Value.(string)
	}
	if out.PublicAddress == "" {
		return nil, fmt.Errorf("terraform outputs missing public_ip")
	}
	return out, nil
}
