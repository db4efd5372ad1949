// Package deployer sequences the deployment pipeline: fetch, analyze, select
// a strategy, render Terraform, provision, and rewrite local endpoints.
package deployer

import (
	"context"
	"fmt"
	"os"

	"github.com/arvoai/arvo/internal/analyzer"
	"github.com/arvoai/arvo/internal/history"
	"github.com/arvoai/arvo/internal/provision"
	"github.com/arvoai/arvo/internal/rewrite"
	"github.com/arvoai/arvo/internal/strategy"
	"github.com/arvoai/arvo/internal/tfgen"
	"github.com/sirupsen/logrus"
)

// Fetcher materializes a repository locator as a local directory.
type Fetcher interface {
	Fetch(ctx context.Context, locator string) (string, error)
}

// Waiter optionally confirms the provisioned instance came up and can report
// a fresher public address.
type Waiter interface {
	WaitRunning(ctx context.Context, instanceID string) (string, error)
}

// StageError marks which pipeline stage failed; later stages never ran.
type StageError struct {
	Stage string // fetch, analyze, render, provision, rewrite
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s stage failed: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }

// Result is the complete outcome of one deployment. It is only ever returned
// whole; a failed pipeline yields an error instead.
type Result struct {
	Profile       *analyzer.Profile `json:"profile"`
	Strategy      strategy.Strategy `json:"strategy"`
	TemplateDir   string            `json:"templateDir"`
	PublicAddress string            `json:"publicAddress"`
	InstanceID    string            `json:"instanceId"`
	ModifiedFiles []string          `json:"modifiedFiles,omitempty"`
	AppURL        string            `json:"appUrl"`
}

// Deployer wires the pipeline's collaborators together. History and Waiter
// are optional.
type Deployer struct {
	Fetcher  Fetcher
	Executor provision.Executor
	Waiter   Waiter
	History  *history.Store
	WorkDir  string // where rendered Terraform is written
}

// Deploy runs the full pipeline for one request. Each run is independent:
// fresh profile, strategy and template records, no shared state.
func (d *Deployer) Deploy(ctx context.Context, locator string, req strategy.Request) (*Result, error) {
	res, err := d.run(ctx, locator, req)
	d.record(ctx, locator, req, res, err)
	return res, err
}

func (d *Deployer) run(ctx context.Context, locator string, req strategy.Request) (*Result, error) {
	log := logrus.WithField("locator", locator)
	log.Info("starting deployment")

	repoDir, err := d.Fetcher.Fetch(ctx, locator)
	if err != nil {
		return nil, &StageError{Stage: "fetch", Err: err}
	}
	defer os.RemoveAll(repoDir)

	profile, err := analyzer.Analyze(repoDir)
	if err != nil {
		return nil, &StageError{Stage: "analyze", Err: err}
	}
	log.WithFields(logrus.Fields{
		"language": profile.Language, "framework": profile.Framework, "port": profile.Port,
	}).Info("analysis complete")
	if req.FrameworkHint != "" && req.FrameworkHint != profile.Framework {
		log.WithField("hint", req.FrameworkHint).Debug("framework hint differs from detection; detection wins")
	}

	st := strategy.Select(profile, req)
	log.WithFields(logrus.Fields{"strategy": st.Kind, "template": st.TemplateID}).Info("strategy selected")

	cfg, err := tfgen.Render(st, profile, req)
	if err != nil {
		return nil, &StageError{Stage: "render", Err: err}
	}
	dir := d.WorkDir
	if dir == "" {
		dir = "terraform"
	}
	if err := tfgen.WriteConfig(dir, cfg, profile); err != nil {
		return nil, &StageError{Stage: "render", Err: err}
	}

	out, err := d.Executor.Apply(ctx, dir, req)
	if err != nil {
		return nil, &StageError{Stage: "provision", Err: err}
	}
	addr := out.PublicAddress

	// Readiness check is best-effort: a slow instance should not fail a
	// deployment that already has an address.
	if d.Waiter != nil && out.InstanceID != "" {
		if ip, err := d.Waiter.WaitRunning(ctx, out.InstanceID); err != nil {
			log.WithError(err).Warn("instance readiness check failed")
		} else if ip != "" {
			addr = ip
		}
	}

	modified, err := rewrite.Rewrite(repoDir, addr)
	if err != nil {
		return nil, &StageError{Stage: "rewrite", Err: err}
	}
	log.WithField("files", len(modified)).Info("endpoint rewrite complete")

	return &Result{
		Profile:       profile,
		Strategy:      st,
		TemplateDir:   dir,
		PublicAddress: addr,
		InstanceID:    out.InstanceID,
		ModifiedFiles: modified,
		AppURL:        fmt.Sprintf("http://%s:%d", addr, profile.Port),
	}, nil
}

// record persists the outcome; failures here are logged, never surfaced.
func (d *Deployer) record(ctx context.Context, locator string, req strategy.Request, res *Result, runErr error) {
	if d.History == nil {
		return
	}
	rec := &history.Record{
		Locator:  locator,
		Provider: req.Provider,
		Region:   req.Region,
		Success:  runErr == nil,
	}
	if runErr != nil {
		rec.Error = runErr.Error()
	}
	if res != nil {
		rec.Language = res.Profile.Language
		rec.Framework = res.Profile.Framework
		rec.Strategy = res.Strategy.Kind
		rec.TemplateID = res.Strategy.TemplateID
		rec.Address = res.PublicAddress
		rec.URL = res.AppURL
	}
	if _, err := d.History.Add(ctx, rec); err != nil {
		logrus.WithError(err).Warn("could not record deployment history")
	}
}
