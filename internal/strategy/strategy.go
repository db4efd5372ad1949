// Package strategy maps an application profile and the user's deployment
// request to an infrastructure strategy.
package strategy

import "github.com/arvoai/arvo/internal/analyzer"

// Supported cloud providers.
const (
	ProviderAWS = "aws"
	ProviderGCP = "gcp"
)

// Request captures what the user asked for. FrameworkHint is informational
// only and never overrides detection.
type Request struct {
	Provider      string `json:"provider" yaml:"provider"` // aws or gcp
	Region        string `json:"region,omitempty" yaml:"region,omitempty"`
	FrameworkHint string `json:"frameworkHint,omitempty" yaml:"frameworkHint,omitempty"`
}

// Strategy kinds.
const (
	KindSimple        = "simple"
	KindContainerized = "containerized"
	KindServerless    = "serverless"
)

// Strategy is the chosen infrastructure topology. TemplateID keys into the
// renderer's template families.
type Strategy struct {
	Kind        string `json:"kind" yaml:"kind"`
	TemplateID  string `json:"templateId" yaml:"templateId"`
	Description string `json:"description" yaml:"description"`
}

// kinds is static lookup data, one entry per strategy kind.
var kinds = map[string]Strategy{
	KindSimple:        {Kind: KindSimple, TemplateID: "simple_vm", Description: "Single VM deployment"},
	KindContainerized: {Kind: KindContainerized, TemplateID: "docker_vm", Description: "Docker container deployment"},
	KindServerless:    {Kind: KindServerless, TemplateID: "lambda", Description: "Serverless function deployment"},
}

// Frontend/build-oriented frameworks always get a container host.
var containerFrameworks = map[string]bool{"react": true, "vue": true, "nextjs": true}

// Lightweight API frameworks are serverless candidates when the dependency
// list is small.
var serverlessFrameworks = map[string]bool{"fastapi": true, "express": true}

const serverlessDependencyLimit = 10

// Select picks a deployment strategy. It is pure: same inputs, same output.
// The provider only decides which template family renders later, never the
// strategy kind.
func Select(p *analyzer.Profile, _ Request) Strategy {
	kind := KindSimple
	switch {
	case containerFrameworks[p.Framework]:
		kind = KindContainerized
	case serverlessFrameworks[p.Framework] && len(p.Dependencies) > 0 && len(p.Dependencies) < serverlessDependencyLimit:
		kind = KindServerless
	}
	return kinds[kind]
}
