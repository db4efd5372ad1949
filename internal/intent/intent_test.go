package intent

import (
	"testing"

	"github.com/arvoai/arvo/internal/strategy"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		text string
		want strategy.Request
	}{
		{
			name: "defaults to aws",
			text: "deploy this repo please",
			want: strategy.Request{Provider: strategy.ProviderAWS},
		},
		{
			name: "explicit gcp",
			text: "put this on GCP for me",
			want: strategy.Request{Provider: strategy.ProviderGCP},
		},
		{
			name: "google means gcp",
			text: "deploy on google cloud",
			want: strategy.Request{Provider: strategy.ProviderGCP},
		},
		{
			name: "aws outranks a google mention",
			text: "deploy my google-maps app on aws",
			want: strategy.Request{Provider: strategy.ProviderAWS},
		},
		{
			name: "framework hint",
			text: "deploy this flask app on amazon",
			want: strategy.Request{Provider: strategy.ProviderAWS, FrameworkHint: "flask"},
		},
		{
			name: "region",
			text: "deploy to aws us-west-2",
			want: strategy.Request{Provider: strategy.ProviderAWS, Region: "us-west-2"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Parse(tt.text); got != tt.want {
				t.Errorf("Parse(%q) = %+v, want %+v", tt.text, got, tt.want)
			}
		})
	}
}

func TestExtractLocator(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"deploy https://github.com/user/repo on aws", "https://github.com/user/repo"},
		{"use ./bundle.zip please", "./bundle.zip"},
		{"deploy something", ""},
		{`deploy "https://github.com/user/repo"`, "https://github.com/user/repo"},
	}
	for _, tt := range tests {
		if got := ExtractLocator(tt.text); got != tt.want {
			t.Errorf("ExtractLocator(%q) = %q, want %q", tt.text, got, tt.want)
		}
	}
}
