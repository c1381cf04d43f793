package provider

import (
	"slices"

	"github.com/maxbolgarin/errm"
)

type ProviderType string

// SupportedProviderTypes defines the supported activity source types
const (
	Azure  ProviderType = "azure"
	GitHub ProviderType = "github"
	GitLab ProviderType = "gitlab"
)

var supportedProviderTypes = []ProviderType{Azure, GitHub, GitLab}

// Config represents activity source configuration
type Config struct {
	Type         ProviderType `yaml:"type" env:"PROVIDER_TYPE"`
	BaseURL      string       `yaml:"base_url" env:"PROVIDER_BASE_URL"`
	Token        string       `yaml:"token" env:"PROVIDER_TOKEN"`
	Organization string       `yaml:"organization" env:"PROVIDER_ORGANIZATION"`
}

func (c *Config) PrepareAndValidate() error {
	if c.Token == "" {
		return errm.New("token is required")
	}

	if c.Type == "" || !slices.Contains(supportedProviderTypes, c.Type) {
		return errm.New("invalid provider type: %s", c.Type)
	}

	if c.Type == Azure && c.Organization == "" {
		return errm.New("organization is required for azure provider")
	}

	return nil
}
