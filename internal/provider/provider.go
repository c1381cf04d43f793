package provider

import (
	"github.com/maxbolgarin/devrecap/internal/model"
	"github.com/maxbolgarin/devrecap/internal/provider/azure"
	"github.com/maxbolgarin/devrecap/internal/provider/github"
	"github.com/maxbolgarin/devrecap/internal/provider/gitlab"
	"github.com/maxbolgarin/erro"
)

// NewProvider creates a new activity source based on the configuration
func NewProvider(cfg Config) (model.SourceProvider, error) {
	if err := cfg.PrepareAndValidate(); err != nil {
		return nil, erro.Wrap(err, "validate config")
	}

	cfgForProvider := model.ProviderConfig{
		BaseURL:      cfg.BaseURL,
		Token:        cfg.Token,
		Organization: cfg.Organization,
	}

	var provider model.SourceProvider
	var err error

	switch cfg.Type {
	case Azure:
		provider, err = azure.New(cfgForProvider)
	case GitHub:
		provider, err = github.New(cfgForProvider)
	case GitLab:
		provider, err = gitlab.New(cfgForProvider)
	default:
		return nil, erro.New("unsupported provider type: %s", cfg.Type)
	}
	if err != nil {
		return nil, erro.Wrap(err, "failed to create provider")
	}

	return provider, nil
}
