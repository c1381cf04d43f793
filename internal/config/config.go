// Package config assembles the application configuration from file and
// environment, delegating validation to each component's own config.
package config

import (
	"github.com/maxbolgarin/devrecap/internal/provider"
	"github.com/maxbolgarin/devrecap/internal/recap"
	"github.com/maxbolgarin/devrecap/internal/server"
	"github.com/maxbolgarin/devrecap/internal/storage"
	"github.com/maxbolgarin/errm"
)

// Config represents the main application configuration
type Config struct {
	Server   server.Config   `yaml:"server"`
	Provider provider.Config `yaml:"provider"`
	Storage  storage.Config  `yaml:"storage"`
	Recap    recap.Config    `yaml:"recap"`
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Provider.Token == "" {
		return ErrMissingProviderToken
	}
	if c.Provider.Type == "" {
		return ErrMissingProviderType
	}
	if err := c.Server.PrepareAndValidate(); err != nil {
		return errm.Wrap(err, "server")
	}
	if err := c.Provider.PrepareAndValidate(); err != nil {
		return errm.Wrap(err, "provider")
	}
	if err := c.Storage.PrepareAndValidate(); err != nil {
		return errm.Wrap(err, "storage")
	}
	if err := c.Recap.PrepareAndValidate(); err != nil {
		return errm.Wrap(err, "recap")
	}
	return nil
}
