package app

import (
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/maxbolgarin/devrecap/internal/config"
	"github.com/maxbolgarin/errm"
)

// LoadConfig reads configuration from the YAML file at path, falling back
// to environment variables when no path is given.
func LoadConfig(path string) (config.Config, error) {
	var cfg config.Config

	if path != "" {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return cfg, errm.Wrap(err, "failed to read config file")
		}
	} else {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return cfg, errm.Wrap(err, "failed to read environment")
		}
	}

	if err := cfg.Validate(); err != nil {
		return cfg, errm.Wrap(err, "invalid config")
	}

	return cfg, nil
}
