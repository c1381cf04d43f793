package recap

import (
	"github.com/maxbolgarin/lang"
)

const defaultVersion = "1.0"

// Config represents recap generation configuration
type Config struct {
	Version       string `yaml:"version" env:"RECAP_VERSION"`
	MaxHighlights int    `yaml:"max_highlights" env:"RECAP_MAX_HIGHLIGHTS"`
	MaxFunFacts   int    `yaml:"max_fun_facts" env:"RECAP_MAX_FUN_FACTS"`
}

func (cfg *Config) PrepareAndValidate() error {
	cfg.Version = lang.Check(cfg.Version, defaultVersion)
	cfg.MaxHighlights = lang.Check(cfg.MaxHighlights, defaultMaxHighlights)
	cfg.MaxFunFacts = lang.Check(cfg.MaxFunFacts, defaultMaxFunFacts)
	return nil
}
