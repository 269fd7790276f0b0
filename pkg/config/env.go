package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Runtime holds process settings that do not describe the reactor.
type Runtime struct {
	OutputDir string `env:"KUGEL_OUTPUT_DIR" envDefault:"."`
	CoreFile  string `env:"KUGEL_CORE_FILE"`
	LogLevel  string `env:"KUGEL_LOG_LEVEL" envDefault:"info"`
	Zstd      bool   `env:"KUGEL_ZSTD"`
	Addr      string `env:"KUGEL_ADDR" envDefault:":8080"`
}

// ParseEnv parses environment variables into target.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// LoadRuntime reads runtime settings from the environment.
func LoadRuntime() (Runtime, error) {
	var rt Runtime
	if err := ParseEnv(&rt); err != nil {
		return Runtime{}, err
	}
	return rt, nil
}

// CoreFileName returns the deck file name: the runtime override if set,
// otherwise the configured name.
func (rt Runtime) CoreFileName(cfg *ReactorConfig) string {
	if rt.CoreFile != "" {
		return rt.CoreFile
	}
	return cfg.Output.CoreFileName
}
