package config

import (
	"github.com/caarlos0/env/v11"
	"github.com/pkg/errors"
)

// EnvPrefix prefixes every environment variable read by ApplyEnv.
const EnvPrefix = "HARNESS_"

// ApplyEnv overlays HARNESS_* environment variables onto cfg. Variables that
// are not set leave the current value alone.
func ApplyEnv(cfg *Config) error {
	return applyEnv(cfg, env.Options{Prefix: EnvPrefix})
}

// ApplyEnvFrom is ApplyEnv reading from vars instead of the process
// environment.
func ApplyEnvFrom(cfg *Config, vars map[string]string) error {
	return applyEnv(cfg, env.Options{Prefix: EnvPrefix, Environment: vars})
}

func applyEnv(cfg *Config, opts env.Options) error {
	if err := env.ParseWithOptions(cfg, opts); err != nil {
		return errors.Wrap(err, "reading environment")
	}
	return nil
}

// Resolve loads path, applies the environment and validates the result.
func Resolve(path string) (Config, error) {
	cfg, err := Load(path)
	if err != nil {
		return cfg, err
	}
	if err := ApplyEnv(&cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}
