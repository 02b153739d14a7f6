package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Env holds configuration read from environment variables. Unset variables
// leave the corresponding config value untouched
type Env struct {
	PrivateKey  string `env:"PRIVATE_KEY"`
	Backend     string `env:"IRYSNAME_BACKEND"`
	GatewayURL  string `env:"IRYS_GATEWAY_URL"`
	GraphQLURL  string `env:"IRYS_GRAPHQL_URL"`
	UploaderURL string `env:"IRYS_UPLOADER_URL"`
	Port        int    `env:"PORT"`
	LogLevel    string `env:"IRYSNAME_LOG_LEVEL"`
}

// ParseEnv loads Env from the process environment
func ParseEnv() (Env, error) {
	e := Env{}
	if err := env.Parse(&e); err != nil {
		return e, fmt.Errorf("parse env: %w", err)
	}
	return e, nil
}

// ApplyEnv overlays environment variables onto cfg
func (cfg *Config) ApplyEnv() error {
	e, err := ParseEnv()
	if err != nil {
		return err
	}
	cfg.applyEnv(e)
	return nil
}

func (cfg *Config) applyEnv(e Env) {
	if cfg.Uploader == nil {
		cfg.Uploader = DefaultUploader()
	}
	if cfg.Registry == nil {
		cfg.Registry = DefaultRegistry()
	}
	if cfg.API == nil {
		cfg.API = DefaultAPI()
	}
	if cfg.Logging == nil {
		cfg.Logging = DefaultLogging()
	}

	if e.PrivateKey != "" {
		cfg.Uploader.PrivateKey = e.PrivateKey
	}
	if e.Backend != "" {
		cfg.Registry.Backend = e.Backend
	}
	if e.GatewayURL != "" {
		cfg.Registry.GatewayURL = e.GatewayURL
	}
	if e.GraphQLURL != "" {
		cfg.Registry.GraphQLURL = e.GraphQLURL
	}
	if e.UploaderURL != "" {
		cfg.Registry.UploaderURL = e.UploaderURL
	}
	if e.Port != 0 {
		cfg.API.Port = e.Port
	}
	if e.LogLevel != "" {
		for name := range cfg.Logging.Levels {
			cfg.Logging.Levels[name] = e.LogLevel
		}
	}
}
