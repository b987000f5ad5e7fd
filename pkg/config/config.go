package config

import (
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds all configuration for querygraph-engine.
// Configuration can come from YAML file (config.yaml) or environment
// variables. Environment variables always override YAML values.
type Config struct {
	// Server configuration
	BindAddr string `yaml:"bind_addr" env:"BIND_ADDR" env-default:"127.0.0.1"`
	Port     string `yaml:"port" env:"PORT" env-default:"8080"`
	Env      string `yaml:"env" env:"ENVIRONMENT" env-default:"local"`
	Version  string `yaml:"-"` // Set at load time, not from config

	// DefinitionsPath is the YAML file holding table and relationship
	// declarations. The catalog and graph are built from it once at
	// startup and never mutated.
	DefinitionsPath string `yaml:"definitions_path" env:"DEFINITIONS_PATH" env-default:"definitions.yaml"`

	// ExportPath, when set, is where the JSON graph export is written at
	// startup for external visualization tools. Empty disables the write.
	ExportPath string `yaml:"export_path" env:"EXPORT_PATH" env-default:""`

	// AmbiguityPolicy selects resolver behavior for table pairs with
	// multiple context-specific edges and no requested context:
	// "all" returns every candidate edge, "require_context" fails the
	// request so the caller can ask the user to disambiguate.
	AmbiguityPolicy string `yaml:"ambiguity_policy" env:"AMBIGUITY_POLICY" env-default:"all"`

	// LogLevel controls zap logging verbosity: debug, info, warn, error.
	LogLevel string `yaml:"log_level" env:"LOG_LEVEL" env-default:"info"`
}

// Valid ambiguity policy values.
const (
	AmbiguityPolicyAll            = "all"
	AmbiguityPolicyRequireContext = "require_context"
)

// Load reads configuration from config.yaml with environment variable
// overrides. The version parameter is injected at build time. A missing
// config.yaml is not an error; env vars and defaults apply.
func Load(version string) (*Config, error) {
	cfg := &Config{
		Version: version,
	}

	if _, err := os.Stat("config.yaml"); err == nil {
		if err := cleanenv.ReadConfig("config.yaml", cfg); err != nil {
			return nil, fmt.Errorf("failed to read config.yaml: %w", err)
		}
	} else {
		if err := cleanenv.ReadEnv(cfg); err != nil {
			return nil, fmt.Errorf("failed to read environment: %w", err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validate checks fields that have a closed value set.
func (c *Config) validate() error {
	switch c.AmbiguityPolicy {
	case AmbiguityPolicyAll, AmbiguityPolicyRequireContext:
	default:
		return fmt.Errorf("invalid ambiguity_policy %q (want %q or %q)",
			c.AmbiguityPolicy, AmbiguityPolicyAll, AmbiguityPolicyRequireContext)
	}
	return nil
}

// Addr returns the listen address for the HTTP server.
func (c *Config) Addr() string {
	return c.BindAddr + ":" + c.Port
}
