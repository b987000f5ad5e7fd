package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("test-version")
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1", cfg.BindAddr)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "local", cfg.Env)
	assert.Equal(t, "test-version", cfg.Version)
	assert.Equal(t, "definitions.yaml", cfg.DefinitionsPath)
	assert.Equal(t, "", cfg.ExportPath)
	assert.Equal(t, AmbiguityPolicyAll, cfg.AmbiguityPolicy)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DEFINITIONS_PATH", "/etc/querygraph/definitions.yaml")
	t.Setenv("AMBIGUITY_POLICY", AmbiguityPolicyRequireContext)
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load("dev")
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "/etc/querygraph/definitions.yaml", cfg.DefinitionsPath)
	assert.Equal(t, AmbiguityPolicyRequireContext, cfg.AmbiguityPolicy)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoad_InvalidAmbiguityPolicy(t *testing.T) {
	t.Setenv("AMBIGUITY_POLICY", "strict")

	_, err := Load("dev")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ambiguity_policy")
}

func TestAddr(t *testing.T) {
	cfg := &Config{BindAddr: "0.0.0.0", Port: "8081"}
	assert.Equal(t, "0.0.0.0:8081", cfg.Addr())
}
