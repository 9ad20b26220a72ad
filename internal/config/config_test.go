package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()

	vars := map[string]string{
		"ORGANIZATIONS_PRIMARY__ENV":                    "local",
		"ORGANIZATIONS_SERVER__PORT":                    "8080",
		"ORGANIZATIONS_SERVER__READ_TIMEOUT":            "30",
		"ORGANIZATIONS_SERVER__WRITE_TIMEOUT":           "30",
		"ORGANIZATIONS_SERVER__IDLE_TIMEOUT":            "60",
		"ORGANIZATIONS_SERVER__CORS_ALLOWED_ORIGINS":    "http://localhost:3000, https://app.example.com",
		"ORGANIZATIONS_DATABASE__HOST":                  "localhost",
		"ORGANIZATIONS_DATABASE__PORT":                  "5432",
		"ORGANIZATIONS_DATABASE__USER":                  "postgres",
		"ORGANIZATIONS_DATABASE__PASSWORD":              "postgres",
		"ORGANIZATIONS_DATABASE__NAME":                  "organizations",
		"ORGANIZATIONS_DATABASE__SSL_MODE":              "disable",
		"ORGANIZATIONS_DATABASE__MAX_OPEN_CONNS":        "25",
		"ORGANIZATIONS_DATABASE__MAX_IDLE_CONNS":        "25",
		"ORGANIZATIONS_DATABASE__CONN_MAX_LIFETIME":     "300",
		"ORGANIZATIONS_DATABASE__CONN_MAX_IDLE_TIME":    "300",
		"ORGANIZATIONS_REDIS__ADDRESS":                  "localhost:6379",
	}
	for k, v := range vars {
		t.Setenv(k, v)
	}
}

func TestLoadConfig(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "local", cfg.Primary.Env)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, []string{"http://localhost:3000", "https://app.example.com"}, cfg.Server.CORSAllowedOrigins)
	assert.False(t, cfg.Auth.Enabled())

	require.NotNil(t, cfg.Observability)
	assert.Equal(t, ServiceName, cfg.Observability.ServiceName)
	assert.Equal(t, "local", cfg.Observability.Environment)
	assert.Equal(t, "info", cfg.Observability.GetLogLevel())
}

func TestLoadConfigMissingRequired(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("ORGANIZATIONS_DATABASE__HOST", "")

	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestLoadConfigInvalidNotifyEmail(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("ORGANIZATIONS_INTEGRATION__NOTIFY_EMAIL", "not-an-email")

	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestObservabilityValidate(t *testing.T) {
	cfg := DefaultObservabilityConfig()
	require.NoError(t, cfg.Validate())

	cfg.Logging.Level = "verbose"
	assert.Error(t, cfg.Validate())

	cfg.Logging.Level = "debug"
	cfg.Logging.SlowQueryThreshold = -time.Second
	assert.Error(t, cfg.Validate())
}

func TestGetLogLevelDefaults(t *testing.T) {
	cfg := &ObservabilityConfig{Environment: "production"}
	assert.Equal(t, "info", cfg.GetLogLevel())

	cfg.Environment = "development"
	assert.Equal(t, "debug", cfg.GetLogLevel())

	cfg.Logging.Level = "warn"
	assert.Equal(t, "warn", cfg.GetLogLevel())
}
