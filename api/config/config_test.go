package config

import (
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "BIND_ADDR", "CAPTAIN_DOMAIN", "LOG_LEVEL",
		"PAGE_SIZE", "UPSTREAM_TIMEOUT", "KUBECONFIG", "ALLOWED_ORIGINS",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(nil)
	require.NoError(t, err)

	assert.Equal(t, "8000", cfg.Port)
	assert.Equal(t, "0.0.0.0", cfg.BindAddr)
	assert.Equal(t, "0.0.0.0:8000", cfg.Addr())
	assert.Equal(t, "warning", cfg.LogLevel)
	assert.Equal(t, int64(100), cfg.PageSize)
	assert.Equal(t, 10*time.Second, cfg.UpstreamTimeout)
	assert.Empty(t, cfg.CaptainDomain)
	assert.Empty(t, cfg.Kubeconfig)
	assert.Empty(t, cfg.AllowedOrigins)
}

func TestLoadFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9999")
	t.Setenv("CAPTAIN_DOMAIN", "captain.example.com")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("PAGE_SIZE", "25")
	t.Setenv("UPSTREAM_TIMEOUT", "3s")
	t.Setenv("KUBECONFIG", "/tmp/kubeconfig")
	t.Setenv("ALLOWED_ORIGINS", "https://status.example.com, ,https://ops.example.com")

	cfg, err := Load(nil)
	require.NoError(t, err)

	assert.Equal(t, "9999", cfg.Port)
	assert.Equal(t, "captain.example.com", cfg.CaptainDomain)
	assert.Equal(t, "DEBUG", cfg.LogLevel)
	assert.Equal(t, int64(25), cfg.PageSize)
	assert.Equal(t, 3*time.Second, cfg.UpstreamTimeout)
	assert.Empty(t, cfg.Kubeconfig, "$KUBECONFIG is resolved by the client loading rules")
	assert.Equal(t, []string{"https://status.example.com", "https://ops.example.com"}, cfg.AllowedOrigins)
}

func TestLoadFlagsOverrideEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9999")
	t.Setenv("PAGE_SIZE", "25")

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	BindFlags(fs)
	require.NoError(t, fs.Parse([]string{
		"--port", "7000", "--page-size", "0", "--bind", "127.0.0.1", "--kubeconfig", "/etc/argocd-status/kubeconfig",
	}))

	cfg, err := Load(fs)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:7000", cfg.Addr())
	assert.Equal(t, int64(0), cfg.PageSize)
	assert.Equal(t, "/etc/argocd-status/kubeconfig", cfg.Kubeconfig)
}

func TestLoadUnsetFlagsKeepEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9999")

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	BindFlags(fs)
	require.NoError(t, fs.Parse(nil))

	cfg, err := Load(fs)
	require.NoError(t, err)
	assert.Equal(t, "9999", cfg.Port)
	assert.Equal(t, int64(100), cfg.PageSize)
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"negative page size", "PAGE_SIZE", "-1"},
		{"bad duration", "UPSTREAM_TIMEOUT", "soon"},
		{"zero timeout", "UPSTREAM_TIMEOUT", "0s"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.val)

			_, err := Load(nil)
			assert.Error(t, err)
		})
	}
}
