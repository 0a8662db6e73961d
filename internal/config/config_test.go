package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("CHUTES_API_TOKEN", "test-token")
	t.Setenv("CHUTES_API_URL", "")
	t.Setenv("PORT", "")
	t.Setenv("HOST", "")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "test-token", cfg.Upstream.APIToken)
	assert.Equal(t, DefaultUpstreamURL, cfg.Upstream.URL)
	assert.Equal(t, "8000", cfg.Server.Port)
	assert.Equal(t, ":8000", cfg.Addr())
	assert.False(t, cfg.Server.Debug)
	assert.False(t, cfg.Upstream.HeaderPassthrough)
}

func TestLoadMissingToken(t *testing.T) {
	t.Setenv("CHUTES_API_TOKEN", "")

	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CHUTES_API_TOKEN")
}

func TestLoadFileOverlay(t *testing.T) {
	t.Setenv("CHUTES_API_TOKEN", "")
	t.Setenv("PORT", "")

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yamlBody := `
port: "9100"
api_token: file-token
upstream_url: https://example.test/v1/chat/completions
header_passthrough: true
response_header_timeout_sec: 45
`
	require.NoError(t, os.WriteFile(path, []byte(yamlBody), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "9100", cfg.Server.Port)
	assert.Equal(t, "file-token", cfg.Upstream.APIToken)
	assert.Equal(t, "https://example.test/v1/chat/completions", cfg.Upstream.URL)
	assert.True(t, cfg.Upstream.HeaderPassthrough)
	assert.Equal(t, 45, cfg.Upstream.ResponseHeaderTimeoutSec)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	t.Setenv("CHUTES_API_TOKEN", "env-token")
	t.Setenv("PORT", "9200")

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("port: \"9100\"\napi_token: file-token\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "9200", cfg.Server.Port)
	assert.Equal(t, "env-token", cfg.Upstream.APIToken)
}

func TestLoadMissingFileIsNotFatal(t *testing.T) {
	t.Setenv("CHUTES_API_TOKEN", "test-token")

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "test-token", cfg.Upstream.APIToken)
}

func TestLoadMalformedFile(t *testing.T) {
	t.Setenv("CHUTES_API_TOKEN", "test-token")

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("port: [not, a, string"), 0o600))

	_, err := Load(path)
	require.Error(t, err)
}

func TestDebugToggleFromEnv(t *testing.T) {
	for _, tc := range []struct {
		value string
		want  bool
	}{
		{"1", true},
		{"true", true},
		{"on", true},
		{"0", false},
		{"off", false},
	} {
		t.Run(tc.value, func(t *testing.T) {
			t.Setenv("CHUTES_API_TOKEN", "test-token")
			t.Setenv("DEBUG", tc.value)

			cfg, err := Load("")
			require.NoError(t, err)
			assert.Equal(t, tc.want, cfg.Server.Debug)
		})
	}
}
