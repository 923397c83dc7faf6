package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultsWithoutFile(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ":8082", cfg.ListenAddr)
	assert.Equal(t, 30*time.Second, cfg.PollInterval)
	assert.Equal(t, 10*time.Minute, cfg.CustomerTimeout)
	assert.Equal(t, 24*time.Hour, cfg.StaffTimeout)
}

func TestMissingFileIsNotAnError(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nao-existe.yaml"))
	require.NoError(t, err)
	assert.NotEmpty(t, cfg.APIBaseURL)
}

func TestYAMLFileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "api_base_url: https://api.artecomcarinho.com.br\nredis_addr: localhost:6379\npoll_interval: 15s\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "https://api.artecomcarinho.com.br", cfg.APIBaseURL)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.Equal(t, 15*time.Second, cfg.PollInterval)
}

func TestEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("api_base_url: http://do-arquivo\n"), 0644))
	t.Setenv("API_BASE_URL", "http://do-ambiente")
	t.Setenv("CUSTOMER_TIMEOUT", "5m")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "http://do-ambiente", cfg.APIBaseURL)
	assert.Equal(t, 5*time.Minute, cfg.CustomerTimeout)
}

func TestPortEnvSetsListenAddr(t *testing.T) {
	t.Setenv("PORT", "10000")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, ":10000", cfg.ListenAddr)
}

func TestInvalidYAMLFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("api_base_url: [isto não"), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}
