package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/MrSnakeDoc/arbcheck/internal/globalconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv(globalconfig.ConfigDirEnv, dir)
	return dir
}

func TestLoad_Defaults(t *testing.T) {
	dir := isolate(t)

	cfg, err := Load("", nil)
	require.NoError(t, err)

	assert.Equal(t, globalconfig.DefaultBaseURL, cfg.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, 5*time.Second, cfg.DeviceTimeout)
	assert.Equal(t, filepath.Join(dir, "settings.yml"), cfg.SettingsPath)
	assert.True(t, cfg.NotifyTerminal)
	assert.Empty(t, cfg.NotifyCommand)
	assert.Empty(t, cfg.Serial)
}

func TestLoad_FileEnvAndOverrides(t *testing.T) {
	dir := isolate(t)

	yml := `database:
  base_url: https://mirror.example.com/arb/
device:
  serial: file-serial
  timeout: 2s
notify:
  command: ["notify-send", "-u", "critical"]
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yml), 0o600))
	t.Setenv("ARBCHECK_DEVICE_SERIAL", "env-serial")

	cfg, err := Load("", map[string]any{KeyModel: "CPH2581"})
	require.NoError(t, err)

	assert.Equal(t, "https://mirror.example.com/arb/", cfg.BaseURL)
	assert.Equal(t, "env-serial", cfg.Serial, "env beats file")
	assert.Equal(t, 2*time.Second, cfg.DeviceTimeout)
	assert.Equal(t, "CPH2581", cfg.Model)
	assert.Equal(t, []string{"notify-send", "-u", "critical"}, cfg.NotifyCommand)
}

func TestLoad_ExplicitPathMustExist(t *testing.T) {
	isolate(t)

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), nil)
	assert.Error(t, err)
}

func TestLoad_RejectsBadValues(t *testing.T) {
	isolate(t)

	_, err := Load("", map[string]any{KeyBaseURL: "  "})
	assert.Error(t, err)

	_, err = Load("", map[string]any{KeyHTTPTimeout: "0s"})
	assert.Error(t, err)
}

func TestLoad_EmptyFileIsIgnored(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("\n"), 0o600))

	cfg, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, globalconfig.DefaultBaseURL, cfg.BaseURL)
}
