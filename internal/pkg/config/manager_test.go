package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(t *testing.T) *ViperManager {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	mgr, err := NewManager(path)
	require.NoError(t, err)
	return mgr
}

func TestLoad_Defaults(t *testing.T) {
	mgr := newTestManager(t)

	cfg, err := mgr.Load()
	require.NoError(t, err)

	assert.Equal(t, "sonnet", cfg.Model.Name)
	assert.Equal(t, 120, cfg.Model.TimeoutSeconds)
	assert.False(t, cfg.Model.APIFallbackEnabled)
	assert.Equal(t, 10, cfg.Git.LogCount)
	assert.Equal(t, 20*1024, cfg.Git.MaxFileSize)
	assert.Equal(t, 100*1024, cfg.Git.MaxTotalSize)
	assert.True(t, cfg.UI.ColorEnabled)
	assert.True(t, cfg.History.Enabled)
	assert.Equal(t, 1000, cfg.History.MaxEntries)
}

func TestInit_CreatesFileWithRestrictedPermissions(t *testing.T) {
	mgr := newTestManager(t)

	require.NoError(t, mgr.Init())

	info, err := os.Stat(mgr.GetConfigPath())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	// A second init must not clobber the file.
	assert.Error(t, mgr.Init())
}

func TestSetAndGet(t *testing.T) {
	mgr := newTestManager(t)
	require.NoError(t, mgr.Init())

	require.NoError(t, mgr.Set("model.name", "gpt-5"))

	got, err := mgr.Get("model.name")
	require.NoError(t, err)
	assert.Equal(t, "gpt-5", got)

	// Values persist across manager instances.
	mgr2, err := NewManager(mgr.GetConfigPath())
	require.NoError(t, err)
	cfg, err := mgr2.Load()
	require.NoError(t, err)
	assert.Equal(t, "gpt-5", cfg.Model.Name)
}

func TestSet_ConvertsToExistingType(t *testing.T) {
	mgr := newTestManager(t)
	require.NoError(t, mgr.Init())

	require.NoError(t, mgr.Set("model.timeout_seconds", "300"))
	require.NoError(t, mgr.Set("history.enabled", "false"))

	cfg, err := mgr.Load()
	require.NoError(t, err)
	assert.Equal(t, 300, cfg.Model.TimeoutSeconds)
	assert.False(t, cfg.History.Enabled)

	// Bad literals are rejected, not silently zeroed.
	assert.Error(t, mgr.Set("model.timeout_seconds", "not-a-number"))
	assert.Error(t, mgr.Set("history.enabled", "maybe"))
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("GITMUSE_MODEL_NAME", "opus")
	t.Setenv("GITMUSE_GIT_LOG_COUNT", "3")

	mgr := newTestManager(t)
	cfg, err := mgr.Load()
	require.NoError(t, err)

	assert.Equal(t, "opus", cfg.Model.Name)
	assert.Equal(t, 3, cfg.Git.LogCount)
}

func TestSetOverride_DoesNotPersist(t *testing.T) {
	mgr := newTestManager(t)
	require.NoError(t, mgr.Init())

	mgr.SetOverride("model.name", "gpt-5")
	cfg, err := mgr.Load()
	require.NoError(t, err)
	assert.Equal(t, "gpt-5", cfg.Model.Name)

	// A fresh manager reading the same file sees the stored value.
	mgr2, err := NewManager(mgr.GetConfigPath())
	require.NoError(t, err)
	cfg2, err := mgr2.Load()
	require.NoError(t, err)
	assert.Equal(t, "sonnet", cfg2.Model.Name)
}

func TestConfigExists(t *testing.T) {
	mgr := newTestManager(t)
	assert.False(t, mgr.ConfigExists())

	require.NoError(t, mgr.Init())
	assert.True(t, mgr.ConfigExists())
}

func TestMaskAPIKey(t *testing.T) {
	assert.Equal(t, "****", MaskAPIKey("sk1"))
	assert.Equal(t, "****", MaskAPIKey(""))

	masked := MaskAPIKey("sk-abcdefgh1234")
	assert.Equal(t, "1234", masked[len(masked)-4:])
	assert.NotContains(t, masked, "abcdefgh")
}
