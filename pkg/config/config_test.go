package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "dev", cfg.App.Env)
	assert.True(t, cfg.App.IsDev())
	assert.False(t, cfg.App.IsProd())
	assert.Equal(t, "cabplanner.db", cfg.DB.Path)
	assert.True(t, cfg.DB.AutoMigrate)
	assert.InDelta(t, 2800.0, cfg.Reports.SheetWidthMM, 0.001)
}

func TestLoadHonorsEnvironment(t *testing.T) {
	t.Setenv("CABPLANNER_APP_ENV", "prod")
	t.Setenv("CABPLANNER_DB_PATH", ":memory:")
	t.Setenv("CABPLANNER_LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.App.IsProd())
	assert.Equal(t, ":memory:", cfg.DB.Path)
	assert.Equal(t, "debug", cfg.App.LogLevel)
}
