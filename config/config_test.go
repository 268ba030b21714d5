package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitConfig_Defaults(t *testing.T) {
	config, err := InitConfig()
	require.NoError(t, err)

	assert.Equal(t, "development", config.Environment)
	assert.Equal(t, 8080, config.ServerPort)
	assert.Equal(t, "data/pulse360.db", config.DatabaseDbPath)
	assert.Equal(t, "localhost", config.DatabaseCacheAddress)
	assert.Equal(t, 6379, config.DatabaseCachePort)
	assert.Equal(t, "/tmp/pulse360_uploads", config.UploadTempDir)
}

func TestInitConfig_EnvOverride(t *testing.T) {
	t.Setenv("SERVER_PORT", "9191")
	t.Setenv("ENVIRONMENT", "production")

	config, err := InitConfig()
	require.NoError(t, err)

	assert.Equal(t, 9191, config.ServerPort)
	assert.Equal(t, "production", config.Environment)
}
