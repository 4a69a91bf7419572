package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("Reads the yaml file", func(t *testing.T) {
		// Given: a config file overriding a few keys
		path := filepath.Join(t.TempDir(), "config.yml")
		content := "log-level: debug\nstorage: redis\nsession-ttl: 1h\nredis:\n  host: cache\n  port: \"6380\"\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

		// When: loading the config
		conf, err := Load(path)

		// Then: the file values and the defaults should be combined
		require.NoError(t, err)
		assert.Equal(t, "debug", conf.LogLevel)
		assert.Equal(t, StorageRedis, conf.Storage)
		assert.Equal(t, time.Hour, conf.SessionTTL)
		assert.Equal(t, "9090", conf.HTTPPort)
		assert.Equal(t, "cache:6380", conf.Redis.GetRedisAddr())
		assert.Equal(t, "tictactoe:", conf.Redis.Prefix)
	})

	t.Run("Falls back to the environment", func(t *testing.T) {
		// Given: no config file and an env override
		t.Setenv("HTTP_PORT", "8081")

		// When: loading a missing file
		conf, err := Load(filepath.Join(t.TempDir(), "missing.yml"))

		// Then: env and defaults should be used
		require.NoError(t, err)
		assert.Equal(t, "8081", conf.HTTPPort)
		assert.Equal(t, StorageMemory, conf.Storage)
		assert.Equal(t, 24*time.Hour, conf.SessionTTL)
		assert.Equal(t, 10*time.Minute, conf.JanitorInterval)
	})
}
