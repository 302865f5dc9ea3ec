package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("Reads the yaml file", func(t *testing.T) {
		// Given: a config file with redis enabled
		path := filepath.Join(t.TempDir(), "config.yml")
		content := "log-level: debug\nhttp-port: \"8081\"\nredis:\n  enabled: true\n  host: cache\n  port: \"6380\"\ntheme:\n  prefer-dark: \"false\"\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

		// When: the config is loaded
		conf, err := Load(path)

		// Then: every value comes from the file
		require.NoError(t, err)
		assert.Equal(t, "debug", conf.LogLevel)
		assert.Equal(t, "8081", conf.HTTPPort)
		assert.True(t, conf.Redis.Enabled)
		assert.Equal(t, "cache:6380", conf.Redis.GetRedisAddr())
		assert.Equal(t, "false", conf.Theme.PreferDark)
	})

	t.Run("Falls back to defaults without a file", func(t *testing.T) {
		// When: the config file does not exist
		conf, err := Load(filepath.Join(t.TempDir(), "missing.yml"))

		// Then: defaults are used
		require.NoError(t, err)
		assert.Equal(t, "info", conf.LogLevel)
		assert.Equal(t, "9090", conf.HTTPPort)
		assert.False(t, conf.Redis.Enabled)
		assert.Equal(t, "localhost:6379", conf.Redis.GetRedisAddr())
	})

	t.Run("Environment overrides defaults", func(t *testing.T) {
		// Given: environment overrides
		t.Setenv("HTTP_PORT", "7070")
		t.Setenv("REDIS_ENABLED", "true")

		// When: the config is loaded without a file
		conf, err := Load(filepath.Join(t.TempDir(), "missing.yml"))

		// Then: the environment wins
		require.NoError(t, err)
		assert.Equal(t, "7070", conf.HTTPPort)
		assert.True(t, conf.Redis.Enabled)
	})

	t.Run("Broken file is an error", func(t *testing.T) {
		// Given: a file that is not yaml
		path := filepath.Join(t.TempDir(), "config.yml")
		require.NoError(t, os.WriteFile(path, []byte("log-level: [oops"), 0o600))

		// When: the config is loaded
		_, err := Load(path)

		// Then: an error is returned and MustLoad panics
		require.Error(t, err)
		assert.Panics(t, func() { MustLoad(path) })
	})
}

func TestRedis_GetRedisAddr(t *testing.T) {
	redis := Redis{Host: "", Port: "6379"}
	assert.Empty(t, redis.GetRedisAddr())
}
