package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	// Save original env vars and restore after tests
	originalEnv := map[string]string{
		"SETTLE_APP_NAME":                    os.Getenv("SETTLE_APP_NAME"),
		"SETTLE_APP_ENV":                     os.Getenv("SETTLE_APP_ENV"),
		"SETTLE_APP_PORT":                    os.Getenv("SETTLE_APP_PORT"),
		"SETTLE_DATABASE_DRIVER":             os.Getenv("SETTLE_DATABASE_DRIVER"),
		"SETTLE_DATABASE_PATH":               os.Getenv("SETTLE_DATABASE_PATH"),
		"SETTLE_DATABASE_PASSWORD":           os.Getenv("SETTLE_DATABASE_PASSWORD"),
		"SETTLE_DATABASE_SSLMODE":            os.Getenv("SETTLE_DATABASE_SSLMODE"),
		"SETTLE_SETTLEMENT_DEFAULT_RATE":     os.Getenv("SETTLE_SETTLEMENT_DEFAULT_RATE"),
		"SETTLE_SETTLEMENT_MIN_CHANGE_IQD":   os.Getenv("SETTLE_SETTLEMENT_MIN_CHANGE_IQD"),
		"SETTLE_SETTLEMENT_DRAWER":           os.Getenv("SETTLE_SETTLEMENT_DRAWER"),
		"SETTLE_LOG_LEVEL":                   os.Getenv("SETTLE_LOG_LEVEL"),
	}

	defer func() {
		for k, v := range originalEnv {
			if v == "" {
				os.Unsetenv(k)
			} else {
				os.Setenv(k, v)
			}
		}
	}()

	clearEnv := func() {
		for k := range originalEnv {
			os.Unsetenv(k)
		}
	}

	t.Run("loads default values when env vars not set", func(t *testing.T) {
		clearEnv()

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "dukkan-settlement", cfg.App.Name)
		assert.Equal(t, "development", cfg.App.Env)
		assert.Equal(t, "8080", cfg.App.Port)
		assert.Equal(t, "sqlite", cfg.Database.Driver)
		assert.Equal(t, "settlement.db", cfg.Database.Path)
		assert.Equal(t, 25, cfg.Database.MaxOpenConns)
		assert.Equal(t, "info", cfg.Log.Level)
		assert.Equal(t, "console", cfg.Log.Format)
		assert.Equal(t, float64(1500), cfg.Settlement.DefaultRate)
		assert.Equal(t, "main", cfg.Settlement.Drawer)
		assert.Equal(t, int64(250), cfg.Settlement.MinChangeIQD)
		assert.Equal(t, []int64{250, 500, 1000, 5000, 10000, 25000, 50000}, cfg.Settlement.DenominationsIQD)
	})

	t.Run("environment variables override defaults", func(t *testing.T) {
		clearEnv()
		os.Setenv("SETTLE_APP_PORT", "9090")
		os.Setenv("SETTLE_DATABASE_PATH", "/tmp/test.db")
		os.Setenv("SETTLE_SETTLEMENT_DEFAULT_RATE", "1480")
		os.Setenv("SETTLE_SETTLEMENT_DRAWER", "register-2")
		os.Setenv("SETTLE_LOG_LEVEL", "debug")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "9090", cfg.App.Port)
		assert.Equal(t, "/tmp/test.db", cfg.Database.Path)
		assert.Equal(t, float64(1480), cfg.Settlement.DefaultRate)
		assert.Equal(t, "register-2", cfg.Settlement.Drawer)
		assert.Equal(t, "debug", cfg.Log.Level)
	})

	t.Run("rejects unknown database driver", func(t *testing.T) {
		clearEnv()
		os.Setenv("SETTLE_DATABASE_DRIVER", "mysql")

		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("production json log format default", func(t *testing.T) {
		clearEnv()
		os.Setenv("SETTLE_APP_ENV", "production")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "json", cfg.Log.Format)
	})

	t.Run("production postgres requires password", func(t *testing.T) {
		clearEnv()
		os.Setenv("SETTLE_APP_ENV", "production")
		os.Setenv("SETTLE_DATABASE_DRIVER", "postgres")
		os.Setenv("SETTLE_DATABASE_SSLMODE", "require")

		_, err := Load()
		assert.Error(t, err)
	})
}

func TestDatabaseConfig_DSN(t *testing.T) {
	d := &DatabaseConfig{
		Host:     "db.internal",
		Port:     5432,
		User:     "settle",
		Password: "p@ss/word",
		DBName:   "settlement",
		SSLMode:  "require",
	}

	dsn := d.DSN()
	assert.Contains(t, dsn, "postgres://")
	assert.Contains(t, dsn, "db.internal:5432")
	assert.Contains(t, dsn, "sslmode=require")
	assert.NotContains(t, dsn, "p@ss/word", "password must be escaped")
}
