package config_test

import (
	"testing"

	"github.com/peopledesk/hrms-backend/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load("hrms-server")
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, config.EnvDevelopment, cfg.Server.Environment)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "hrms_db", cfg.Database.Database)
	assert.Equal(t, 25, cfg.Database.MaxOpenConns)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("HRMS_SERVER_PORT", "9090")
	t.Setenv("HRMS_DATABASE_HOST", "db.internal")

	cfg, err := config.Load("hrms-server")
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "db.internal", cfg.Database.Host)
}

func TestDatabaseConfig_DSN(t *testing.T) {
	t.Run("built from fields", func(t *testing.T) {
		cfg := config.DatabaseConfig{
			Host:     "localhost",
			Port:     5432,
			User:     "hrms",
			Password: "secret",
			Database: "hrms_db",
			SSLMode:  "disable",
		}
		assert.Equal(t,
			"host=localhost port=5432 user=hrms password=secret dbname=hrms_db sslmode=disable",
			cfg.DSN())
	})

	t.Run("URL takes precedence", func(t *testing.T) {
		cfg := config.DatabaseConfig{
			URL:  "postgres://hrms:secret@db:5432/hrms_db?sslmode=require",
			Host: "ignored",
		}
		assert.Equal(t, "postgres://hrms:secret@db:5432/hrms_db?sslmode=require", cfg.DSN())
	})
}

func TestDatabaseConfig_Validate(t *testing.T) {
	cfg := config.DatabaseConfig{Host: "localhost"}

	assert.NoError(t, cfg.Validate(config.EnvDevelopment))
	assert.Error(t, cfg.Validate(config.EnvProduction), "localhost database must be rejected in production")

	cfg.Host = "db.internal"
	assert.NoError(t, cfg.Validate(config.EnvProduction))
}
