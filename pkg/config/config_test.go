package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/gymdesk-api/pkg/config"
)

func TestLoad_VariablesDeEntorno(t *testing.T) {
	t.Setenv("APP_ENV", "staging")
	t.Setenv("APP_TIMEZONE", "America/Montevideo")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("HTTP_ALLOWED_ORIGINS", "https://panel.gymdesk.test")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("DB_AUTO_MIGRATE", "false")
	t.Setenv("JWT_EXPIRATION_MINUTES", "no-es-numero")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "staging", cfg.App.Env)
	assert.Equal(t, "America/Montevideo", cfg.App.Timezone)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, "https://panel.gymdesk.test", cfg.HTTP.AllowedOrigins)
	assert.True(t, cfg.Redis.Enabled())
	assert.False(t, cfg.DB.AutoMigrate)
	assert.Equal(t, 720, cfg.JWT.Expiration, "un valor inválido vuelve al default")
}

func TestLoad_ProduccionExigeSecreto(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "")

	_, err := config.Load()
	assert.Error(t, err)
}

func TestDBConfig_ConnectionString(t *testing.T) {
	c := config.DBConfig{Host: "db", Port: 5432, User: "gym", Password: "p@ss:w/rd", DBName: "gymdesk", SSLMode: "disable"}
	assert.Equal(t, "postgres://gym:p%40ss%3Aw%2Frd@db:5432/gymdesk?sslmode=disable", c.ConnectionString())

	c.DatabaseURL = "postgres://otro"
	assert.Equal(t, "postgres://otro", c.ConnectionString())
}
