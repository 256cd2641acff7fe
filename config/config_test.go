package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	c := Load()
	require.NotNil(t, c)

	assert.Equal(t, "finverse-api", c.AppName)
	assert.Equal(t, "8080", c.Port)
	assert.Equal(t, "finverse", c.DBName)
	assert.Equal(t, 168*time.Hour, c.JWTTTL)
	assert.Equal(t, "gemini-1.5-flash", c.GeminiModel)
	assert.Equal(t, "https://generativelanguage.googleapis.com/v1beta", c.GeminiBaseURL)
	assert.Equal(t, 6*time.Second, c.ChatUpstreamTimeout)
	assert.Equal(t, 4000, c.ChatMaxMessageChars)
	assert.Equal(t, "db/migrations", c.MigrationsDir)
	assert.False(t, c.MailSendEnabled)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("JWT_TTL", "24h")
	t.Setenv("CHAT_MAX_MESSAGE_CHARS", "100")
	t.Setenv("MAIL_SEND_ENABLED", "true")

	c := Load()
	assert.Equal(t, "9090", c.Port)
	assert.Equal(t, 24*time.Hour, c.JWTTTL)
	assert.Equal(t, 100, c.ChatMaxMessageChars)
	assert.True(t, c.MailSendEnabled)
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("JWT_TTL", "not-a-duration")
	t.Setenv("DB_MAX_CONNS", "many")
	t.Setenv("MAIL_SEND_ENABLED", "yep")

	c := Load()
	assert.Equal(t, 168*time.Hour, c.JWTTTL)
	assert.Equal(t, int32(10), c.DBMaxConns)
	assert.False(t, c.MailSendEnabled)
}

func TestValidate(t *testing.T) {
	c := Load()
	require.Error(t, c.Validate(), "empty JWT_SECRET must be rejected")

	c.JWTSecret = "s3cret"
	require.NoError(t, c.Validate())

	c.DBHost = ""
	require.Error(t, c.Validate(), "incomplete database config must be rejected")
}

func TestPostgresDSN(t *testing.T) {
	c := &Config{
		DBUser: "app", DBPassword: "pw", DBHost: "db", DBPort: "5432",
		DBName: "finverse", DBSSLMode: "disable",
	}
	assert.Equal(t, "postgres://app:pw@db:5432/finverse?sslmode=disable", c.PostgresDSN())
}

func TestCORSOrigins(t *testing.T) {
	c := &Config{CORSAllowedOrigins: "https://finverse.app, http://localhost:5173 ,"}
	assert.Equal(t, []string{"https://finverse.app", "http://localhost:5173"}, c.CORSOrigins())

	c.CORSAllowedOrigins = ""
	assert.Empty(t, c.CORSOrigins())
}
