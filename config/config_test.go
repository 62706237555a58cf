package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	t.Setenv("ADMIN_EMAIL", "")

	cfg := Load()

	assert.Equal(t, "x-auth-token", cfg.AuthHeader)
	assert.Equal(t, time.Hour, cfg.TokenTTL)
	assert.Equal(t, 10, cfg.BcryptCost)
	assert.False(t, cfg.ComplaintsAllAdminOnly)
	assert.True(t, cfg.AllowReopen)
	assert.Equal(t, "postgres", cfg.StorageBackend)
	require.NoError(t, cfg.Validate())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("ADMIN_EMAIL", "root@x.com")
	t.Setenv("JWT_TTL", "30m")
	t.Setenv("COMPLAINTS_ALL_ADMIN_ONLY", "true")
	t.Setenv("ALLOW_REOPEN", "false")
	t.Setenv("STORAGE_BACKEND", "Memory")
	t.Setenv("CORS_ALLOWED_ORIGINS", " http://a.test , ,http://b.test")

	cfg := Load()

	assert.Equal(t, "root@x.com", cfg.AdminEmail)
	assert.Equal(t, 30*time.Minute, cfg.TokenTTL)
	assert.True(t, cfg.ComplaintsAllAdminOnly)
	assert.False(t, cfg.AllowReopen)
	assert.Equal(t, "memory", cfg.StorageBackend)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSOrigins())
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("JWT_TTL", "soon")
	t.Setenv("BCRYPT_COST", "ten")
	t.Setenv("ALLOW_REOPEN", "maybe")

	cfg := Load()

	assert.Equal(t, time.Hour, cfg.TokenTTL)
	assert.Equal(t, 10, cfg.BcryptCost)
	assert.True(t, cfg.AllowReopen)
}

func TestValidate(t *testing.T) {
	cfg := Load()
	cfg.Env = "production"
	cfg.JWTSecret = devJWTSecret
	assert.Error(t, cfg.Validate())

	cfg.JWTSecret = "s3cret"
	assert.NoError(t, cfg.Validate())

	cfg.StorageBackend = "mongo"
	assert.Error(t, cfg.Validate())
}

func TestPostgresDSN(t *testing.T) {
	cfg := &Config{DBUser: "u", DBPassword: "p", DBHost: "h", DBPort: "1", DBName: "d", DBSSLMode: "disable"}
	assert.Equal(t, "postgres://u:p@h:1/d?sslmode=disable", cfg.PostgresDSN())
}
