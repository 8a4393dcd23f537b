package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfig(t *testing.T) {
	// Set test environment variables
	os.Setenv("SERVER_PORT", "8080")
	os.Setenv("DB_HOST", "localhost")
	os.Setenv("DB_PORT", "5432")
	os.Setenv("DB_USER", "testuser")
	os.Setenv("DB_PASSWORD", "testpass")
	os.Setenv("DB_NAME", "testdb")
	os.Setenv("REDIS_HOST", "localhost")
	os.Setenv("REDIS_PORT", "6379")
	os.Setenv("JWT_SECRET", "test-secret")
	os.Setenv("USER_SERVICE_URL", "http://user:8001")
	os.Setenv("REMOTE_CALL_TIMEOUT", "750ms")
	os.Setenv("MAX_PAGE_SIZE", "20")

	// Load config
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	// Assertions
	assert.NotNil(t, cfg)
	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "localhost", cfg.DBHost)
	assert.Equal(t, "5432", cfg.DBPort)
	assert.Equal(t, "testuser", cfg.DBUser)
	assert.Equal(t, "testpass", cfg.DBPassword)
	assert.Equal(t, "testdb", cfg.DBName)
	assert.Equal(t, "localhost", cfg.RedisHost)
	assert.Equal(t, "6379", cfg.RedisPort)
	assert.Equal(t, "test-secret", cfg.JWTSecret)
	assert.Equal(t, "http://user:8001", cfg.UserServiceURL)
	assert.Equal(t, 750*time.Millisecond, cfg.RemoteCallTimeout)
	assert.Equal(t, 20, cfg.MaxPageSize)

	// Cleanup
	os.Unsetenv("SERVER_PORT")
	os.Unsetenv("DB_HOST")
	os.Unsetenv("DB_PORT")
	os.Unsetenv("DB_USER")
	os.Unsetenv("DB_PASSWORD")
	os.Unsetenv("DB_NAME")
	os.Unsetenv("REDIS_HOST")
	os.Unsetenv("REDIS_PORT")
	os.Unsetenv("JWT_SECRET")
	os.Unsetenv("USER_SERVICE_URL")
	os.Unsetenv("REMOTE_CALL_TIMEOUT")
	os.Unsetenv("MAX_PAGE_SIZE")
}

func TestLoadConfig_Defaults(t *testing.T) {
	os.Unsetenv("SERVER_PORT")
	os.Unsetenv("MAX_PAGE_SIZE")
	os.Unsetenv("REMOTE_CALL_TIMEOUT")
	os.Unsetenv("JWT_EXPIRATION")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, 50, cfg.MaxPageSize)
	assert.Equal(t, 3*time.Second, cfg.RemoteCallTimeout)
	assert.Equal(t, 24*time.Hour, cfg.JWTExpiration)
	assert.Equal(t, 50, cfg.ContributeReward)
}

func TestLoadConfig_InvalidNumbersFallBack(t *testing.T) {
	os.Setenv("MAX_PAGE_SIZE", "lots")
	os.Setenv("REMOTE_CALL_TIMEOUT", "soon")
	defer os.Unsetenv("MAX_PAGE_SIZE")
	defer os.Unsetenv("REMOTE_CALL_TIMEOUT")

	cfg, err := Load()
	assert.NoError(t, err)
	assert.Equal(t, 50, cfg.MaxPageSize)
	assert.Equal(t, 3*time.Second, cfg.RemoteCallTimeout)
}
