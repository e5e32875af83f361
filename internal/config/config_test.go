package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envMap(m map[string]string) LookupFunc {
	return func(k string) (string, bool) {
		v, ok := m[k]
		return v, ok
	}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o600))
	return p
}

func TestLoadFrom_Defaults(t *testing.T) {
	cfg, err := LoadFrom("", "", envMap(nil))
	require.NoError(t, err)

	assert.Equal(t, Default(), cfg)
	assert.Equal(t, ":8080", cfg.HTTP.Addr)
	assert.Equal(t, "memory", cfg.Storage.Driver)
	assert.Equal(t, 24*time.Hour, cfg.Session.TTL)
	assert.Equal(t, "connect.sid", cfg.Session.CookieName)
	require.NoError(t, cfg.Validate())
}

func TestLoadFrom_YAMLThenEnv(t *testing.T) {
	path := writeFile(t, "config.yaml", `
http:
  addr: ":9000"
  read_timeout: 2s
storage:
  driver: mongodb
  mongodb_uri: mongodb://yaml:27017
session:
  driver: redis
  ttl: 1h
log:
  level: debug
`)

	cfg, err := LoadFrom(path, "", envMap(map[string]string{
		"MONGODB_URI":     "mongodb://env:27017",
		"REDIS_DB":        "2",
		"STORAGE_SEED":    "true",
		"LOG_FORMAT":      "text",
		"SESSION_TTL":     "",
		"AUTH_DEV_HEADER": "1",
	}))
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.HTTP.Addr)
	assert.Equal(t, 2*time.Second, cfg.HTTP.ReadTimeout)
	assert.Equal(t, 10*time.Second, cfg.HTTP.WriteTimeout, "defaults survive partial yaml")
	assert.Equal(t, "mongodb", cfg.Storage.Driver)
	assert.Equal(t, "mongodb://env:27017", cfg.Storage.MongoURI)
	assert.True(t, cfg.Storage.Seed)
	assert.Equal(t, "redis", cfg.Session.Driver)
	assert.Equal(t, time.Hour, cfg.Session.TTL, "empty env var does not override")
	assert.Equal(t, 2, cfg.Session.RedisDB)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.True(t, cfg.Auth.DevHeader)
	require.NoError(t, cfg.Validate())
}

func TestLoadFrom_EnvFile(t *testing.T) {
	envFile := writeFile(t, ".env", "SESSION_DRIVER=postgres\nSESSION_POSTGRES_DSN=postgres://file\nAPP_NAME=from-file\n")

	cfg, err := LoadFrom("", envFile, envMap(map[string]string{"APP_NAME": "from-env"}))
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.Session.Driver)
	assert.Equal(t, "postgres://file", cfg.Session.PostgresDSN)
	assert.Equal(t, "from-env", cfg.App.Name, "real environment wins over .env")
}

func TestLoadFrom_MissingEnvFileIgnored(t *testing.T) {
	_, err := LoadFrom("", filepath.Join(t.TempDir(), "nope.env"), envMap(nil))
	assert.NoError(t, err)
}

func TestLoadFrom_MissingYAMLFails(t *testing.T) {
	_, err := LoadFrom(filepath.Join(t.TempDir(), "nope.yaml"), "", envMap(nil))
	assert.ErrorContains(t, err, "read config file")
}

func TestLoadFrom_PortAndAddr(t *testing.T) {
	cfg, err := LoadFrom("", "", envMap(map[string]string{"PORT": "5000"}))
	require.NoError(t, err)
	assert.Equal(t, ":5000", cfg.HTTP.Addr)

	cfg, err = LoadFrom("", "", envMap(map[string]string{"PORT": "5000", "HTTP_ADDR": "127.0.0.1:7000"}))
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:7000", cfg.HTTP.Addr)
}

func TestLoadFrom_BadValues(t *testing.T) {
	_, err := LoadFrom("", "", envMap(map[string]string{
		"SESSION_TTL":  "forever",
		"REDIS_DB":     "zero",
		"STORAGE_SEED": "maybe",
	}))
	require.Error(t, err)
	assert.ErrorContains(t, err, "SESSION_TTL")
	assert.ErrorContains(t, err, "REDIS_DB")
	assert.ErrorContains(t, err, "STORAGE_SEED")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"mongodb without uri", func(c *Config) { c.Storage.Driver = "mongodb" }, "MONGODB_URI"},
		{"unknown storage", func(c *Config) { c.Storage.Driver = "sqlite" }, "STORAGE_DRIVER"},
		{"redis without addr", func(c *Config) { c.Session.Driver = "redis"; c.Session.RedisAddr = "" }, "REDIS_ADDR"},
		{"postgres without dsn", func(c *Config) { c.Session.Driver = "postgres" }, "SESSION_POSTGRES_DSN"},
		{"unknown session", func(c *Config) { c.Session.Driver = "file" }, "SESSION_DRIVER"},
		{"zero ttl", func(c *Config) { c.Session.TTL = 0 }, "SESSION_TTL"},
		{"empty cookie", func(c *Config) { c.Session.CookieName = "" }, "SESSION_COOKIE_NAME"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.ErrorContains(t, cfg.Validate(), tt.wantErr)
		})
	}
}
