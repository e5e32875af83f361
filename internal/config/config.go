// Package config arma la configuración del proceso: defaults, archivo YAML opcional,
// archivo .env y variables de entorno (en ese orden de precedencia creciente).
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	SessionDriverMemory   = "memory"
	SessionDriverRedis    = "redis"
	SessionDriverPostgres = "postgres"
)

type Config struct {
	App     AppConfig     `yaml:"app"`
	HTTP    HTTPConfig    `yaml:"http"`
	Storage StorageConfig `yaml:"storage"`
	Session SessionConfig `yaml:"session"`
	Log     LogConfig     `yaml:"log"`
	Auth    AuthConfig    `yaml:"auth"`
}

type AppConfig struct {
	Name string `yaml:"name"`
}

type HTTPConfig struct {
	Addr            string        `yaml:"addr"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

type StorageConfig struct {
	// Driver: memory | mongodb
	Driver        string `yaml:"driver"`
	MongoURI      string `yaml:"mongodb_uri"`
	MongoDatabase string `yaml:"mongodb_database"`
	// Seed carga datos de ejemplo al arrancar (mongodb; memory siempre siembra).
	Seed bool `yaml:"seed"`
	// AdminPassword, si viene, reemplaza el hash del admin sembrado en memory.
	AdminPassword string `yaml:"admin_password"`
}

type SessionConfig struct {
	// Driver: memory | redis | postgres
	Driver       string        `yaml:"driver"`
	TTL          time.Duration `yaml:"ttl"`
	CheckPeriod  time.Duration `yaml:"check_period"`
	CookieName   string        `yaml:"cookie_name"`
	CookieSecure bool          `yaml:"cookie_secure"`

	RedisAddr     string `yaml:"redis_addr"`
	RedisPassword string `yaml:"redis_password"`
	RedisDB       int    `yaml:"redis_db"`

	PostgresDSN string `yaml:"postgres_dsn"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type AuthConfig struct {
	// DevHeader habilita X-Debug-User-ID. Nunca en producción.
	DevHeader bool `yaml:"dev_header"`
}

func Default() *Config {
	return &Config{
		App: AppConfig{Name: "animal-sos"},
		HTTP: HTTPConfig{
			Addr:            ":8080",
			ReadTimeout:     5 * time.Second,
			WriteTimeout:    10 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Storage: StorageConfig{
			Driver:        "memory",
			MongoDatabase: "animal_sos",
		},
		Session: SessionConfig{
			Driver:      SessionDriverMemory,
			TTL:         24 * time.Hour,
			CheckPeriod: 24 * time.Hour,
			CookieName:  "connect.sid",
			RedisAddr:   "localhost:6379",
		},
		Log: LogConfig{Level: "info", Format: "json"},
	}
}

// LookupFunc es la firma de os.LookupEnv; los tests pasan un map.
type LookupFunc func(key string) (string, bool)

// Load usa os.LookupEnv y el .env del directorio actual (si existe).
func Load(path string) (*Config, error) {
	return LoadFrom(path, ".env", os.LookupEnv)
}

// LoadFrom: path vacío = sin YAML; envFile vacío o inexistente = sin .env.
// El entorno real gana sobre el .env.
func LoadFrom(path, envFile string, lookup LookupFunc) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}

	if envFile != "" {
		vars, err := godotenv.Read(envFile)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read env file: %w", err)
		}
		lookup = withFallback(lookup, vars)
	}

	if err := applyEnv(cfg, lookup); err != nil {
		return nil, err
	}
	return cfg, nil
}

func withFallback(lookup LookupFunc, vars map[string]string) LookupFunc {
	return func(key string) (string, bool) {
		if v, ok := lookup(key); ok {
			return v, true
		}
		v, ok := vars[key]
		return v, ok
	}
}

func applyEnv(cfg *Config, lookup LookupFunc) error {
	var errs []error

	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
			*dst = strings.TrimSpace(v)
		}
	}
	boolean := func(key string, dst *bool) {
		if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
			b, err := strconv.ParseBool(strings.TrimSpace(v))
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", key, err))
				return
			}
			*dst = b
		}
	}
	integer := func(key string, dst *int) {
		if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
			n, err := strconv.Atoi(strings.TrimSpace(v))
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", key, err))
				return
			}
			*dst = n
		}
	}
	duration := func(key string, dst *time.Duration) {
		if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
			d, err := time.ParseDuration(strings.TrimSpace(v))
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", key, err))
				return
			}
			*dst = d
		}
	}

	str("APP_NAME", &cfg.App.Name)

	// PORT solo aplica si no hay HTTP_ADDR explícito.
	if v, ok := lookup("PORT"); ok && strings.TrimSpace(v) != "" {
		cfg.HTTP.Addr = ":" + strings.TrimSpace(v)
	}
	str("HTTP_ADDR", &cfg.HTTP.Addr)
	duration("HTTP_READ_TIMEOUT", &cfg.HTTP.ReadTimeout)
	duration("HTTP_WRITE_TIMEOUT", &cfg.HTTP.WriteTimeout)
	duration("HTTP_SHUTDOWN_TIMEOUT", &cfg.HTTP.ShutdownTimeout)

	str("STORAGE_DRIVER", &cfg.Storage.Driver)
	str("MONGODB_URI", &cfg.Storage.MongoURI)
	str("MONGODB_DATABASE", &cfg.Storage.MongoDatabase)
	boolean("STORAGE_SEED", &cfg.Storage.Seed)
	str("SEED_ADMIN_PASSWORD", &cfg.Storage.AdminPassword)

	str("SESSION_DRIVER", &cfg.Session.Driver)
	duration("SESSION_TTL", &cfg.Session.TTL)
	duration("SESSION_CHECK_PERIOD", &cfg.Session.CheckPeriod)
	str("SESSION_COOKIE_NAME", &cfg.Session.CookieName)
	boolean("SESSION_COOKIE_SECURE", &cfg.Session.CookieSecure)
	str("REDIS_ADDR", &cfg.Session.RedisAddr)
	str("REDIS_PASSWORD", &cfg.Session.RedisPassword)
	integer("REDIS_DB", &cfg.Session.RedisDB)
	str("SESSION_POSTGRES_DSN", &cfg.Session.PostgresDSN)

	str("LOG_LEVEL", &cfg.Log.Level)
	str("LOG_FORMAT", &cfg.Log.Format)

	boolean("AUTH_DEV_HEADER", &cfg.Auth.DevHeader)

	return errors.Join(errs...)
}

// Validate revisa drivers y URIs requeridas.
func (c *Config) Validate() error {
	var errs []error

	switch c.Storage.Driver {
	case "memory":
	case "mongodb":
		if c.Storage.MongoURI == "" {
			errs = append(errs, errors.New("MONGODB_URI is required when STORAGE_DRIVER=mongodb"))
		}
		if c.Storage.MongoDatabase == "" {
			errs = append(errs, errors.New("MONGODB_DATABASE must not be empty"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown STORAGE_DRIVER %q (memory|mongodb)", c.Storage.Driver))
	}

	switch c.Session.Driver {
	case SessionDriverMemory:
	case SessionDriverRedis:
		if c.Session.RedisAddr == "" {
			errs = append(errs, errors.New("REDIS_ADDR is required when SESSION_DRIVER=redis"))
		}
	case SessionDriverPostgres:
		if c.Session.PostgresDSN == "" {
			errs = append(errs, errors.New("SESSION_POSTGRES_DSN is required when SESSION_DRIVER=postgres"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown SESSION_DRIVER %q (memory|redis|postgres)", c.Session.Driver))
	}

	if c.Session.TTL <= 0 {
		errs = append(errs, errors.New("SESSION_TTL must be positive"))
	}
	if c.Session.CookieName == "" {
		errs = append(errs, errors.New("SESSION_COOKIE_NAME must not be empty"))
	}
	if c.HTTP.Addr == "" {
		errs = append(errs, errors.New("HTTP_ADDR must not be empty"))
	}

	return errors.Join(errs...)
}
