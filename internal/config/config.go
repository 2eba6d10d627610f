package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Backends de store soportados.
const (
	BackendMemory   = "memory"
	BackendRemote   = "remote"
	BackendPostgres = "postgres"
	BackendSQLite   = "sqlite"
)

type Config struct {
	Port      string `mapstructure:"PORT"`
	Env       string `mapstructure:"ENV"`
	AppName   string `mapstructure:"APP_NAME"`
	LogLevel  string `mapstructure:"LOG_LEVEL"`
	LogFormat string `mapstructure:"LOG_FORMAT"`

	StoreBackend string        `mapstructure:"STORE_BACKEND"`
	StoreURL     string        `mapstructure:"STORE_URL"`
	StoreToken   string        `mapstructure:"STORE_TOKEN"`
	StoreTimeout time.Duration `mapstructure:"STORE_TIMEOUT"`
	DBDSN        string        `mapstructure:"DB_DSN"`
	SQLitePath   string        `mapstructure:"SQLITE_PATH"`
	SeedFile     string        `mapstructure:"SEED_FILE"`

	// AuthEnabled exige un token de usuario válido contra la colección auth del store.
	AuthEnabled    bool   `mapstructure:"AUTH_ENABLED"`
	AuthCollection string `mapstructure:"AUTH_COLLECTION"`

	CacheStaleTime time.Duration `mapstructure:"CACHE_STALE_TIME"`
	CacheGCTime    time.Duration `mapstructure:"CACHE_GC_TIME"`
	CacheRetry     int           `mapstructure:"CACHE_RETRY"`

	DisplayTZ     string        `mapstructure:"DISPLAY_TZ"`
	SessionSecret string        `mapstructure:"SESSION_SECRET"`
	RenderTimeout time.Duration `mapstructure:"RENDER_TIMEOUT"`
}

var keys = []string{
	"PORT", "ENV", "APP_NAME", "LOG_LEVEL", "LOG_FORMAT",
	"STORE_BACKEND", "STORE_URL", "STORE_TOKEN", "STORE_TIMEOUT", "DB_DSN", "SQLITE_PATH", "SEED_FILE",
	"AUTH_ENABLED", "AUTH_COLLECTION",
	"CACHE_STALE_TIME", "CACHE_GC_TIME", "CACHE_RETRY",
	"DISPLAY_TZ", "SESSION_SECRET", "RENDER_TIMEOUT",
}

// Load lee .env (si existe) y el entorno. No valida: ver Validate.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()

	v.SetDefault("PORT", "8080")
	v.SetDefault("ENV", "development")
	v.SetDefault("APP_NAME", "illness-tracker")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "text")
	v.SetDefault("STORE_BACKEND", BackendMemory)
	v.SetDefault("STORE_TIMEOUT", 10*time.Second)
	v.SetDefault("SQLITE_PATH", "data/tracker.db")
	v.SetDefault("AUTH_ENABLED", false)
	v.SetDefault("AUTH_COLLECTION", "users")
	v.SetDefault("CACHE_STALE_TIME", 30*time.Second)
	v.SetDefault("CACHE_GC_TIME", 5*time.Minute)
	v.SetDefault("CACHE_RETRY", 3)
	v.SetDefault("DISPLAY_TZ", "Local")
	v.SetDefault("RENDER_TIMEOUT", 2*time.Second)

	for _, k := range keys {
		_ = v.BindEnv(k)
	}

	// .env es opcional
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.StoreBackend = strings.ToLower(strings.TrimSpace(cfg.StoreBackend))
	return cfg, nil
}

func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// Location resuelve DISPLAY_TZ.
func (c *Config) Location() (*time.Location, error) {
	if c.DisplayTZ == "" || c.DisplayTZ == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(c.DisplayTZ)
}

// Validate revisa lo que cada backend necesita para arrancar.
func (c *Config) Validate() error {
	switch c.StoreBackend {
	case BackendMemory:
	case BackendRemote:
		if c.StoreURL == "" {
			return fmt.Errorf("STORE_URL is required when STORE_BACKEND is %q", BackendRemote)
		}
	case BackendPostgres:
		if c.DBDSN == "" {
			return fmt.Errorf("DB_DSN is required when STORE_BACKEND is %q", BackendPostgres)
		}
	case BackendSQLite:
		if c.SQLitePath == "" {
			return fmt.Errorf("SQLITE_PATH is required when STORE_BACKEND is %q", BackendSQLite)
		}
	default:
		return fmt.Errorf("STORE_BACKEND must be one of memory, remote, postgres, sqlite; got %q", c.StoreBackend)
	}

	if c.AuthEnabled && c.StoreURL == "" {
		return fmt.Errorf("AUTH_ENABLED requires STORE_URL (tokens are verified by the record store)")
	}

	if !c.IsDev() && c.SessionSecret == "" {
		return fmt.Errorf("SESSION_SECRET is required outside development")
	}

	if _, err := c.Location(); err != nil {
		return fmt.Errorf("DISPLAY_TZ: %w", err)
	}
	if c.StoreTimeout <= 0 {
		return fmt.Errorf("STORE_TIMEOUT must be positive")
	}
	return nil
}
