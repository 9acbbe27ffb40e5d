package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	Port                 string        `yaml:"port"`
	Env                  string        `yaml:"env"` // either prod or dev, dev disables https redirects and security headers
	DatabaseDriver       string        `yaml:"database_driver"`
	DatabaseUser         string        `yaml:"database_user"`
	DatabasePassword     string        `yaml:"database_password"`
	DatabaseHost         string        `yaml:"database_host"`
	DatabasePort         string        `yaml:"database_port"`
	DatabaseName         string        `yaml:"database_name"` // file path or DSN when the driver is sqlite
	DatabaseSSLMode      string        `yaml:"database_ssl_mode"`
	DatabaseMaxOpenConns int           `yaml:"database_max_open_conns"`
	Migrate              bool          `yaml:"migrate"`
	SentryDSN            string        `yaml:"sentry_dsn"`
	StatsCacheTTL        time.Duration `yaml:"stats_cache_ttl"`
	SiteName             string        `yaml:"site_name"`
	SiteHost             string        `yaml:"site_host"`
}

func defaults() Config {
	return Config{
		Env:                  "dev",
		DatabaseDriver:       DriverPostgres,
		DatabaseMaxOpenConns: 10,
		Migrate:              true,
		StatsCacheTTL:        time.Minute,
		SiteName:             "Portal de Empleo",
		SiteHost:             "localhost",
	}
}

// LoadConfig reads the optional YAML file named by CONFIG_FILE and then
// overrides it with environment variables.
func LoadConfig() (Config, error) {
	cfg := defaults()
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := loadFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	overrideString(&cfg.Port, "PORT")
	overrideString(&cfg.Env, "ENV")
	overrideString(&cfg.DatabaseDriver, "DATABASE_DRIVER")
	overrideString(&cfg.DatabaseUser, "DATABASE_USER")
	overrideString(&cfg.DatabasePassword, "DATABASE_PASSWORD")
	overrideString(&cfg.DatabaseHost, "DATABASE_HOST")
	overrideString(&cfg.DatabasePort, "DATABASE_PORT")
	overrideString(&cfg.DatabaseName, "DATABASE_NAME")
	overrideString(&cfg.DatabaseSSLMode, "DATABASE_SSL_MODE")
	overrideString(&cfg.SentryDSN, "SENTRY_DSN")
	overrideString(&cfg.SiteName, "SITE_NAME")
	overrideString(&cfg.SiteHost, "SITE_HOST")
	if v := os.Getenv("DATABASE_MAX_OPEN_CONNS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("could not convert DATABASE_MAX_OPEN_CONNS to int: %v", err)
		}
		cfg.DatabaseMaxOpenConns = n
	}
	if v := os.Getenv("MIGRATE"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return Config{}, fmt.Errorf("could not convert MIGRATE to bool: %v", err)
		}
		cfg.Migrate = b
	}
	if v := os.Getenv("STATS_CACHE_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, errors.Wrapf(err, "unable to parse STATS_CACHE_TTL %q", v)
		}
		cfg.StatsCacheTTL = d
	}
	cfg.Env = strings.ToLower(cfg.Env)
	cfg.DatabaseDriver = strings.ToLower(cfg.DatabaseDriver)

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.Port == "" {
		return fmt.Errorf("PORT cannot be empty")
	}
	if c.Env != "dev" && c.Env != "prod" {
		return fmt.Errorf("ENV must be either dev or prod, got %q", c.Env)
	}
	if c.DatabaseMaxOpenConns < 1 {
		return fmt.Errorf("DATABASE_MAX_OPEN_CONNS must be at least 1")
	}
	switch c.DatabaseDriver {
	case DriverSQLite:
		if c.DatabaseName == "" {
			return fmt.Errorf("DATABASE_NAME cannot be empty")
		}
	case DriverPostgres:
		required := []struct {
			key, val string
		}{
			{"DATABASE_USER", c.DatabaseUser},
			{"DATABASE_PASSWORD", c.DatabasePassword},
			{"DATABASE_HOST", c.DatabaseHost},
			{"DATABASE_PORT", c.DatabasePort},
			{"DATABASE_NAME", c.DatabaseName},
			{"DATABASE_SSL_MODE", c.DatabaseSSLMode},
		}
		for _, r := range required {
			if r.val == "" {
				return fmt.Errorf("%s cannot be empty", r.key)
			}
		}
	default:
		return fmt.Errorf("DATABASE_DRIVER %q is not supported", c.DatabaseDriver)
	}
	return nil
}

func loadFile(path string, cfg *Config) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.Wrapf(err, "unable to open config file %s", path)
	}
	defer f.Close()

	if err := yaml.NewDecoder(f).Decode(cfg); err != nil {
		return errors.Wrapf(err, "unable to decode config file %s", path)
	}
	return nil
}

func overrideString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}
