package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
)

type StoreDriver string

const (
	DriverMongo    StoreDriver = "mongo"
	DriverPostgres StoreDriver = "postgres"
	DriverMemory   StoreDriver = "memory"
)

type Config struct {
	HTTP struct {
		Port      string `env:"API_PORT" envDefault:"5050"`
		StaticDir string `env:"STATIC_DIR" envDefault:"public"`
	}

	CORS struct {
		AllowOrigins []string `env:"CORS_ALLOW_ORIGINS" envDefault:"*" envSeparator:","`
	}

	GraphQL struct {
		MaxBodySize        uint `env:"GRAPHQL_MAX_BODY_SIZE" envDefault:"1048576"`
		OperationCacheSize int  `env:"GRAPHQL_OPERATION_CACHE_SIZE" envDefault:"512"`
	}

	Store struct {
		Driver             StoreDriver   `env:"STORE_DRIVER" envDefault:"mongo"`
		ConnectTimeout     time.Duration `env:"DB_CONNECT_TIMEOUT" envDefault:"10s"`
		UniqueDoctorEmail  bool          `env:"UNIQUE_DOCTOR_EMAIL" envDefault:"true"`
		UniquePatientEmail bool          `env:"UNIQUE_PATIENT_EMAIL" envDefault:"false"`
	}

	Mongo struct {
		URI      string `env:"MONGO_URI" envDefault:"mongodb://localhost:27017"`
		Database string `env:"MONGO_DATABASE" envDefault:"clinic"`
	}

	Postgres struct {
		DSN string `env:"POSTGRES_DSN"`
	}
}

func NewConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	cfg.Store.Driver = StoreDriver(strings.ToLower(string(cfg.Store.Driver)))
	switch cfg.Store.Driver {
	case DriverMongo, DriverMemory:
	case DriverPostgres:
		if cfg.Postgres.DSN == "" {
			return nil, fmt.Errorf("POSTGRES_DSN is required when STORE_DRIVER=%s", DriverPostgres)
		}
	default:
		return nil, fmt.Errorf("unknown STORE_DRIVER %q", cfg.Store.Driver)
	}
	return cfg, nil
}

// Redacted returns the store address with credentials stripped, for logging.
func (c *Config) Redacted() string {
	switch c.Store.Driver {
	case DriverMongo:
		return redactURI(c.Mongo.URI) + "/" + c.Mongo.Database
	case DriverPostgres:
		return redactURI(c.Postgres.DSN)
	}
	return string(c.Store.Driver)
}

func redactURI(uri string) string {
	scheme, rest, ok := strings.Cut(uri, "://")
	if !ok {
		return "***"
	}
	if at := strings.LastIndex(rest, "@"); at >= 0 {
		rest = "***@" + rest[at+1:]
	}
	return scheme + "://" + rest
}
