package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

const (
	EnvLocal = "local"
	EnvDev   = "dev"
	EnvProd  = "prod"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverNeo4j    = "neo4j"
)

type Config struct {
	Env      string `env:"ENV" env-default:"local"`
	LogLevel string `env:"LOG_LEVEL"`
	HTTP     HTTPConfig
	Database DatabaseConfig
	Neo4j    Neo4jConfig
}

type HTTPConfig struct {
	Host            string        `env:"HOST" env-default:"0.0.0.0"`
	Port            string        `env:"PORT" env-default:"3000"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" env-default:"10s"`
}

type DatabaseConfig struct {
	Driver         string        `env:"DATABASE_DRIVER" env-default:"postgres"`
	URL            string        `env:"DATABASE_URL" env-required:"true"`
	ForceSync      bool          `env:"DATABASE_FORCE_SYNC" env-default:"false"`
	SyncRetries    int           `env:"DATABASE_SYNC_RETRIES" env-default:"3"`
	SyncRetryDelay time.Duration `env:"DATABASE_SYNC_RETRY_DELAY" env-default:"1s"`
	ConnectTimeout time.Duration `env:"DATABASE_CONNECT_TIMEOUT" env-default:"10s"`
}

type Neo4jConfig struct {
	Username string `env:"NEO4J_USERNAME" env-default:"neo4j"`
	Password string `env:"NEO4J_PASSWORD"`
}

// Read loads the given dotenv files (".env" when none are given) into the
// process environment and then reads the configuration from it. A missing
// default ".env" is not an error; a missing explicit file is.
func Read(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load .env: %w", err)
		}
	} else if err := godotenv.Load(envFiles...); err != nil {
		return nil, fmt.Errorf("failed to load env files: %w", err)
	}

	cfg := new(Config)
	if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.Env {
	case EnvLocal, EnvDev, EnvProd:
	default:
		return fmt.Errorf("unknown env: %s", c.Env)
	}

	switch c.Database.Driver {
	case DriverPostgres, DriverSQLite, DriverNeo4j:
	default:
		return fmt.Errorf("unknown database driver: %s", c.Database.Driver)
	}

	if c.Database.SyncRetries < 1 {
		return fmt.Errorf("DATABASE_SYNC_RETRIES must be at least 1, got %d", c.Database.SyncRetries)
	}

	return nil
}
