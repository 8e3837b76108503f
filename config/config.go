package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

var ErrInsecureSecretKey = errors.New("SECRET_KEY must be at least 8 bytes")

// Config holds every setting the server reads from the environment.
type Config struct {
	Port string `envconfig:"PORT" default:"5000"`

	DBDriver   string `envconfig:"DB_DRIVER" default:"sqlite"`
	DBPath     string `envconfig:"DB_PATH" default:"./minitwit.db"`
	DBHost     string `envconfig:"DB_HOST" default:"localhost"`
	DBPort     string `envconfig:"DB_PORT" default:"5432"`
	DBUser     string `envconfig:"DB_USER" default:"minitwit"`
	DBPassword string `envconfig:"DB_PASSWORD"`
	DBName     string `envconfig:"DB_NAME" default:"minitwit"`
	DBSSLMode  string `envconfig:"DB_SSLMODE" default:"disable"`

	SecretKey  string `envconfig:"SECRET_KEY" default:"development key"`
	PerPage    int    `envconfig:"PER_PAGE" default:"30"`
	BcryptCost int    `envconfig:"BCRYPT_COST" default:"10"`

	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
	LogFile  string `envconfig:"LOG_FILE"`
}

// Load reads envFile (if it exists) into the process environment and then
// decodes the environment into a Config.
func Load(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("loading %s: %w", envFile, err)
		}
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("reading environment: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch c.DBDriver {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}
	if len(c.SecretKey) < 8 {
		return fmt.Errorf("%w: got %d bytes", ErrInsecureSecretKey, len(c.SecretKey))
	}
	if c.PerPage <= 0 {
		return fmt.Errorf("PER_PAGE must be positive, got %d", c.PerPage)
	}
	return nil
}
