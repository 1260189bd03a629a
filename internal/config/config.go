package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const configFileEnvName = "ZENNEXIFY_CONFIG_FILE"

// Supported storage backends.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverMongo    = "mongo"
	DriverMemory   = "memory"
)

// Config holds everything the process needs at start-up.
type Config struct {
	AppPort              string
	DBDriver             string
	DatabaseDSN          string
	MongoURI             string
	MongoDatabase        string
	JWTSecret            string
	RabbitMQURL          string
	LogLevel             string
	ExposeInternalErrors bool
	CookieSecure         bool
}

// Load reads configuration from a .env file (if any), an optional config
// file given by --config or ZENNEXIFY_CONFIG_FILE, and the environment.
// Environment variables win over the file.
func Load(args []string) (Config, error) {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("APP_PORT", ":8080")
	v.SetDefault("DB_DRIVER", DriverPostgres)
	v.SetDefault("DATABASE_DSN", "")
	v.SetDefault("MONGO_URI", "")
	v.SetDefault("MONGO_DATABASE", "zennexify")
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("RABBITMQ_URL", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("EXPOSE_INTERNAL_ERRORS", true)
	v.SetDefault("COOKIE_SECURE", false)
	v.AutomaticEnv()

	path, err := configFilePath(args)
	if err != nil {
		return Config{}, err
	}
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	cfg := Config{
		AppPort:              v.GetString("APP_PORT"),
		DBDriver:             strings.ToLower(strings.TrimSpace(v.GetString("DB_DRIVER"))),
		DatabaseDSN:          v.GetString("DATABASE_DSN"),
		MongoURI:             v.GetString("MONGO_URI"),
		MongoDatabase:        v.GetString("MONGO_DATABASE"),
		JWTSecret:            v.GetString("JWT_SECRET"),
		RabbitMQURL:          v.GetString("RABBITMQ_URL"),
		LogLevel:             v.GetString("LOG_LEVEL"),
		ExposeInternalErrors: v.GetBool("EXPOSE_INTERNAL_ERRORS"),
		CookieSecure:         v.GetBool("COOKIE_SECURE"),
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports the first setting that makes the config unusable.
func (c Config) Validate() error {
	if strings.TrimSpace(c.JWTSecret) == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}

	switch c.DBDriver {
	case DriverPostgres, DriverSQLite:
		if c.DatabaseDSN == "" {
			return fmt.Errorf("DATABASE_DSN is required for driver %q", c.DBDriver)
		}
	case DriverMongo:
		if c.MongoURI == "" {
			return fmt.Errorf("MONGO_URI is required for driver %q", c.DBDriver)
		}
	case DriverMemory:
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}
	return nil
}

func configFilePath(args []string) (string, error) {
	cmdLine := pflag.NewFlagSet("zennexify", pflag.ContinueOnError)
	arg := cmdLine.String("config", "", "config file")
	if err := cmdLine.Parse(args); err != nil {
		return "", fmt.Errorf("failed to parse flags: %w", err)
	}
	if env, ok := os.LookupEnv(configFileEnvName); ok {
		return env, nil
	}
	return *arg, nil
}
