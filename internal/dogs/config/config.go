// Package config loads the service configuration from YAML.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gartstein/dogs/internal/dogs/db"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// EnvPath names the environment variable holding the config file path.
const EnvPath = "DOGS_CONFIG"

// DefaultPath is used when EnvPath is unset.
var DefaultPath = filepath.Join("internal", "dogs", "config", "config.yaml")

// Config struct for YAML configuration
type Config struct {
	HTTPPort         int      `yaml:"HTTP_PORT"`
	DBDriver         string   `yaml:"DB_DRIVER"`
	DBHost           string   `yaml:"DB_HOST"`
	DBPort           int      `yaml:"DB_PORT"`
	DBUser           string   `yaml:"DB_USER"`
	DBPassword       string   `yaml:"DB_PASSWORD"`
	DBName           string   `yaml:"DB_NAME"`
	DBSSLMode        string   `yaml:"DB_SSLMODE"`
	DBPath           string   `yaml:"DB_PATH"`
	DBConnectRetries uint64   `yaml:"DB_CONNECT_RETRIES"`
	KafkaBrokers     []string `yaml:"KAFKA_BROKERS"`
	Topic            string   `yaml:"TOPIC"`
	EventsGroupID    string   `yaml:"EVENTS_GROUP_ID"`
	JWTSecret        string   `yaml:"JWT_SECRET"`
	LogLevel         string   `yaml:"LOG_LEVEL"`
	DefaultPageSize  int      `yaml:"DEFAULT_PAGE_SIZE"`
	MaxPageSize      int      `yaml:"MAX_PAGE_SIZE"`
}

// Load reads the file named by DOGS_CONFIG, or DefaultPath, applies
// defaults and secret overrides from the environment, and validates it.
func Load() (*Config, error) {
	path := os.Getenv(EnvPath)
	if path == "" {
		path = DefaultPath
	}
	return LoadFile(path)
}

func LoadFile(path string) (*Config, error) {
	file, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	return Parse(file)
}

func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.applyDefaults()
	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.HTTPPort == 0 {
		c.HTTPPort = 8080
	}
	if c.DBDriver == "" {
		c.DBDriver = db.DriverPostgres
	}
	if c.DBPort == 0 {
		c.DBPort = 5432
	}
	if c.DBSSLMode == "" {
		c.DBSSLMode = "disable"
	}
	if c.DBPath == "" {
		c.DBPath = ":memory:"
	}
	if c.DBConnectRetries == 0 {
		c.DBConnectRetries = 5
	}
	if c.Topic == "" {
		c.Topic = "dogs.events"
	}
	if c.EventsGroupID == "" {
		c.EventsGroupID = "dog-events"
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.DefaultPageSize == 0 {
		c.DefaultPageSize = 20
	}
	if c.MaxPageSize == 0 {
		c.MaxPageSize = 100
	}
}

// applyEnv lets the environment override secrets kept out of the file.
func (c *Config) applyEnv() {
	if v, ok := os.LookupEnv("DB_PASSWORD"); ok {
		c.DBPassword = v
	}
	if v, ok := os.LookupEnv("JWT_SECRET"); ok {
		c.JWTSecret = v
	}
}

func (c *Config) Validate() error {
	var errs []error
	if c.DBDriver != db.DriverPostgres && c.DBDriver != db.DriverSQLite {
		errs = append(errs, fmt.Errorf("DB_DRIVER must be %q or %q, got %q", db.DriverPostgres, db.DriverSQLite, c.DBDriver))
	}
	if c.HTTPPort < 0 || c.HTTPPort > 65535 {
		errs = append(errs, fmt.Errorf("HTTP_PORT out of range: %d", c.HTTPPort))
	}
	if c.DefaultPageSize < 1 || c.MaxPageSize < 1 {
		errs = append(errs, errors.New("page sizes must be positive"))
	} else if c.DefaultPageSize > c.MaxPageSize {
		errs = append(errs, fmt.Errorf("DEFAULT_PAGE_SIZE %d exceeds MAX_PAGE_SIZE %d", c.DefaultPageSize, c.MaxPageSize))
	}
	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("LOG_LEVEL: %w", err))
	}
	return errors.Join(errs...)
}

// Database returns the repository settings.
func (c *Config) Database() *db.Config {
	return &db.Config{
		Driver:         c.DBDriver,
		Host:           c.DBHost,
		Port:           c.DBPort,
		User:           c.DBUser,
		Password:       c.DBPassword,
		DBName:         c.DBName,
		SSLMode:        c.DBSSLMode,
		Path:           c.DBPath,
		ConnectRetries: c.DBConnectRetries,
	}
}

// Logger builds a production zap logger at the configured level.
func (c *Config) Logger() (*zap.Logger, error) {
	level, err := zap.ParseAtomicLevel(c.LogLevel)
	if err != nil {
		return nil, err
	}
	zc := zap.NewProductionConfig()
	zc.Level = level
	return zc.Build()
}
