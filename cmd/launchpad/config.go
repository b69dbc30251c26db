package main

import (
	"log/slog"

	"github.com/dmitrymomot/launchpad/core/config"
	"github.com/dmitrymomot/launchpad/core/logger"
	"github.com/dmitrymomot/launchpad/core/server"
	"github.com/dmitrymomot/launchpad/integration/autocert"
	"github.com/dmitrymomot/launchpad/integration/database/mongo"
	"github.com/dmitrymomot/launchpad/integration/database/opensearch"
	"github.com/dmitrymomot/launchpad/integration/database/pg"
	"github.com/dmitrymomot/launchpad/integration/database/redis"
	"github.com/dmitrymomot/launchpad/integration/storage/s3"
)

// AppConfig is the launchpad application configuration.
type AppConfig struct {
	Name        string `yaml:"name" env:"APP_NAME" envDefault:"launchpad"`
	Env         string `yaml:"env" env:"APP_ENV" envDefault:"development"`
	HealthPath  string `yaml:"health_path" env:"HEALTH_PATH" envDefault:"/health"`
	MetricsPath string `yaml:"metrics_path" env:"METRICS_PATH" envDefault:"/metrics"`

	Server server.Config `yaml:"server"`
	Log    logger.Config `yaml:"log"`

	Enable Integrations `yaml:"enable"`

	Postgres   pg.Config         `yaml:"postgres"`
	Redis      redis.Config      `yaml:"redis"`
	Mongo      mongo.Config      `yaml:"mongo"`
	OpenSearch opensearch.Config `yaml:"opensearch"`
	S3         s3.Config         `yaml:"s3"`
	Autocert   autocert.Config   `yaml:"autocert"`
}

// Integrations switches optional startup steps on.
type Integrations struct {
	Postgres   bool `yaml:"postgres" env:"PG_ENABLED"`
	Redis      bool `yaml:"redis" env:"REDIS_ENABLED"`
	Mongo      bool `yaml:"mongo" env:"MONGODB_ENABLED"`
	OpenSearch bool `yaml:"opensearch" env:"OPENSEARCH_ENABLED"`
	S3         bool `yaml:"s3" env:"S3_ENABLED"`
	Autocert   bool `yaml:"autocert" env:"AUTOCERT_ENABLED"`
}

// Any reports whether at least one integration is enabled.
func (i Integrations) Any() bool {
	return i.Postgres || i.Redis || i.Mongo || i.OpenSearch || i.S3 || i.Autocert
}

func (c *AppConfig) ServeAddress() string { return c.Server.Addr }

func (c *AppConfig) InitLogger() (*slog.Logger, error) {
	opts := []logger.Option{logger.WithAttr(slog.String("app", c.Name), slog.String("env", c.Env))}
	return logger.NewFromConfig(c.Log, opts...)
}

func (c *AppConfig) PostgresConfig() pg.Config { return c.Postgres }
func (c *AppConfig) RedisConfig() redis.Config { return c.Redis }
func (c *AppConfig) MongoConfig() mongo.Config { return c.Mongo }
func (c *AppConfig) OpenSearchConfig() opensearch.Config { return c.OpenSearch }
func (c *AppConfig) S3Config() s3.Config { return c.S3 }
func (c *AppConfig) AutocertConfig() autocert.Config { return c.Autocert }

// loadConfig reads the environment, layered over the YAML file at path when given.
func loadConfig(path string) (*AppConfig, error) {
	var cfg AppConfig
	if path != "" {
		if err := config.LoadFile(path, &cfg); err != nil {
			return nil, err
		}
		return &cfg, nil
	}
	if err := config.Load(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
