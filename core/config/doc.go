// Package config loads typed configuration from the environment, an optional
// .env file and optional YAML files.
//
//	type DatabaseConfig struct {
//		Host     string `env:"DB_HOST" envDefault:"localhost"`
//		Port     int    `env:"DB_PORT" envDefault:"5432"`
//		Username string `env:"DB_USER,required"`
//	}
//
//	var db DatabaseConfig
//	if err := config.Load(&db); err != nil {
//		log.Fatal(err)
//	}
//
// # Caching
//
// Each configuration type is parsed once per process; later Load calls for the
// same type copy the cached value. Different types are cached independently.
// Reset drops the cache.
//
// # Files
//
// LoadFile reads a YAML file first and then applies environment variables on top,
// so deployments can keep defaults in a file and override single values:
//
//	var cfg AppConfig
//	err := config.LoadFile("launchpad.yaml", &cfg)
package config
