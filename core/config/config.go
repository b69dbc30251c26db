package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

var (
	// ErrParse is wrapped by Load and LoadFile when the environment cannot be parsed into the target.
	ErrParse = errors.New("config: failed to parse environment")
	// ErrReadFile is wrapped by LoadFile when the YAML file cannot be read or decoded.
	ErrReadFile = errors.New("config: failed to read file")
)

var (
	dotenvOnce sync.Once
	cache      sync.Map // reflect.Type -> any (value of T)
)

// loadDotenv loads .env once per process. A missing file is not an error.
func loadDotenv() {
	dotenvOnce.Do(func() {
		_ = godotenv.Load()
	})
}

// Load fills cfg from the environment (after loading .env) and caches the result
// per type: the next Load of the same type copies the cached value.
func Load[T any](cfg *T) error {
	typ := reflect.TypeFor[T]()
	if cached, ok := cache.Load(typ); ok {
		*cfg = cached.(T)
		return nil
	}

	loadDotenv()

	var v T
	if err := env.Parse(&v); err != nil {
		return fmt.Errorf("%w: %w", ErrParse, err)
	}

	actual, _ := cache.LoadOrStore(typ, v)
	*cfg = actual.(T)
	return nil
}

// MustLoad is like Load but panics on error. Meant for program startup.
func MustLoad[T any](cfg *T) {
	if err := Load(cfg); err != nil {
		panic(err)
	}
}

// LoadFile decodes the YAML file at path into cfg and then applies environment
// overrides on top. Fields absent from both keep their envDefault. The result
// is not cached.
func LoadFile[T any](path string, cfg *T) error {
	loadDotenv()

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("%w %s: %w", ErrReadFile, path, err)
	}

	var v T
	if err := yaml.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("%w %s: %w", ErrReadFile, path, err)
	}

	// Defaults only fill fields the file left empty; set variables always win.
	if err := env.ParseWithOptions(&v, env.Options{SetDefaultsForZeroValuesOnly: true}); err != nil {
		return fmt.Errorf("%w: %w", ErrParse, err)
	}

	*cfg = v
	return nil
}

// Reset clears the per-type cache. Intended for tests.
func Reset() {
	cache.Clear()
}
