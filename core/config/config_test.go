package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/launchpad/core/config"
)

type appConfig struct {
	Name string `env:"LP_TEST_NAME" envDefault:"launchpad" yaml:"name"`
	Port int    `env:"LP_TEST_PORT" envDefault:"8080" yaml:"port"`
}

type requiredConfig struct {
	Token string `env:"LP_TEST_TOKEN,required"`
}

func TestLoadCachesPerType(t *testing.T) {
	config.Reset()
	t.Cleanup(config.Reset)

	t.Setenv("LP_TEST_PORT", "9090")

	var first appConfig
	require.NoError(t, config.Load(&first))
	assert.Equal(t, "launchpad", first.Name)
	assert.Equal(t, 9090, first.Port)

	t.Setenv("LP_TEST_PORT", "7070")

	var second appConfig
	require.NoError(t, config.Load(&second))
	assert.Equal(t, 9090, second.Port, "second load must come from cache")

	config.Reset()
	var third appConfig
	require.NoError(t, config.Load(&third))
	assert.Equal(t, 7070, third.Port)
}

func TestLoadRequired(t *testing.T) {
	config.Reset()
	t.Cleanup(config.Reset)

	var cfg requiredConfig
	err := config.Load(&cfg)
	assert.ErrorIs(t, err, config.ErrParse)

	assert.Panics(t, func() {
		config.MustLoad(&requiredConfig{})
	})
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "app.yaml")
	require.NoError(t, os.WriteFile(path, []byte("name: from-file\nport: 3000\n"), 0o600))

	t.Run("file values", func(t *testing.T) {
		var cfg appConfig
		require.NoError(t, config.LoadFile(path, &cfg))
		assert.Equal(t, "from-file", cfg.Name)
		assert.Equal(t, 3000, cfg.Port)
	})

	t.Run("env overrides file", func(t *testing.T) {
		t.Setenv("LP_TEST_PORT", "4000")
		var cfg appConfig
		require.NoError(t, config.LoadFile(path, &cfg))
		assert.Equal(t, "from-file", cfg.Name)
		assert.Equal(t, 4000, cfg.Port)
	})

	t.Run("missing file", func(t *testing.T) {
		var cfg appConfig
		err := config.LoadFile(filepath.Join(dir, "nope.yaml"), &cfg)
		assert.ErrorIs(t, err, config.ErrReadFile)
	})

	t.Run("broken yaml", func(t *testing.T) {
		bad := filepath.Join(dir, "bad.yaml")
		require.NoError(t, os.WriteFile(bad, []byte("port: [1,2"), 0o600))
		var cfg appConfig
		assert.ErrorIs(t, config.LoadFile(bad, &cfg), config.ErrReadFile)
	})
}
