package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/launchpad/core/prepare"
	"github.com/dmitrymomot/launchpad/integration/database/pg"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "launchpad.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

const baseConfig = `
name: demo
server:
  addr: "127.0.0.1:0"
  shutdowntimeout: 2s
log:
  level: error
`

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestLoadConfigFromFile(t *testing.T) {
	t.Setenv("APP_ENV", "staging")

	cfg, err := loadConfig(writeConfig(t, baseConfig))
	require.NoError(t, err)

	assert.Equal(t, "demo", cfg.Name)
	assert.Equal(t, "staging", cfg.Env)
	assert.Equal(t, "127.0.0.1:0", cfg.ServeAddress())
	assert.Equal(t, "error", cfg.Log.Level)
	assert.Equal(t, "/health", cfg.HealthPath)
	assert.Equal(t, "/metrics", cfg.MetricsPath)
	assert.False(t, cfg.Enable.Any())
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := loadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestRoutesCommand(t *testing.T) {
	out, err := execute(t, "routes", "--config", writeConfig(t, baseConfig))
	require.NoError(t, err)

	assert.Contains(t, out, "METHOD")
	assert.Regexp(t, `GET\s+/health\n`, out)
	assert.Regexp(t, `GET\s+/health/ready\n`, out)
	assert.Regexp(t, `GET\s+/metrics\n`, out)
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version", "--short")
	require.NoError(t, err)
	assert.Equal(t, version+"\n", out)

	out, err = execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "Go version:")
}

func TestPipelineReportsFailingIntegration(t *testing.T) {
	cfg, err := loadConfig(writeConfig(t, baseConfig+`
enable:
  postgres: true
`))
	require.NoError(t, err)
	require.True(t, cfg.Enable.Postgres)

	sp, err := newPipeline(cfg, newRegistry())
	require.NoError(t, err)
	assert.Equal(t, 3, sp.Len())

	_, err = sp.PrepareStart(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, pg.ErrEmptyConnectionString)

	var pe *prepare.PrepareError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, 1, pe.Step)
	assert.Equal(t, 1, pe.Member)
	assert.Equal(t, "postgres", pe.Name)
}

func TestPipelineInvalidLogger(t *testing.T) {
	cfg, err := loadConfig(writeConfig(t, baseConfig))
	require.NoError(t, err)
	cfg.Log.Format = "xml"

	_, err = newPipeline(cfg, newRegistry())
	assert.Error(t, err)
}
