package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "table", cfg.Output.Format)
	assert.Equal(t, "auto", cfg.Solver.InputFormat)
	assert.Equal(t, 1e-6, cfg.Solver.VerifyTolerance)
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
log:
  level: debug
  format: json
output:
  format: yaml
  verbose: true
solver:
  verify: true
  verify_tolerance: 0.001
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "yaml", cfg.Output.Format)
	assert.True(t, cfg.Output.Verbose)
	assert.True(t, cfg.Solver.Verify)
	assert.Equal(t, 0.001, cfg.Solver.VerifyTolerance)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "log:\n  level: debug\noutput:\n  format: json\n")
	t.Setenv("SIMPLEX_LOG_LEVEL", "error")
	t.Setenv("SIMPLEX_SOLVER_VERIFY", "true")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "error", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Output.Format)
	assert.True(t, cfg.Solver.Verify)
}

func TestLoad_Invalid(t *testing.T) {
	for _, tc := range []struct {
		name    string
		content string
	}{
		{"log level", "log:\n  level: loud\n"},
		{"log format", "log:\n  format: xml\n"},
		{"output format", "output:\n  format: csv\n"},
		{"input format", "solver:\n  input_format: lp\n"},
		{"tolerance", "solver:\n  verify_tolerance: -1\n"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tc.content))
			assert.ErrorIs(t, err, ErrInvalid)
		})
	}
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "log: [unclosed\n"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, strings.Repeat("#", maxConfigFileSize+1)))
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestEnvKey(t *testing.T) {
	assert.Equal(t, "log.level", envKey("SIMPLEX_LOG_LEVEL"))
	assert.Equal(t, "solver.verify_tolerance", envKey("SIMPLEX_SOLVER_VERIFY_TOLERANCE"))
	assert.Equal(t, "debug", envKey("SIMPLEX_DEBUG"))
}
