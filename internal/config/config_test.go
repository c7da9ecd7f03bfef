package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "report.json", cfg.Report.Output)
	assert.Equal(t, "pyvet.db", cfg.History.Path)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Empty(t, cfg.Scan.Exclude)
	assert.False(t, cfg.Cache.Disabled)
}

func TestLoad_YAMLOverlay(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pyvet.yml")
	yml := `
scan:
  exclude: [migrations, fixtures]
  jobs: 3
report:
  output: out/findings.json
cache:
  dir: /tmp/pyvet-cache
history:
  path: custom.db
log:
  level: debug
  format: json
`
	require.NoError(t, os.WriteFile(path, []byte(yml), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"migrations", "fixtures"}, cfg.Scan.Exclude)
	assert.Equal(t, 3, cfg.Scan.Jobs)
	assert.Equal(t, "out/findings.json", cfg.Report.Output)
	assert.Equal(t, "/tmp/pyvet-cache", cfg.Cache.Dir)
	assert.Equal(t, "custom.db", cfg.History.Path)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pyvet.yml")
	require.NoError(t, os.WriteFile(path, []byte("history:\n  path: from-file.db\n"), 0o644))

	t.Setenv("PYVET_DB", "from-env.db")
	t.Setenv("PYVET_OUTPUT", "env.json")
	t.Setenv("PYVET_LOG_LEVEL", "warn")
	t.Setenv("PYVET_JOBS", "7")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env.db", cfg.History.Path)
	assert.Equal(t, "env.json", cfg.Report.Output)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, 7, cfg.Scan.Jobs)
}

func TestLoad_ExplicitMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	assert.Error(t, err)
}

func TestLoad_BadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pyvet.yml")
	require.NoError(t, os.WriteFile(path, []byte("scan: ["), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, "DEBUG", parseLevel("debug").String())
	assert.Equal(t, "WARN", parseLevel("warning").String())
	assert.Equal(t, "ERROR", parseLevel("error").String())
	assert.Equal(t, "INFO", parseLevel("anything else").String())
}
