package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetDefaults(t *testing.T) {
	c := &Config{}
	c.SetDefaults()
	assert.Equal(t, "./models", c.Models.Dir)
	assert.Equal(t, 3000, c.Server.Port)
	assert.Equal(t, "127.0.0.1", c.Server.Host)
	assert.Equal(t, "info", c.Log.Level)
	assert.NotEmpty(t, c.Store.Path)
}

func TestLoadFromYAML(t *testing.T) {
	tmp := t.TempDir()
	cfgPath := filepath.Join(tmp, "config.yaml")
	content := `models:
  dir: ./service-models
server:
  port: 8080
docs:
  auto_populated:
    - service: myservice
      operation: SampleOperation
      param: ClientToken
  hidden:
    - service: myservice
      param: Secret
      operations: [SampleOperation, Other]
filter:
  exclude: ["Delete*"]
`
	require.NoError(t, os.WriteFile(cfgPath, []byte(content), 0o644))

	cfg, err := Load(cfgPath)
	require.NoError(t, err)
	assert.Equal(t, "./service-models", cfg.Models.Dir)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "./output", cfg.Output.Dir)
	require.Len(t, cfg.Docs.AutoPopulated, 1)
	assert.Equal(t, "ClientToken", cfg.Docs.AutoPopulated[0].Param)
	require.Len(t, cfg.Docs.Hidden, 1)
	assert.Equal(t, []string{"SampleOperation", "Other"}, cfg.Docs.Hidden[0].Operations)
	assert.Equal(t, []string{"Delete*"}, cfg.Filter.Exclude)
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("SDKDOC_SERVER_PORT", "9999")
	t.Setenv("SDKDOC_LOG_LEVEL", "debug")
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, 9999, cfg.Server.Port)

	level, err := cfg.SlogLevel()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)
}

func TestValidate(t *testing.T) {
	c := &Config{}
	c.SetDefaults()
	c.Output.Dir = t.TempDir()
	require.NoError(t, c.ValidateRender())

	c.Log.Level = "loud"
	require.Error(t, c.Validate())
	c.Log.Level = "warn"

	c.Filter.Exclude = []string{"[Op"}
	require.Error(t, c.Validate())
	c.Filter.Exclude = []string{"Delete*"}
	require.NoError(t, c.Validate())

	c.Docs.AutoPopulated = []AutoPopulatedRule{{Service: "s", Param: "p"}}
	require.Error(t, c.Validate())
}
