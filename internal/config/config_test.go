package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileGivesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_YAMLOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "animclone.yaml")
	data := `
log:
  level: debug
container:
  backend: redis
  redis:
    addr: cache:6379
behaviours:
  opaque: [vendor/blink]
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format, "unset keys keep their default")
	assert.Equal(t, "redis", cfg.Container.Backend)
	assert.Equal(t, "cache:6379", cfg.Container.Redis.Addr)
	assert.Equal(t, "default", cfg.Container.Name)
	assert.Equal(t, []string{"vendor/blink"}, cfg.Behaviours.Opaque)
}

func TestLoad_JSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "animclone.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"server": {"addr": ":9090"}}`), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Server.Addr)
}

func TestLoad_Invalid(t *testing.T) {
	dir := t.TempDir()

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("log: [oops"), 0644))
	_, err := Load(bad)
	assert.Error(t, err)

	backend := filepath.Join(dir, "backend.yaml")
	require.NoError(t, os.WriteFile(backend, []byte("container: {backend: etcd}"), 0644))
	_, err = Load(backend)
	assert.Error(t, err)
}
