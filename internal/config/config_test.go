package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "memsweep.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 10, cfg.Workers)
	assert.Equal(t, time.Second, cfg.Interval)
	assert.Empty(t, cfg.Exclude)
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadOverrides(t *testing.T) {
	path := writeConfig(t, "workers: 4\nexclude: [812, 1044]\ninterval: 250ms\n")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 4, cfg.Workers)
	assert.Equal(t, []int32{812, 1044}, cfg.Exclude)
	assert.Equal(t, 250*time.Millisecond, cfg.Interval)
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := writeConfig(t, "exclude: [99]\n")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 10, cfg.Workers)
	assert.Equal(t, time.Second, cfg.Interval)
	assert.Equal(t, []int32{99}, cfg.Exclude)
}

func TestLoadRejectsBadInterval(t *testing.T) {
	_, err := Load(writeConfig(t, "interval: soon\n"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "interval: -2s\n"))
	assert.Error(t, err)
}

func TestLoadRejectsInvalidYAML(t *testing.T) {
	_, err := Load(writeConfig(t, "workers: [\n"))
	assert.Error(t, err)
}

func TestLoadIgnoresNonPositiveWorkers(t *testing.T) {
	cfg, err := Load(writeConfig(t, "workers: 0\n"))
	require.NoError(t, err)
	assert.Equal(t, 10, cfg.Workers)
}
