package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/woozymasta/stateplane/internal/stateplane"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoadEmptyPathUsesDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, stateplane.DefaultConfig(), cfg.Converter())
	assert.Len(t, cfg.Samples, 2)
	assert.True(t, cfg.Samples[0].IsForward())
	assert.True(t, cfg.Samples[1].IsInverse())
}

func TestLoadOverrides(t *testing.T) {
	path := writeConfig(t, `
datum: WGS84
epsg: 2276
inverse_check: any
min_easting_ft: 0
samples:
  - name: fort-worth
    lat: 32.7555
    lon: -97.3308
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	conv := cfg.Converter()
	assert.Equal(t, stateplane.CheckAny, conv.InverseCheck)
	assert.Equal(t, 0.0, conv.MinEastingFt)
	assert.Equal(t, stateplane.DefaultMinNorthingFt, conv.MinNorthingFt)
	assert.Equal(t, stateplane.EngineNative, conv.Engine)
	require.Len(t, cfg.Samples, 1)
	assert.Equal(t, "fort-worth", cfg.Samples[0].Name)
	assert.InDelta(t, 32.7555, *cfg.Samples[0].Lat, 1e-12)
}

func TestLoadRejectsAmbiguousSample(t *testing.T) {
	path := writeConfig(t, `
samples:
  - name: both
    lat: 1
    lon: 2
    x: 3
    y: 4
  - name: half
    lat: 1
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"both"`)
	assert.Contains(t, err.Error(), `"half"`)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadInvalidYAML(t *testing.T) {
	_, err := Load(writeConfig(t, "epsg: [oops"))
	require.Error(t, err)
}
