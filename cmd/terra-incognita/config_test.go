package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cmd := generateCmd()
	cmd.Flags().String("config", "", "")
	require.NoError(t, cmd.ParseFlags(nil))

	cfg, err := loadConfig(cmd)
	require.NoError(t, err)
	assert.Equal(t, uint32(42), cfg.Seed)
	assert.Equal(t, 0.55, cfg.WaterAbundance)
	assert.Equal(t, 512, cfg.Width)
	assert.Equal(t, 256, cfg.Height)
}

func TestLoadConfig_FileAndFlagPrecedence(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "planet.toml")
	require.NoError(t, os.WriteFile(path, []byte(
		"seed = 7\nwater_abundance = 0.9\nwidth = 256\nheight = 128\n"), 0o644))

	cmd := generateCmd()
	cmd.Flags().String("config", "", "")
	require.NoError(t, cmd.ParseFlags([]string{"--config", path, "--water-abundance", "0.2"}))

	cfg, err := loadConfig(cmd)
	require.NoError(t, err)
	assert.Equal(t, uint32(7), cfg.Seed, "file value")
	assert.Equal(t, 0.2, cfg.WaterAbundance, "flag overrides file")
	assert.Equal(t, 256, cfg.Width)
}

func TestGlobalParams_Mapping(t *testing.T) {
	cfg := defaultConfig()
	p := cfg.globalParams()
	assert.Equal(t, cfg.Seed, p.Seed)
	assert.Equal(t, cfg.WaterAbundance, p.WaterAbundance)
	assert.Equal(t, cfg.Width, p.Width)
	assert.NoError(t, p.Validate())
}
