package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/adrg/xdg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolateXDG(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	xdg.Reload()
	t.Cleanup(xdg.Reload)
	return dir
}

func TestInitConfigFirstRunWritesDefaults(t *testing.T) {
	dir := isolateXDG(t)

	cfg, err := InitConfig("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig.Engine.Bin, cfg.Engine.Bin)

	written, err := os.ReadFile(filepath.Join(dir, cfgFile))
	require.NoError(t, err)
	var onDisk Config
	require.NoError(t, json.Unmarshal(written, &onDisk))
	assert.Equal(t, DefaultConfig.Engine.Bin, onDisk.Engine.Bin)
}

func TestInitConfigReadsExistingXDGFile(t *testing.T) {
	dir := isolateXDG(t)

	custom := DefaultConfig
	custom.Engine.Bin = "katago"
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "gobanterm"), 0755))
	saveCfgFile(filepath.Join(dir, cfgFile), &custom, 0664)

	cfg, err := InitConfig("")
	require.NoError(t, err)
	assert.Equal(t, "katago", cfg.Engine.Bin)
}

func TestInitConfigExplicitPath(t *testing.T) {
	isolateXDG(t)

	custom := DefaultConfig
	custom.Engine.Bin = "pachi"
	path := filepath.Join(t.TempDir(), "custom.json")
	saveCfgFile(path, &custom, 0664)

	cfg, err := InitConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "pachi", cfg.Engine.Bin)
}

func TestInitConfigExplicitPathMissing(t *testing.T) {
	isolateXDG(t)

	_, err := InitConfig(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
	var invalid *InvalidConfig
	assert.ErrorAs(t, err, &invalid)
}

func TestValidateRejectsEmptyEngine(t *testing.T) {
	cfg := DefaultConfig
	cfg.Engine.Bin = ""
	assert.Error(t, cfg.Validate())
}

func TestValidateRejectsControlRunes(t *testing.T) {
	cfg := DefaultConfig
	cfg.Theme.Symbols.BlackStone = 7
	assert.Error(t, cfg.Validate())
}
