// Package config loads and persists gobanterm settings.
package config

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"

	"github.com/adrg/xdg"
)

var cfgFile = "gobanterm/config.json"

type InvalidConfig struct {
	err string
}

func (e *InvalidConfig) Error() string {
	return fmt.Sprintf("Config error: %s", e.err)
}

// ThemeColors are terminal palette indices for each styled element.
type ThemeColors struct {
	BoardBg          int `json:"board_bg"`
	BoardBgHighlight int `json:"board_bg_highlight"`
	Text             int `json:"text"`
	Line             int `json:"line"`
	StarPoint        int `json:"star_point"`
	BlackStone       int `json:"black"`
	WhiteStone       int `json:"white"`
	ErrorFg          int `json:"error_fg"`
	ErrorBg          int `json:"error_bg"`
	LoadingFg        int `json:"loading_fg"`
	LoadingBg        int `json:"loading_bg"`
}

// ThemeSymbols are the runes drawn on the board.
type ThemeSymbols struct {
	BlackStone   rune `json:"black"`
	WhiteStone   rune `json:"white"`
	Intersection rune `json:"intersection"`
	StarPoint    rune `json:"star_point"`
	HorizLine    rune `json:"horiz_line"`
}

type Theme struct {
	Colors  ThemeColors  `json:"colors"`
	Symbols ThemeSymbols `json:"symbols"`
}

// EngineConfig selects the GTP engine binary and any extra arguments
// passed after "--mode gtp".
type EngineConfig struct {
	Bin  string   `json:"bin"`
	Args []string `json:"args"`
}

type Config struct {
	Engine EngineConfig `json:"engine"`
	Theme  Theme        `json:"theme"`
}

// InitConfig loads the config file, preferring an explicit path over the
// xdg config location. On a first run with no explicit path the defaults
// are written back so the user has a file to edit.
func InitConfig(path string) (*Config, error) {
	config := DefaultConfig
	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, &InvalidConfig{fmt.Sprintf("cannot read %q: %v", path, err)}
		}
		readCfgFile(path, &config)
	} else {
		absPath, err := xdg.SearchConfigFile(cfgFile)
		if err == nil {
			readCfgFile(absPath, &config)
		} else {
			config.Save()
		}
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

func (c *Config) Validate() error {
	if c.Engine.Bin == "" {
		return &InvalidConfig{"engine.bin must not be empty"}
	}
	for _, r := range []rune{c.Theme.Symbols.BlackStone, c.Theme.Symbols.WhiteStone, c.Theme.Symbols.Intersection, c.Theme.Symbols.StarPoint} {
		if r < 32 || (r >= 127 && r <= 159) {
			return &InvalidConfig{"Unicode characters 1-31 and 127-159 are not allowed"}
		}
	}
	return nil
}

func (c *Config) Save() {
	absPath, err := xdg.ConfigFile(cfgFile)
	if err != nil {
		panic(err)
	}
	saveCfgFile(absPath, c, 0664)
}

func saveCfgFile(filePath string, a interface{}, perm fs.FileMode) {
	jsonData, err := json.MarshalIndent(a, "", "  ")
	if err != nil {
		panic(err)
	}
	err = os.WriteFile(filePath, jsonData, perm)
	if err != nil {
		panic(err)
	}
}

func readCfgFile(filePath string, a interface{}) {
	configReader, err := os.ReadFile(filePath)
	if err == nil {
		err = json.Unmarshal(configReader, &a)
		if err != nil {
			panic(err)
		}
	}
}
