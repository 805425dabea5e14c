// Package config loads the mumskids TOML config file and applies
// environment overrides.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/million-dollar-projects/mumskids-sub000/internal/llm"
)

// Config is the application configuration.
type Config struct {
	// Locale selects display language for catalog names and stories,
	// e.g. "en" or "zh-CN".
	Locale string `toml:"locale"`

	// DB overrides the database path.
	DB string `toml:"db"`

	Worksheet WorksheetConfig `toml:"worksheet"`
	LLM       llm.Config      `toml:"llm"`
}

// WorksheetConfig sets PDF layout defaults.
type WorksheetConfig struct {
	PageSize  string  `toml:"page_size"` // A4 or Letter
	MarginsMM float64 `toml:"margins_mm"`
	Font      string  `toml:"font"` // core PDF font family
	Columns   int     `toml:"columns"`
	Theme     string  `toml:"theme"` // story theme
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Locale: "en",
		Worksheet: WorksheetConfig{
			PageSize:  "A4",
			MarginsMM: 15,
			Font:      "Helvetica",
			Columns:   3,
			Theme:     "animals",
		},
	}
}

// Load reads path over the defaults. A missing file is not an error.
// Unknown keys are, so typos do not go unnoticed.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, errors.New("config path is empty")
	}
	md, err := toml.DecodeFile(path, &cfg)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("decode config %s: %w", path, err)
	}
	if undec := md.Undecoded(); len(undec) > 0 {
		keys := make([]string, len(undec))
		for i, k := range undec {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("config %s: unknown keys %s", path, strings.Join(keys, ", "))
	}
	return cfg, nil
}

// ApplyEnv overlays MUMSKIDS_* variables. getenv defaults to os.Getenv.
func (c Config) ApplyEnv(getenv func(string) string) Config {
	if getenv == nil {
		getenv = os.Getenv
	}
	if v := getenv("MUMSKIDS_LOCALE"); v != "" {
		c.Locale = v
	} else if c.Locale == "" {
		c.Locale = localeFromLang(getenv("LANG"))
	}
	if v := getenv("MUMSKIDS_DB"); v != "" {
		c.DB = v
	}
	c.LLM = c.LLM.ApplyEnv(getenv)
	return c
}

// localeFromLang turns a POSIX LANG value like "zh_CN.UTF-8" into "zh-CN".
func localeFromLang(lang string) string {
	lang, _, _ = strings.Cut(lang, ".")
	lang, _, _ = strings.Cut(lang, "@")
	if lang == "" || lang == "C" || lang == "POSIX" {
		return "en"
	}
	return strings.ReplaceAll(lang, "_", "-")
}
