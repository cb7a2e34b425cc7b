package main

import (
	"fmt"
	"os"
	"strings"

	kyaml "github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config is the tool's layered settings: defaults, then an optional
// config file, then GHPR_* environment variables.
type Config struct {
	Host      string `koanf:"host"`
	Remote    string `koanf:"remote"`
	PageSize  int    `koanf:"page_size"`
	WrapWidth int    `koanf:"wrap_width"`
	RESTOnly  bool   `koanf:"rest_only"` // host has no GraphQL endpoint
	Verbose   bool   `koanf:"verbose"`
}

// IsDotCom reports whether the configured host is the public instance.
// Avatar exposure and API base URLs key off this.
func (c Config) IsDotCom() bool {
	return c.Host == "github.com"
}

const defaultConfigFile = ".ghpr.yml"

// LoadConfig builds the effective configuration.
func LoadConfig(path string) (Config, error) {
	k := koanf.New(".")

	_ = k.Load(confmap.Provider(map[string]interface{}{
		"host":       "github.com",
		"remote":     "origin",
		"page_size":  100,
		"wrap_width": 80,
	}, "."), nil)

	explicit := path != ""
	if !explicit {
		path = defaultConfigFile
	}
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), kyaml.Parser()); err != nil {
			return Config{}, fmt.Errorf("loading config file %s: %w", path, err)
		}
	} else if explicit {
		return Config{}, fmt.Errorf("config file %s: %w", path, err)
	}

	if err := k.Load(env.Provider("GHPR_", ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, "GHPR_"))
	}), nil); err != nil {
		return Config{}, fmt.Errorf("loading environment config: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshaling config: %w", err)
	}
	return cfg, nil
}
