// Package config loads the demo server configuration from a yaml file and
// merges environment overrides on top. Flags are parsed here so main stays
// small.
package config

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Address string `yaml:"address"`
		Port    int    `yaml:"port"`
	} `yaml:"server"`
	Log struct {
		Level string `yaml:"level"`
	} `yaml:"log"`
	RateLimit struct {
		Enabled bool    `yaml:"enabled"`
		RPS     float64 `yaml:"rps"`
		Burst   int     `yaml:"burst"`
	} `yaml:"rate_limit"`
}

// Default returns the configuration used when no file or overrides exist.
func Default() Config {
	var c Config
	c.Server.Address = "127.0.0.1"
	c.Server.Port = 8080
	c.Log.Level = "info"
	return c
}

// Load reads path and merges env overrides. A missing file is not an
// error; the defaults plus env apply. An unreadable or invalid file is.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return cfg, fmt.Errorf("read config %s: %w", path, err)
			}
		} else if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	applyEnv(&cfg)
	return cfg, nil
}

// applyEnv merges PLUG_ADDR, PLUG_PORT, and PLUG_LOG_LEVEL over the file
// values.
func applyEnv(cfg *Config) {
	if v := os.Getenv("PLUG_ADDR"); v != "" {
		cfg.Server.Address = v
	}
	if v := os.Getenv("PLUG_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil && p > 0 {
			cfg.Server.Port = p
		}
	}
	if v := os.Getenv("PLUG_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
}

// Addr returns the listen address in host:port form.
func (c Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Address, c.Server.Port)
}

// ParseCommandFlags registers and parses the demo server flags, returning
// the config file path and an address override ("" when not set).
func ParseCommandFlags() (cfgPath, addr string) {
	cfgFlag := flag.String("config", os.Getenv("PLUG_CONFIG"), "path to yaml config file")
	addrFlag := flag.String("addr", "", "listen address override (host:port)")
	flag.Parse()
	return *cfgFlag, *addrFlag
}
