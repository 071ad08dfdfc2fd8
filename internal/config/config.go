// Package config loads the command line configuration file.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultPath is read when no --config flag is given.
const DefaultPath = "animclone.yaml"

// Config is the structure of animclone.yaml.
type Config struct {
	Log        LogConfig       `yaml:"log" json:"log"`
	Assets     string          `yaml:"assets" json:"assets"`
	Container  ContainerConfig `yaml:"container" json:"container"`
	Behaviours BehaviourConfig `yaml:"behaviours" json:"behaviours"`
	Server     ServerConfig    `yaml:"server" json:"server"`
}

type LogConfig struct {
	Level  string `yaml:"level" json:"level"`
	Format string `yaml:"format" json:"format"` // text or json
}

// ContainerConfig selects the ownership backend.
type ContainerConfig struct {
	Backend string `yaml:"backend" json:"backend"` // memory, redis, sqlite, mysql
	Name    string `yaml:"name" json:"name"`
	Redis   struct {
		Addr   string `yaml:"addr" json:"addr"`
		Prefix string `yaml:"prefix" json:"prefix"`
	} `yaml:"redis" json:"redis"`
	SQLite string `yaml:"sqlite" json:"sqlite"` // database path
	MySQL  string `yaml:"mysql" json:"mysql"`   // DSN
}

// BehaviourConfig extends the built-in behaviour types.
type BehaviourConfig struct {
	// Opaque type ids are copied field by field without interpretation.
	Opaque []string `yaml:"opaque" json:"opaque"`
}

type ServerConfig struct {
	Addr string `yaml:"addr" json:"addr"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	var cfg Config
	cfg.Log.Level = "info"
	cfg.Log.Format = "text"
	cfg.Assets = filepath.Join(".animclone", "assets")
	cfg.Container.Backend = "memory"
	cfg.Container.Name = "default"
	cfg.Container.Redis.Addr = "localhost:6379"
	cfg.Container.SQLite = filepath.Join(".animclone", "ownership.db")
	cfg.Server.Addr = ":8080"
	return cfg
}

// Load reads a configuration file (YAML or JSON) over the defaults.
// A missing file at path yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	if strings.ToLower(filepath.Ext(path)) == ".json" {
		if err := json.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
		}
	} else {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate rejects unknown enum values.
func (c Config) Validate() error {
	switch c.Container.Backend {
	case "memory", "redis", "sqlite", "mysql":
	default:
		return fmt.Errorf("unknown container backend %q", c.Container.Backend)
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("unknown log format %q", c.Log.Format)
	}
	return nil
}
