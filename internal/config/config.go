package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds server settings, read from an optional YAML file with
// environment-variable overrides on top.
type Config struct {
	Addr         string `yaml:"addr"`
	DatabasePath string `yaml:"database_path"`
	LogLevel     string `yaml:"log_level"`
}

const defaultPath = "appdeck.yaml"

func Default() *Config {
	return &Config{
		Addr:         ":8080",
		DatabasePath: "appdeck.db",
		LogLevel:     "info",
	}
}

// Load reads the config file at path, falling back to appdeck.yaml in the
// working directory. A missing file is not an error; defaults apply.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = defaultPath
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, err
		}
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	applyEnv(cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("APPDECK_ADDR"); v != "" {
		cfg.Addr = v
	}
	if v := os.Getenv("APPDECK_DATABASE"); v != "" {
		cfg.DatabasePath = v
	}
	if v := os.Getenv("APPDECK_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
}
