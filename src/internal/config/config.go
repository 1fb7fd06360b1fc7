// Package config handles user configuration stored in
// ~/.config/citeassist/config.yml, with CITEASSIST_* environment overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	// Dir is the directory name under XDG_CONFIG_HOME.
	Dir = "citeassist"
	// File is the config file name.
	File = "config.yml"
	// EnvPrefix prefixes every environment override.
	EnvPrefix = "CITEASSIST_"
)

// Config holds user preferences. Zero values mean "use the default".
type Config struct {
	Style             string  `yaml:"style,omitempty"`
	Markup            string  `yaml:"markup,omitempty"`
	StorePath         string  `yaml:"store_path,omitempty"`
	StoreBackend      string  `yaml:"store_backend,omitempty"`
	Mailto            string  `yaml:"mailto,omitempty"`
	TimeoutSeconds    int     `yaml:"timeout_seconds,omitempty"`
	RequestsPerSecond float64 `yaml:"requests_per_second,omitempty"`
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		Style:             "mla",
		Markup:            "plain",
		StorePath:         filepath.Join(dataHome(), Dir, "citations.yml"),
		StoreBackend:      "",
		TimeoutSeconds:    10,
		RequestsPerSecond: 5,
	}
}

// Path returns the config file path. Respects XDG_CONFIG_HOME, defaults to
// ~/.config/citeassist/config.yml.
func Path() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, Dir, File)
}

func dataHome() string {
	if d := os.Getenv("XDG_DATA_HOME"); d != "" {
		return d
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".local", "share")
}

// Load reads path (Path() when empty) over the defaults, then applies a
// .env file in the working directory and CITEASSIST_* variables. A missing
// config file is not an error.
func Load(path string) (Config, error) {
	cfg := Defaults()
	if err := readInto(path, &cfg); err != nil {
		return Config{}, err
	}
	_ = godotenv.Load()
	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	cfg.StorePath = ExpandTilde(cfg.StorePath)
	return cfg, nil
}

// ReadFile returns only what path (Path() when empty) sets, without defaults
// or environment overrides. Use it before Save so overrides are not persisted.
func ReadFile(path string) (Config, error) {
	var cfg Config
	err := readInto(path, &cfg)
	return cfg, err
}

func readInto(path string, cfg *Config) error {
	if path == "" {
		path = Path()
	}
	if path == "" {
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config: %w", err)
	}
	return nil
}

func applyEnv(cfg *Config) error {
	str := func(key string, dst *string) {
		if v := strings.TrimSpace(os.Getenv(EnvPrefix + key)); v != "" {
			*dst = v
		}
	}
	str("STYLE", &cfg.Style)
	str("MARKUP", &cfg.Markup)
	str("STORE", &cfg.StorePath)
	str("STORE_BACKEND", &cfg.StoreBackend)
	str("MAILTO", &cfg.Mailto)
	if v := strings.TrimSpace(os.Getenv(EnvPrefix + "TIMEOUT")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: %sTIMEOUT: %w", EnvPrefix, err)
		}
		cfg.TimeoutSeconds = n
	}
	if v := strings.TrimSpace(os.Getenv(EnvPrefix + "RPS")); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("config: %sRPS: %w", EnvPrefix, err)
		}
		cfg.RequestsPerSecond = f
	}
	return nil
}

// Save writes cfg to path (Path() when empty), creating the directory.
func Save(path string, cfg Config) error {
	if path == "" {
		path = Path()
	}
	if path == "" {
		return fmt.Errorf("config: no config path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// ExpandTilde replaces a leading ~ with the home directory.
func ExpandTilde(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	return path
}
