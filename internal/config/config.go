// Package config loads execdir's optional YAML configuration file and
// decides where the alias store lives.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"gopkg.in/yaml.v3"

	"github.com/roach88/execdir/internal/store"
)

//go:embed schema.cue
var schemaCUE string

// Environment variables consulted by Load and StoreDir.
const (
	EnvConfig = "EXECDIR_CONFIG"
	EnvStore  = "EXECDIR_DB"
)

const (
	defaultLogLevel = "warn"
	configDirName   = "execdir"
	configFileName  = "config.yaml"
)

// Config holds the user's settings.
type Config struct {
	Store    string `yaml:"store,omitempty" json:"store,omitempty"`
	Shell    string `yaml:"shell,omitempty" json:"shell,omitempty"`
	LogLevel string `yaml:"log_level,omitempty" json:"log_level,omitempty"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// DefaultPath returns the config file location.
// Priority: $EXECDIR_CONFIG, $XDG_CONFIG_HOME/execdir/config.yaml,
// ~/.config/execdir/config.yaml
func DefaultPath() (string, error) {
	if p := os.Getenv(EnvConfig); p != "" {
		return p, nil
	}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, configDirName, configFileName), nil
	}
	home, err := store.HomeDir()
	if err != nil {
		return "", fmt.Errorf("could not get user home directory: %w", err)
	}
	return filepath.Join(home, ".config", configDirName, configFileName), nil
}

// Load reads and validates the config file at path.
// A missing file yields Default().
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("error reading config from %s: %w", path, err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes a YAML document and validates it against the schema.
func Parse(data []byte) (*Config, error) {
	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config yaml: %w", err)
	}
	if doc == nil {
		doc = map[string]any{}
	}
	if err := validate(doc); err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config yaml: %w", err)
	}
	applyDefaults(&cfg)
	return &cfg, nil
}

// validate unifies the decoded document with #Config.
// #Config is a definition, so unknown keys are rejected.
func validate(doc map[string]any) error {
	ctx := cuecontext.New()
	schema := ctx.CompileString(schemaCUE)
	if err := schema.Err(); err != nil {
		return fmt.Errorf("compile config schema: %v", err)
	}

	def := schema.LookupPath(cue.ParsePath("#Config"))
	v := def.Unify(ctx.Encode(doc))
	if err := v.Validate(cue.Concrete(true)); err != nil {
		return fmt.Errorf("schema: %v", err)
	}
	return nil
}

// applyDefaults fills fields that have safe defaults.
func applyDefaults(cfg *Config) {
	if cfg.LogLevel == "" {
		cfg.LogLevel = defaultLogLevel
	}
}

// StoreDir returns the alias store directory.
// Priority: override (the --db flag), $EXECDIR_DB, the store key,
// ~/.execdir.db
func (c *Config) StoreDir(override string) (string, error) {
	if override != "" {
		return override, nil
	}
	if env := os.Getenv(EnvStore); env != "" {
		return env, nil
	}
	if c.Store != "" {
		return expandHome(c.Store)
	}
	return store.DefaultDir()
}

// Level maps LogLevel to a slog level. Unknown values map to warn.
func (c *Config) Level() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	}
	return slog.LevelWarn
}

// expandHome replaces a leading "~/" with the user's home directory.
func expandHome(p string) (string, error) {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p, nil
	}
	home, err := store.HomeDir()
	if err != nil {
		return "", fmt.Errorf("could not get user home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~")), nil
}
