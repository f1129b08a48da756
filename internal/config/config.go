// Package config loads wither-generator settings from wither.yaml,
// .wither.yaml or wither.toml, applies command-line overrides and validates
// the result.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"dario.cat/mergo"
	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// FileNames are the configuration file names searched for, in order.
var FileNames = []string{"wither.yaml", ".wither.yaml", "wither.toml"}

// ErrInvalid is returned when a configuration fails validation.
var ErrInvalid = errors.New("invalid configuration")

// Config is the complete generator configuration.
type Config struct {
	// Strict reports unrepresentable fields as errors.
	Strict bool `yaml:"strict" toml:"strict"`
	// PrivateUnexported marks unexported struct fields private: they get no
	// wither but stay constructor parameters.
	PrivateUnexported bool `yaml:"private_unexported" toml:"private_unexported"`

	Output OutputConfig `yaml:"output" toml:"output"`
	Naming NamingConfig `yaml:"naming" toml:"naming"`
	Log    LogConfig    `yaml:"log"    toml:"log"`

	// Path is the file the configuration was read from, empty for defaults.
	Path string `yaml:"-" toml:"-"`
}

// OutputConfig controls where and how generated files are written.
type OutputConfig struct {
	Suffix string `yaml:"suffix" toml:"suffix" validate:"required,endswith=.go"`
	// Dir overrides the output directory; empty writes next to the source.
	Dir string `yaml:"dir" toml:"dir"`
	// Comments adds doc comments to generated declarations.
	Comments bool `yaml:"comments" toml:"comments"`
}

// NamingConfig controls generated identifiers.
type NamingConfig struct {
	ConstructorPrefix string `yaml:"constructor_prefix" toml:"constructor_prefix" validate:"required,goident"`
	WitherPrefix      string `yaml:"wither_prefix"      toml:"wither_prefix"      validate:"required,goident"`
	ResultVar         string `yaml:"result_var"         toml:"result_var"         validate:"required,goident"`
}

// LogConfig controls logging.
type LogConfig struct {
	Level string `yaml:"level" toml:"level" validate:"oneof=debug info warn error"`
	JSON  bool   `yaml:"json"  toml:"json"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		PrivateUnexported: true,
		Output: OutputConfig{
			Suffix:   "_with.go",
			Comments: true,
		},
		Naming: NamingConfig{
			ConstructorPrefix: "New",
			WitherPrefix:      "With",
			ResultVar:         "out",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Find walks up from dir looking for one of FileNames. It returns an empty
// path when no configuration file exists.
func Find(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", dir, err)
	}

	for {
		for _, name := range FileNames {
			candidate := filepath.Join(abs, name)

			info, err := os.Stat(candidate)
			if err == nil && !info.IsDir() {
				return candidate, nil
			}
		}

		parent := filepath.Dir(abs)
		if parent == abs {
			return "", nil
		}

		abs = parent
	}
}

// Load reads the configuration at path, or discovers one from dir when path
// is empty. Without a file the defaults are returned.
func Load(path, dir string) (*Config, error) {
	if path == "" {
		found, err := Find(dir)
		if err != nil {
			return nil, err
		}

		if found == "" {
			return Default(), nil
		}

		path = found
	}

	return LoadFile(path)
}

// LoadFile reads one configuration file on top of the defaults. The format
// follows the file extension; unknown keys are rejected.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := Default()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		md, err := toml.Decode(string(data), cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}

		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("%w: %s: unknown key %q", ErrInvalid, path, undecoded[0].String())
		}
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)

		if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("%w: unsupported config format %q", ErrInvalid, filepath.Ext(path))
	}

	cfg.Path = path

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return cfg, nil
}

// Merge applies the non-zero values of override on top of c.
func (c *Config) Merge(override *Config) error {
	if override == nil {
		return nil
	}

	if err := mergo.Merge(c, override, mergo.WithOverride); err != nil {
		return fmt.Errorf("failed to merge config overrides: %w", err)
	}

	return nil
}

// Dir returns the directory of the configuration file, or "." for defaults.
func (c *Config) Dir() string {
	if c.Path == "" {
		return "."
	}

	return filepath.Dir(c.Path)
}
