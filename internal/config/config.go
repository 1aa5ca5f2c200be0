// Package config loads rlcalc settings with Viper.
//
// Values come, in order of precedence, from bound command-line flags,
// RLCALC_* environment variables, config.yaml in the configuration
// directory, and built-in defaults. A missing config.yaml is not an error.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/rlcalc/pkg/units"
)

const (
	fileName = "config"
	fileType = "yaml"

	// FileBase is the name of the configuration file inside the config dir.
	FileBase = "config.yaml"

	// EnvPrefix prefixes environment overrides, e.g. RLCALC_UNITS.
	EnvPrefix = "RLCALC"
)

// Config keys.
const (
	KeyUnits     = "units"
	KeyConvert   = "convert"
	KeyPrecision = "precision"
	KeyLogLevel  = "log_level"
)

// Defaults.
const (
	DefaultPrecision = 2
	DefaultLogLevel  = "warn"
	MaxPrecision     = 12
)

// ErrInvalidPrecision is returned when precision is outside 0..MaxPrecision.
var ErrInvalidPrecision = errors.New("precision out of range")

// Settings is the decoded, validated configuration.
type Settings struct {
	// Units is the working unit for bare numbers and for the roll.
	Units units.Unit `yaml:"units"`
	// Convert, when set, is the unit the computed length is reported in.
	Convert *units.Unit `yaml:"convert,omitempty"`
	// Precision is the number of decimal places printed for lengths.
	Precision int `yaml:"precision"`
	// LogLevel is a zerolog level name.
	LogLevel string `yaml:"log_level"`
}

// OutputUnit returns Convert if set, otherwise Units.
func (s Settings) OutputUnit() units.Unit {
	if s.Convert != nil {
		return *s.Convert
	}
	return s.Units
}

// Load reads config.yaml from configDir, if present, and applies the
// environment and defaults. The returned Viper can have flags bound to it
// with BindFlags before Decode is called.
func Load(configDir string) (*viper.Viper, error) {
	v := viper.New()
	v.SetDefault(KeyUnits, units.DefaultUnit.Suffix())
	v.SetDefault(KeyPrecision, DefaultPrecision)
	v.SetDefault(KeyLogLevel, DefaultLogLevel)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetConfigName(fileName)
	v.SetConfigType(fileType)
	if configDir != "" {
		v.AddConfigPath(configDir)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			// Missing config.yaml is not an error.
			return v, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	return v, nil
}

// BindFlags binds the named flags to their config keys. Flags that were
// not set on the command line fall through to the environment, the
// config file and the defaults.
func BindFlags(v *viper.Viper, flags *pflag.FlagSet, keyToFlag map[string]string) error {
	for key, name := range keyToFlag {
		f := flags.Lookup(name)
		if f == nil {
			return fmt.Errorf("bind %s: no flag %q", key, name)
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("bind %s: %w", key, err)
		}
	}
	return nil
}

// Decode validates the effective configuration held by v.
func Decode(v *viper.Viper) (Settings, error) {
	s := Settings{
		Precision: v.GetInt(KeyPrecision),
		LogLevel:  strings.TrimSpace(v.GetString(KeyLogLevel)),
	}

	u, err := units.ParseUnit(v.GetString(KeyUnits))
	if err != nil {
		return Settings{}, fmt.Errorf("%s: %w", KeyUnits, err)
	}
	s.Units = u

	if raw := strings.TrimSpace(v.GetString(KeyConvert)); raw != "" {
		c, err := units.ParseUnit(raw)
		if err != nil {
			return Settings{}, fmt.Errorf("%s: %w", KeyConvert, err)
		}
		s.Convert = &c
	}

	if s.Precision < 0 || s.Precision > MaxPrecision {
		return Settings{}, fmt.Errorf("%s %d: %w (0-%d)", KeyPrecision, s.Precision, ErrInvalidPrecision, MaxPrecision)
	}
	if s.LogLevel == "" {
		s.LogLevel = DefaultLogLevel
	}
	return s, nil
}

// Defaults returns the settings used when nothing is configured.
func Defaults() Settings {
	return Settings{
		Units:     units.DefaultUnit,
		Precision: DefaultPrecision,
		LogLevel:  DefaultLogLevel,
	}
}

// WriteDefault creates configDir and a default config.yaml inside it. An
// existing file is left untouched. It returns the file path and whether
// the file was created.
func WriteDefault(configDir string) (string, bool, error) {
	path := filepath.Join(configDir, FileBase)

	if _, err := os.Stat(path); err == nil {
		return path, false, nil
	} else if !os.IsNotExist(err) {
		return "", false, fmt.Errorf("stat config file: %w", err)
	}

	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return "", false, fmt.Errorf("create config directory: %w", err)
	}

	data, err := Marshal(Defaults())
	if err != nil {
		return "", false, err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", false, fmt.Errorf("write config: %w", err)
	}
	return path, true, nil
}

// Marshal renders settings as config.yaml content.
func Marshal(s Settings) ([]byte, error) {
	data, err := yaml.Marshal(&s)
	if err != nil {
		return nil, fmt.Errorf("marshal config: %w", err)
	}
	return data, nil
}
