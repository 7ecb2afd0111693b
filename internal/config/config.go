// Package config provides Viper-based configuration loading for the dice
// engine binaries.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/cory-johannsen/dicecore/internal/game/check"
	"github.com/cory-johannsen/dicecore/internal/game/dice"
)

// Source kinds accepted by rules.source.
const (
	SourceCrypto = "crypto"
	SourceSeeded = "seeded"
)

// FileSinkConfig holds rotating log file settings. An empty Path disables the sink.
type FileSinkConfig struct {
	Path       string `mapstructure:"path"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
	Compress   bool   `mapstructure:"compress"`
}

// Enabled reports whether a log file path is configured.
func (f FileSinkConfig) Enabled() bool { return f.Path != "" }

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string         `mapstructure:"format"`
	File   FileSinkConfig `mapstructure:"file"`
}

// RulesConfig holds dice rules settings.
type RulesConfig struct {
	// ExceptionalMargin is the margin at which a success becomes exceptional.
	ExceptionalMargin int `mapstructure:"exceptional_margin"`
	// Source is the random source kind: "crypto" or "seeded".
	Source string `mapstructure:"source"`
	// Seed seeds a "seeded" source; 0 draws a fresh seed.
	Seed int64 `mapstructure:"seed"`
}

// Classifier returns the outcome classifier described by r.
//
// Postcondition: Returns a Classifier or an error if ExceptionalMargin < 1.
func (r RulesConfig) Classifier() (check.Classifier, error) {
	return check.NewClassifier(r.ExceptionalMargin)
}

// NewSource returns the random source described by r. A seeded source with
// Seed 0 is seeded from crypto/rand; its seed is available via Seed() for replay.
//
// Postcondition: Returns a non-nil Source or an error.
func (r RulesConfig) NewSource() (dice.Source, error) {
	switch r.Source {
	case SourceCrypto:
		return dice.NewCryptoSource(), nil
	case SourceSeeded:
		seed := r.Seed
		if seed == 0 {
			var err error
			if seed, err = dice.NewSeed(); err != nil {
				return nil, fmt.Errorf("generating seed: %w", err)
			}
		}
		return dice.NewSeededSource(seed), nil
	default:
		return nil, fmt.Errorf("unknown rules.source %q", r.Source)
	}
}

// ContentConfig holds authored content locations. An empty directory is skipped.
type ContentConfig struct {
	NPCDir     string `mapstructure:"npc_dir"`
	AbilityDir string `mapstructure:"ability_dir"`
	ScriptDir  string `mapstructure:"script_dir"`
	// InstructionLimit bounds Lua opcodes per hook call; 0 uses the scripting default.
	InstructionLimit int `mapstructure:"instruction_limit"`
}

// Config is the top-level application configuration.
type Config struct {
	Logging LoggingConfig `mapstructure:"logging"`
	Rules   RulesConfig   `mapstructure:"rules"`
	Content ContentConfig `mapstructure:"content"`
}

// Validate checks all configuration invariants.
//
// Postcondition: Returns nil if configuration is valid, or an error describing all violations.
func (c Config) Validate() error {
	var errs []string

	if err := validateLogging(c.Logging); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateRules(c.Rules); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateContent(c.Content); err != nil {
		errs = append(errs, err.Error())
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func validateLogging(l LoggingConfig) error {
	var errs []string
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[l.Level] {
		errs = append(errs, fmt.Sprintf("logging.level must be one of [debug, info, warn, error], got %q", l.Level))
	}
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[l.Format] {
		errs = append(errs, fmt.Sprintf("logging.format must be one of [json, console], got %q", l.Format))
	}
	if l.File.Enabled() {
		if l.File.MaxSizeMB < 1 {
			errs = append(errs, fmt.Sprintf("logging.file.max_size_mb must be >= 1, got %d", l.File.MaxSizeMB))
		}
		if l.File.MaxBackups < 0 {
			errs = append(errs, fmt.Sprintf("logging.file.max_backups must be >= 0, got %d", l.File.MaxBackups))
		}
		if l.File.MaxAgeDays < 0 {
			errs = append(errs, fmt.Sprintf("logging.file.max_age_days must be >= 0, got %d", l.File.MaxAgeDays))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func validateRules(r RulesConfig) error {
	var errs []string
	if r.ExceptionalMargin < 1 {
		errs = append(errs, fmt.Sprintf("rules.exceptional_margin must be >= 1, got %d", r.ExceptionalMargin))
	}
	if r.Source != SourceCrypto && r.Source != SourceSeeded {
		errs = append(errs, fmt.Sprintf("rules.source must be one of [crypto, seeded], got %q", r.Source))
	}
	if r.Source == SourceCrypto && r.Seed != 0 {
		errs = append(errs, "rules.seed requires rules.source seeded")
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func validateContent(c ContentConfig) error {
	if c.InstructionLimit < 0 {
		return errors.New("content.instruction_limit must be >= 0")
	}
	return nil
}

// Load reads configuration from the given file path, applies environment variable
// overrides, and validates the result.
//
// Precondition: path must be a valid file path to a YAML configuration file.
// Postcondition: Returns a valid Config or a non-nil error.
func Load(path string) (Config, error) {
	v := NewViper()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}
	return LoadFromViper(v)
}

// NewViper returns a Viper instance with defaults and DICE_-prefixed
// environment overrides applied. Binaries that run without a config file use
// it directly with LoadFromViper.
//
// Postcondition: Returns a non-nil Viper.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix("DICE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)
	return v
}

// LoadFromViper builds a Config from an already-configured Viper instance.
//
// Precondition: v must be non-nil and have configuration values set.
// Postcondition: Returns a valid Config or a non-nil error.
func LoadFromViper(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("logging.file.path", "")
	v.SetDefault("logging.file.max_size_mb", 100)
	v.SetDefault("logging.file.max_backups", 3)
	v.SetDefault("logging.file.max_age_days", 28)
	v.SetDefault("logging.file.compress", false)

	v.SetDefault("rules.exceptional_margin", check.DefaultExceptionalMargin)
	v.SetDefault("rules.source", SourceCrypto)
	v.SetDefault("rules.seed", 0)

	v.SetDefault("content.npc_dir", "")
	v.SetDefault("content.ability_dir", "")
	v.SetDefault("content.script_dir", "")
	v.SetDefault("content.instruction_limit", 0)
}
