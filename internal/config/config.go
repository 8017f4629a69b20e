// Package config provides Viper-based configuration loading for the battle
// binary.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. WIZARD_BATTLE_SEED.
const EnvPrefix = "WIZARD"

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format"`
	// Output is "stderr", "stdout" or a file path. Logs never share the
	// game's own output stream unless set to "stdout".
	Output string `mapstructure:"output"`
}

// BattleConfig holds the boss and engine settings.
type BattleConfig struct {
	BossName  string `mapstructure:"boss_name"`
	BossClass string `mapstructure:"boss_class"`
	// RegenAmount is the health the boss regenerates every turn.
	RegenAmount int `mapstructure:"regen_amount"`
	// Seed makes every roll reproducible. 0 uses crypto/rand.
	Seed uint64 `mapstructure:"seed"`
	// MaxTurns aborts a battle after this many turns. 0 means no limit.
	MaxTurns int `mapstructure:"max_turns"`
}

// PlayerConfig holds optional answers to the character prompts.
type PlayerConfig struct {
	// DefaultClass is a class id; when set, play skips the class prompt.
	DefaultClass string `mapstructure:"default_class"`
	// Name skips the name prompt when set.
	Name string `mapstructure:"name"`
}

// ContentConfig locates class data.
type ContentConfig struct {
	// ClassesDir is a directory of class YAML files. Empty uses the built-in classes.
	ClassesDir string `mapstructure:"classes_dir"`
}

// ScriptingConfig holds Lua strategy settings for simulations.
type ScriptingConfig struct {
	// Strategy is a built-in strategy name or a path to a .lua file.
	Strategy string `mapstructure:"strategy"`
	// InstructionLimit caps Lua opcodes per call. 0 uses the scripting default.
	InstructionLimit int `mapstructure:"instruction_limit"`
}

// DisplayConfig holds console rendering settings.
type DisplayConfig struct {
	Color bool `mapstructure:"color"`
}

// Config is the top-level application configuration.
type Config struct {
	Logging   LoggingConfig   `mapstructure:"logging"`
	Battle    BattleConfig    `mapstructure:"battle"`
	Player    PlayerConfig    `mapstructure:"player"`
	Content   ContentConfig   `mapstructure:"content"`
	Scripting ScriptingConfig `mapstructure:"scripting"`
	Display   DisplayConfig   `mapstructure:"display"`
}

// Validate checks all configuration invariants.
//
// Postcondition: Returns nil if configuration is valid, or an error describing all violations.
func (c Config) Validate() error {
	var errs []string

	if err := validateLogging(c.Logging); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateBattle(c.Battle); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateScripting(c.Scripting); err != nil {
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
	if l.Output == "" {
		errs = append(errs, "logging.output must not be empty")
	}
	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

func validateBattle(b BattleConfig) error {
	var errs []string
	if b.BossName == "" {
		errs = append(errs, "battle.boss_name must not be empty")
	}
	if b.BossClass == "" {
		errs = append(errs, "battle.boss_class must not be empty")
	}
	if b.RegenAmount < 0 {
		errs = append(errs, fmt.Sprintf("battle.regen_amount must be >= 0, got %d", b.RegenAmount))
	}
	if b.MaxTurns < 0 {
		errs = append(errs, fmt.Sprintf("battle.max_turns must be >= 0, got %d", b.MaxTurns))
	}
	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

func validateScripting(s ScriptingConfig) error {
	var errs []string
	if s.Strategy == "" {
		errs = append(errs, "scripting.strategy must not be empty")
	}
	if s.InstructionLimit < 0 {
		errs = append(errs, fmt.Sprintf("scripting.instruction_limit must be >= 0, got %d", s.InstructionLimit))
	}
	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

// Load reads configuration from the given file path, applies environment
// variable overrides, and validates the result. An empty path skips the file
// and uses defaults plus environment.
//
// Postcondition: Returns a valid Config or a non-nil error.
func Load(path string) (Config, error) {
	v := viper.New()

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("reading config file: %w", err)
		}
	}

	return LoadFromViper(v)
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

// setDefaults registers every key so environment overrides apply to keys
// absent from the config file.
func setDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "warn")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.output", "stderr")

	v.SetDefault("battle.boss_name", "The Dark Wizard")
	v.SetDefault("battle.boss_class", "evil_wizard")
	v.SetDefault("battle.regen_amount", 5)
	v.SetDefault("battle.seed", 0)
	v.SetDefault("battle.max_turns", 0)

	v.SetDefault("player.default_class", "")
	v.SetDefault("player.name", "")

	v.SetDefault("content.classes_dir", "")

	v.SetDefault("scripting.strategy", "balanced")
	v.SetDefault("scripting.instruction_limit", 0)

	v.SetDefault("display.color", true)
}
