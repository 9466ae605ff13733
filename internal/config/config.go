// Package config provides Viper-based configuration loading for the battle
// simulator.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// DatabaseConfig holds PostgreSQL connection settings for the battle ledger.
type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	Name            string        `mapstructure:"name"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxConns        int32         `mapstructure:"max_conns"`
	MinConns        int32         `mapstructure:"min_conns"`
	MaxConnLifetime time.Duration `mapstructure:"max_conn_lifetime"`
}

// DSN returns the PostgreSQL connection string.
//
// Precondition: Host, Port, User, and Name must be non-empty.
// Postcondition: Returns a valid PostgreSQL DSN string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format"`
	// File, when set, receives all log output instead of stderr.
	File string `mapstructure:"file"`
}

// BattleConfig holds encounter pacing, layout and scoring rules.
type BattleConfig struct {
	// TickRate is the number of session updates per second.
	TickRate int `mapstructure:"tick_rate"`
	// ScreenWidth and ScreenHeight size the field agents are laid out on.
	ScreenWidth  int `mapstructure:"screen_width"`
	ScreenHeight int `mapstructure:"screen_height"`
	// TurnMessage is how long "<name>'s turn" stays on screen.
	TurnMessage time.Duration `mapstructure:"turn_message"`
	// ActionMessage is how long action narration stays on screen.
	ActionMessage time.Duration `mapstructure:"action_message"`
	// MoveSpeed is the distance an agent covers per update.
	MoveSpeed float64 `mapstructure:"move_speed"`
	// MoveOffset is how far an agent steps toward its target.
	MoveOffset float64 `mapstructure:"move_offset"`
	// WinMultiplier scales the experience pool into score on a win.
	WinMultiplier float64 `mapstructure:"win_multiplier"`
	// LossFraction is the share of score lost on a defeat.
	LossFraction float64 `mapstructure:"loss_fraction"`
	// XPJitter is the +/- spread applied to each survivor's experience.
	XPJitter float64 `mapstructure:"xp_jitter"`
	// MaxDrop is the highest consumable id the post-win drop can give.
	MaxDrop int `mapstructure:"max_drop"`
}

// ContentConfig locates the authored battle content.
type ContentConfig struct {
	// Dir holds the catalog YAML files.
	Dir string `mapstructure:"dir"`
}

// TelemetryConfig controls OpenTelemetry tracing.
type TelemetryConfig struct {
	// Enabled turns on the OTLP HTTP exporter configured via OTEL_* variables.
	Enabled bool `mapstructure:"enabled"`
	// ServiceName is reported as service.name.
	ServiceName string `mapstructure:"service_name"`
}

// ScriptingConfig locates the enemy AI scripts.
type ScriptingConfig struct {
	// Dir holds one *.lua file per AI script.
	Dir string `mapstructure:"dir"`
	// InstructionLimit caps Lua opcodes per hook call; 0 uses the default.
	InstructionLimit int `mapstructure:"instruction_limit"`
}

// Config is the top-level application configuration.
type Config struct {
	Database  DatabaseConfig  `mapstructure:"database"`
	Logging   LoggingConfig   `mapstructure:"logging"`
	Battle    BattleConfig    `mapstructure:"battle"`
	Content   ContentConfig   `mapstructure:"content"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
	Scripting ScriptingConfig `mapstructure:"scripting"`
}

// Validate checks all configuration invariants.
//
// Postcondition: Returns nil if configuration is valid, or an error describing all violations.
func (c Config) Validate() error {
	var errs []string

	if err := validateDatabase(c.Database); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateLogging(c.Logging); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateBattle(c.Battle); err != nil {
		errs = append(errs, err.Error())
	}
	if c.Content.Dir == "" {
		errs = append(errs, "content.dir must not be empty")
	}
	if c.Telemetry.Enabled && c.Telemetry.ServiceName == "" {
		errs = append(errs, "telemetry.service_name must not be empty when telemetry is enabled")
	}
	if c.Scripting.InstructionLimit < 0 {
		errs = append(errs, fmt.Sprintf("scripting.instruction_limit must be >= 0, got %d", c.Scripting.InstructionLimit))
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func validateDatabase(d DatabaseConfig) error {
	var errs []string
	if d.Host == "" {
		errs = append(errs, "database.host must not be empty")
	}
	if d.Port < 1 || d.Port > 65535 {
		errs = append(errs, fmt.Sprintf("database.port must be 1-65535, got %d", d.Port))
	}
	if d.User == "" {
		errs = append(errs, "database.user must not be empty")
	}
	if d.Name == "" {
		errs = append(errs, "database.name must not be empty")
	}
	validSSL := map[string]bool{"disable": true, "require": true, "verify-ca": true, "verify-full": true}
	if !validSSL[d.SSLMode] {
		errs = append(errs, fmt.Sprintf("database.sslmode must be one of [disable, require, verify-ca, verify-full], got %q", d.SSLMode))
	}
	if d.MaxConns < 1 {
		errs = append(errs, fmt.Sprintf("database.max_conns must be >= 1, got %d", d.MaxConns))
	}
	if d.MinConns < 0 {
		errs = append(errs, fmt.Sprintf("database.min_conns must be >= 0, got %d", d.MinConns))
	}
	if d.MinConns > d.MaxConns {
		errs = append(errs, "database.min_conns must not exceed database.max_conns")
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func validateBattle(b BattleConfig) error {
	var errs []string
	if b.TickRate < 1 {
		errs = append(errs, fmt.Sprintf("battle.tick_rate must be >= 1, got %d", b.TickRate))
	}
	if b.ScreenWidth < 1 || b.ScreenHeight < 1 {
		errs = append(errs, fmt.Sprintf("battle.screen_width and battle.screen_height must be >= 1, got %dx%d", b.ScreenWidth, b.ScreenHeight))
	}
	if b.TurnMessage <= 0 || b.ActionMessage <= 0 {
		errs = append(errs, "battle.turn_message and battle.action_message must be positive")
	}
	if b.MoveSpeed <= 0 {
		errs = append(errs, fmt.Sprintf("battle.move_speed must be > 0, got %g", b.MoveSpeed))
	}
	if b.MoveOffset < 0 {
		errs = append(errs, fmt.Sprintf("battle.move_offset must be >= 0, got %g", b.MoveOffset))
	}
	if b.WinMultiplier < 0 {
		errs = append(errs, fmt.Sprintf("battle.win_multiplier must be >= 0, got %g", b.WinMultiplier))
	}
	if b.LossFraction < 0 || b.LossFraction > 1 {
		errs = append(errs, fmt.Sprintf("battle.loss_fraction must be in [0, 1], got %g", b.LossFraction))
	}
	if b.XPJitter < 0 || b.XPJitter >= 1 {
		errs = append(errs, fmt.Sprintf("battle.xp_jitter must be in [0, 1), got %g", b.XPJitter))
	}
	if b.MaxDrop < 0 {
		errs = append(errs, fmt.Sprintf("battle.max_drop must be >= 0, got %d", b.MaxDrop))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func validateLogging(l LoggingConfig) error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[l.Level] {
		return fmt.Errorf("logging.level must be one of [debug, info, warn, error], got %q", l.Level)
	}
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[l.Format] {
		return fmt.Errorf("logging.format must be one of [json, console], got %q", l.Format)
	}
	return nil
}

// Load reads configuration from the given file path, applies environment variable
// overrides, and validates the result.
//
// Precondition: path must be a valid file path to a YAML configuration file.
// Postcondition: Returns a valid Config or a non-nil error.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	// Environment variable overrides with QUACK_ prefix
	v.SetEnvPrefix("QUACK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
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

// Defaults returns a Viper instance holding only the default values.
func Defaults() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	return v
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "quack")
	v.SetDefault("database.password", "quack")
	v.SetDefault("database.name", "quackbattle")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_conns", 10)
	v.SetDefault("database.min_conns", 2)
	v.SetDefault("database.max_conn_lifetime", "1h")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("logging.file", "")

	v.SetDefault("battle.tick_rate", 60)
	v.SetDefault("battle.screen_width", 1280)
	v.SetDefault("battle.screen_height", 720)
	v.SetDefault("battle.turn_message", "10s")
	v.SetDefault("battle.action_message", "3s")
	v.SetDefault("battle.move_speed", 5.0)
	v.SetDefault("battle.move_offset", 100.0)
	v.SetDefault("battle.win_multiplier", 3.5)
	v.SetDefault("battle.loss_fraction", 0.25)
	v.SetDefault("battle.xp_jitter", 0.1)
	v.SetDefault("battle.max_drop", 6)

	v.SetDefault("content.dir", "content/battle")

	v.SetDefault("telemetry.enabled", false)
	v.SetDefault("telemetry.service_name", "quackbattle")

	v.SetDefault("scripting.dir", "content/scripts/ai")
	v.SetDefault("scripting.instruction_limit", 0)
}
