package storage

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	// userConfigFile is the name of the user configuration file (sibling to .hp/).
	userConfigFile = ".hpconfig.yaml"

	// envFile optionally supplies secrets such as the SMTP password.
	envFile = ".env"

	// Default configuration values
	DefaultReminderDelay = 5 * time.Second
	DefaultReminderHour  = -1
	DefaultLogLevel      = "warn"
	DefaultSMTPPort      = 587
	DefaultDeliverEvery  = 30 * time.Second
)

// EnvSMTPPassword names the environment variable holding the SMTP password.
const EnvSMTPPassword = "HP_SMTP_PASSWORD"

// Config represents user configuration from .hpconfig.yaml.
// This file is user-managed and never written by hp.
type Config struct {
	// ReminderDelay is how long after `hp remind` a reminder fires.
	ReminderDelay time.Duration `yaml:"reminder_delay"`

	// ReminderHour, when 0-23, makes reminders fire at the next occurrence
	// of that local hour instead of after ReminderDelay.
	ReminderHour int `yaml:"reminder_hour"`

	// DeliverEvery is the polling interval for `hp reminders watch`.
	DeliverEvery time.Duration `yaml:"deliver_every"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`

	// MyName and MyEmail fill the card printed by `hp me`.
	MyName  string `yaml:"my_name"`
	MyEmail string `yaml:"my_email"`

	// NotifyEmail receives reminders by mail when SMTP is configured.
	NotifyEmail string `yaml:"notify_email"`

	SMTPHost string `yaml:"smtp_host"`
	SMTPPort int    `yaml:"smtp_port"`
	SMTPUser string `yaml:"smtp_user"`
	SMTPFrom string `yaml:"smtp_from"`

	// SMTPPassword is read from the environment, never from the file.
	SMTPPassword string `yaml:"-"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		ReminderDelay: DefaultReminderDelay,
		ReminderHour:  DefaultReminderHour,
		DeliverEvery:  DefaultDeliverEvery,
		LogLevel:      DefaultLogLevel,
		SMTPPort:      DefaultSMTPPort,
	}
}

// MailEnabled reports whether reminders should also be sent by email.
func (c *Config) MailEnabled() bool {
	return c.SMTPHost != "" && c.NotifyEmail != ""
}

// SlogLevel maps LogLevel to a slog.Level. Unknown values mean warn.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

// LoadConfig loads .hpconfig.yaml if it exists, otherwise returns defaults.
// Partial config files are merged with defaults. A .env file next to .hp/
// is loaded into the environment first; variables already set win.
func (s *Storage) LoadConfig() (*Config, error) {
	envPath := filepath.Join(s.root, envFile)
	if _, err := os.Stat(envPath); err == nil {
		if err := godotenv.Load(envPath); err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", envFile, err)
		}
	}

	cfg := DefaultConfig()
	cfg.SMTPPassword = os.Getenv(EnvSMTPPassword)

	data, err := os.ReadFile(s.ConfigPath())
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", userConfigFile, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", userConfigFile, err)
	}

	if cfg.ReminderHour > 23 || cfg.ReminderHour < -1 {
		return nil, fmt.Errorf("invalid reminder_hour %d in %s: must be 0-23, or -1 to use reminder_delay", cfg.ReminderHour, userConfigFile)
	}
	if cfg.ReminderDelay < 0 {
		return nil, fmt.Errorf("invalid reminder_delay %s in %s: must not be negative", cfg.ReminderDelay, userConfigFile)
	}
	if cfg.DeliverEvery <= 0 {
		cfg.DeliverEvery = DefaultDeliverEvery
	}

	return cfg, nil
}

// ConfigPath returns the path to the user config file.
func (s *Storage) ConfigPath() string {
	return filepath.Join(s.root, userConfigFile)
}
