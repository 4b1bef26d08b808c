// Package config loads and saves the mailgrep configuration file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// IMAPConfig holds the connection settings for the mailbox provider.
// The account password lives in the system keyring, never here.
type IMAPConfig struct {
	Host     string `mapstructure:"host" yaml:"host"`
	Port     int    `mapstructure:"port" yaml:"port"`
	Username string `mapstructure:"username" yaml:"username"`

	// StartTLS upgrades a plaintext connection instead of using
	// implicit TLS.
	StartTLS bool `mapstructure:"starttls" yaml:"starttls"`
}

// DefaultsConfig holds per-command defaults.
type DefaultsConfig struct {
	MailBox string `mapstructure:"mail_box" yaml:"mail_box"`
}

// Config is the top-level application configuration.
type Config struct {
	IMAP     IMAPConfig     `mapstructure:"imap" yaml:"imap"`
	Defaults DefaultsConfig `mapstructure:"defaults" yaml:"defaults"`

	// HistoryPath is the location of the local search history
	// database.
	HistoryPath string `mapstructure:"history_path" yaml:"history_path"`
}

// DefaultPath returns the default configuration file location,
// ~/.config/mailgrep/config.yaml.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "config.yaml")
	}
	return filepath.Join(home, ".config", "mailgrep", "config.yaml")
}

// DefaultHistoryPath returns the default history database location,
// next to the configuration file.
func DefaultHistoryPath() string {
	return filepath.Join(filepath.Dir(DefaultPath()), "history.db")
}

func defaultConfig() *Config {
	return &Config{
		IMAP: IMAPConfig{
			Port: 993,
		},
		Defaults: DefaultsConfig{
			MailBox: "INBOX",
		},
		HistoryPath: DefaultHistoryPath(),
	}
}

// Load reads the configuration from the given YAML file using Viper.
// A missing file yields the default configuration.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.SetDefault("imap.port", 993)
	v.SetDefault("defaults.mail_box", "INBOX")
	v.SetDefault("history_path", DefaultHistoryPath())

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(*os.PathError); ok {
			return defaultConfig(), nil
		}
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return defaultConfig(), nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg := defaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the configuration to a YAML file at path, creating
// parent directories if needed.
func Save(path string, cfg *Config) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.Set("imap", cfg.IMAP)
	v.Set("defaults", cfg.Defaults)
	v.Set("history_path", cfg.HistoryPath)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}
