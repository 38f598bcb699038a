package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Environment variables that override the config file.
const (
	EnvMasterKey = "MGCE_MASTER_KEY"
	EnvLang      = "MGCE_LANG"
	EnvLogLevel  = "MGCE_LOG_LEVEL"
	EnvBroker    = "MGCE_BROKER"
)

type Config struct {
	Theme             string        `toml:"theme"`
	Language          string        `toml:"language"`
	LogLevel          string        `toml:"log_level"`
	LogFormat         string        `toml:"log_format"`
	HistorySize       int           `toml:"history_size"`
	CardsDir          string        `toml:"cards_dir"`
	DefaultBroker     string        `toml:"default_broker"`
	MQTTTopic         string        `toml:"mqtt_topic"`
	PublishTimeout    time.Duration `toml:"-"`
	PublishTimeoutStr string        `toml:"publish_timeout"`
	WatchFile         bool          `toml:"watch_file"`
}

func DefaultConfig() *Config {
	return &Config{
		Theme:             "solarized-dark",
		Language:          "en",
		LogLevel:          "info",
		LogFormat:         "json",
		HistorySize:       50,
		PublishTimeout:    5 * time.Second,
		PublishTimeoutStr: "5s",
		WatchFile:         true,
	}
}

func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if cfg.PublishTimeoutStr != "" {
		if d, err := time.ParseDuration(cfg.PublishTimeoutStr); err == nil {
			cfg.PublishTimeout = d
		}
	}
	if cfg.HistorySize <= 0 {
		cfg.HistorySize = DefaultConfig().HistorySize
	}
	return cfg, nil
}

func SaveConfig(cfg *Config, path string) error {
	cfg.PublishTimeoutStr = cfg.PublishTimeout.String()
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return toml.NewEncoder(f).Encode(cfg)
}

// LoadEnv reads .env files into the process environment without
// overriding variables that are already set. Missing files are skipped.
func LoadEnv(files ...string) error {
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			return err
		}
	}
	return nil
}

// ApplyEnv overrides config values from the environment.
func (c *Config) ApplyEnv() {
	if v := os.Getenv(EnvLang); v != "" {
		c.Language = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.LogLevel = strings.ToLower(v)
	}
	if v := os.Getenv(EnvBroker); v != "" {
		c.DefaultBroker = v
	}
}

// MasterKey returns the broker store password from the environment.
func MasterKey() ([]byte, bool) {
	v, ok := os.LookupEnv(EnvMasterKey)
	if !ok || v == "" {
		return nil, false
	}
	return []byte(v), true
}

// ResolveCardsDir returns the configured cards directory or the default.
func (c *Config) ResolveCardsDir() (string, error) {
	if c.CardsDir != "" {
		return c.CardsDir, nil
	}
	return GetCardsDir()
}

// Load reads the config file at the default location, after loading
// .env files from the working and config directories.
func Load() (*Config, error) {
	dir, err := GetConfigDir()
	if err != nil {
		return nil, err
	}
	if err := LoadEnv(".env", filepath.Join(dir, ".env")); err != nil {
		return nil, err
	}
	cfg, err := LoadConfig(filepath.Join(dir, "config.toml"))
	if err != nil {
		return nil, err
	}
	cfg.ApplyEnv()
	return cfg, nil
}
