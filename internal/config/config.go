package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"WeeklyHigh/internal/ingest"
	"WeeklyHigh/internal/locator"
)

// Config holds all application configuration.
type Config struct {
	Source struct {
		Dir         string `yaml:"dir"`
		Path        string `yaml:"path"` // overrides Dir discovery when set
		DateColumn  *int   `yaml:"date_column"`
		PriceColumn *int   `yaml:"price_column"`
	} `yaml:"source"`
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	Schedule struct {
		WeeklyCron string `yaml:"weekly_cron"`
	} `yaml:"schedule"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Log struct {
		Level  string `yaml:"level"`
		Pretty bool   `yaml:"pretty"`
	} `yaml:"log"`
	Proxy string `yaml:"proxy"`
}

// Load reads an optional .env file and YAML config, then applies environment overrides and defaults.
// A missing config file is not an error.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	data, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("WEEKLYHIGH_SOURCE_DIR"); v != "" {
		c.Source.Dir = v
	}
	if v := os.Getenv("WEEKLYHIGH_SOURCE_PATH"); v != "" {
		c.Source.Path = v
	}
	for key, dst := range map[string]**int{
		"WEEKLYHIGH_DATE_COLUMN":  &c.Source.DateColumn,
		"WEEKLYHIGH_PRICE_COLUMN": &c.Source.PriceColumn,
	} {
		if v := os.Getenv(key); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("parse %s: %w", key, err)
			}
			*dst = &n
		}
	}
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		c.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		c.Telegram.ChatID = v
	}
	if v := os.Getenv("CRON_WEEKLY"); v != "" {
		c.Schedule.WeeklyCron = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		c.Database.SQLitePath = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		c.Proxy = v
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.Source.Dir == "" {
		c.Source.Dir = locator.DefaultDir
	}
	if c.Source.DateColumn == nil {
		n := ingest.DefaultDateColumn
		c.Source.DateColumn = &n
	}
	if c.Source.PriceColumn == nil {
		n := ingest.DefaultPriceColumn
		c.Source.PriceColumn = &n
	}
	if c.Schedule.WeeklyCron == "" {
		c.Schedule.WeeklyCron = "0 0 8 * * 1"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}

// DateColumn returns the configured zero-based date column.
func (c *Config) DateColumn() int { return *c.Source.DateColumn }

// PriceColumn returns the configured zero-based price column.
func (c *Config) PriceColumn() int { return *c.Source.PriceColumn }

// TelegramEnabled reports whether both Telegram credentials are present.
func (c *Config) TelegramEnabled() bool {
	return c.Telegram.BotToken != "" && c.Telegram.ChatID != ""
}

// Validate checks field consistency.
func (c *Config) Validate() error {
	if c.DateColumn() < 0 {
		return fmt.Errorf("source.date_column must not be negative")
	}
	if c.PriceColumn() < 0 {
		return fmt.Errorf("source.price_column must not be negative")
	}
	if c.DateColumn() == c.PriceColumn() {
		return fmt.Errorf("source.date_column and source.price_column must differ")
	}
	if (c.Telegram.BotToken == "") != (c.Telegram.ChatID == "") {
		return fmt.Errorf("telegram.bot_token and telegram.chat_id must be set together")
	}
	return nil
}
