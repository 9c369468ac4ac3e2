package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"InvestBot/internal/strategy"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Credentials are the e-mail sender secrets. Loaded once, read-only afterwards.
type Credentials struct {
	SenderAddress string `yaml:"-"`
	SenderSecret  string `yaml:"-"`
}

// Complete reports whether both the address and the secret are present.
func (c *Credentials) Complete() bool {
	return c.SenderAddress != "" && c.SenderSecret != ""
}

// Config holds all application configuration.
type Config struct {
	DataSource struct {
		BaseURL string `yaml:"base_url"`
		APIKey  string `yaml:"api_key"`
	} `yaml:"data_source"`
	Analysis struct {
		SMAWindow     int `yaml:"sma_window"`
		DisplayWindow int `yaml:"display_window"`
		LookbackBars  int `yaml:"lookback_bars"`
	} `yaml:"analysis"`
	Mail struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
	} `yaml:"mail"`
	Shell struct {
		DefaultTicker    string `yaml:"default_ticker"`
		DefaultRecipient string `yaml:"default_recipient"`
		ChartHeight      int    `yaml:"chart_height"`
	} `yaml:"shell"`
	Schedule struct {
		AlertCron string `yaml:"alert_cron"`
		Symbol    string `yaml:"symbol"`
		Recipient string `yaml:"recipient"`
	} `yaml:"schedule"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Proxy string `yaml:"proxy"`

	Credentials Credentials `yaml:"-"`
}

// LoadEnv reads KEY=value pairs from a .env file into the process environment.
// A missing file is not an error and variables already set are kept.
func LoadEnv(path string) error {
	if path == "" {
		path = ".env"
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load env file: %w", err)
	}
	return nil
}

// Load reads config from a YAML file, then applies environment variable overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Sender secrets only come from the environment.
	cfg.Credentials.SenderAddress = firstEnv("sender_email", "SENDER_EMAIL")
	cfg.Credentials.SenderSecret = firstEnv("sender_password", "SENDER_PASSWORD")

	// Environment variable overrides
	if v := os.Getenv("SMTP_HOST"); v != "" {
		cfg.Mail.Host = v
	}
	if v := os.Getenv("SMTP_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("parse SMTP_PORT: %w", err)
		}
		cfg.Mail.Port = port
	}
	if v := os.Getenv("DATA_BASE_URL"); v != "" {
		cfg.DataSource.BaseURL = v
	}
	if v := os.Getenv("DATA_API_KEY"); v != "" {
		cfg.DataSource.APIKey = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("ALERT_CRON"); v != "" {
		cfg.Schedule.AlertCron = v
	}
	if v := os.Getenv("ALERT_SYMBOL"); v != "" {
		cfg.Schedule.Symbol = v
	}
	if v := os.Getenv("ALERT_RECIPIENT"); v != "" {
		cfg.Schedule.Recipient = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}

	// Defaults
	if cfg.Analysis.SMAWindow == 0 {
		cfg.Analysis.SMAWindow = 20
	}
	if cfg.Analysis.DisplayWindow == 0 {
		cfg.Analysis.DisplayWindow = 30
	}
	if cfg.Analysis.LookbackBars == 0 {
		cfg.Analysis.LookbackBars = 60
	}
	if cfg.Mail.Host == "" {
		cfg.Mail.Host = "smtp.gmail.com"
	}
	if cfg.Mail.Port == 0 {
		cfg.Mail.Port = 587
	}
	if cfg.Shell.DefaultTicker == "" {
		cfg.Shell.DefaultTicker = "PETR4"
	}
	if cfg.Shell.DefaultRecipient == "" {
		cfg.Shell.DefaultRecipient = "email@email.com"
	}
	if cfg.Shell.ChartHeight == 0 {
		cfg.Shell.ChartHeight = 12
	}

	return cfg, nil
}

// Validate checks the settings that would make the tool misbehave.
// Missing sender credentials are allowed: sending then fails at dispatch time.
func (c *Config) Validate() error {
	a := c.Analysis
	if a.SMAWindow <= 0 {
		return fmt.Errorf("analysis.sma_window must be positive")
	}
	if a.DisplayWindow <= 0 {
		return fmt.Errorf("analysis.display_window must be positive")
	}
	if need := strategy.RequiredLookback(a.DisplayWindow, a.SMAWindow); a.LookbackBars < need {
		return fmt.Errorf("analysis.lookback_bars must be at least %d (display_window + sma_window - 1), got %d",
			need, a.LookbackBars)
	}
	if c.Mail.Port <= 0 || c.Mail.Port > 65535 {
		return fmt.Errorf("mail.port out of range: %d", c.Mail.Port)
	}
	if c.Shell.ChartHeight <= 0 {
		return fmt.Errorf("shell.chart_height must be positive")
	}
	if c.Schedule.AlertCron != "" {
		if strings.TrimSpace(c.Schedule.Symbol) == "" {
			return fmt.Errorf("schedule.symbol is required when schedule.alert_cron is set")
		}
		if !strings.Contains(c.Schedule.Recipient, "@") {
			return fmt.Errorf("schedule.recipient must be an e-mail address when schedule.alert_cron is set")
		}
	}
	return nil
}

func firstEnv(keys ...string) string {
	for _, k := range keys {
		if v := os.Getenv(k); v != "" {
			return v
		}
	}
	return ""
}
