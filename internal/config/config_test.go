package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// clearEnv blanks every variable Load reads so the host environment cannot leak in.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"sender_email", "SENDER_EMAIL", "sender_password", "SENDER_PASSWORD",
		"SMTP_HOST", "SMTP_PORT", "DATA_BASE_URL", "DATA_API_KEY", "HTTPS_PROXY",
		"ALERT_CRON", "ALERT_SYMBOL", "ALERT_RECIPIENT", "SQLITE_PATH",
	} {
		t.Setenv(k, "")
	}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Analysis.SMAWindow != 20 || cfg.Analysis.DisplayWindow != 30 || cfg.Analysis.LookbackBars != 60 {
		t.Errorf("unexpected analysis defaults: %+v", cfg.Analysis)
	}
	if cfg.Mail.Host != "smtp.gmail.com" || cfg.Mail.Port != 587 {
		t.Errorf("unexpected mail defaults: %+v", cfg.Mail)
	}
	if cfg.Shell.DefaultTicker != "PETR4" || cfg.Shell.DefaultRecipient != "email@email.com" {
		t.Errorf("unexpected shell defaults: %+v", cfg.Shell)
	}
	if cfg.Database.SQLitePath != "" {
		t.Errorf("journal should be off by default, got %q", cfg.Database.SQLitePath)
	}
	if cfg.Credentials.Complete() {
		t.Error("credentials should be empty")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoad_FileAndEnvOverrides(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, "config.yaml", `
analysis:
  sma_window: 10
  display_window: 15
  lookback_bars: 40
mail:
  host: mail.example.com
shell:
  default_ticker: VALE3
`)
	t.Setenv("SMTP_PORT", "2525")
	t.Setenv("sender_email", "bot@example.com")
	t.Setenv("SENDER_PASSWORD", "secret")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Analysis.SMAWindow != 10 || cfg.Analysis.LookbackBars != 40 {
		t.Errorf("file values not applied: %+v", cfg.Analysis)
	}
	if cfg.Mail.Host != "mail.example.com" || cfg.Mail.Port != 2525 {
		t.Errorf("unexpected mail settings: %+v", cfg.Mail)
	}
	if cfg.Shell.DefaultTicker != "VALE3" {
		t.Errorf("unexpected ticker %q", cfg.Shell.DefaultTicker)
	}
	if cfg.Credentials.SenderAddress != "bot@example.com" || cfg.Credentials.SenderSecret != "secret" {
		t.Errorf("unexpected credentials %+v", cfg.Credentials)
	}
	if !cfg.Credentials.Complete() {
		t.Error("credentials should be complete")
	}
}

func TestLoad_BadPort(t *testing.T) {
	clearEnv(t)
	t.Setenv("SMTP_PORT", "abc")
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for non-numeric SMTP_PORT")
	}
}

func TestLoad_BadYAML(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, "config.yaml", "analysis: [not a map")
	if _, err := Load(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestValidate(t *testing.T) {
	clearEnv(t)
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"lookback too short", func(c *Config) { c.Analysis.LookbackBars = 48 }, "lookback_bars"},
		{"lookback exactly enough", func(c *Config) { c.Analysis.LookbackBars = 49 }, ""},
		{"negative window", func(c *Config) { c.Analysis.SMAWindow = -1 }, "sma_window"},
		{"bad port", func(c *Config) { c.Mail.Port = 70000 }, "mail.port"},
		{"cron without symbol", func(c *Config) {
			c.Schedule.AlertCron = "0 0 18 * * 1-5"
			c.Schedule.Recipient = "user@example.com"
		}, "schedule.symbol"},
		{"cron with bad recipient", func(c *Config) {
			c.Schedule.AlertCron = "0 0 18 * * 1-5"
			c.Schedule.Symbol = "PETR4"
			c.Schedule.Recipient = "userexample.com"
		}, "schedule.recipient"},
		{"cron complete", func(c *Config) {
			c.Schedule.AlertCron = "0 0 18 * * 1-5"
			c.Schedule.Symbol = "PETR4"
			c.Schedule.Recipient = "user@example.com"
		}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
			if err != nil {
				t.Fatalf("load: %v", err)
			}
			tt.mutate(cfg)
			err = cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestLoadEnv(t *testing.T) {
	// godotenv never overrides a variable that exists, even when empty
	t.Setenv("sender_email", "")
	os.Unsetenv("sender_email")
	path := writeFile(t, ".env", "sender_email=dotenv@example.com\nsender_password=from-file\n")
	t.Setenv("sender_password", "already-set")

	if err := LoadEnv(path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := os.Getenv("sender_email"); got != "dotenv@example.com" {
		t.Errorf("expected value from file, got %q", got)
	}
	if got := os.Getenv("sender_password"); got != "already-set" {
		t.Errorf("existing variable should win, got %q", got)
	}
}

func TestLoadEnv_MissingFile(t *testing.T) {
	if err := LoadEnv(filepath.Join(t.TempDir(), "nope.env")); err != nil {
		t.Errorf("missing .env should be ignored, got %v", err)
	}
}
