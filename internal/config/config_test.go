package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing config file: %v", err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.TaxRate != "0.10" {
		t.Errorf("TaxRate = %q, want %q", cfg.TaxRate, "0.10")
	}
	if cfg.Notifier.Backend != "email" {
		t.Errorf("Notifier.Backend = %q, want %q", cfg.Notifier.Backend, "email")
	}
	if cfg.Ledger.Excel.Path != "restaurant_orders_log.xlsx" {
		t.Errorf("Ledger.Excel.Path = %q, want %q", cfg.Ledger.Excel.Path, "restaurant_orders_log.xlsx")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() on defaults: %v", err)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 9999
  dispatch_timeout_seconds: 3
tax_rate: "0.14"
ledger:
  backend: database
  database:
    dialect: postgres
    dsn: "host=localhost dbname=orders"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Server.Port != 9999 {
		t.Errorf("Server.Port = %d, want 9999", cfg.Server.Port)
	}
	if got := cfg.DispatchTimeout(); got != 3*time.Second {
		t.Errorf("DispatchTimeout() = %v, want 3s", got)
	}
	if got := cfg.ParseTaxRate().String(); got != "0.14" {
		t.Errorf("ParseTaxRate() = %s, want 0.14", got)
	}
	if cfg.Ledger.Backend != "database" {
		t.Errorf("Ledger.Backend = %q, want %q", cfg.Ledger.Backend, "database")
	}
	if cfg.Ledger.Database.Dialect != "postgres" {
		t.Errorf("Ledger.Database.Dialect = %q, want %q", cfg.Ledger.Database.Dialect, "postgres")
	}

	// Untouched sections keep their defaults.
	if cfg.Server.MetricsPort != 9090 {
		t.Errorf("Server.MetricsPort = %d, want 9090", cfg.Server.MetricsPort)
	}
	if cfg.Notifier.Email.Host != "smtp.gmail.com" {
		t.Errorf("Notifier.Email.Host = %q, want %q", cfg.Notifier.Email.Host, "smtp.gmail.com")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("Load() on a missing file should fail")
	}
}

func TestLoadAppliesEnvSecrets(t *testing.T) {
	t.Setenv("MAITRED_SMTP_PASSWORD", "hunter2")
	t.Setenv("OPENAI_API_KEY", "sk-test")

	path := writeConfig(t, "tax_rate: \"0.10\"\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Notifier.Email.Password != "hunter2" {
		t.Errorf("Email.Password = %q, want env override", cfg.Notifier.Email.Password)
	}
	if cfg.LLM.APIKey != "sk-test" {
		t.Errorf("LLM.APIKey = %q, want env override", cfg.LLM.APIKey)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"tax rate not a number", func(c *Config) { c.TaxRate = "ten percent" }},
		{"tax rate negative", func(c *Config) { c.TaxRate = "-0.10" }},
		{"tax rate at one", func(c *Config) { c.TaxRate = "1.0" }},
		{"unknown notifier backend", func(c *Config) { c.Notifier.Backend = "carrier_pigeon" }},
		{"unknown ledger backend", func(c *Config) { c.Ledger.Backend = "papyrus" }},
		{"unknown llm provider", func(c *Config) { c.LLM.Provider = "crystal_ball" }},
		{"provider without model", func(c *Config) { c.LLM.Model = "" }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Validate() accepted a bad configuration")
			}
		})
	}
}
