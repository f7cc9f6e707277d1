package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, "environment: test\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Market.Symbol != "^GSPC" {
		t.Errorf("symbol = %q, want ^GSPC", cfg.Market.Symbol)
	}
	if cfg.Market.Timezone != "Europe/Copenhagen" {
		t.Errorf("timezone = %q", cfg.Market.Timezone)
	}
	if cfg.Projection.LowTaxRate != 0.27 || cfg.Projection.HighTaxRate != 0.42 {
		t.Errorf("tax rates = %v/%v, want 0.27/0.42", cfg.Projection.LowTaxRate, cfg.Projection.HighTaxRate)
	}
	if cfg.Projection.TaxThreshold != 61000 {
		t.Errorf("tax threshold = %v, want 61000", cfg.Projection.TaxThreshold)
	}
	if cfg.Cache.IntradayTTL != time.Minute {
		t.Errorf("intraday ttl = %v, want 1m", cfg.Cache.IntradayTTL)
	}
}

func TestLoadParsesValues(t *testing.T) {
	path := writeConfig(t, `
environment: production
server:
  port: 9090
  read_timeout: 5s
market:
  symbol: "^OMXC25"
  timezone: Europe/Copenhagen
cache:
  intraday_ttl: 30s
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.Server.ReadTimeout != 5*time.Second {
		t.Errorf("read timeout = %v, want 5s", cfg.Server.ReadTimeout)
	}
	if cfg.Market.Symbol != "^OMXC25" {
		t.Errorf("symbol = %q", cfg.Market.Symbol)
	}
	if cfg.Cache.IntradayTTL != 30*time.Second {
		t.Errorf("intraday ttl = %v, want 30s", cfg.Cache.IntradayTTL)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	cases := map[string]string{
		"missing environment": "server:\n  port: 8080\n",
		"bad port":            "environment: test\nserver:\n  port: 70000\n",
		"history no host":     "environment: test\nhistory:\n  enabled: true\n",
		"feed no brokers":     "environment: test\nfeed:\n  enabled: true\n  topic: t\n",
	}
	for name, body := range cases {
		if _, err := Load(writeConfig(t, body)); err == nil {
			t.Errorf("%s: expected validation error", name)
		}
	}
}

func TestLoadWithEnvOverrides(t *testing.T) {
	path := writeConfig(t, "environment: test\n")

	t.Setenv("PORT", "9999")
	t.Setenv("SYMBOL", "^DJI")
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")
	t.Setenv("KAFKA_TOPIC", "bars")

	cfg, err := LoadWithEnv(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Port != 9999 {
		t.Errorf("port = %d, want 9999", cfg.Server.Port)
	}
	if cfg.Market.Symbol != "^DJI" {
		t.Errorf("symbol = %q, want ^DJI", cfg.Market.Symbol)
	}
	if !cfg.Feed.Enabled || len(cfg.Feed.Brokers) != 2 {
		t.Errorf("feed = %+v, want enabled with 2 brokers", cfg.Feed)
	}
}
