package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"IndexBoard/pkg/util"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Environment string `yaml:"environment"`
	Server      struct {
		Port            int           `yaml:"port"`
		ReadTimeout     time.Duration `yaml:"read_timeout"`
		WriteTimeout    time.Duration `yaml:"write_timeout"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	} `yaml:"server"`
	Metrics struct {
		Enabled bool   `yaml:"enabled"`
		Path    string `yaml:"path"`
	} `yaml:"metrics"`
	Market struct {
		Symbol         string        `yaml:"symbol"`
		DisplayName    string        `yaml:"display_name"`
		Currency       string        `yaml:"currency"`
		BaseURL        string        `yaml:"base_url"`
		RequestTimeout time.Duration `yaml:"request_timeout"`
		UserAgent      string        `yaml:"user_agent"`
		Timezone       string        `yaml:"timezone"`
		MaxRPS         float64       `yaml:"max_rps"`
	} `yaml:"market"`
	Cache struct {
		MemoryMaxSize int           `yaml:"memory_max_size"`
		IntradayTTL   time.Duration `yaml:"intraday_ttl"`
		DailyTTL      time.Duration `yaml:"daily_ttl"`
		Redis         struct {
			Enabled  bool   `yaml:"enabled"`
			Addr     string `yaml:"addr"`
			Password string `yaml:"password"`
			DB       int    `yaml:"db"`
		} `yaml:"redis"`
	} `yaml:"cache"`
	History struct {
		Enabled          bool          `yaml:"enabled"`
		Host             string        `yaml:"host"`
		Port             int           `yaml:"port"`
		Database         string        `yaml:"database"`
		User             string        `yaml:"user"`
		Password         string        `yaml:"password"`
		UseHTTP          bool          `yaml:"use_http"`
		DialTimeout      time.Duration `yaml:"dial_timeout"`
		ReadTimeout      time.Duration `yaml:"read_timeout"`
		WriteTimeout     time.Duration `yaml:"write_timeout"`
		MaxExecutionTime time.Duration `yaml:"max_execution_time"`
	} `yaml:"history"`
	Feed struct {
		Enabled      bool          `yaml:"enabled"`
		Brokers      []string      `yaml:"brokers"`
		Topic        string        `yaml:"topic"`
		RequiredAcks int           `yaml:"required_acks"`
		Compression  string        `yaml:"compression"`
		MaxAttempts  int           `yaml:"max_attempts"`
		Linger       time.Duration `yaml:"linger"`
		BatchSize    int           `yaml:"batch_size"`
		BatchBytes   int           `yaml:"batch_bytes"`
		WriteTimeout time.Duration `yaml:"write_timeout"`
		ReadTimeout  time.Duration `yaml:"read_timeout"`
		Async        bool          `yaml:"async"`
	} `yaml:"feed"`
	Refresh struct {
		IntradayCron string   `yaml:"intraday_cron"`
		DailyCron    string   `yaml:"daily_cron"`
		WarmPeriods  []string `yaml:"warm_periods"`
		RunOnStart   bool     `yaml:"run_on_start"`
	} `yaml:"refresh"`
	Projection struct {
		LowTaxRate   float64 `yaml:"low_tax_rate"`
		HighTaxRate  float64 `yaml:"high_tax_rate"`
		TaxThreshold float64 `yaml:"tax_threshold"`
	} `yaml:"projection"`
	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
		Output string `yaml:"output"`
	} `yaml:"log"`
}

// Load reads and parses a YAML configuration file.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	c.applyDefaults()

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &c, nil
}

// LoadWithEnv loads config from YAML and overrides with environment variables.
func LoadWithEnv(path string) (*Config, error) {
	c, err := Load(path)
	if err != nil {
		return nil, err
	}

	if v := os.Getenv("PORT"); v != "" {
		c.Server.Port = util.ParseIntDefault(v, c.Server.Port)
	}
	if v := os.Getenv("SYMBOL"); v != "" {
		c.Market.Symbol = v
	}
	if v := os.Getenv("MARKET_MAX_RPS"); v != "" {
		c.Market.MaxRPS = util.ParseFloatDefault(v, c.Market.MaxRPS)
	}
	if v := os.Getenv("MARKET_TIMEZONE"); v != "" {
		c.Market.Timezone = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		c.Cache.Redis.Enabled = true
		c.Cache.Redis.Addr = v
	}
	if v := os.Getenv("CLICKHOUSE_HOST"); v != "" {
		c.History.Enabled = true
		c.History.Host = v
	}
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		c.Feed.Enabled = true
		c.Feed.Brokers = strings.Split(v, ",")
	}
	if v := os.Getenv("KAFKA_TOPIC"); v != "" {
		c.Feed.Topic = v
	}

	return c, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 10 * time.Second
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 10 * time.Second
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 10 * time.Second
	}
	if c.Market.Symbol == "" {
		c.Market.Symbol = "^GSPC"
	}
	if c.Market.DisplayName == "" {
		c.Market.DisplayName = "S&P 500"
	}
	if c.Market.Currency == "" {
		c.Market.Currency = "USD"
	}
	if c.Market.BaseURL == "" {
		c.Market.BaseURL = "https://query1.finance.yahoo.com"
	}
	if c.Market.RequestTimeout == 0 {
		c.Market.RequestTimeout = 30 * time.Second
	}
	if c.Market.UserAgent == "" {
		c.Market.UserAgent = "Mozilla/5.0"
	}
	if c.Market.Timezone == "" {
		c.Market.Timezone = "Europe/Copenhagen"
	}
	if c.Market.MaxRPS == 0 {
		c.Market.MaxRPS = 2
	}
	if c.Cache.MemoryMaxSize == 0 {
		c.Cache.MemoryMaxSize = 1000
	}
	if c.Cache.IntradayTTL == 0 {
		c.Cache.IntradayTTL = time.Minute
	}
	if c.Cache.DailyTTL == 0 {
		c.Cache.DailyTTL = time.Hour
	}
	if c.Refresh.IntradayCron == "" {
		c.Refresh.IntradayCron = "0 * * * * *" // every minute, with seconds field
	}
	if c.Refresh.DailyCron == "" {
		c.Refresh.DailyCron = "0 15 22 * * 1-5" // after US close, weekdays
	}
	if len(c.Refresh.WarmPeriods) == 0 {
		c.Refresh.WarmPeriods = []string{"1d", "1y", "max"}
	}
	if c.Projection.LowTaxRate == 0 {
		c.Projection.LowTaxRate = 0.27
	}
	if c.Projection.HighTaxRate == 0 {
		c.Projection.HighTaxRate = 0.42
	}
	if c.Projection.TaxThreshold == 0 {
		c.Projection.TaxThreshold = 61000
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "console"
	}
	if c.Log.Output == "" {
		c.Log.Output = "stdout"
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Environment == "" {
		return fmt.Errorf("environment is required")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in 1..65535, got %d", c.Server.Port)
	}
	if c.Market.Symbol == "" {
		return fmt.Errorf("market.symbol is required")
	}
	if c.History.Enabled && c.History.Host == "" {
		return fmt.Errorf("history.host is required when history is enabled")
	}
	if c.Feed.Enabled {
		if len(c.Feed.Brokers) == 0 {
			return fmt.Errorf("feed.brokers cannot be empty when feed is enabled")
		}
		if c.Feed.Topic == "" {
			return fmt.Errorf("feed.topic is required when feed is enabled")
		}
	}
	if c.Projection.LowTaxRate < 0 || c.Projection.LowTaxRate >= 1 {
		return fmt.Errorf("projection.low_tax_rate must be a fraction in [0,1)")
	}
	if c.Projection.HighTaxRate < 0 || c.Projection.HighTaxRate >= 1 {
		return fmt.Errorf("projection.high_tax_rate must be a fraction in [0,1)")
	}
	return nil
}
