// Package config loads and validates the run configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/moniburnejko/stock-analysis-tool/internal/collector"
)

// Config holds all application configuration. It is built once per
// invocation and treated as immutable afterwards.
type Config struct {
	Ticker    string `yaml:"ticker"`
	Period    string `yaml:"period"`
	Interval  string `yaml:"interval"`
	SMAWindow int    `yaml:"sma_window"`
	OutDir    string `yaml:"out_dir"`
	ShowPlot  bool   `yaml:"show_plot"`

	DataSource struct {
		BaseURL string `yaml:"base_url"` // Stooq endpoint; empty selects Yahoo
	} `yaml:"data_source"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"` // empty disables run history
	} `yaml:"database"`
	Schedule struct {
		Cron string `yaml:"cron"` // empty runs once and exits
	} `yaml:"schedule"`
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable
// overrides. A missing file is fine; defaults cover everything.
func Load(path string) (*Config, error) {
	cfg := &Config{ShowPlot: true}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("TICKER"); v != "" {
		cfg.Ticker = v
	}
	if v := os.Getenv("PERIOD"); v != "" {
		cfg.Period = v
	}
	if v := os.Getenv("INTERVAL"); v != "" {
		cfg.Interval = v
	}
	if v := os.Getenv("SMA_WINDOW"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.SMAWindow = n
		}
	}
	if v := os.Getenv("OUT_DIR"); v != "" {
		cfg.OutDir = v
	}
	if v := os.Getenv("SHOW_PLOT"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.ShowPlot = b
		}
	}
	if v := os.Getenv("STOOQ_BASE_URL"); v != "" {
		cfg.DataSource.BaseURL = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("CRON_SCHEDULE"); v != "" {
		cfg.Schedule.Cron = v
	}
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		cfg.Telegram.ChatID = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}

	// Defaults
	if cfg.Ticker == "" {
		cfg.Ticker = "AMZN"
	}
	if cfg.Period == "" {
		cfg.Period = "5y"
	}
	if cfg.Interval == "" {
		cfg.Interval = "1d"
	}
	if cfg.SMAWindow == 0 {
		cfg.SMAWindow = 20
	}
	if cfg.OutDir == "" {
		cfg.OutDir = "stock_data"
	}

	return cfg, nil
}

// Validate checks that all required fields hold usable values.
func (c *Config) Validate() error {
	if c.Ticker == "" {
		return fmt.Errorf("ticker is required")
	}
	if c.SMAWindow < 1 {
		return fmt.Errorf("sma_window must be a positive integer, got %d", c.SMAWindow)
	}
	if !collector.Periods[c.Period] {
		return fmt.Errorf("unknown period %q", c.Period)
	}
	if !collector.Intervals[c.Interval] {
		return fmt.Errorf("unknown interval %q", c.Interval)
	}
	if c.OutDir == "" {
		return fmt.Errorf("out_dir is required")
	}
	return nil
}

// CSVPath returns the output table location for this configuration.
func (c *Config) CSVPath() string {
	return filepath.Join(c.OutDir, c.Ticker+".csv")
}

// ChartPath returns the chart image location for this configuration.
func (c *Config) ChartPath() string {
	return filepath.Join(c.OutDir, c.Ticker+"_price_sma.png")
}
