// Package config loads and validates harvester configuration via Viper.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/adpillai/hcp-harvester/internal/fetch"
)

// Config captures all service configuration knobs loaded via Viper.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Harvester HarvesterConfig `mapstructure:"harvester"`
	Fetch     FetchConfig     `mapstructure:"fetch"`
	Browser   BrowserConfig   `mapstructure:"browser"`
	Mongo     MongoConfig     `mapstructure:"mongo"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

// ServerConfig controls the ops HTTP server.
type ServerConfig struct {
	Enabled bool `mapstructure:"enabled"`
	Port    int  `mapstructure:"port"`
}

// HarvesterConfig governs the run loop: paging, concurrency, batching.
type HarvesterConfig struct {
	Concurrency    int    `mapstructure:"concurrency"`
	PageSize       int64  `mapstructure:"page_size"`
	FlushThreshold int    `mapstructure:"flush_threshold"`
	UserAgent      string `mapstructure:"user_agent"`
}

// FetchConfig configures the static HTTP fetcher.
type FetchConfig struct {
	TimeoutSeconds int `mapstructure:"timeout_seconds"`
}

// BrowserConfig configures the headless browser fetcher.
type BrowserConfig struct {
	NavTimeoutSeconds      int     `mapstructure:"nav_timeout_seconds"`
	SelectorTimeoutSeconds int     `mapstructure:"selector_timeout_seconds"`
	ClickSettleMs          int     `mapstructure:"click_settle_ms"`
	ScrollSteps            int     `mapstructure:"scroll_steps"`
	ScrollStepPx           int     `mapstructure:"scroll_step_px"`
	ScrollPauseMs          int     `mapstructure:"scroll_pause_ms"`
	DomainQPS              float64 `mapstructure:"domain_qps"`
}

// MongoConfig names the connection and the three collections the harvester
// touches: the read-only candidate table, the batched target store, and the
// master store.
type MongoConfig struct {
	URI                   string `mapstructure:"uri"`
	ConnectTimeoutSeconds int    `mapstructure:"connect_timeout_seconds"`
	CandidateDB           string `mapstructure:"candidate_db"`
	CandidateCollection   string `mapstructure:"candidate_collection"`
	TargetDB              string `mapstructure:"target_db"`
	TargetCollection      string `mapstructure:"target_collection"`
	MasterDB              string `mapstructure:"master_db"`
	MasterCollection      string `mapstructure:"master_collection"`
}

// LoggingConfig toggles zap development features.
type LoggingConfig struct {
	Development bool `mapstructure:"development"`
}

// Load builds a Config from disk/environment.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("HARVESTER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.enabled", false)
	v.SetDefault("server.port", 9090)
	v.SetDefault("harvester.concurrency", 5)
	v.SetDefault("harvester.page_size", 10000)
	v.SetDefault("harvester.flush_threshold", 50)
	v.SetDefault("harvester.user_agent",
		"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/115.0.0.0 Safari/537.36")
	v.SetDefault("fetch.timeout_seconds", 15)
	v.SetDefault("browser.nav_timeout_seconds", 60)
	v.SetDefault("browser.selector_timeout_seconds", 10)
	v.SetDefault("browser.click_settle_ms", 1500)
	v.SetDefault("browser.scroll_steps", 10)
	v.SetDefault("browser.scroll_step_px", 500)
	v.SetDefault("browser.scroll_pause_ms", 300)
	v.SetDefault("browser.domain_qps", 0)
	v.SetDefault("mongo.uri", "mongodb://localhost:27017/")
	v.SetDefault("mongo.connect_timeout_seconds", 10)
	v.SetDefault("mongo.candidate_db", "Gastroenterology")
	v.SetDefault("mongo.candidate_collection", "allowed_domains")
	v.SetDefault("mongo.target_db", "Gastroenterology")
	v.SetDefault("mongo.target_collection", "first_scrape")
	v.SetDefault("mongo.master_db", "medical_data")
	v.SetDefault("mongo.master_collection", "master_with_parsed_education")
	v.SetDefault("logging.development", true)
}

// Validate enforces required values and reasonable limits.
func (c Config) Validate() error {
	if c.Harvester.Concurrency <= 0 {
		return fmt.Errorf("harvester.concurrency must be > 0")
	}
	if c.Harvester.PageSize <= 0 {
		return fmt.Errorf("harvester.page_size must be > 0")
	}
	if c.Harvester.FlushThreshold <= 0 {
		return fmt.Errorf("harvester.flush_threshold must be > 0")
	}
	if c.Fetch.TimeoutSeconds <= 0 {
		return fmt.Errorf("fetch.timeout_seconds must be > 0")
	}
	if c.Browser.NavTimeoutSeconds <= 0 {
		return fmt.Errorf("browser.nav_timeout_seconds must be > 0")
	}
	if c.Mongo.URI == "" {
		return fmt.Errorf("mongo.uri must be set")
	}
	if c.Server.Enabled && c.Server.Port <= 0 {
		return fmt.Errorf("server.port must be > 0 when the ops server is enabled")
	}
	return nil
}

// StaticTimeout returns the static fetch request timeout.
func (c Config) StaticTimeout() time.Duration {
	return time.Duration(c.Fetch.TimeoutSeconds) * time.Second
}

// MongoConnectTimeout returns the connection bootstrap timeout.
func (c Config) MongoConnectTimeout() time.Duration {
	return time.Duration(c.Mongo.ConnectTimeoutSeconds) * time.Second
}

// BrowserSettings converts the browser knobs into the fetch layer's form.
func (c Config) BrowserSettings() fetch.BrowserConfig {
	return fetch.BrowserConfig{
		NavTimeout:      time.Duration(c.Browser.NavTimeoutSeconds) * time.Second,
		SelectorTimeout: time.Duration(c.Browser.SelectorTimeoutSeconds) * time.Second,
		ClickSettle:     time.Duration(c.Browser.ClickSettleMs) * time.Millisecond,
		ScrollSteps:     c.Browser.ScrollSteps,
		ScrollStepPx:    c.Browser.ScrollStepPx,
		ScrollPause:     time.Duration(c.Browser.ScrollPauseMs) * time.Millisecond,
		DomainQPS:       c.Browser.DomainQPS,
	}
}
