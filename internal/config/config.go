// Package config holds the runtime configuration for factlens.
//
// Configuration hierarchy (highest to lowest priority):
//  1. CLI flags
//  2. Environment variables (FACTLENS_*, GOOGLE_API_KEY, OPENAI_API_KEY)
//  3. Config file (~/.factlens/config.yaml)
//  4. Defaults
package config

import (
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the explicit configuration object constructed once and passed
// by reference into pipeline components. No ambient globals.
type Config struct {
	Search      SearchConfig      `yaml:"search" mapstructure:"search"`
	Scrape      ScrapeConfig      `yaml:"scrape" mapstructure:"scrape"`
	LLM         LLMConfig         `yaml:"llm" mapstructure:"llm"`
	Server      ServerConfig      `yaml:"server" mapstructure:"server"`
	Concurrency ConcurrencyConfig `yaml:"concurrency" mapstructure:"concurrency"`
	Output      OutputConfig      `yaml:"output" mapstructure:"output"`
}

// SearchConfig configures the Google Custom Search gateway
type SearchConfig struct {
	APIKey         string        `yaml:"api_key" mapstructure:"api_key"`
	EngineID       string        `yaml:"engine_id" mapstructure:"engine_id"`
	BaseURL        string        `yaml:"base_url" mapstructure:"base_url"`
	MaxTotal       int           `yaml:"max_total" mapstructure:"max_total"`
	PageSize       int           `yaml:"page_size" mapstructure:"page_size"`
	PagesPerSecond float64       `yaml:"pages_per_second" mapstructure:"pages_per_second"`
	Timeout        time.Duration `yaml:"timeout" mapstructure:"timeout"`
	CacheTTL       time.Duration `yaml:"cache_ttl" mapstructure:"cache_ttl"`
}

// ScrapeConfig configures the concurrent scrape engine
type ScrapeConfig struct {
	Timeout       time.Duration `yaml:"timeout" mapstructure:"timeout"`
	UserAgent     string        `yaml:"user_agent" mapstructure:"user_agent"`
	MaxBodyBytes  int64         `yaml:"max_body_bytes" mapstructure:"max_body_bytes"`
	Proxies       []string      `yaml:"proxies" mapstructure:"proxies"`
	RespectRobots bool          `yaml:"respect_robots" mapstructure:"respect_robots"`
}

// LLMConfig configures the generative-text provider
type LLMConfig struct {
	Provider string `yaml:"provider" mapstructure:"provider"`
	Model    string `yaml:"model" mapstructure:"model"`
	APIKey   string `yaml:"api_key" mapstructure:"api_key"`
	BaseURL  string `yaml:"base_url" mapstructure:"base_url"`
	Timeout  int    `yaml:"timeout" mapstructure:"timeout"` // seconds
}

// ServerConfig configures the HTTP API
type ServerConfig struct {
	Addr          string `yaml:"addr" mapstructure:"addr"`
	UploadDir     string `yaml:"upload_dir" mapstructure:"upload_dir"`
	ResultsDir    string `yaml:"results_dir" mapstructure:"results_dir"`
	MaxUploadSize int64  `yaml:"max_upload_size" mapstructure:"max_upload_size"`
}

// ConcurrencyConfig bounds batch processing
type ConcurrencyConfig struct {
	Workers int `yaml:"workers" mapstructure:"workers"`
}

// OutputConfig configures artifact persistence
type OutputConfig struct {
	ArtifactsDir string `yaml:"artifacts_dir" mapstructure:"artifacts_dir"`
	Verbose      bool   `yaml:"verbose" mapstructure:"verbose"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Search: SearchConfig{
			BaseURL:        "https://www.googleapis.com/customsearch/v1",
			MaxTotal:       50,
			PageSize:       10,
			PagesPerSecond: 1.0,
			Timeout:        15 * time.Second,
			CacheTTL:       15 * time.Minute,
		},
		Scrape: ScrapeConfig{
			Timeout:      10 * time.Second,
			UserAgent:    "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/100.0.4896.88 Safari/537.36",
			MaxBodyBytes: 2_000_000,
		},
		LLM: LLMConfig{
			Provider: "openai",
			Model:    "gpt-4o-mini",
			Timeout:  30,
		},
		Server: ServerConfig{
			Addr:          ":8080",
			UploadDir:     "uploads",
			ResultsDir:    "results",
			MaxUploadSize: 16 << 20,
		},
		Concurrency: ConcurrencyConfig{
			Workers: 10,
		},
		Output: OutputConfig{
			ArtifactsDir: "artifacts",
		},
	}
}

// Load builds the configuration from defaults, viper state and environment
func Load() *Config {
	cfg := Default()

	if err := viper.Unmarshal(cfg); err == nil {
		// viper zeroes unset durations when a config file section exists;
		// refill anything the merge wiped
		fillDefaults(cfg)
	}

	// Credentials always come from the environment when present
	if v := os.Getenv("GOOGLE_API_KEY"); v != "" {
		cfg.Search.APIKey = v
	}
	if v := os.Getenv("GOOGLE_CSE_ID"); v != "" {
		cfg.Search.EngineID = v
	}
	if v := os.Getenv("OPENAI_API_KEY"); v != "" && cfg.LLM.APIKey == "" {
		cfg.LLM.APIKey = v
	}
	if v := os.Getenv("FACTLENS_PROXIES"); v != "" {
		cfg.Scrape.Proxies = splitProxies(v)
	}

	return cfg
}

func fillDefaults(cfg *Config) {
	def := Default()
	if cfg.Search.BaseURL == "" {
		cfg.Search.BaseURL = def.Search.BaseURL
	}
	if cfg.Search.MaxTotal <= 0 {
		cfg.Search.MaxTotal = def.Search.MaxTotal
	}
	if cfg.Search.PageSize <= 0 {
		cfg.Search.PageSize = def.Search.PageSize
	}
	if cfg.Search.PagesPerSecond <= 0 {
		cfg.Search.PagesPerSecond = def.Search.PagesPerSecond
	}
	if cfg.Search.Timeout <= 0 {
		cfg.Search.Timeout = def.Search.Timeout
	}
	if cfg.Search.CacheTTL <= 0 {
		cfg.Search.CacheTTL = def.Search.CacheTTL
	}
	if cfg.Scrape.Timeout <= 0 {
		cfg.Scrape.Timeout = def.Scrape.Timeout
	}
	if cfg.Scrape.UserAgent == "" {
		cfg.Scrape.UserAgent = def.Scrape.UserAgent
	}
	if cfg.Scrape.MaxBodyBytes <= 0 {
		cfg.Scrape.MaxBodyBytes = def.Scrape.MaxBodyBytes
	}
	if cfg.LLM.Timeout <= 0 {
		cfg.LLM.Timeout = def.LLM.Timeout
	}
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = def.Server.Addr
	}
	if cfg.Server.UploadDir == "" {
		cfg.Server.UploadDir = def.Server.UploadDir
	}
	if cfg.Server.ResultsDir == "" {
		cfg.Server.ResultsDir = def.Server.ResultsDir
	}
	if cfg.Server.MaxUploadSize <= 0 {
		cfg.Server.MaxUploadSize = def.Server.MaxUploadSize
	}
	if cfg.Concurrency.Workers <= 0 {
		cfg.Concurrency.Workers = def.Concurrency.Workers
	}
	if cfg.Output.ArtifactsDir == "" {
		cfg.Output.ArtifactsDir = def.Output.ArtifactsDir
	}
}

func splitProxies(raw string) []string {
	var out []string
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
