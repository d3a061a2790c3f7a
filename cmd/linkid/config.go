package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	linkidhttp "github.com/fwojciec/linkid/http"
	"gopkg.in/yaml.v3"
)

// Config is the optional YAML configuration file.
type Config struct {
	Proxy       string                    `yaml:"proxy"`
	Timeout     int                       `yaml:"timeout"` // seconds
	UserAgent   string                    `yaml:"user_agent"`
	Concurrency int                       `yaml:"concurrency"`
	Rate        float64                   `yaml:"rate"` // requests per second per host
	Browser     bool                      `yaml:"browser"`
	Retries     int                       `yaml:"retries"`
	Headers     map[string]string         `yaml:"headers"`
	Platforms   map[string]PlatformConfig `yaml:"platforms"`
}

// PlatformConfig holds request settings for one platform's hosts.
type PlatformConfig struct {
	Cookie  string            `yaml:"cookie"`
	Headers map[string]string `yaml:"headers"`
}

// headers returns the platform headers including the cookie.
func (p PlatformConfig) headers() map[string]string {
	h := make(map[string]string, len(p.Headers)+1)
	for k, v := range p.Headers {
		h[k] = v
	}
	if p.Cookie != "" {
		h["Cookie"] = p.Cookie
	}
	return h
}

// GetTimeout returns the request timeout.
func (c *Config) GetTimeout() time.Duration {
	return time.Duration(c.Timeout) * time.Second
}

// RetryDelays returns the backoff before each page fetch retry, doubling
// from one second.
func (c *Config) RetryDelays() []time.Duration {
	if c.Retries <= 0 {
		return nil
	}
	delays := make([]time.Duration, c.Retries)
	d := time.Second
	for i := range delays {
		delays[i] = d
		d *= 2
	}
	return delays
}

// LoadConfig reads the configuration file at path, applies environment
// overrides and fills in defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.applyEnv()
	cfg.applyDefaults()
	return &cfg, nil
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.applyEnv()
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyEnv() {
	if ua := os.Getenv("LINKID_USER_AGENT"); ua != "" {
		c.UserAgent = ua
	}
	for name, env := range map[string]string{
		"douyin": "LINKID_DOUYIN_COOKIE",
		"tiktok": "LINKID_TIKTOK_COOKIE",
	} {
		cookie := os.Getenv(env)
		if cookie == "" {
			continue
		}
		if c.Platforms == nil {
			c.Platforms = make(map[string]PlatformConfig)
		}
		pc := c.Platforms[name]
		pc.Cookie = cookie
		c.Platforms[name] = pc
	}
}

func (c *Config) applyDefaults() {
	if c.Timeout <= 0 {
		c.Timeout = int(linkidhttp.DefaultFetchTimeout / time.Second)
	}
	if c.UserAgent == "" {
		c.UserAgent = linkidhttp.DefaultUserAgent
	}
	if c.Concurrency <= 0 {
		c.Concurrency = 1
	}
}

// loadConfig loads path, or the default config file when path is empty.
// A missing default file yields DefaultConfig.
func loadConfig(path string) (*Config, error) {
	if path != "" {
		return LoadConfig(path)
	}
	path = defaultConfigPath()
	if path == "" {
		return DefaultConfig(), nil
	}
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return DefaultConfig(), nil
	}
	return LoadConfig(path)
}

func defaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "linkid", "config.yaml")
}
