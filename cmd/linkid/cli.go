package main

import (
	"context"
	"io"
	"strings"
	"time"

	"github.com/fwojciec/linkid"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Stdin  io.Reader

	Extractor linkid.Extractor
	Profiles  map[linkid.Platform]linkid.Profile

	Proxy string
	JSON  bool
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Options `embed:""`

	Config  string `type:"path" env:"LINKID_CONFIG" help:"YAML config file"`
	Verbose bool   `short:"v" help:"Log every request"`
	JSON    bool   `name:"json" help:"Write results as JSON"`

	Extract ExtractCmd `cmd:"" help:"Extract ids from text"`
	Expand  ExpandCmd  `cmd:"" help:"Replace every URL in text with its resolved form"`
	Mix     MixCmd     `cmd:"" help:"Decide whether a collection id or an item id names the mix"`
	Detect  DetectCmd  `cmd:"" help:"Detect the platform of the URLs in text"`
}

// Options are network settings that override the config file when set.
type Options struct {
	Proxy       string        `env:"LINKID_PROXY" help:"Proxy URL for every request"`
	Concurrency int           `short:"c" env:"LINKID_CONCURRENCY" help:"Concurrent requests (1 resolves in order)"`
	Rate        float64       `env:"LINKID_RATE" help:"Requests per second per host (0 disables)"`
	Timeout     time.Duration `env:"LINKID_TIMEOUT" help:"Request timeout"`
	Browser     bool          `env:"LINKID_BROWSER" help:"Load pages in headless Chrome"`
	Retries     int           `env:"LINKID_RETRIES" help:"Retries for page fetches that time out or cannot connect"`
}

// apply copies the options that were set onto cfg.
func (o Options) apply(cfg *Config) {
	if o.Proxy != "" {
		cfg.Proxy = o.Proxy
	}
	if o.Concurrency > 0 {
		cfg.Concurrency = o.Concurrency
	}
	if o.Rate > 0 {
		cfg.Rate = o.Rate
	}
	if o.Timeout > 0 {
		cfg.Timeout = int(o.Timeout / time.Second)
		if cfg.Timeout == 0 {
			cfg.Timeout = 1
		}
	}
	if o.Browser {
		cfg.Browser = true
	}
	if o.Retries > 0 {
		cfg.Retries = o.Retries
	}
}

// ExtractCmd is the "extract" subcommand.
type ExtractCmd struct {
	Platform string   `short:"p" default:"auto" env:"LINKID_PLATFORM" help:"douyin, tiktok or auto"`
	Category string   `short:"k" default:"detail" help:"detail, account, mix, live or raw"`
	Text     []string `arg:"" optional:"" help:"Text to scan; '-' or nothing reads stdin"`
}

// ExpandCmd is the "expand" subcommand.
type ExpandCmd struct {
	Text []string `arg:"" optional:"" help:"Text to expand; '-' or nothing reads stdin"`
}

// MixCmd is the "mix" subcommand.
type MixCmd struct {
	MixID    string `name:"mix-id" help:"Collection id"`
	DetailID string `name:"detail-id" help:"Id of an item in the collection"`
}

// DetectCmd is the "detect" subcommand.
type DetectCmd struct {
	Text []string `arg:"" optional:"" help:"Text to scan; '-' or nothing reads stdin"`
}

// readText joins args, reading stdin when args are empty or "-".
func readText(args []string, stdin io.Reader) (string, error) {
	if len(args) > 0 && !(len(args) == 1 && args[0] == "-") {
		return strings.Join(args, " "), nil
	}
	if stdin == nil {
		return "", nil
	}
	data, err := io.ReadAll(stdin)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}
