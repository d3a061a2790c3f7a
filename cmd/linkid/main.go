package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/linkid"
	"github.com/fwojciec/linkid/extract"
	"github.com/fwojciec/linkid/goquery"
	linkidhttp "github.com/fwojciec/linkid/http"
	"github.com/fwojciec/linkid/regexp2"
	"github.com/fwojciec/linkid/rod"
	linkidslog "github.com/fwojciec/linkid/slog"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Stdin is read when the text argument is "-" or missing.
	Stdin io.Reader

	// Requester overrides the network requester. Set for end-to-end testing.
	Requester linkid.Requester
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{Stdin: os.Stdin}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
		Stdin:  m.Stdin,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("linkid"),
		kong.Description("Extract video, account, collection and live-room ids from share text"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'linkid --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(cli.Config)
	if err != nil {
		return err
	}
	cli.Options.apply(cfg)

	level := slog.LevelWarn
	if cli.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	deps.Profiles = regexp2.Profiles()
	deps.JSON = cli.JSON
	deps.Proxy = cfg.Proxy

	switch strings.Fields(kongCtx.Command())[0] {
	case "extract", "expand":
		requester := m.Requester
		if requester == nil {
			r, closer := newRequester(cfg, deps.Profiles)
			defer closer()
			requester = r
		}

		requester = linkidslog.NewLoggingRequester(requester, logger)
		if delays := cfg.RetryDelays(); len(delays) > 0 {
			requester = &extract.RetryRequester{Requester: requester, Delays: delays}
		}

		pipeline := &extract.Pipeline{
			Profiles:    deps.Profiles,
			Requester:   requester,
			Miners:      make(map[linkid.Platform]linkid.Miner, len(deps.Profiles)),
			Concurrency: cfg.Concurrency,
		}
		for platform, profile := range deps.Profiles {
			pipeline.Miners[platform] = goquery.NewMiner(profile)
		}
		if cfg.Rate > 0 {
			pipeline.RateLimiter = extract.NewHostLimiter(cfg.Rate)
		}
		deps.Extractor = linkidslog.NewLoggingExtractor(pipeline, logger)
	}

	return kongCtx.Run(deps)
}

// newRequester builds the browser or HTTP requester described by cfg and
// returns a function releasing it.
func newRequester(cfg *Config, profiles map[linkid.Platform]linkid.Profile) (linkid.Requester, func()) {
	if cfg.Browser {
		r := rod.NewRequester(rod.WithTimeout(cfg.GetTimeout()))
		return r, func() { _ = r.Close() }
	}

	opts := []linkidhttp.Option{
		linkidhttp.WithTimeout(cfg.GetTimeout()),
		linkidhttp.WithUserAgent(cfg.UserAgent),
		linkidhttp.WithHeaders(cfg.Headers),
	}
	for name, pc := range cfg.Platforms {
		profile, ok := profiles[linkid.Platform(name)]
		if !ok {
			continue
		}
		headers := pc.headers()
		for _, host := range profile.Hosts() {
			opts = append(opts, linkidhttp.WithHostHeaders(host, headers))
		}
	}
	r := linkidhttp.NewRequester(opts...)
	return r, func() { _ = r.Close() }
}
