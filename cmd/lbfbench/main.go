// Command lbfbench compares a sandwiched learned bloom filter with a standard
// bloom filter and prints the results.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/jcalabro/lbf/internal/harness"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "lbfbench: %v\n", err)
		os.Exit(1)
	}
}

type options struct {
	cfg         harness.Config
	format      string
	logLevel    string
	logJSON     bool
	metricsAddr string
}

func parseFlags(args []string, stderr io.Writer) (*options, error) {
	def := harness.DefaultConfig()
	opts := &options{}

	fs := flag.NewFlagSet("lbfbench", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var policy string
	fs.IntVar(&opts.cfg.Items, "items", def.Items, "number of synthetic members and non-members per split")
	fs.StringVar(&opts.cfg.DatasetPath, "dataset", "", "CSV file with url and label columns (overrides -items)")
	fs.Uint64Var(&opts.cfg.StandardSize, "standard-size", def.StandardSize, "standard filter size in bits")
	hashes := fs.Uint("standard-hashes", uint(def.StandardHashes), "standard filter hash count")
	fs.Uint64Var(&opts.cfg.L1Size, "l1-size", def.L1Size, "sandwich L1 size in bits")
	l1Hashes := fs.Uint("l1-hashes", uint(def.L1Hashes), "sandwich L1 hash count")
	fs.Uint64Var(&opts.cfg.L3Size, "l3-size", def.L3Size, "sandwich L3 size in bits")
	l3Hashes := fs.Uint("l3-hashes", uint(def.L3Hashes), "sandwich L3 hash count")
	fs.StringVar(&policy, "policy", string(def.Policy), "L3 insertion policy: classifier or random")
	fs.Float64Var(&opts.cfg.MissRate, "miss-rate", def.MissRate, "fraction of members sent to L3 by the random policy")
	fs.Uint64Var(&opts.cfg.Seed, "seed", def.Seed, "random policy seed")
	fs.IntVar(&opts.cfg.TreeDepth, "tree-depth", def.TreeDepth, "maximum oracle depth (negative for a single leaf)")
	fs.StringVar(&opts.format, "format", "text", "report format: text or json")
	fs.StringVar(&opts.logLevel, "log-level", "info", "log level: debug, info, warn or error")
	fs.BoolVar(&opts.logJSON, "log-json", false, "write logs as JSON")
	fs.StringVar(&opts.metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address after the run")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}

	for name, v := range map[string]uint{
		"standard-hashes": *hashes,
		"l1-hashes":       *l1Hashes,
		"l3-hashes":       *l3Hashes,
	} {
		if v > math.MaxUint32 {
			return nil, fmt.Errorf("-%s %d exceeds %d", name, v, uint64(math.MaxUint32))
		}
	}
	opts.cfg.StandardHashes = uint32(*hashes)
	opts.cfg.L1Hashes = uint32(*l1Hashes)
	opts.cfg.L3Hashes = uint32(*l3Hashes)
	opts.cfg.Policy = harness.L3Policy(policy)

	switch opts.format {
	case "text", "json":
	default:
		return nil, fmt.Errorf("unknown format %q", opts.format)
	}
	return opts, nil
}

func newLogger(w io.Writer, level string, asJSON bool) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	hopts := &slog.HandlerOptions{Level: lvl}
	if asJSON {
		return slog.New(slog.NewJSONHandler(w, hopts)), nil
	}
	return slog.New(slog.NewTextHandler(w, hopts)), nil
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}

	log, err := newLogger(stderr, opts.logLevel, opts.logJSON)
	if err != nil {
		return err
	}
	opts.cfg.Logger = log

	var reg *prometheus.Registry
	if opts.metricsAddr != "" {
		reg = prometheus.NewRegistry()
		collector, err := harness.NewPrometheusCollector(reg)
		if err != nil {
			return fmt.Errorf("failed to register metrics: %w", err)
		}
		opts.cfg.Metrics = collector
	}

	report, err := harness.Run(ctx, opts.cfg)
	if err != nil {
		return err
	}

	if opts.format == "json" {
		err = report.WriteJSON(stdout)
	} else {
		err = report.WriteText(stdout)
	}
	if err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	if reg == nil {
		return nil
	}
	return serveMetrics(ctx, log, opts.metricsAddr, reg)
}

// onServe, when set, is called with the metrics listener's address once it
// is accepting connections.
var onServe func(addr string)

// serveMetrics exposes reg on addr until ctx is done.
func serveMetrics(ctx context.Context, log *slog.Logger, addr string, reg *prometheus.Registry) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	srv := &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()
	log.InfoContext(ctx, "serving metrics", "addr", ln.Addr().String())
	if onServe != nil {
		onServe(ln.Addr().String())
	}

	select {
	case <-ctx.Done():
	case err := <-errCh:
		return fmt.Errorf("metrics server failed: %w", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to stop metrics server: %w", err)
	}
	return nil
}
