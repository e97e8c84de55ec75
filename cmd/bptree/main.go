// Command bptree loads integer keys into an in-memory B+ tree, prints its
// structure and optionally opens an interactive shell on it.
//
// Usage:
//
//	bptree [flags] [keyfile]
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/alexhholmes/bptree"
	"github.com/alexhholmes/bptree/internal/cli"
	"github.com/alexhholmes/bptree/logger"
	"github.com/alexhholmes/bptree/metrics"
)

type config struct {
	degree      int
	logLevel    string
	logFormat   string
	metricsAddr string
	seed        int
	interactive bool
	keyFile     string
}

func parseFlags(args []string, stderr io.Writer) (config, error) {
	var cfg config
	fs := flag.NewFlagSet("bptree", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.IntVar(&cfg.degree, "degree", 3, "maximum keys per node before a split")
	fs.StringVar(&cfg.logLevel, "log-level", "info", "log level: debug, info, warn or error")
	fs.StringVar(&cfg.logFormat, "log-format", "console", "log format: console or json")
	fs.StringVar(&cfg.metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address, e.g. :9090")
	fs.IntVar(&cfg.seed, "seed", 0, "insert this many random keys after loading")
	fs.BoolVar(&cfg.interactive, "i", false, "open an interactive shell after loading")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "usage: bptree [flags] [keyfile]\n\nflags:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return cfg, err
	}
	switch fs.NArg() {
	case 0:
	case 1:
		cfg.keyFile = fs.Arg(0)
	default:
		fs.Usage()
		return cfg, fmt.Errorf("expected at most one key file, got %d arguments", fs.NArg())
	}
	return cfg, nil
}

func main() {
	cfg, err := parseFlags(os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	if err := run(cfg, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "bptree: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg config, stdout io.Writer) error {
	log, err := logger.New(logger.Config{Level: cfg.logLevel, Format: cfg.logFormat})
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer log.Sync()

	tree, err := bptree.NewOrdered[int](cfg.degree, bptree.WithLogger(logger.NewZap(log)))
	if err != nil {
		return fmt.Errorf("failed to create tree: %w", err)
	}
	session := cli.NewSession(tree, stdout, log)

	if cfg.metricsAddr != "" {
		serveMetrics(cfg.metricsAddr, session, log)
	}

	if cfg.keyFile != "" {
		n, err := session.LoadFile(cfg.keyFile)
		if err != nil {
			return err
		}
		log.Info("key file loaded", zap.String("path", cfg.keyFile), zap.Int("keys", n))
	}
	if cfg.seed > 0 {
		if err := session.Seed(cfg.seed); err != nil {
			return err
		}
	}
	if cfg.keyFile != "" || cfg.seed > 0 {
		session.Dump()
	}

	if !cfg.interactive {
		return nil
	}
	return session.Run(historyFile())
}

func serveMetrics(addr string, source metrics.Source, log *zap.Logger) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(metrics.NewCollector(source, nil))

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))

	go func() {
		log.Info("serving metrics", zap.String("addr", addr))
		if err := http.ListenAndServe(addr, mux); err != nil {
			log.Error("metrics server stopped", zap.Error(err))
		}
	}()
}

func historyFile() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "bptree_history")
}
