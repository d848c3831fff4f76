// Package main provides a CLI for looking up a PDB entry.
// Usage: pdbfetch [-output text|json] [-fasta-only] [-o FILE] [-i] [-config FILE] ID
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"pdb-explorer/internal/config"
	"pdb-explorer/internal/infra/rcsb"
	"pdb-explorer/internal/observability/logging"
	"pdb-explorer/internal/usecase/lookup"
)

func main() {
	var opts options
	flag.StringVar(&opts.Output, "output", "text", "Output format: text or json")
	flag.BoolVar(&opts.FASTAOnly, "fasta-only", false, "Print only the FASTA sequence listing")
	flag.StringVar(&opts.FASTAFile, "o", "", "Also write the FASTA sequence listing to this file")
	interactive := flag.Bool("i", false, "Prompt for the entry identifier")
	configPath := flag.String("config", os.Getenv("CONFIG_PATH"), "Path to YAML configuration file")
	flag.Parse()

	if opts.Output != "text" && opts.Output != "json" {
		fmt.Fprintf(os.Stderr, "Error: unknown output format %q (want text or json)\n", opts.Output)
		os.Exit(2)
	}

	args := flag.Args()
	switch {
	case *interactive:
		id, err := promptIdentifier()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		opts.ID = id
	case len(args) == 1:
		opts.ID = args[0]
	default:
		fmt.Fprintln(os.Stderr, "Error: exactly one PDB ID is required")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Usage: pdbfetch [-output text|json] [-fasta-only] [-o FILE] [-i] [-config FILE] ID")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Examples:")
		fmt.Fprintln(os.Stderr, "  pdbfetch 4HHB")
		fmt.Fprintln(os.Stderr, "  pdbfetch -output json 1crn")
		fmt.Fprintln(os.Stderr, "  pdbfetch -fasta-only -o 4hhb.fasta 4HHB")
		fmt.Fprintln(os.Stderr, "  pdbfetch -i")
		os.Exit(2)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger := logging.NewConsoleLogger(os.Stderr, logging.ParseLevel(cfg.LogLevel))
	slog.SetDefault(logger)

	client := rcsb.NewClient(cfg.RCSB)
	svc := lookup.NewService(client, client, client, lookup.Config{Parallelism: cfg.RCSB.Parallelism})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, cfg.Server.RequestTimeout)
	defer cancel()
	ctx = logging.WithLogger(ctx, logger)

	if err := run(ctx, svc, opts, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", userMessage(err))
		os.Exit(1)
	}
}
