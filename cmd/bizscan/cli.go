package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/fwojciec/bizscan"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx      context.Context
	Stdout   io.Writer
	Stderr   io.Writer
	Logger   *slog.Logger
	Settings bizscan.Settings
	DBPath   string

	// Fetcher, if set, replaces the HTTP fetcher.
	Fetcher bizscan.Fetcher
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Settings string `help:"TOML settings file" env:"BIZSCAN_SETTINGS"`
	Verbose  bool   `short:"v" help:"Enable debug logging"`

	Scrape ScrapeCmd `cmd:"" default:"withargs" help:"Scrape businesses for search queries and listing URLs"`
	Runs   RunsCmd   `cmd:"" help:"List runs stored in the database"`
}

// ScrapeCmd is the "scrape" subcommand, run when no command is named.
type ScrapeCmd struct {
	Inputs      string  `short:"i" required:"" help:"File with one search query or listing URL per line"`
	Output      string  `short:"o" default:"-" help:"Output path, '-' for stdout"`
	Format      string  `short:"f" default:"json" enum:"json,jsonl,sqlite" help:"Output format (json, jsonl, sqlite)"`
	Location    string  `short:"l" help:"Location to bias search queries towards"`
	MaxResults  int     `name:"max-results" help:"Cap on records across all inputs (0 for no cap)"`
	Concurrency int     `short:"c" help:"Concurrent detail fetches (overrides settings)"`
	RPS         float64 `name:"rps" help:"Requests per second per host (overrides settings)"`
	Dedupe      bool    `help:"Drop records already seen earlier in the run"`
	MetricsFile string  `name:"metrics-file" help:"Write Prometheus metrics to this textfile"`
}

// RunsCmd is the "runs" subcommand.
type RunsCmd struct {
	DB      string `help:"Database path (defaults to BIZSCAN_DB or bizscan.db)"`
	Records bool   `short:"r" help:"Show records of the latest run"`
}
