package main

import (
	"context"
	"io"

	"demonchart"
	"demonchart/refresh"
	"demonchart/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdout    io.Writer
	Stderr    io.Writer
	DB        *sqlite.DB
	Snapshots demonchart.SnapshotService
	Records   demonchart.RecordService
	Feeds     demonchart.FeedService
	Converter demonchart.Converter
	Refresher *refresh.Refresher
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Fetch   FetchCmd   `cmd:"" help:"Fetch the source post and store a snapshot"`
	List    ListCmd    `cmd:"" help:"List stored snapshots"`
	Records RecordsCmd `cmd:"" help:"List records from a snapshot"`
	Show    ShowCmd    `cmd:"" help:"Show one record as Markdown"`
	Export  ExportCmd  `cmd:"" help:"Export snapshot records as Markdown files"`
	Serve   ServeCmd   `cmd:"" help:"Serve the chart API over HTTP"`
	Delete  DeleteCmd  `cmd:"" help:"Delete a snapshot and its records"`
}

// FetchCmd is the "fetch" subcommand.
type FetchCmd struct {
	URL         string  `arg:"" help:"Post URL, or feed URL with --feed"`
	Feed        bool    `help:"Treat URL as an Atom/RSS feed and refresh matching posts"`
	Filter      string  `short:"F" help:"Regex selecting feed entries by title (with --feed)"`
	Browser     bool    `short:"b" help:"Fetch with a headless browser for JavaScript-rendered blogs"`
	Raw         bool    `help:"Skip boilerplate removal before extraction"`
	Concurrency int     `short:"c" default:"4" help:"Concurrent fetch limit (with --feed)"`
	Rate        float64 `default:"1" help:"Max requests per second per domain"`
}

// ListCmd is the "list" subcommand.
type ListCmd struct{}

// RecordsCmd is the "records" subcommand.
type RecordsCmd struct {
	Snapshot string `arg:"" optional:"" help:"Snapshot ID (defaults to the latest snapshot)"`
	ByValue  bool   `help:"Sort hardest first instead of heading order"`
	Limit    int    `short:"n" help:"Limit the number of records shown"`
}

// ShowCmd is the "show" subcommand.
type ShowCmd struct {
	Position int    `arg:"" help:"One-based chart position of the record"`
	Snapshot string `help:"Snapshot ID (defaults to the latest snapshot)"`
}

// ExportCmd is the "export" subcommand.
type ExportCmd struct {
	Dir      string `arg:"" optional:"" default:"." help:"Parent directory for the export"`
	Name     string `default:"chart" help:"Output directory name"`
	Snapshot string `help:"Snapshot ID (defaults to the latest snapshot)"`
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	Addr    string `default:":8080" help:"Listen address"`
	URL     string `required:"" help:"Post URL refreshed by POST /api/refresh"`
	Browser bool   `short:"b" help:"Fetch with a headless browser for JavaScript-rendered blogs"`
	Raw     bool   `help:"Skip boilerplate removal before extraction"`
}

// DeleteCmd is the "delete" subcommand.
type DeleteCmd struct {
	Snapshot string `arg:"" help:"Snapshot ID"`
	Force    bool   `help:"Confirm deletion"`
}
