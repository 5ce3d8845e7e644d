package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
)

// Config holds the application configuration
type Config struct {
	LayoutPath string
	SourceDir  string
	OutputPath string
	ReportPath string
	LogLevel   string
	Check      bool
}

func main() {
	// 1. Define and parse command-line flags
	layoutPath := flag.String("l", "", "Layout file path (default: built-in NPCR course layout)")
	sourceDir := flag.String("dir", ".", "Directory holding the <source>.json files")
	outputPath := flag.String("o", "static/dictionaries.json", "Output file path")
	reportPath := flag.String("report", "", "Write an HTML duplicate report to this path")
	logLevel := flag.String("log-level", "info", "Log level (debug, info, warn, error)")
	check := flag.Bool("c", false, "Check sources without writing any files")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 0 {
		flag.Usage()
		os.Exit(1)
	}

	cfg := &Config{
		LayoutPath: *layoutPath,
		SourceDir:  *sourceDir,
		OutputPath: *outputPath,
		ReportPath: *reportPath,
		LogLevel:   *logLevel,
		Check:      *check,
	}

	if err := run(context.Background(), cfg, NewFileStore(), os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *Config, store Store, stdout io.Writer) error {
	layout, err := LoadLayout(ctx, store, cfg.LayoutPath)
	if err != nil {
		return err
	}

	log := NewLogger(LogOptions{Level: cfg.LogLevel})
	merger := NewMerger(store, cfg.SourceDir, log)

	// Nothing is written unless every source loads.
	doc, err := merger.Merge(ctx, layout)
	if err != nil {
		return err
	}

	printSummary(stdout, doc)

	dups := merger.Duplicates()
	if cfg.Check {
		fmt.Fprintf(stdout, "Check passed: %d sources, %d duplicates.\n", len(doc.Parts), len(dups))
		return nil
	}

	var buf bytes.Buffer
	if err := doc.Encode(&buf); err != nil {
		return err
	}
	if err := store.Upload(ctx, cfg.OutputPath, buf.Bytes()); err != nil {
		return err
	}

	if cfg.ReportPath != "" {
		report, err := RenderReport(dups)
		if err != nil {
			return err
		}
		if err := store.Upload(ctx, cfg.ReportPath, report); err != nil {
			return err
		}
	}
	return nil
}

// printSummary prints the number of merged sources followed by the structure.
func printSummary(w io.Writer, doc *Document) {
	fmt.Fprintln(w, len(doc.Parts))
	for _, g := range doc.Structure {
		fmt.Fprintln(w, g.Label)
		for _, p := range g.Parts {
			fmt.Fprintf(w, "  %s: %s (%d)\n", p.Label, p.Source, len(doc.Parts[p.Source]))
		}
	}
}
