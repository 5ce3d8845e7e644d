// Command sort-source orders a line-delimited vocabulary source by its sort
// field and rewrites it one entry per line.
package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/viant/afs"

	"github.com/Nananas/chordle/internal/entry"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: sort-source <input_file> [output_file]")
		fmt.Println("")
		fmt.Println("Examples:")
		fmt.Println("  sort-source clt1.json")
		fmt.Println("  sort-source clt1.json clt1_sorted.json")
		os.Exit(1)
	}

	inputFile := os.Args[1]
	outputFile := inputFile
	if len(os.Args) >= 3 {
		outputFile = os.Args[2]
	}

	if err := sortSourceFile(context.Background(), afs.New(), inputFile, outputFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func sortSourceFile(ctx context.Context, fs afs.Service, inputFile, outputFile string) error {
	inputURL, err := filepath.Abs(inputFile)
	if err != nil {
		return err
	}
	outputURL, err := filepath.Abs(outputFile)
	if err != nil {
		return err
	}

	fmt.Printf("Reading: %s\n", inputFile)
	data, err := fs.DownloadWithURL(ctx, inputURL)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	name := strings.TrimSuffix(filepath.Base(inputFile), filepath.Ext(inputFile))
	entries, err := entry.ReadAll(name, bytes.NewReader(data))
	if err != nil {
		return err
	}
	fmt.Printf("Entries: %d\n", len(entries))

	entry.SortStable(entries)

	var buf bytes.Buffer
	if err := entry.Write(&buf, entries); err != nil {
		return err
	}

	fmt.Printf("Writing: %s\n", outputFile)
	if err := fs.Upload(ctx, outputURL, 0644, &buf); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}
