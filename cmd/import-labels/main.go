// Package main provides a tool that converts a scene export of numbered room
// labels into room placement lines for seekearth.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/pflag"

	"github.com/cory-johannsen/seekearth/internal/importer"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := pflag.NewFlagSet("import-labels", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	mapName := fs.StringP("map", "m", "", "map name written at the start of every line")
	scenePath := fs.StringP("scene", "i", "", "path to the scene export JSON")
	outputPath := fs.StringP("output", "o", "", "placement file to write; empty writes to stdout")
	appendOut := fs.BoolP("append", "a", false, "append to the output file instead of replacing it")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		return 2
	}

	if *mapName == "" || *scenePath == "" {
		fmt.Fprintln(stderr, "usage: import-labels --map <name> --scene <json> [--output <file> [--append]]")
		return 2
	}

	start := time.Now()

	w := stdout
	if *outputPath != "" {
		mode := os.O_CREATE | os.O_WRONLY | os.O_TRUNC
		if *appendOut {
			mode = os.O_CREATE | os.O_WRONLY | os.O_APPEND
		}
		f, err := os.OpenFile(*outputPath, mode, 0644)
		if err != nil {
			fmt.Fprintf(stderr, "error: opening output: %v\n", err)
			return 1
		}
		defer f.Close()
		w = f
	}

	n, rejected, err := importer.New(importer.NewSource()).Run(*scenePath, *mapName, w)
	for _, r := range rejected {
		fmt.Fprintf(stderr, "skipped %q at %d,%d: %s\n", r.Label.Text, r.Label.X, r.Label.Y, r.Reason)
	}
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	if *outputPath != "" {
		fmt.Fprintf(stdout, "wrote   %s  (%d rooms)  in %s\n", *outputPath, n, time.Since(start).Round(time.Millisecond))
	}
	return 0
}
