// Package main provides the seekearth CLI, which reports the rooms nearest to
// a start room that hold a named item.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/gookit/color"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/cory-johannsen/seekearth/internal/config"
	"github.com/cory-johannsen/seekearth/internal/game/world"
	"github.com/cory-johannsen/seekearth/internal/observability"
	"github.com/cory-johannsen/seekearth/internal/report"
	"github.com/cory-johannsen/seekearth/internal/seek"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// dumper writes diagnostic dumps and remembers the first write failure.
type dumper struct {
	w   io.Writer
	err error
}

func (d *dumper) dump(title string, v any) {
	if d.err != nil {
		return
	}
	d.err = report.WriteDump(d.w, title, v)
}

// run executes one search and returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	fs := pflag.NewFlagSet("seekearth", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	config.RegisterFlags(fs)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		return 2
	}

	configPath, _ := fs.GetString("config")
	cfg, err := config.Load(configPath, fs)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 2
	}

	logger, err := observability.NewLogger(cfg.Logging, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "error: initializing logger: %v\n", err)
		return 1
	}
	defer func() { _ = logger.Sync() }()

	policy, err := world.ParseMalformedPolicy(cfg.Parse.Malformed)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 2
	}
	loader := world.Loader{
		Policy: policy,
		OnIssue: func(i world.LineIssue) {
			logger.Warn("skipping malformed line",
				zap.String("file", i.Path),
				zap.Int("line", i.Line),
				zap.String("text", i.Text),
				zap.String("reason", i.Reason),
			)
		},
	}
	unifier := world.Unifier{
		OnCollision: func(c world.Collision) {
			logger.Warn("global room id collision, keeping later map",
				zap.String("id", c.ID),
				zap.String("replaced_map", c.Replaced.Map),
				zap.String("kept_map", c.Kept.Map),
			)
		},
	}

	d := &dumper{w: stdout}
	var hooks seek.Hooks
	if cfg.Output.Dump {
		d.dump("args", cfg)
		hooks.Unified = func(a *world.Atlas) { d.dump("rooms", a.Coords()) }
		hooks.Treasures = func(idx world.TreasureIndex) { d.dump("treasures", idx.Listing()) }
		hooks.Start = func(_ string, c world.Coord) { d.dump("start_coords", c) }
	}

	files := seek.Files{
		Prefix:    cfg.Files.Prefix,
		XYZ:       cfg.Files.XYZ,
		Rooms:     cfg.Files.Rooms,
		Treasures: cfg.Files.Treasures,
	}
	query := seek.Query{
		Find:   cfg.Search.Find,
		Start:  cfg.Search.Start,
		Number: cfg.Search.Number,
	}

	out, err := seek.New(loader, unifier, hooks, logger).Run(files, query)
	if err != nil {
		logger.Error("search failed", zap.Error(err))
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	if d.err != nil {
		fmt.Fprintf(stderr, "error: %v\n", d.err)
		return 1
	}

	style := report.Style{Color: useColor(cfg.Output.Color, stdout)}
	if err := report.WriteTable(stdout, out.Results, style); err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	return 0
}

// useColor resolves the --color mode against the output stream.
func useColor(mode string, w io.Writer) bool {
	switch mode {
	case "always":
		color.ForceColor()
		return true
	case "auto":
		f, ok := w.(*os.File)
		return ok && term.IsTerminal(int(f.Fd()))
	default:
		return false
	}
}
