// Package seek wires the loaders, the unifier, and the ranker into the
// single search performed per invocation.
package seek

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/seekearth/internal/game/locate"
	"github.com/cory-johannsen/seekearth/internal/game/world"
)

// Files names the four input files.
type Files struct {
	Prefix    string
	XYZ       string
	Rooms     string
	Treasures string
}

// Query is what to look for and where to look from.
type Query struct {
	// Find is the item name, matched exactly.
	Find string
	// Start is the global room id distances are measured from.
	Start string
	// Number caps the result count.
	Number int
}

// Hooks are optional callbacks run after pipeline stages. Nil hooks are skipped.
type Hooks struct {
	// Unified receives the atlas once every placement is resolved.
	Unified func(*world.Atlas)
	// Treasures receives the loaded treasure index.
	Treasures func(world.TreasureIndex)
	// Start receives the resolved start room.
	Start func(id string, coord world.Coord)
}

// Outcome is the product of one search.
type Outcome struct {
	Start     world.Coord
	Atlas     *world.Atlas
	Treasures world.TreasureIndex
	Results   []locate.Result
}

// Pipeline runs a search end to end.
type Pipeline struct {
	loader  world.Loader
	unifier world.Unifier
	hooks   Hooks
	logger  *zap.Logger
}

// New constructs a Pipeline.
//
// Precondition: logger must be non-nil.
// Postcondition: Returns a non-nil Pipeline.
func New(loader world.Loader, unifier world.Unifier, hooks Hooks, logger *zap.Logger) *Pipeline {
	return &Pipeline{loader: loader, unifier: unifier, hooks: hooks, logger: logger}
}

// Run loads every input, builds the atlas, and ranks the rooms holding q.Find
// by distance from q.Start.
//
// Precondition: q.Start should name a room produced by the placement files.
// Postcondition: Returns an Outcome, or the first load, parse, or lookup error.
func (p *Pipeline) Run(files Files, q Query) (*Outcome, error) {
	t0 := time.Now()
	prefixes, err := p.loader.LoadPrefixes(files.Prefix)
	if err != nil {
		return nil, fmt.Errorf("loading prefixes: %w", err)
	}
	geometry, err := p.loader.LoadGeometry(files.XYZ)
	if err != nil {
		return nil, fmt.Errorf("loading geometry: %w", err)
	}
	placements, err := p.loader.LoadPlacements(files.Rooms)
	if err != nil {
		return nil, fmt.Errorf("loading rooms: %w", err)
	}
	p.logger.Debug("map tables loaded",
		zap.Int("prefixes", len(prefixes)),
		zap.Int("geometries", len(geometry)),
		zap.Int("maps", placements.Len()),
		zap.Int("placements", placements.RoomCount()),
		zap.Duration("elapsed", time.Since(t0)),
	)

	atlas, err := p.unifier.Unify(prefixes, geometry, placements)
	if err != nil {
		return nil, fmt.Errorf("unifying coordinates: %w", err)
	}
	p.logger.Debug("atlas built", zap.Int("rooms", atlas.Len()))
	if p.hooks.Unified != nil {
		p.hooks.Unified(atlas)
	}

	t1 := time.Now()
	treasures, err := p.loader.LoadTreasures(files.Treasures)
	if err != nil {
		return nil, fmt.Errorf("loading treasures: %w", err)
	}
	p.logger.Debug("treasures loaded",
		zap.Int("rooms", len(treasures)),
		zap.Duration("elapsed", time.Since(t1)),
	)
	if p.hooks.Treasures != nil {
		p.hooks.Treasures(treasures)
	}

	start, err := atlas.Lookup(q.Start)
	if err != nil {
		return nil, fmt.Errorf("resolving start room: %w", err)
	}
	if p.hooks.Start != nil {
		p.hooks.Start(q.Start, start)
	}

	results, err := locate.Rank(start, q.Find, treasures, atlas, q.Number)
	if err != nil {
		return nil, fmt.Errorf("ranking %q: %w", q.Find, err)
	}
	p.logger.Debug("search complete",
		zap.String("find", q.Find),
		zap.String("start", q.Start),
		zap.Int("results", len(results)),
		zap.Duration("elapsed", time.Since(t0)),
	)

	return &Outcome{
		Start:     start,
		Atlas:     atlas,
		Treasures: treasures,
		Results:   results,
	}, nil
}
