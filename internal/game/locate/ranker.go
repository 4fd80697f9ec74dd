// Package locate ranks treasure rooms by straight-line distance from a start point.
package locate

import (
	"math"
	"sort"

	"github.com/cory-johannsen/seekearth/internal/game/world"
)

// DefaultLimit is the number of results returned when the caller does not choose one.
const DefaultLimit = 10

// Result is one ranked room. Deltas point from the start to the room:
// positive DX is east, positive DY is south, positive DZ is up.
type Result struct {
	Distance float64 `yaml:"distance"`
	DX       float64 `yaml:"dx"`
	DY       float64 `yaml:"dy"`
	DZ       float64 `yaml:"dz"`
	Room     string  `yaml:"room"`
}

// Delta returns the per-axis offsets from a to b.
func Delta(a, b world.Coord) (dx, dy, dz float64) {
	return b.X - a.X, b.Y - a.Y, b.Z - a.Z
}

// Distance returns the Euclidean distance between a and b.
//
// Postcondition: Distance(a, b) == Distance(b, a); zero iff a == b.
func Distance(a, b world.Coord) float64 {
	dx, dy, dz := Delta(a, b)
	return math.Hypot(math.Hypot(dx, dy), dz)
}

// Less orders results by distance, then dx, dy, dz, and finally room id.
func Less(a, b Result) bool {
	switch {
	case a.Distance != b.Distance:
		return a.Distance < b.Distance
	case a.DX != b.DX:
		return a.DX < b.DX
	case a.DY != b.DY:
		return a.DY < b.DY
	case a.DZ != b.DZ:
		return a.DZ < b.DZ
	default:
		return a.Room < b.Room
	}
}

// Rank finds every room in index holding item and orders them by distance
// from start.
//
// Precondition: every index room holding item must resolve in atlas.
// Postcondition: Returns at most limit results sorted by Less, or a
// *world.LookupError for the first (in id order) unresolvable room.
// A limit <= 0 returns no results.
func Rank(start world.Coord, item string, index world.TreasureIndex, atlas *world.Atlas, limit int) ([]Result, error) {
	var results []Result
	for _, room := range index.Rooms() {
		if !index.Has(room, item) {
			continue
		}
		target, err := atlas.Lookup(room)
		if err != nil {
			return nil, err
		}
		dx, dy, dz := Delta(start, target)
		results = append(results, Result{
			Distance: Distance(start, target),
			DX:       dx,
			DY:       dy,
			DZ:       dz,
			Room:     room,
		})
	}

	sort.Slice(results, func(i, j int) bool { return Less(results[i], results[j]) })

	if limit <= 0 {
		return []Result{}, nil
	}
	if len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}
