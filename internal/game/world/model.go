// Package world provides the map model: prefixes, geometry, room placement,
// treasure indexes, and the unified atlas of world coordinates.
package world

import (
	"sort"

	"github.com/zyedidia/generic/mapset"
)

// PrefixTable maps a map name to the short prefix used in global room ids.
type PrefixTable map[string]string

// Geometry is the affine transform from one map's pixel space to world space.
// Elevation is constant across the map.
type Geometry struct {
	// OriginX is the world x of pixel (0, 0).
	OriginX float64 `yaml:"x0"`
	// OriginY is the world y of pixel (0, 0).
	OriginY float64 `yaml:"y0"`
	// Elevation is the world z of every room on the map.
	Elevation float64 `yaml:"z"`
	// ScaleX is world units per pixel along x. Negative flips the axis.
	ScaleX float64 `yaml:"x_scale"`
	// ScaleY is world units per pixel along y. Negative flips the axis.
	ScaleY float64 `yaml:"y_scale"`
}

// Apply converts a pixel position on this map to a world coordinate.
//
// Postcondition: X == OriginX + p.X*ScaleX, Y == OriginY + p.Y*ScaleY, Z == Elevation.
func (g Geometry) Apply(p Pixel) Coord {
	return Coord{
		X: g.OriginX + float64(p.X)*g.ScaleX,
		Y: g.OriginY + float64(p.Y)*g.ScaleY,
		Z: g.Elevation,
	}
}

// GeometryTable maps a map name to its Geometry.
type GeometryTable map[string]Geometry

// Pixel is a room position in a map's local pixel space.
type Pixel struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

// Placement is one room position on one map.
type Placement struct {
	Map   string
	Room  string
	Pixel Pixel
}

// PlacementTable records the pixel position of each room on each map. Maps
// and rooms are remembered in the order they were first set. The zero value
// is an empty table.
type PlacementTable struct {
	maps  map[string]*mapPlacements
	order []string
}

type mapPlacements struct {
	pixels map[string]Pixel
	order  []string
}

// NewPlacementTable builds a table by setting each placement in turn.
func NewPlacementTable(ps ...Placement) PlacementTable {
	var t PlacementTable
	for _, p := range ps {
		t.Set(p.Map, p.Room, p.Pixel)
	}
	return t
}

// Set records the position of room on mapName.
//
// Postcondition: a repeated (mapName, room) pair takes the new position and
// keeps its original place in the iteration order.
func (t *PlacementTable) Set(mapName, room string, p Pixel) {
	if t.maps == nil {
		t.maps = make(map[string]*mapPlacements)
	}
	mp, ok := t.maps[mapName]
	if !ok {
		mp = &mapPlacements{pixels: make(map[string]Pixel)}
		t.maps[mapName] = mp
		t.order = append(t.order, mapName)
	}
	if _, seen := mp.pixels[room]; !seen {
		mp.order = append(mp.order, room)
	}
	mp.pixels[room] = p
}

// Maps returns the map names in first-seen order.
func (t PlacementTable) Maps() []string {
	return append([]string(nil), t.order...)
}

// Rooms returns the rooms placed on mapName in first-seen order.
func (t PlacementTable) Rooms(mapName string) []string {
	mp, ok := t.maps[mapName]
	if !ok {
		return nil
	}
	return append([]string(nil), mp.order...)
}

// Pixel returns the position of room on mapName.
func (t PlacementTable) Pixel(mapName, room string) (Pixel, bool) {
	mp, ok := t.maps[mapName]
	if !ok {
		return Pixel{}, false
	}
	p, ok := mp.pixels[room]
	return p, ok
}

// Len returns the number of maps with at least one room.
func (t PlacementTable) Len() int {
	return len(t.order)
}

// RoomCount returns the number of rooms across all maps.
func (t PlacementTable) RoomCount() int {
	n := 0
	for _, mp := range t.maps {
		n += len(mp.order)
	}
	return n
}

// Coord is a position in the shared world coordinate system.
// X grows east, Y grows south, Z grows up.
type Coord struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	Z float64 `yaml:"z"`
}

// ItemSet is the set of item names present in a room.
type ItemSet = mapset.Set[string]

// TreasureIndex maps a room id to the items found there. Room ids are free-form
// and are only resolved against an Atlas at ranking time.
type TreasureIndex map[string]ItemSet

// Add records item as present in room.
func (idx TreasureIndex) Add(room, item string) {
	set, ok := idx[room]
	if !ok {
		set = mapset.New[string]()
		idx[room] = set
	}
	set.Put(item)
}

// Has reports whether room holds item.
func (idx TreasureIndex) Has(room, item string) bool {
	set, ok := idx[room]
	return ok && set.Has(item)
}

// Rooms returns every room id in the index, sorted.
func (idx TreasureIndex) Rooms() []string {
	rooms := make([]string, 0, len(idx))
	for room := range idx {
		rooms = append(rooms, room)
	}
	sort.Strings(rooms)
	return rooms
}

// Items returns the items in room, sorted. Unknown rooms yield an empty slice.
func (idx TreasureIndex) Items(room string) []string {
	items := []string{}
	set, ok := idx[room]
	if !ok {
		return items
	}
	set.Each(func(item string) {
		items = append(items, item)
	})
	sort.Strings(items)
	return items
}

// Listing returns the index as plain sorted slices, for display.
func (idx TreasureIndex) Listing() map[string][]string {
	out := make(map[string][]string, len(idx))
	for room := range idx {
		out[room] = idx.Items(room)
	}
	return out
}
