package world

import (
	"sort"
)

// GlobalRoom is a room resolved into world space.
type GlobalRoom struct {
	// ID is "{prefix}-{room}".
	ID string
	// Map is the map the room was placed on.
	Map string
	// Room is the room name local to Map.
	Room string
	// Coord is the room's world coordinate.
	Coord Coord
}

// GlobalID builds the atlas key for a room on a map with the given prefix.
func GlobalID(prefix, room string) string {
	return prefix + "-" + room
}

// Atlas indexes every placed room by global id. It is immutable once built.
type Atlas struct {
	rooms map[string]GlobalRoom
}

// Collision describes a global id produced by two different placements.
// The later placement replaced the earlier one.
type Collision struct {
	ID       string
	Replaced GlobalRoom
	Kept     GlobalRoom
}

// Unifier merges the loaded tables into an Atlas.
type Unifier struct {
	// OnCollision is called whenever a global id is overwritten. May be nil.
	OnCollision func(Collision)
}

// Unify merges the tables with the zero Unifier.
func Unify(prefixes PrefixTable, geometry GeometryTable, placements PlacementTable) (*Atlas, error) {
	return Unifier{}.Unify(prefixes, geometry, placements)
}

// Unify resolves every placement into world space.
//
// Maps and rooms are visited in the order they were first placed, so when two
// placements share a global id the later one wins.
//
// Precondition: every map in placements must appear in prefixes and geometry.
// Postcondition: Returns an Atlas with one entry per distinct global id, or a
// *LookupError naming the first placed map without a prefix or geometry entry.
func (u Unifier) Unify(prefixes PrefixTable, geometry GeometryTable, placements PlacementTable) (*Atlas, error) {
	a := &Atlas{rooms: make(map[string]GlobalRoom, placements.RoomCount())}

	for _, mapName := range placements.Maps() {
		prefix, ok := prefixes[mapName]
		if !ok {
			return nil, &LookupError{Kind: KindPrefix, Key: mapName}
		}
		geo, ok := geometry[mapName]
		if !ok {
			return nil, &LookupError{Kind: KindGeometry, Key: mapName}
		}

		for _, room := range placements.Rooms(mapName) {
			px, _ := placements.Pixel(mapName, room)
			gr := GlobalRoom{
				ID:    GlobalID(prefix, room),
				Map:   mapName,
				Room:  room,
				Coord: geo.Apply(px),
			}
			if prev, exists := a.rooms[gr.ID]; exists && u.OnCollision != nil {
				u.OnCollision(Collision{ID: gr.ID, Replaced: prev, Kept: gr})
			}
			a.rooms[gr.ID] = gr
		}
	}

	return a, nil
}

// Lookup returns the world coordinate of a global room id.
//
// Postcondition: Returns the coordinate, or a *LookupError of kind KindRoom.
func (a *Atlas) Lookup(id string) (Coord, error) {
	gr, ok := a.rooms[id]
	if !ok {
		return Coord{}, &LookupError{Kind: KindRoom, Key: id}
	}
	return gr.Coord, nil
}

// Room returns the resolved room for a global id.
func (a *Atlas) Room(id string) (GlobalRoom, bool) {
	gr, ok := a.rooms[id]
	return gr, ok
}

// Len returns the number of rooms in the atlas.
func (a *Atlas) Len() int {
	return len(a.rooms)
}

// IDs returns every global room id, sorted.
func (a *Atlas) IDs() []string {
	return sortedKeys(a.rooms)
}

// Coords returns a copy of the id-to-coordinate mapping.
func (a *Atlas) Coords() map[string]Coord {
	out := make(map[string]Coord, len(a.rooms))
	for id, gr := range a.rooms {
		out[id] = gr.Coord
	}
	return out
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
