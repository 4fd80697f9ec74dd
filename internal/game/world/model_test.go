package world

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestGeometry_Apply(t *testing.T) {
	g := Geometry{OriginX: 100, OriginY: -50, Elevation: 7, ScaleX: 2, ScaleY: -0.5}
	assert.Equal(t, Coord{X: 110, Y: -55, Z: 7}, g.Apply(Pixel{X: 5, Y: 10}))
	assert.Equal(t, Coord{X: 100, Y: -50, Z: 7}, g.Apply(Pixel{}))
}

func TestTreasureIndex_AddCollapsesDuplicates(t *testing.T) {
	idx := make(TreasureIndex)
	idx.Add("A-r1", "gem")
	idx.Add("A-r1", "gem")
	idx.Add("A-r1", "coin")

	set := idx["A-r1"]
	assert.Equal(t, 2, set.Size())
	assert.Equal(t, []string{"coin", "gem"}, idx.Items("A-r1"))
	assert.Equal(t, map[string][]string{"A-r1": {"coin", "gem"}}, idx.Listing())
}

func TestPlacementTable_RoomCount(t *testing.T) {
	pt := NewPlacementTable(
		Placement{Map: "a", Room: "r1"},
		Placement{Map: "a", Room: "r2"},
		Placement{Map: "b", Room: "r1"},
		Placement{Map: "a", Room: "r1", Pixel: Pixel{X: 3}},
	)
	assert.Equal(t, 3, pt.RoomCount())
	assert.Equal(t, 2, pt.Len())
	assert.Equal(t, 0, PlacementTable{}.RoomCount())
	assert.Empty(t, PlacementTable{}.Maps())
	assert.Nil(t, PlacementTable{}.Rooms("a"))
}

func TestPropertyApplyIsAffine(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		g := Geometry{
			OriginX:   rapid.Float64Range(-1e6, 1e6).Draw(t, "x0"),
			OriginY:   rapid.Float64Range(-1e6, 1e6).Draw(t, "y0"),
			Elevation: rapid.Float64Range(-1e3, 1e3).Draw(t, "z"),
			ScaleX:    rapid.Float64Range(-100, 100).Draw(t, "sx"),
			ScaleY:    rapid.Float64Range(-100, 100).Draw(t, "sy"),
		}
		p := Pixel{
			X: rapid.IntRange(-100000, 100000).Draw(t, "px"),
			Y: rapid.IntRange(-100000, 100000).Draw(t, "py"),
		}

		c := g.Apply(p)
		if c.X != g.OriginX+float64(p.X)*g.ScaleX {
			t.Fatalf("x = %v, want x0 + px*sx", c.X)
		}
		if c.Y != g.OriginY+float64(p.Y)*g.ScaleY {
			t.Fatalf("y = %v, want y0 + py*sy", c.Y)
		}
		if c.Z != g.Elevation {
			t.Fatalf("z = %v, want elevation %v", c.Z, g.Elevation)
		}
	})
}
