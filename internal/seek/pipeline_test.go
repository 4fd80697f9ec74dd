package seek_test

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/cory-johannsen/seekearth/internal/game/locate"
	"github.com/cory-johannsen/seekearth/internal/game/world"
	"github.com/cory-johannsen/seekearth/internal/seek"
)

func writeFiles(t *testing.T, prefix, xyz, rooms, treasures string) seek.Files {
	t.Helper()
	dir := t.TempDir()
	write := func(name, s string) string {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(s), 0644))
		return path
	}
	return seek.Files{
		Prefix:    write("prefix.txt", prefix),
		XYZ:       write("xyz.txt", xyz),
		Rooms:     write("rooms.txt", rooms),
		Treasures: write("treasures.txt", treasures),
	}
}

func twoMapFiles(t *testing.T) seek.Files {
	return writeFiles(t,
		"a: A\nb: B\n",
		"a,0,0,0,1,1\nb,100,0,0,1,1\n",
		"a:r1:0,0\nb:r2:0,0\n",
		"A-r1:gem\nB-r2:gem\n",
	)
}

func TestPipeline_SingleRoom(t *testing.T) {
	files := writeFiles(t,
		"mine: MN\n",
		"mine,0,0,10,1,1\n",
		"mine:ore_room:5,5\n",
		"MN-ore_room:gold,silver\n",
	)
	p := seek.New(world.Loader{}, world.Unifier{}, seek.Hooks{}, zaptest.NewLogger(t))

	out, err := p.Run(files, seek.Query{Find: "gold", Start: "MN-ore_room", Number: 10})
	require.NoError(t, err)

	assert.Equal(t, world.Coord{X: 5, Y: 5, Z: 10}, out.Start)
	require.Len(t, out.Results, 1)
	assert.Equal(t, locate.Result{Room: "MN-ore_room"}, out.Results[0])
}

func TestPipeline_TwoMaps(t *testing.T) {
	p := seek.New(world.Loader{}, world.Unifier{}, seek.Hooks{}, zaptest.NewLogger(t))

	out, err := p.Run(twoMapFiles(t), seek.Query{Find: "gem", Start: "A-r1", Number: 10})
	require.NoError(t, err)

	require.Len(t, out.Results, 2)
	assert.Equal(t, "A-r1", out.Results[0].Room)
	assert.Equal(t, locate.Result{Distance: 100, DX: 100, Room: "B-r2"}, out.Results[1])
	assert.Equal(t, 2, out.Atlas.Len())
}

func TestPipeline_HooksRunInOrder(t *testing.T) {
	var stages []string
	hooks := seek.Hooks{
		Unified:   func(a *world.Atlas) { stages = append(stages, "unified") },
		Treasures: func(idx world.TreasureIndex) { stages = append(stages, "treasures") },
		Start: func(id string, c world.Coord) {
			stages = append(stages, "start:"+id)
		},
	}
	p := seek.New(world.Loader{}, world.Unifier{}, hooks, zaptest.NewLogger(t))

	_, err := p.Run(twoMapFiles(t), seek.Query{Find: "gem", Start: "B-r2", Number: 1})
	require.NoError(t, err)
	assert.Equal(t, []string{"unified", "treasures", "start:B-r2"}, stages)
}

func TestPipeline_UnknownStart(t *testing.T) {
	p := seek.New(world.Loader{}, world.Unifier{}, seek.Hooks{}, zaptest.NewLogger(t))

	_, err := p.Run(twoMapFiles(t), seek.Query{Find: "gem", Start: "C-nowhere", Number: 10})
	var lookupErr *world.LookupError
	require.ErrorAs(t, err, &lookupErr)
	assert.Equal(t, world.KindRoom, lookupErr.Kind)
	assert.Contains(t, err.Error(), "resolving start room")
}

func TestPipeline_MissingFile(t *testing.T) {
	files := twoMapFiles(t)
	files.Rooms = filepath.Join(t.TempDir(), "absent.txt")
	p := seek.New(world.Loader{}, world.Unifier{}, seek.Hooks{}, zaptest.NewLogger(t))

	_, err := p.Run(files, seek.Query{Find: "gem", Start: "A-r1", Number: 10})
	require.Error(t, err)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
	assert.Contains(t, err.Error(), "loading rooms")
}

func TestPipeline_MalformedErrorPolicy(t *testing.T) {
	files := writeFiles(t,
		"a: A\nthis line is wrong\n",
		"a,0,0,0,1,1\n",
		"a:r1:0,0\n",
		"A-r1:gem\n",
	)
	p := seek.New(world.Loader{Policy: world.MalformedError}, world.Unifier{}, seek.Hooks{}, zaptest.NewLogger(t))

	_, err := p.Run(files, seek.Query{Find: "gem", Start: "A-r1", Number: 10})
	assert.True(t, errors.Is(err, world.ErrMalformedLine))
}

func TestPipeline_TreasureRoomNotPlaced(t *testing.T) {
	files := writeFiles(t,
		"a: A\n",
		"a,0,0,0,1,1\n",
		"a:r1:0,0\n",
		"A-r1:gem\nr1:gem\n",
	)
	p := seek.New(world.Loader{}, world.Unifier{}, seek.Hooks{}, zaptest.NewLogger(t))

	_, err := p.Run(files, seek.Query{Find: "gem", Start: "A-r1", Number: 10})
	var lookupErr *world.LookupError
	require.ErrorAs(t, err, &lookupErr)
	assert.Equal(t, "r1", lookupErr.Key)
}

func TestPipeline_SharedPrefixLaterRoomLineWins(t *testing.T) {
	files := writeFiles(t,
		"zeta: P\nalpha: P\n",
		"zeta,0,0,0,1,1\nalpha,0,0,0,1,1\n",
		"zeta:r:0,0\nalpha:r:100,0\nalpha:s:0,0\n",
		"P-r:gem\n",
	)
	var kept []string
	u := world.Unifier{OnCollision: func(c world.Collision) { kept = append(kept, c.Kept.Map) }}
	p := seek.New(world.Loader{}, u, seek.Hooks{}, zaptest.NewLogger(t))

	out, err := p.Run(files, seek.Query{Find: "gem", Start: "P-s", Number: 10})
	require.NoError(t, err)

	assert.Equal(t, []string{"alpha"}, kept)
	require.Len(t, out.Results, 1)
	assert.Equal(t, locate.Result{Distance: 100, DX: 100, Room: "P-r"}, out.Results[0])
}
