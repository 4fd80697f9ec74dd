package world

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// MalformedPolicy decides what happens to a line with the wrong field count.
type MalformedPolicy string

// Malformed line policies.
const (
	// MalformedSkip drops the line without reporting it.
	MalformedSkip MalformedPolicy = "skip"
	// MalformedWarn drops the line and reports it to Loader.OnIssue.
	MalformedWarn MalformedPolicy = "warn"
	// MalformedError fails the load with a *LineError.
	MalformedError MalformedPolicy = "error"
)

// ParseMalformedPolicy converts a configuration string to a MalformedPolicy.
//
// Postcondition: Returns a known policy or a non-nil error.
func ParseMalformedPolicy(s string) (MalformedPolicy, error) {
	switch p := MalformedPolicy(s); p {
	case MalformedSkip, MalformedWarn, MalformedError:
		return p, nil
	case "":
		return MalformedSkip, nil
	default:
		return "", fmt.Errorf("unknown malformed line policy %q", s)
	}
}

// LineIssue describes a dropped malformed line.
type LineIssue struct {
	Path   string
	Line   int
	Text   string
	Reason string
}

// Loader reads the four line-oriented input formats. The zero value skips
// malformed lines silently.
//
// Every format trims each line and ignores blank lines and lines starting
// with '#'. Numeric fields that fail to parse always fail the load.
type Loader struct {
	// Policy is applied to lines with the wrong field count.
	Policy MalformedPolicy
	// OnIssue receives dropped lines under MalformedWarn. May be nil.
	OnIssue func(LineIssue)
}

// LoadPrefixes reads a prefix file with the zero Loader.
func LoadPrefixes(path string) (PrefixTable, error) { return Loader{}.LoadPrefixes(path) }

// LoadGeometry reads a geometry file with the zero Loader.
func LoadGeometry(path string) (GeometryTable, error) { return Loader{}.LoadGeometry(path) }

// LoadPlacements reads a room placement file with the zero Loader.
func LoadPlacements(path string) (PlacementTable, error) { return Loader{}.LoadPlacements(path) }

// LoadTreasures reads a treasure file with the zero Loader.
func LoadTreasures(path string) (TreasureIndex, error) { return Loader{}.LoadTreasures(path) }

// LoadPrefixes reads `map: prefix` lines from path.
//
// Postcondition: Returns the table or a non-nil error; later duplicates overwrite earlier ones.
func (l Loader) LoadPrefixes(path string) (PrefixTable, error) {
	var out PrefixTable
	err := withFile(path, func(r io.Reader) error {
		var err error
		out, err = l.ParsePrefixes(r, path)
		return err
	})
	return out, err
}

// ParsePrefixes reads `map: prefix` lines from r. name labels diagnostics.
func (l Loader) ParsePrefixes(r io.Reader, name string) (PrefixTable, error) {
	out := make(PrefixTable)
	err := l.scan(r, name, func(n int, line string) error {
		parts := strings.Split(line, ":")
		if len(parts) != 2 {
			return l.malformed(name, n, line, fmt.Sprintf("want 2 ':'-separated fields, got %d", len(parts)))
		}
		out[strings.TrimSpace(parts[0])] = strings.TrimSpace(parts[1])
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// LoadGeometry reads `map,x0,y0,z,x_scale,y_scale` lines from path.
//
// Postcondition: Returns the table or a non-nil error; later duplicates overwrite earlier ones.
func (l Loader) LoadGeometry(path string) (GeometryTable, error) {
	var out GeometryTable
	err := withFile(path, func(r io.Reader) error {
		var err error
		out, err = l.ParseGeometry(r, path)
		return err
	})
	return out, err
}

// ParseGeometry reads `map,x0,y0,z,x_scale,y_scale` lines from r.
func (l Loader) ParseGeometry(r io.Reader, name string) (GeometryTable, error) {
	out := make(GeometryTable)
	err := l.scan(r, name, func(n int, line string) error {
		parts := strings.Split(line, ",")
		if len(parts) != 6 {
			return l.malformed(name, n, line, fmt.Sprintf("want 6 ','-separated fields, got %d", len(parts)))
		}
		var vals [5]float64
		for i := range vals {
			v, err := strconv.ParseFloat(strings.TrimSpace(parts[i+1]), 64)
			if err != nil {
				return &LineError{Path: name, Line: n, Text: line, Err: err}
			}
			vals[i] = v
		}
		out[strings.TrimSpace(parts[0])] = Geometry{
			OriginX:   vals[0],
			OriginY:   vals[1],
			Elevation: vals[2],
			ScaleX:    vals[3],
			ScaleY:    vals[4],
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// LoadPlacements reads `map:room:x,y` lines from path.
//
// Postcondition: Returns the table or a non-nil error; a repeated (map, room) pair keeps the last position.
// Maps and rooms keep the order of their first line.
func (l Loader) LoadPlacements(path string) (PlacementTable, error) {
	var out PlacementTable
	err := withFile(path, func(r io.Reader) error {
		var err error
		out, err = l.ParsePlacements(r, path)
		return err
	})
	return out, err
}

// ParsePlacements reads `map:room:x,y` lines from r.
func (l Loader) ParsePlacements(r io.Reader, name string) (PlacementTable, error) {
	var out PlacementTable
	err := l.scan(r, name, func(n int, line string) error {
		parts := strings.Split(line, ":")
		if len(parts) != 3 {
			return l.malformed(name, n, line, fmt.Sprintf("want 3 ':'-separated fields, got %d", len(parts)))
		}
		coords := strings.Split(strings.TrimSpace(parts[2]), ",")
		if len(coords) != 2 {
			return l.malformed(name, n, line, fmt.Sprintf("want 2 ','-separated coordinates, got %d", len(coords)))
		}
		x, err := strconv.Atoi(strings.TrimSpace(coords[0]))
		if err != nil {
			return &LineError{Path: name, Line: n, Text: line, Err: err}
		}
		y, err := strconv.Atoi(strings.TrimSpace(coords[1]))
		if err != nil {
			return &LineError{Path: name, Line: n, Text: line, Err: err}
		}

		out.Set(strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1]), Pixel{X: x, Y: y})
		return nil
	})
	if err != nil {
		return PlacementTable{}, err
	}
	return out, nil
}

// LoadTreasures reads `room:item1,item2,...` lines from path.
//
// Postcondition: Returns the index or a non-nil error; repeated rooms accumulate items.
func (l Loader) LoadTreasures(path string) (TreasureIndex, error) {
	var out TreasureIndex
	err := withFile(path, func(r io.Reader) error {
		var err error
		out, err = l.ParseTreasures(r, path)
		return err
	})
	return out, err
}

// ParseTreasures reads `room:item1,item2,...` lines from r. Empty item tokens
// are dropped; a line with no items adds nothing.
func (l Loader) ParseTreasures(r io.Reader, name string) (TreasureIndex, error) {
	out := make(TreasureIndex)
	err := l.scan(r, name, func(n int, line string) error {
		parts := strings.Split(line, ":")
		if len(parts) != 2 {
			return l.malformed(name, n, line, fmt.Sprintf("want 2 ':'-separated fields, got %d", len(parts)))
		}
		room := strings.TrimSpace(parts[0])
		for _, item := range strings.Split(parts[1], ",") {
			item = strings.TrimSpace(item)
			if item != "" {
				out.Add(room, item)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// scan calls fn for every significant line in r with its 1-based line number.
func (l Loader) scan(r io.Reader, name string, fn func(n int, line string) error) error {
	sc := bufio.NewScanner(r)
	n := 0
	for sc.Scan() {
		n++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if err := fn(n, line); err != nil {
			return err
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("reading %s: %w", name, err)
	}
	return nil
}

// malformed applies the policy to a line with the wrong field count.
func (l Loader) malformed(name string, n int, line, reason string) error {
	switch l.Policy {
	case MalformedError:
		return &LineError{Path: name, Line: n, Text: line, Err: fmt.Errorf("%w: %s", ErrMalformedLine, reason)}
	case MalformedWarn:
		if l.OnIssue != nil {
			l.OnIssue(LineIssue{Path: name, Line: n, Text: line, Reason: reason})
		}
	}
	return nil
}

func withFile(path string, fn func(io.Reader) error) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()
	return fn(f)
}
