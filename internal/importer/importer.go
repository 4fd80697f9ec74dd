// Package importer converts map label exports into room placement lines.
package importer

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
)

// ErrNoLabels is returned when no label on the map names a room.
var ErrNoLabels = errors.New("no numbered labels found")

// Rejected is a room label that cannot be written as a placement line.
type Rejected struct {
	Label  Label
	Reason string
}

// Importer turns the labels of one map into placement lines.
type Importer struct {
	source Source
}

// New constructs an Importer backed by the given Source.
//
// Precondition: source must be non-nil.
// Postcondition: returns a non-nil Importer.
func New(source Source) *Importer {
	return &Importer{source: source}
}

// Run loads the labels at path and writes one `map:room:x,y` line per room
// label to w.
//
// Precondition: mapName must not be empty or contain ':'.
// Postcondition: returns the number of lines written and the rejected labels,
// or a non-nil error. ErrNoLabels is returned when nothing qualifies.
func (imp *Importer) Run(path, mapName string, w io.Writer) (int, []Rejected, error) {
	if mapName == "" || strings.ContainsAny(mapName, ":\r\n") {
		return 0, nil, fmt.Errorf("invalid map name %q", mapName)
	}
	labels, err := imp.source.Load(path)
	if err != nil {
		return 0, nil, fmt.Errorf("loading labels: %w", err)
	}

	rooms, rejected := RoomLabels(labels)
	if len(rooms) == 0 {
		return 0, rejected, ErrNoLabels
	}
	for _, l := range rooms {
		if _, err := fmt.Fprintf(w, "%s:%s:%d,%d\n", mapName, l.Text, l.X, l.Y); err != nil {
			return 0, rejected, fmt.Errorf("writing room %q: %w", l.Text, err)
		}
	}
	return len(rooms), rejected, nil
}

// RoomLabels keeps the labels whose text starts with a digit and orders them
// by that leading number. Labels with equal numbers keep their input order.
// Labels that would corrupt a placement line are returned as rejected.
func RoomLabels(labels []Label) ([]Label, []Rejected) {
	var rooms []Label
	var rejected []Rejected
	for _, l := range labels {
		if leadingDigits(l.Text) == "" {
			continue
		}
		if strings.ContainsAny(l.Text, ":\r\n") {
			rejected = append(rejected, Rejected{Label: l, Reason: "text contains ':' or a line break"})
			continue
		}
		rooms = append(rooms, l)
	}
	sort.SliceStable(rooms, func(i, j int) bool {
		return numberLess(leadingDigits(rooms[i].Text), leadingDigits(rooms[j].Text))
	})
	return rooms, rejected
}

func leadingDigits(s string) string {
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	return s[:i]
}

// numberLess compares two non-empty decimal digit strings numerically
// without converting them, so arbitrarily long numbers order correctly.
func numberLess(a, b string) bool {
	a = strings.TrimLeft(a, "0")
	b = strings.TrimLeft(b, "0")
	if len(a) != len(b) {
		return len(a) < len(b)
	}
	return a < b
}
