package world

import (
	"errors"
	"fmt"
)

// ErrMalformedLine marks a line whose field count does not match its format.
var ErrMalformedLine = errors.New("malformed line")

// LineError reports a failure tied to one line of an input file.
type LineError struct {
	// Path is the file or stream name the line came from.
	Path string
	// Line is the 1-based line number.
	Line int
	// Text is the trimmed line content.
	Text string
	// Err is the underlying cause: ErrMalformedLine or a strconv error.
	Err error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("%s:%d: %v (line %q)", e.Path, e.Line, e.Err, e.Text)
}

func (e *LineError) Unwrap() error { return e.Err }

// LookupKind names the table a failed lookup was made against.
type LookupKind string

// Lookup kinds.
const (
	KindPrefix   LookupKind = "prefix"
	KindGeometry LookupKind = "geometry"
	KindRoom     LookupKind = "room"
)

// LookupError reports a key missing from one of the loaded tables.
type LookupError struct {
	Kind LookupKind
	Key  string
}

func (e *LookupError) Error() string {
	switch e.Kind {
	case KindPrefix, KindGeometry:
		return fmt.Sprintf("map %q has no %s entry", e.Key, e.Kind)
	default:
		return fmt.Sprintf("unknown %s %q", e.Kind, e.Key)
	}
}
