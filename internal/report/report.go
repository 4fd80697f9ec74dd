// Package report renders search results and diagnostic dumps as text.
package report

import (
	"fmt"
	"io"

	"github.com/gookit/color"
	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/seekearth/internal/game/locate"
)

// Header is the first line of the result table.
const Header = "distance  x_dir  y_dir  z_dir room"

// Style controls table decoration.
type Style struct {
	// Color enables ANSI styling of the header and room column.
	Color bool
}

var (
	headerStyle = color.Style{color.FgCyan, color.OpBold}
	roomStyle   = color.Style{color.FgGreen}
)

func (s Style) paint(st color.Style, text string) string {
	if !s.Color {
		return text
	}
	return st.Sprint(text)
}

// WriteTable writes the header and one fixed-width row per result. Values are
// rounded to whole numbers for display only.
//
// Postcondition: len(results)+1 lines are written, or an error is returned.
func WriteTable(w io.Writer, results []locate.Result, style Style) error {
	if _, err := fmt.Fprintln(w, style.paint(headerStyle, Header)); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for _, r := range results {
		_, err := fmt.Fprintf(w, "%8.0f %6.0f %6.0f %6.0f %s\n",
			r.Distance, r.DX, r.DY, r.DZ, style.paint(roomStyle, r.Room))
		if err != nil {
			return fmt.Errorf("writing row for %s: %w", r.Room, err)
		}
	}
	return nil
}

// WriteDump pretty-prints v as a YAML document keyed by title.
func WriteDump(w io.Writer, title string, v any) error {
	data, err := yaml.Marshal(map[string]any{title: v})
	if err != nil {
		return fmt.Errorf("serialising %s: %w", title, err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("writing %s: %w", title, err)
	}
	return nil
}
