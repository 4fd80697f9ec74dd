package importer

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"strings"
)

// sceneFile is the exported scene document: a name and its text drawings.
type sceneFile struct {
	Name     string         `json:"name"`
	Drawings []sceneDrawing `json:"drawings"`
}

type sceneDrawing struct {
	Text *string `json:"text"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
}

// SceneSource reads labels from a scene export JSON file.
type SceneSource struct{}

// NewSource returns a Source for scene export files.
func NewSource() *SceneSource {
	return &SceneSource{}
}

// Load implements Source.
func (s *SceneSource) Load(path string) ([]Label, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scene file %s: %w", path, err)
	}
	return ParseScene(data)
}

// ParseScene decodes a scene export. Drawings without text are dropped;
// positions are rounded to the nearest pixel, halves toward +Inf.
//
// Postcondition: returns the text drawings in document order, or a non-nil error.
func ParseScene(data []byte) ([]Label, error) {
	var f sceneFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing scene JSON: %w", err)
	}
	labels := make([]Label, 0, len(f.Drawings))
	for _, d := range f.Drawings {
		if d.Text == nil {
			continue
		}
		text := strings.TrimSpace(*d.Text)
		if text == "" {
			continue
		}
		labels = append(labels, Label{
			Text: text,
			X:    int(math.Floor(d.X + 0.5)),
			Y:    int(math.Floor(d.Y + 0.5)),
		})
	}
	return labels, nil
}
