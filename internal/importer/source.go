package importer

// Label is a text annotation placed on a map at a pixel position.
type Label struct {
	Text string
	X    int
	Y    int
}

// Source loads the labels drawn on one map.
//
// Precondition: path must name a document in the source's format.
// Postcondition: returns every label in document order, or a non-nil error.
type Source interface {
	Load(path string) ([]Label, error)
}
