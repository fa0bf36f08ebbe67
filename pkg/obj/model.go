package obj

// ObjectData is the parsed geometry: a flat stride-3 vertex buffer and an
// edge list in which every polygon of N vertices contributes N index pairs.
type ObjectData struct {
	Vertices []float32
	Faces    []uint32
}

// VertexCount returns the number of complete vertices
func (d ObjectData) VertexCount() int {
	return len(d.Vertices) / 3
}

// EdgeCount returns the number of edges described by the face buffer
func (d ObjectData) EdgeCount() int {
	return len(d.Faces) / 2
}

// Empty reports whether no vertices were loaded
func (d ObjectData) Empty() bool {
	return len(d.Vertices) == 0
}

// Clone returns a deep copy
func (d ObjectData) Clone() ObjectData {
	return ObjectData{
		Vertices: append([]float32(nil), d.Vertices...),
		Faces:    append([]uint32(nil), d.Faces...),
	}
}

// Stats counts what a parse encountered
type Stats struct {
	Lines       int
	Blank       int
	Comments    int
	VertexLines int
	FaceLines   int
	Ignored     int
}
