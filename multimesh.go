package mlt

import (
	"os"
	"path/filepath"
)

// MultiMesh is an ordered collection of meshes; insertion order defines
// export order.
type MultiMesh struct {
	Meshes []*Mesh
}

func NewMultiMesh() *MultiMesh { return &MultiMesh{} }

func (mm *MultiMesh) Append(m *Mesh) {
	mm.Meshes = append(mm.Meshes, m)
}

func (mm *MultiMesh) Count() int { return len(mm.Meshes) }

// WriteBinary emits an MLT chunk containing every member MSH chunk.
func (mm *MultiMesh) WriteBinary(w *ChunkWriter) {
	mlt := w.Open(TagMultiMesh)
	for _, m := range mm.Meshes {
		m.WriteBinary(w)
	}
	mlt.Close()
}

// Marshal renders the MLT chunk with a counting pass followed by one
// pre-sized write pass.
func (mm *MultiMesh) Marshal() []byte {
	return marshal(mm.WriteBinary)
}

// WriteFile writes the marshalled collection to path, creating parent
// directories as needed.
func (mm *MultiMesh) WriteFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
		return err
	}
	return os.WriteFile(path, mm.Marshal(), 0o644)
}
