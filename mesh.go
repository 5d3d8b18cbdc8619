package mlt

import (
	"os"
	"path/filepath"

	"github.com/flywave/go3d/vec3"
)

// Mesh is a named, ordered set of vertex attribute channels sharing one
// triangle index buffer. Indices group in triples, one per triangle,
// and every index must be below the vertex count of every channel.
// Channel names need not be unique; lookups return the first match.
type Mesh struct {
	Name       string
	IndexSize  int
	Attributes []*Attribute
	Indices    []uint32
}

func NewMesh(name string) *Mesh {
	return &Mesh{Name: name, IndexSize: IndexSize32}
}

// AddAttribute appends attr and returns its insertion index.
func (m *Mesh) AddAttribute(attr *Attribute) int {
	m.Attributes = append(m.Attributes, attr)
	return len(m.Attributes) - 1
}

// FindAttribute returns the index of the first channel named name, or
// -1 when absent.
func (m *Mesh) FindAttribute(name string) int {
	for i, a := range m.Attributes {
		if a.Name == name {
			return i
		}
	}
	return -1
}

func (m *Mesh) PushIndex(idx ...uint32) {
	m.Indices = append(m.Indices, idx...)
}

// VertexCount reports the vertex count of the first channel; all
// channels of a valid mesh agree.
func (m *Mesh) VertexCount() int {
	if len(m.Attributes) == 0 {
		return 0
	}
	return m.Attributes[0].Count()
}

func (m *Mesh) TriangleCount() int { return len(m.Indices) / 3 }

// GenerateNormals adds an area-weighted smooth "normal" channel. It is
// a no-op when the channel already exists and requires a "pos" channel.
// Face normals accumulate unnormalized into each corner, so larger
// triangles weigh more; near-zero sums fall back to (1,0,0) instead of
// normalizing an unstable vector.
func (m *Mesh) GenerateNormals() error {
	if m.FindAttribute("normal") != -1 {
		return nil
	}
	pi := m.FindAttribute("pos")
	if pi == -1 {
		return ErrNoPosition
	}
	pos := m.Attributes[pi]

	normals := make([]vec3.T, pos.Count())
	for i := 0; i+2 < len(m.Indices); i += 3 {
		ai, bi, ci := m.Indices[i], m.Indices[i+1], m.Indices[i+2]
		a := pos.vec3At(int(ai))
		b := pos.vec3At(int(bi))
		c := pos.vec3At(int(ci))

		ab := vec3.Sub(&b, &a)
		ac := vec3.Sub(&c, &a)
		n := vec3.Cross(&ab, &ac)

		normals[ai] = vec3.Add(&normals[ai], &n)
		normals[bi] = vec3.Add(&normals[bi], &n)
		normals[ci] = vec3.Add(&normals[ci], &n)
	}

	normal := NewAttribute("normal")
	for i := range normals {
		if normals[i].LengthSqr() >= 1e-6 {
			normal.PushVec3(normals[i].Normalized())
		} else {
			normal.PushVec3(vec3.T{1, 0, 0})
		}
	}
	m.AddAttribute(normal)
	return nil
}

// WriteBinary emits the mesh as an MSH chunk: an msh name chunk, every
// channel in insertion order, then the index chunk. Indices narrow to
// 16 bits without a range check when IndexSize is 2; Split establishes
// that invariant for oversized meshes.
func (m *Mesh) WriteBinary(w *ChunkWriter) {
	msh := w.Open(TagMesh)

	name := w.Open(TagMeshName)
	w.WriteText(m.Name)
	name.Close()

	for _, a := range m.Attributes {
		a.writeBinary(w)
	}

	if m.IndexSize == IndexSize16 {
		ix := w.Open(TagIndex16)
		for _, idx := range m.Indices {
			w.WriteUint16(uint16(idx))
		}
		ix.Close()
	} else {
		ix := w.Open(TagIndex32)
		for _, idx := range m.Indices {
			w.WriteUint32(idx)
		}
		ix.Close()
	}

	msh.Close()
}

// Marshal renders the MSH chunk with a counting pass followed by one
// pre-sized write pass.
func (m *Mesh) Marshal() []byte {
	return marshal(m.WriteBinary)
}

// WriteFile writes the marshalled mesh to path, creating parent
// directories as needed.
func (m *Mesh) WriteFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
		return err
	}
	return os.WriteFile(path, m.Marshal(), 0o644)
}
