package mlt

import (
	"bytes"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

const (
	// GLTFVersion is the emitted glTF spec version.
	GLTFVersion = "2.0"

	// PaddingChar pads GLB output to the requested unit.
	PaddingChar = 0x20
)

// CreateDoc returns an empty single-scene glTF document.
func CreateDoc() *gltf.Document {
	doc := &gltf.Document{
		Asset:   gltf.Asset{Version: GLTFVersion},
		Scenes:  []*gltf.Scene{{}},
		Buffers: []*gltf.Buffer{{}},
	}
	doc.Scene = gltf.Index(0)
	return doc
}

// MltToGltf converts every member mesh into one glTF document.
func MltToGltf(mm *MultiMesh) (*gltf.Document, error) {
	doc := CreateDoc()
	for _, m := range mm.Meshes {
		if err := BuildGltf(doc, m); err != nil {
			return nil, err
		}
	}
	return doc, nil
}

// BuildGltf appends mesh as one triangle primitive under a new node in
// scene 0. The index accessor keeps the mesh's declared width, so
// sub-meshes produced by Split stay within 16-bit index buffers.
func BuildGltf(doc *gltf.Document, m *Mesh) error {
	pi := m.FindAttribute("pos")
	if pi == -1 {
		return ErrNoPosition
	}
	pos := m.Attributes[pi]

	positions := make([][3]float32, pos.Count())
	for i := range pos.Data {
		positions[i] = [3]float32{pos.Data[i][0], pos.Data[i][1], pos.Data[i][2]}
	}

	attrs := map[string]uint32{
		gltf.POSITION: modeler.WritePosition(doc, positions),
	}

	if ni := m.FindAttribute("normal"); ni != -1 {
		src := m.Attributes[ni]
		normals := make([][3]float32, src.Count())
		for i := range src.Data {
			normals[i] = [3]float32{src.Data[i][0], src.Data[i][1], src.Data[i][2]}
		}
		attrs[gltf.NORMAL] = modeler.WriteNormal(doc, normals)
	}

	if ti := m.FindAttribute("uv"); ti != -1 {
		src := m.Attributes[ti]
		coords := make([][2]float32, src.Count())
		for i := range src.Data {
			coords[i] = [2]float32{src.Data[i][0], src.Data[i][1]}
		}
		attrs[gltf.TEXCOORD_0] = modeler.WriteTextureCoord(doc, coords)
	}

	var indices uint32
	if m.IndexSize == IndexSize16 {
		ix := make([]uint16, len(m.Indices))
		for i, v := range m.Indices {
			ix[i] = uint16(v)
		}
		indices = modeler.WriteIndices(doc, ix)
	} else {
		ix := make([]uint32, len(m.Indices))
		copy(ix, m.Indices)
		indices = modeler.WriteIndices(doc, ix)
	}

	doc.Meshes = append(doc.Meshes, &gltf.Mesh{
		Name: m.Name,
		Primitives: []*gltf.Primitive{{
			Indices:    gltf.Index(indices),
			Attributes: attrs,
		}},
	})
	meshIdx := uint32(len(doc.Meshes) - 1)
	doc.Nodes = append(doc.Nodes, &gltf.Node{Name: m.Name, Mesh: gltf.Index(meshIdx)})
	doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, uint32(len(doc.Nodes)-1))
	return nil
}

// GetGltfBinary encodes doc as GLB bytes padded to paddingUnit.
func GetGltfBinary(doc *gltf.Document, paddingUnit int) ([]byte, error) {
	var buf bytes.Buffer

	encoder := gltf.NewEncoder(&buf)
	encoder.AsBinary = true
	if err := encoder.Encode(doc); err != nil {
		return nil, err
	}

	if padding := calcPadding(buf.Len(), paddingUnit); padding > 0 {
		buf.Write(bytes.Repeat([]byte{PaddingChar}, padding))
	}
	return buf.Bytes(), nil
}

func calcPadding(offset, unit int) int {
	padding := offset % unit
	if padding != 0 {
		padding = unit - padding
	}
	return padding
}
