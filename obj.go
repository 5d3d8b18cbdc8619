package mlt

import (
	"fmt"
	"io"
)

// WriteObj writes the mesh as Wavefront OBJ text. A mesh without a
// "pos" channel produces only the object header and no error; a
// position channel that is not three float32 components fails with
// ErrInvalidMeshFormat.
func (m *Mesh) WriteObj(wr io.Writer) error {
	return m.writeObj(wr, 1, 1, 1)
}

// writeObj emits one object with the given 1-based starting row for
// each of the v, vt and vn index spaces. The spaces are tracked
// separately so every face slot references its own channel's row.
func (m *Mesh) writeObj(wr io.Writer, vbase, vtbase, vnbase int) error {
	if _, err := fmt.Fprintf(wr, "o %s\n", m.Name); err != nil {
		return err
	}
	pi := m.FindAttribute("pos")
	if pi == -1 {
		return nil
	}
	pos := m.Attributes[pi]
	if pos.VectorElems != 3 || pos.ScalarSize != 4 || !pos.IsFloat {
		return ErrInvalidMeshFormat
	}

	for i := range pos.Data {
		v := &pos.Data[i]
		fmt.Fprintf(wr, "v %f %f %f\n", v[0], v[1], v[2])
	}

	ti := m.FindAttribute("uv")
	if ti != -1 {
		uv := m.Attributes[ti]
		for i := range uv.Data {
			fmt.Fprintf(wr, "vt %f %f\n", uv.Data[i][0], uv.Data[i][1])
		}
	}
	ni := m.FindAttribute("normal")
	if ni != -1 {
		vn := m.Attributes[ni]
		for i := range vn.Data {
			fmt.Fprintf(wr, "vn %f %f %f\n", vn.Data[i][0], vn.Data[i][1], vn.Data[i][2])
		}
	}

	for i := 0; i+2 < len(m.Indices); i += 3 {
		a, b, c := int(m.Indices[i]), int(m.Indices[i+1]), int(m.Indices[i+2])
		switch {
		case ti != -1 && ni != -1:
			fmt.Fprintf(wr, "f %d/%d/%d %d/%d/%d %d/%d/%d\n",
				a+vbase, a+vtbase, a+vnbase,
				b+vbase, b+vtbase, b+vnbase,
				c+vbase, c+vtbase, c+vnbase)
		case ti != -1:
			fmt.Fprintf(wr, "f %d/%d %d/%d %d/%d\n",
				a+vbase, a+vtbase, b+vbase, b+vtbase, c+vbase, c+vtbase)
		case ni != -1:
			fmt.Fprintf(wr, "f %d//%d %d//%d %d//%d\n",
				a+vbase, a+vnbase, b+vbase, b+vnbase, c+vbase, c+vnbase)
		default:
			fmt.Fprintf(wr, "f %d %d %d\n", a+vbase, b+vbase, c+vbase)
		}
	}
	return nil
}

// WriteObj writes every member into one OBJ stream with running offsets
// per index space, the way a viewer expects a multi-object file.
func (mm *MultiMesh) WriteObj(wr io.Writer) error {
	vbase, vtbase, vnbase := 1, 1, 1
	for _, m := range mm.Meshes {
		if err := m.writeObj(wr, vbase, vtbase, vnbase); err != nil {
			return err
		}
		vbase += m.VertexCount()
		if ti := m.FindAttribute("uv"); ti != -1 {
			vtbase += m.Attributes[ti].Count()
		}
		if ni := m.FindAttribute("normal"); ni != -1 {
			vnbase += m.Attributes[ni].Count()
		}
	}
	return nil
}
