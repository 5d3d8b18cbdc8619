package mlt

import "fmt"

// Split partitions mesh into sub-meshes of at most maxVertices distinct
// vertices each, re-indexing triangles into local slots so every
// sub-mesh fits an index buffer indexSize bytes wide. Triangles keep
// their original order and attribute rows are gathered per sub-mesh in
// slot order, so translating each sub-mesh's triangles back through its
// vertex mapping reproduces the input exactly.
//
// A mesh whose indices already stay below maxVertices is returned
// unchanged as the sole member.
func Split(mesh *Mesh, maxVertices uint32, indexSize int) (*MultiMesh, error) {
	if maxVertices < 3 {
		return nil, ErrSplitBudget
	}

	mm := NewMultiMesh()

	within := true
	for _, idx := range mesh.Indices {
		if idx >= maxVertices {
			within = false
			break
		}
	}
	if within {
		mm.Append(mesh)
		return mm, nil
	}

	// forward maps original index to local slot + 1; 0 means unassigned.
	forward := make([]uint32, mesh.VertexCount())
	var reverse []uint32
	var local []uint32
	chunk := 0

	finalize := func() {
		sub := NewMesh(fmt.Sprintf("%s.%d", mesh.Name, chunk))
		sub.IndexSize = indexSize
		for _, src := range mesh.Attributes {
			attr := &Attribute{}
			attr.CopyParams(src)
			for _, orig := range reverse {
				attr.Push(src.Data[orig])
			}
			sub.AddAttribute(attr)
		}
		sub.Indices = local
		mm.Append(sub)

		for _, orig := range reverse {
			forward[orig] = 0
		}
		reverse = reverse[:0]
		local = nil
		chunk++
	}

	for i := 0; i+2 < len(mesh.Indices); i += 3 {
		// Finalize before a triangle the current chunk cannot be
		// guaranteed to hold; a triangle may bring three new vertices.
		if uint32(len(reverse))+3 > maxVertices {
			finalize()
		}
		for k := 0; k < 3; k++ {
			orig := mesh.Indices[i+k]
			if forward[orig] == 0 {
				reverse = append(reverse, orig)
				forward[orig] = uint32(len(reverse))
			}
			local = append(local, forward[orig]-1)
		}
	}
	if len(local) > 0 {
		finalize()
	}
	return mm, nil
}
