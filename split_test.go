package mlt

import (
	"fmt"
	"testing"

	"github.com/flywave/go3d/vec2"
	"github.com/flywave/go3d/vec3"
	"github.com/flywave/go3d/vec4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// triangleStrip builds a fan-free strip over n vertices with uv rows
// that encode the original vertex number, so gathered rows can be
// traced back after splitting.
func triangleStrip(t *testing.T, n int) *Mesh {
	t.Helper()
	m := NewMesh("strip")
	pos := NewAttribute("pos")
	uv := &Attribute{Name: "uv", VectorElems: 2, ScalarSize: 4, IsFloat: true}
	for i := 0; i < n; i++ {
		pos.PushVec3(vec3.T{float32(i), float32(i % 2), 0})
		uv.PushVec2(vec2.T{float32(i), 0})
	}
	m.AddAttribute(pos)
	m.AddAttribute(uv)
	for i := 0; i+2 < n; i++ {
		m.PushIndex(uint32(i), uint32(i+1), uint32(i+2))
	}
	return m
}

func TestSplitFastPath(t *testing.T) {
	m := unitSquare(t)
	mm, err := Split(m, 100, IndexSize16)
	require.NoError(t, err)
	require.Equal(t, 1, mm.Count())
	assert.Same(t, m, mm.Meshes[0])
}

func TestSplitBudgetTooSmall(t *testing.T) {
	_, err := Split(unitSquare(t), 2, IndexSize16)
	require.ErrorIs(t, err, ErrSplitBudget)
}

func TestSplitSquareBudgetThree(t *testing.T) {
	mm, err := Split(unitSquare(t), 3, IndexSize16)
	require.NoError(t, err)
	require.Equal(t, 2, mm.Count())

	for i, sub := range mm.Meshes {
		assert.Equal(t, fmt.Sprintf("quad.%d", i), sub.Name)
		assert.Equal(t, IndexSize16, sub.IndexSize)
		assert.LessOrEqual(t, sub.VertexCount(), 3)
		assert.Equal(t, 3, len(sub.Indices))
		for _, idx := range sub.Indices {
			assert.Less(t, int(idx), sub.VertexCount())
		}
	}
}

func TestSplitPreservesTriangles(t *testing.T) {
	m := triangleStrip(t, 12)
	mm, err := Split(m, 4, IndexSize16)
	require.NoError(t, err)
	require.Greater(t, mm.Count(), 1)

	// reassemble every corner's attribute rows in chunk order and
	// compare against the original triangle sequence
	var got []vec4.T
	var gotUv []vec4.T
	total := 0
	for _, sub := range mm.Meshes {
		require.Zero(t, len(sub.Indices)%3)
		require.LessOrEqual(t, sub.VertexCount(), 4)
		pos := sub.Attributes[sub.FindAttribute("pos")]
		uv := sub.Attributes[sub.FindAttribute("uv")]
		require.Equal(t, pos.Count(), uv.Count())
		for _, idx := range sub.Indices {
			require.Less(t, int(idx), sub.VertexCount())
			got = append(got, pos.Data[idx])
			gotUv = append(gotUv, uv.Data[idx])
		}
		total += len(sub.Indices)
	}
	require.Equal(t, len(m.Indices), total)

	origPos := m.Attributes[m.FindAttribute("pos")]
	origUv := m.Attributes[m.FindAttribute("uv")]
	for i, idx := range m.Indices {
		assert.Equal(t, origPos.Data[idx], got[i], "corner %d", i)
		assert.Equal(t, origUv.Data[idx], gotUv[i], "corner %d", i)
	}
}

func TestSplitCopiesDescriptors(t *testing.T) {
	m := triangleStrip(t, 8)
	mm, err := Split(m, 4, IndexSize16)
	require.NoError(t, err)

	for _, sub := range mm.Meshes {
		require.Len(t, sub.Attributes, 2)
		uv := sub.Attributes[sub.FindAttribute("uv")]
		assert.Equal(t, 2, uv.VectorElems)
		assert.Equal(t, 4, uv.ScalarSize)
		assert.True(t, uv.IsFloat)
	}
}

func TestSplitThenMarshal16(t *testing.T) {
	m := triangleStrip(t, 300)
	mm, err := Split(m, 64, IndexSize16)
	require.NoError(t, err)

	data := mm.Marshal()
	tag, _, _, next := readChunk(t, data, 0)
	assert.Equal(t, "MLT", tag)
	assert.Equal(t, len(data), next)
}
