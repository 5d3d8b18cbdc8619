package mlt

import (
	"testing"

	"github.com/qmuntal/gltf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildGltf(t *testing.T) {
	m := squareWithUv(t)
	require.NoError(t, m.GenerateNormals())

	doc := CreateDoc()
	require.NoError(t, BuildGltf(doc, m))

	require.Len(t, doc.Meshes, 1)
	require.Len(t, doc.Meshes[0].Primitives, 1)
	prim := doc.Meshes[0].Primitives[0]
	assert.Contains(t, prim.Attributes, gltf.POSITION)
	assert.Contains(t, prim.Attributes, gltf.NORMAL)
	assert.Contains(t, prim.Attributes, gltf.TEXCOORD_0)
	require.NotNil(t, prim.Indices)

	require.Len(t, doc.Nodes, 1)
	assert.Equal(t, "quad", doc.Nodes[0].Name)
	assert.Equal(t, []uint32{0}, doc.Scenes[0].Nodes)
}

func TestBuildGltfMissingPos(t *testing.T) {
	doc := CreateDoc()
	require.ErrorIs(t, BuildGltf(doc, NewMesh("empty")), ErrNoPosition)
}

func TestMltToGltfSplit(t *testing.T) {
	mm, err := Split(triangleStrip(t, 12), 4, IndexSize16)
	require.NoError(t, err)
	require.Greater(t, mm.Count(), 1)

	doc, err := MltToGltf(mm)
	require.NoError(t, err)
	assert.Len(t, doc.Meshes, mm.Count())
	assert.Len(t, doc.Scenes[0].Nodes, mm.Count())
}

func TestGetGltfBinary(t *testing.T) {
	m := unitSquare(t)
	require.NoError(t, m.GenerateNormals())

	doc := CreateDoc()
	require.NoError(t, BuildGltf(doc, m))

	bt, err := GetGltfBinary(doc, 8)
	require.NoError(t, err)
	require.NotEmpty(t, bt)
	assert.Equal(t, "glTF", string(bt[:4]))
	assert.Zero(t, len(bt)%8)
}
