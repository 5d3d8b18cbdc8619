package mlt

import (
	"fmt"

	"github.com/flywave/go3d/vec2"
	"github.com/flywave/go3d/vec3"
	"github.com/flywave/go3d/vec4"
)

// Attribute is one named per-vertex data channel. Values are stored as
// homogeneous 4-component floats regardless of the declared arity;
// export emits the first VectorElems components in the declared scalar
// format. Every channel of a mesh holds exactly one value per vertex.
type Attribute struct {
	Name         string
	VectorElems  int
	ScalarSize   int
	IsFloat      bool
	IsUnsigned   bool
	IsNormalized bool
	Data         []vec4.T
}

// NewAttribute returns a 3-element float32 channel, the common case for
// positions and normals.
func NewAttribute(name string) *Attribute {
	return &Attribute{Name: name, VectorElems: 3, ScalarSize: 4, IsFloat: true}
}

func (a *Attribute) Count() int { return len(a.Data) }

// Push appends one full 4-component value.
func (a *Attribute) Push(v vec4.T) { a.Data = append(a.Data, v) }

// PushVec3 appends a 3-component value promoted with w = 1.
func (a *Attribute) PushVec3(v vec3.T) { a.Data = append(a.Data, vec4.FromVec3(&v)) }

// PushVec2 appends a 2-component value promoted with z = 0, w = 1.
func (a *Attribute) PushVec2(v vec2.T) { a.Data = append(a.Data, vec4.T{v[0], v[1], 0, 1}) }

// CopyParams duplicates other's format descriptor without its data.
func (a *Attribute) CopyParams(other *Attribute) {
	a.Name = other.Name
	a.VectorElems = other.VectorElems
	a.ScalarSize = other.ScalarSize
	a.IsFloat = other.IsFloat
	a.IsUnsigned = other.IsUnsigned
	a.IsNormalized = other.IsNormalized
}

// vec3At reads the first three components of vertex i.
func (a *Attribute) vec3At(i int) vec3.T {
	d := &a.Data[i]
	return vec3.T{d[0], d[1], d[2]}
}

// dataTag derives the data chunk tag from the descriptor: a3f for the
// canonical float triple, a<N>i / a<N>u for integer channels, with the
// scalar width appended when it is not 4 bytes (a4u1 for RGBA8).
func (a *Attribute) dataTag() string {
	kind := byte('f')
	if !a.IsFloat {
		kind = 'i'
		if a.IsUnsigned {
			kind = 'u'
		}
	}
	tag := fmt.Sprintf("a%d%c", a.VectorElems, kind)
	if a.ScalarSize != 4 {
		tag = fmt.Sprintf("%s%d", tag, a.ScalarSize)
	}
	return tag
}

// writeBinary emits the channel as an ATR chunk: an atn name chunk
// followed by one data chunk encoded per the descriptor.
func (a *Attribute) writeBinary(w *ChunkWriter) {
	atr := w.Open(TagAttribute)

	atn := w.Open(TagAttrName)
	w.WriteText(a.Name)
	atn.Close()

	data := w.Open(a.dataTag())
	for i := range a.Data {
		for e := 0; e < a.VectorElems; e++ {
			a.writeScalar(w, a.Data[i][e])
		}
	}
	data.Close()

	atr.Close()
}

func (a *Attribute) writeScalar(w *ChunkWriter, v float32) {
	if a.IsFloat {
		w.WriteFloat32(v)
		return
	}
	u := uint32(int64(v))
	switch a.ScalarSize {
	case 1:
		w.cur.Put(byte(u))
	case 2:
		w.WriteUint16(uint16(u))
	default:
		w.WriteUint32(u)
	}
}
