package mlt

import (
	"encoding/binary"
	"math"
)

// Cursor is the byte sink a ChunkWriter emits into. Pos reports the
// absolute offset from the start of the stream; PatchUint32 rewrites
// four little-endian bytes at a previously written offset.
type Cursor interface {
	Put(b byte)
	Pos() int
	PatchUint32(off int, v uint32)
}

// CountingCursor discards every byte and only tracks the stream
// position. Running the write sequence against it yields the exact
// output size, so the real pass can go into one pre-sized buffer. Both
// passes must issue the identical sequence of writer calls.
type CountingCursor struct {
	n int
}

func (c *CountingCursor) Put(byte) { c.n++ }
func (c *CountingCursor) Pos() int { return c.n }

func (c *CountingCursor) PatchUint32(int, uint32) {}

func (c *CountingCursor) Size() int { return c.n }

// BufferCursor collects bytes in memory and supports backpatching.
type BufferCursor struct {
	buf []byte
}

// NewBufferCursor returns a cursor with room for size bytes so a
// counted write pass never reallocates.
func NewBufferCursor(size int) *BufferCursor {
	return &BufferCursor{buf: make([]byte, 0, size)}
}

func (c *BufferCursor) Put(b byte) { c.buf = append(c.buf, b) }
func (c *BufferCursor) Pos() int   { return len(c.buf) }

func (c *BufferCursor) PatchUint32(off int, v uint32) {
	binary.LittleEndian.PutUint32(c.buf[off:], v)
}

func (c *BufferCursor) Bytes() []byte { return c.buf }

// ChunkWriter frames tagged, length-prefixed, 4-byte-aligned records
// over a Cursor. It knows nothing about mesh semantics.
type ChunkWriter struct {
	cur Cursor
}

func NewChunkWriter(cur Cursor) *ChunkWriter { return &ChunkWriter{cur: cur} }

func (w *ChunkWriter) WriteUint16(v uint16) {
	w.cur.Put(byte(v))
	w.cur.Put(byte(v >> 8))
}

func (w *ChunkWriter) WriteUint32(v uint32) {
	w.cur.Put(byte(v))
	w.cur.Put(byte(v >> 8))
	w.cur.Put(byte(v >> 16))
	w.cur.Put(byte(v >> 24))
}

func (w *ChunkWriter) WriteFloat32(v float32) {
	w.WriteUint32(math.Float32bits(v))
}

// WriteText emits text, a NUL terminator and zero padding to the next
// 4-byte boundary measured from the start of the text.
func (w *ChunkWriter) WriteText(s string) {
	start := w.cur.Pos()
	for i := 0; i < len(s); i++ {
		w.cur.Put(s[i])
	}
	w.cur.Put(0)
	w.pad4(start)
}

func (w *ChunkWriter) pad4(ref int) {
	for (w.cur.Pos()-ref)&3 != 0 {
		w.cur.Put(0)
	}
}

// Chunk is an open chunk whose length field is still the zero
// placeholder. Chunks close in LIFO order: an inner chunk must be
// closed before its parent.
type Chunk struct {
	w      *ChunkWriter
	lenOff int
}

// Open writes the chunk tag and a zero length placeholder and returns a
// handle that backpatches the real payload length on Close.
func (w *ChunkWriter) Open(tag string) *Chunk {
	w.WriteText(tag)
	c := &Chunk{w: w, lenOff: w.cur.Pos()}
	w.WriteUint32(0)
	return c
}

// Close rewrites the length field with the payload byte count, padding
// excluded, then pads to a 4-byte boundary relative to the length field
// start.
func (c *Chunk) Close() {
	w := c.w
	w.cur.PatchUint32(c.lenOff, uint32(w.cur.Pos()-(c.lenOff+4)))
	w.pad4(c.lenOff)
}

// marshal runs write twice, first against a counting cursor to size the
// output, then against a buffer of exactly that capacity.
func marshal(write func(*ChunkWriter)) []byte {
	var size CountingCursor
	write(NewChunkWriter(&size))
	buf := NewBufferCursor(size.Size())
	write(NewChunkWriter(buf))
	return buf.Bytes()
}
