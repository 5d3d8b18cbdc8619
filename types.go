package mlt

import "errors"

const MLTEXT string = ".mlt"

// Chunk tags. Every chunk is tag text (NUL terminated, zero padded to a
// 4-byte boundary from the tag start), a little-endian uint32 payload
// byte count, the payload, and zero padding to a 4-byte boundary from
// the length field start.
const (
	TagMultiMesh = "MLT" // repeated MSH chunks
	TagMesh      = "MSH" // one msh chunk, ATR chunks, one index chunk
	TagMeshName  = "msh"
	TagAttribute = "ATR" // one atn chunk, one data chunk
	TagAttrName  = "atn"
	TagIndex16   = "ix2"
	TagIndex32   = "ix4"
)

// Index export widths in bytes.
const (
	IndexSize16 = 2
	IndexSize32 = 4
)

var (
	ErrNoPosition        = errors.New("mlt: missing required attribute \"pos\"")
	ErrInvalidMeshFormat = errors.New("mlt: invalid mesh format")
	ErrSplitBudget       = errors.New("mlt: split budget must hold at least one triangle")
)
