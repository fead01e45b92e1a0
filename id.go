package riffchunk

import (
	"fmt"
	"strconv"

	"github.com/go-audio/riff"
)

// ChunkID is the four byte tag identifying a chunk. Any byte values are allowed.
type ChunkID [4]byte

var (
	// RiffID is the id of the top-level container chunk.
	RiffID = ChunkID(riff.RiffID)
	// ListID is the id of a nested list container chunk.
	ListID = ChunkID{'L', 'I', 'S', 'T'}
)

// NewChunkID builds an id from a four character string.
// It panics if s is not exactly four bytes long; use ParseChunkID for input
// that was not written by the caller.
func NewChunkID(s string) ChunkID {
	id, err := ParseChunkID(s)
	if err != nil {
		panic(err)
	}

	return id
}

// ParseChunkID builds an id from a four byte string.
func ParseChunkID(s string) (ChunkID, error) {
	var id ChunkID

	if len(s) != len(id) {
		return id, fmt.Errorf("%w: %q is %d bytes long", ErrInvalidChunkID, s, len(s))
	}

	copy(id[:], s)

	return id, nil
}

// IsContainer reports whether chunks with this id hold a list type and children.
func (id ChunkID) IsContainer() bool {
	return id == RiffID || id == ListID
}

// String returns the id as text. Ids with non printable bytes are quoted.
func (id ChunkID) String() string {
	for _, b := range id {
		if b < 0x20 || b > 0x7e {
			return strconv.Quote(string(id[:]))
		}
	}

	return string(id[:])
}
