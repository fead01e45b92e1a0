package riffchunk

import "io"

// Cursor grants exclusive access to the single read/seek position of a byte
// source shared by a lazy traversal. Lazy chunks never store the source;
// every step that touches bytes is handed the cursor and gives it back before
// returning, so a parent iterator can pass it to a child read and reclaim it.
//
// A Cursor is not safe for concurrent use. Public calls never keep it between
// returns, so interleaving iterators and payload reads on one cursor is fine.
// ErrCursorBusy only reports a cursor used again while a step is still running
// on it, such as from a reentrant io.ReadSeeker or from another goroutine.
type Cursor struct {
	rs   io.ReadSeeker
	cfg  readConfig
	held bool
}

// NewCursor wraps rs. Options apply to every lazy read made through it.
func NewCursor(rs io.ReadSeeker, opts ...ReadOption) *Cursor {
	return &Cursor{rs: rs, cfg: newReadConfig(opts)}
}

// acquire takes the cursor and positions the source at off.
// The returned release must be called before the step returns.
func (c *Cursor) acquire(op string, off int64) (*offsetReader, func(), error) {
	if c == nil || c.rs == nil {
		return nil, nil, &ChunkError{Kind: ErrIO, Op: op, Offset: off, Detail: "nil cursor"}
	}

	if c.held {
		return nil, nil, &ChunkError{Kind: ErrCursorBusy, Op: op, Offset: off}
	}

	if _, err := c.rs.Seek(off, io.SeekStart); err != nil {
		return nil, nil, readError(op, off, ChunkID{}, err)
	}

	c.held = true

	return &offsetReader{r: c.rs, off: off}, func() { c.held = false }, nil
}
