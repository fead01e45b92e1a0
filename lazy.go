package riffchunk

import (
	"errors"
	"fmt"
	"io"
	"iter"
)

// LazyChunk is a chunk of which only the header (and list type, for
// containers) has been read. Payloads and children are read on demand
// through a Cursor and are never cached: every call reads the source again.
//
// A LazyChunk stays valid as long as the source behind the cursor is unchanged.
type LazyChunk struct {
	hdr      Header
	listType ChunkID
	offset   int64
	depth    int
}

// OpenLazy reads the header of the chunk starting at offset.
func OpenLazy(c *Cursor, offset int64) (*LazyChunk, error) {
	return openLazy(c, offset, 0, -1)
}

// openLazy reads a chunk header at off. A non negative limit is the number of
// bytes left in the parent; a chunk that does not fit is malformed.
func openLazy(c *Cursor, off int64, depth int, limit int64) (*LazyChunk, error) {
	r, release, err := c.acquire("open chunk", off)
	if err != nil {
		return nil, err
	}
	defer release()

	h, err := readHeader(r, off)
	if err != nil {
		return nil, err
	}

	if limit >= 0 && h.TotalSize() > limit {
		return nil, malformed("read container", off, h.ID,
			"child %s needs %d bytes, %d left in parent", h.ID, h.TotalSize(), limit)
	}

	lc := &LazyChunk{hdr: h, offset: off, depth: depth}
	if !h.ID.IsContainer() {
		return lc, nil
	}

	if h.Size < ListTypeSize {
		return nil, malformed("read container", off, h.ID, "declared size %d cannot hold a list type", h.Size)
	}

	if depth >= c.cfg.maxDepth {
		return nil, malformed("read container", off, h.ID, "nesting deeper than %d", c.cfg.maxDepth)
	}

	lc.listType, err = readID(r, r.off, h.ID)
	if err != nil {
		return nil, err
	}

	return lc, nil
}

// ID returns the chunk id.
func (lc *LazyChunk) ID() ChunkID { return lc.hdr.ID }

// Size returns the declared payload size.
func (lc *LazyChunk) Size() uint32 { return lc.hdr.Size }

// Header returns the decoded header.
func (lc *LazyChunk) Header() Header { return lc.hdr }

// Offset returns the stream offset of the chunk header.
func (lc *LazyChunk) Offset() int64 { return lc.offset }

// TotalSize returns the number of bytes the chunk occupies in the stream.
func (lc *LazyChunk) TotalSize() int64 { return lc.hdr.TotalSize() }

// IsContainer reports whether the chunk holds children.
func (lc *LazyChunk) IsContainer() bool { return lc.hdr.ID.IsContainer() }

// ListType returns the list type of a container.
func (lc *LazyChunk) ListType() (ChunkID, bool) {
	return lc.listType, lc.IsContainer()
}

// PayloadOffset returns the stream offset of the first payload byte. For
// containers this is the first byte after the list type.
func (lc *LazyChunk) PayloadOffset() int64 {
	if lc.IsContainer() {
		return lc.offset + HeaderSize + ListTypeSize
	}

	return lc.offset + HeaderSize
}

func (lc *LazyChunk) payloadLen() int64 {
	if lc.IsContainer() {
		return int64(lc.hdr.Size) - ListTypeSize
	}

	return int64(lc.hdr.Size)
}

// ReadPayload reads the payload from the source. For a container it returns
// the encoded children that follow the list type.
func (lc *LazyChunk) ReadPayload(c *Cursor) ([]byte, error) {
	start := lc.PayloadOffset()

	r, release, err := c.acquire("read payload", start)
	if err != nil {
		return nil, err
	}
	defer release()

	n := lc.payloadLen()

	data, err := io.ReadAll(io.LimitReader(r, n))
	if err != nil {
		return nil, readError("read payload", r.off, lc.hdr.ID, err)
	}

	if int64(len(data)) < n {
		return nil, &ChunkError{
			Kind:   ErrUnexpectedEOF,
			Op:     "read payload",
			Offset: r.off,
			ID:     lc.hdr.ID,
			Detail: fmt.Sprintf("declared %d bytes, %d available", n, len(data)),
		}
	}

	if padding(int64(lc.hdr.Size)) == 1 {
		if err := lc.checkPad(c, r); err != nil {
			return nil, err
		}
	}

	return data, nil
}

// checkPad reads the pad byte after an odd payload. Only the outermost chunk
// may lack it, unless padding is strict.
func (lc *LazyChunk) checkPad(c *Cursor, r *offsetReader) error {
	var pad [1]byte

	_, err := io.ReadFull(r, pad[:])
	if err == nil {
		return nil
	}

	if errors.Is(err, io.EOF) && lc.depth == 0 && !c.cfg.strictPadding {
		c.cfg.log.Debug().
			Stringer("id", lc.hdr.ID).
			Int64("offset", r.off).
			Msg("missing trailing pad byte tolerated")

		return nil
	}

	return readError("read pad byte", r.off, lc.hdr.ID, err)
}

// Children returns an iterator over the children of a container. Each step
// seeks the source to the next child and reads its header. Calling Children
// again restarts from the first child.
func (lc *LazyChunk) Children(c *Cursor) *ChildIter {
	it := &ChildIter{c: c, parent: lc}

	if !lc.IsContainer() {
		it.err = &ChunkError{Kind: ErrNotContainer, Op: "iterate children", Offset: lc.offset, ID: lc.hdr.ID}
		return it
	}

	it.next = lc.PayloadOffset()
	it.end = lc.offset + HeaderSize + int64(lc.hdr.Size)

	return it
}

// All is the range-over-func form of Children. Iteration stops at the first
// error, which is yielded with a nil chunk.
func (lc *LazyChunk) All(c *Cursor) iter.Seq2[*LazyChunk, error] {
	return func(yield func(*LazyChunk, error) bool) {
		it := lc.Children(c)
		for it.Next() {
			if !yield(it.Chunk(), nil) {
				return
			}
		}

		if err := it.Err(); err != nil {
			yield(nil, err)
		}
	}
}

// ChildIter walks the children of a lazy container in stream order.
// It holds the cursor only inside Next.
type ChildIter struct {
	c      *Cursor
	parent *LazyChunk
	next   int64
	end    int64
	cur    *LazyChunk
	err    error
}

// Next advances to the next child. It returns false when the children are
// exhausted or a read failed; check Err afterwards.
func (it *ChildIter) Next() bool {
	it.cur = nil

	if it.err != nil || it.next >= it.end {
		return false
	}

	remaining := it.end - it.next
	if remaining < HeaderSize {
		it.err = malformed("read container", it.next, it.parent.hdr.ID,
			"%d trailing bytes cannot hold a child header", remaining)

		return false
	}

	child, err := openLazy(it.c, it.next, it.parent.depth+1, remaining)
	if err != nil {
		it.err = err
		return false
	}

	it.next += child.TotalSize()
	it.cur = child

	return true
}

// Chunk returns the child produced by the last call to Next.
func (it *ChildIter) Chunk() *LazyChunk {
	return it.cur
}

// Err returns the error that stopped the iteration, if any.
func (it *ChildIter) Err() error {
	return it.err
}
