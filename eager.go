package riffchunk

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/go-audio/riff"
)

// ReadEager reads the chunk starting at offset and everything it contains.
// It returns the tree and the number of bytes consumed, pad byte included.
// The source is left positioned right after the chunk.
func ReadEager(r io.ReadSeeker, offset int64, opts ...ReadOption) (*Chunk, int64, error) {
	if _, err := r.Seek(offset, io.SeekStart); err != nil {
		return nil, 0, readError("seek", offset, ChunkID{}, err)
	}

	d := &eagerDecoder{
		r:   &offsetReader{r: r, off: offset},
		cfg: newReadConfig(opts),
	}

	h, err := readHeader(d.r, offset)
	if err != nil {
		return nil, 0, err
	}

	ch, err := d.readBody(h, offset, 0)
	if err != nil {
		return nil, d.r.off - offset, err
	}

	return ch, d.r.off - offset, nil
}

// ParseBytes reads the chunk at the start of b.
func ParseBytes(b []byte, opts ...ReadOption) (*Chunk, error) {
	ch, _, err := ReadEager(bytes.NewReader(b), 0, opts...)
	return ch, err
}

type eagerDecoder struct {
	r   *offsetReader
	cfg readConfig
}

// readBody reads the payload and pad of a chunk whose header was read at start.
func (d *eagerDecoder) readBody(h Header, start int64, depth int) (*Chunk, error) {
	ch := &Chunk{ID: h.ID}

	if h.ID.IsContainer() {
		if err := d.readChildren(ch, h, start, depth); err != nil {
			return nil, err
		}
	} else {
		data, err := io.ReadAll(io.LimitReader(d.r, int64(h.Size)))
		if err != nil {
			return nil, readError("read payload", d.r.off, h.ID, err)
		}

		if int64(len(data)) < int64(h.Size) {
			return nil, &ChunkError{
				Kind:   ErrUnexpectedEOF,
				Op:     "read payload",
				Offset: d.r.off,
				ID:     h.ID,
				Detail: fmt.Sprintf("declared %d bytes, %d available", h.Size, len(data)),
			}
		}

		ch.Data = data
	}

	if padding(int64(h.Size)) == 0 {
		return ch, nil
	}

	return ch, d.readPad(h, depth == 0)
}

func (d *eagerDecoder) readChildren(ch *Chunk, h Header, start int64, depth int) error {
	if h.Size < ListTypeSize {
		return malformed("read container", start, h.ID, "declared size %d cannot hold a list type", h.Size)
	}

	if depth >= d.cfg.maxDepth {
		return malformed("read container", start, h.ID, "nesting deeper than %d", d.cfg.maxDepth)
	}

	listType, err := readID(d.r, d.r.off, h.ID)
	if err != nil {
		return err
	}

	ch.Type = listType

	d.cfg.log.Debug().
		Stringer("id", h.ID).
		Stringer("type", listType).
		Int64("offset", start).
		Uint32("size", h.Size).
		Int("depth", depth).
		Msg("reading container")

	remaining := int64(h.Size) - ListTypeSize
	for remaining > 0 {
		childStart := d.r.off

		if remaining < HeaderSize {
			return malformed("read container", childStart, h.ID,
				"%d trailing bytes cannot hold a child header", remaining)
		}

		childHdr, err := readHeader(d.r, childStart)
		if err != nil {
			return err
		}

		if childHdr.TotalSize() > remaining {
			return malformed("read container", childStart, h.ID,
				"child %s needs %d bytes, %d left in parent", childHdr.ID, childHdr.TotalSize(), remaining)
		}

		child, err := d.readBody(childHdr, childStart, depth+1)
		if err != nil {
			return err
		}

		ch.Children = append(ch.Children, child)
		remaining -= childHdr.TotalSize()
	}

	return nil
}

func (d *eagerDecoder) readPad(h Header, outermost bool) error {
	var pad [1]byte

	_, err := io.ReadFull(d.r, pad[:])
	if err == nil {
		return nil
	}

	if errors.Is(err, io.EOF) && outermost && !d.cfg.strictPadding {
		d.cfg.log.Debug().
			Stringer("id", h.ID).
			Int64("offset", d.r.off).
			Msg("missing trailing pad byte tolerated")

		return nil
	}

	return readError("read pad byte", d.r.off, h.ID, err)
}

// IsContainer reports whether the chunk holds children.
func (c *Chunk) IsContainer() bool {
	return c.ID.IsContainer()
}

// Size returns the declared payload size of the chunk, computed from its contents.
func (c *Chunk) Size() uint32 {
	if !c.IsContainer() {
		return uint32(len(c.Data))
	}

	size := int64(ListTypeSize)
	for _, child := range c.Children {
		size += child.TotalSize()
	}

	return uint32(size)
}

// TotalSize returns the number of bytes the chunk occupies in a stream.
func (c *Chunk) TotalSize() int64 {
	return Header{ID: c.ID, Size: c.Size()}.TotalSize()
}

// Header returns the header the chunk is encoded with.
func (c *Chunk) Header() Header {
	return Header{ID: c.ID, Size: c.Size()}
}

// ListType returns the list type of a container.
func (c *Chunk) ListType() (ChunkID, bool) {
	return c.Type, c.IsContainer()
}

// Find returns the first chunk with the given id in depth-first order,
// including c itself, or nil.
func (c *Chunk) Find(id ChunkID) *Chunk {
	if c == nil {
		return nil
	}

	if c.ID == id {
		return c
	}

	for _, child := range c.Children {
		if found := child.Find(id); found != nil {
			return found
		}
	}

	return nil
}

// Equal reports whether both trees have the same ids, list types, child
// order and leaf bytes.
func (c *Chunk) Equal(o *Chunk) bool {
	if c == nil || o == nil {
		return c == o
	}

	if c.ID != o.ID {
		return false
	}

	if !c.IsContainer() {
		return bytes.Equal(c.Data, o.Data)
	}

	if c.Type != o.Type || len(c.Children) != len(o.Children) {
		return false
	}

	for i := range c.Children {
		if !c.Children[i].Equal(o.Children[i]) {
			return false
		}
	}

	return true
}

// Contents converts the tree into a construction tree that Write accepts.
func (c *Chunk) Contents() Contents {
	if !c.IsContainer() {
		return Data(c.ID, c.Data)
	}

	children := make([]Contents, len(c.Children))
	for i, child := range c.Children {
		children[i] = child.Contents()
	}

	return List(c.ID, c.Type, children...)
}

// AudioChunk exposes the payload as a go-audio riff chunk, so go-audio
// decoders can consume it. For containers the payload starts with the list type.
func (c *Chunk) AudioChunk() *riff.Chunk {
	payload := c.Data
	if c.IsContainer() {
		children := c.childBytes()
		payload = make([]byte, 0, ListTypeSize+len(children))
		payload = append(payload, c.Type[:]...)
		payload = append(payload, children...)
	}

	return &riff.Chunk{
		ID:   [4]byte(c.ID),
		Size: len(payload),
		R:    bytes.NewReader(payload),
	}
}

// childBytes re-encodes the children of a container.
func (c *Chunk) childBytes() []byte {
	var buf bytes.Buffer

	for _, child := range c.Children {
		// writes to a bytes.Buffer only fail on sizes a read tree cannot have
		_, _ = Write(&buf, child.Contents())
	}

	return buf.Bytes()
}

// offsetReader tracks the stream offset of the next byte read.
type offsetReader struct {
	r   io.Reader
	off int64
}

func (o *offsetReader) Read(p []byte) (int, error) {
	n, err := o.r.Read(p)
	o.off += int64(n)

	return n, err
}
