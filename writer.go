package riffchunk

import (
	"bytes"
	"fmt"
	"io"
	"math"
)

// Write encodes c to w and returns the number of bytes written.
// Sizes are checked before anything is written.
func Write(w io.Writer, c Contents) (int64, error) {
	if err := checkSizes(c); err != nil {
		return 0, err
	}

	cw := &countingWriter{w: w}
	if err := writeContents(cw, c); err != nil {
		return cw.n, err
	}

	return cw.n, nil
}

// Bytes encodes c in memory.
func Bytes(c Contents) ([]byte, error) {
	if err := checkSizes(c); err != nil {
		return nil, err
	}

	var buf bytes.Buffer

	buf.Grow(int(min(c.Size(), math.MaxInt32)))

	if _, err := Write(&buf, c); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func checkSizes(c Contents) error {
	if n := c.payloadSize(); n > math.MaxUint32 {
		return &ChunkError{
			Kind:   ErrChunkTooLarge,
			Op:     "write",
			Offset: -1,
			ID:     c.id,
			Detail: fmt.Sprintf("payload is %d bytes", n),
		}
	}

	for _, child := range c.children {
		if err := checkSizes(child); err != nil {
			return err
		}
	}

	return nil
}

func writeContents(w *countingWriter, c Contents) error {
	n := c.payloadSize()

	hdr := make([]byte, 0, HeaderSize+ListTypeSize)
	hdr = AppendHeader(hdr, Header{ID: c.id, Size: uint32(n)})

	if !c.IsContainer() {
		if err := w.write(hdr, c.id); err != nil {
			return err
		}

		if err := w.write(c.data, c.id); err != nil {
			return err
		}
	} else {
		hdr = append(hdr, c.listType[:]...)
		if err := w.write(hdr, c.id); err != nil {
			return err
		}

		for _, child := range c.children {
			if err := writeContents(w, child); err != nil {
				return err
			}
		}
	}

	// parity of the full payload, not of the last child
	if padding(n) == 1 {
		return w.write([]byte{0}, c.id)
	}

	return nil
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (cw *countingWriter) write(p []byte, id ChunkID) error {
	n, err := cw.w.Write(p)
	cw.n += int64(n)

	if err != nil {
		return &ChunkError{Kind: ErrIO, Op: "write", Offset: cw.n, ID: id, Err: err}
	}

	if n < len(p) {
		return &ChunkError{Kind: ErrIO, Op: "write", Offset: cw.n, ID: id, Err: io.ErrShortWrite}
	}

	return nil
}
