package riffchunk

import (
	"encoding/binary"
	"io"
)

const (
	// HeaderSize is the size of an encoded chunk header: id plus length.
	HeaderSize = 8
	// ListTypeSize is the size of the list type that opens a container payload.
	ListTypeSize = 4
)

// Header is a decoded chunk header.
type Header struct {
	ID ChunkID
	// Size is the payload length in bytes. It never includes the pad byte.
	Size uint32
}

// DecodeHeader decodes the first HeaderSize bytes of b.
func DecodeHeader(b []byte) (Header, error) {
	if len(b) < HeaderSize {
		return Header{}, &ChunkError{
			Kind:   ErrUnexpectedEOF,
			Op:     "decode header",
			Offset: -1,
			Detail: "header needs 8 bytes",
		}
	}

	var h Header

	copy(h.ID[:], b[:4])
	h.Size = binary.LittleEndian.Uint32(b[4:HeaderSize])

	return h, nil
}

// AppendHeader appends the encoded header to dst.
func AppendHeader(dst []byte, h Header) []byte {
	dst = append(dst, h.ID[:]...)
	return binary.LittleEndian.AppendUint32(dst, h.Size)
}

// Encode returns the wire form of h.
func (h Header) Encode() [HeaderSize]byte {
	var b [HeaderSize]byte

	copy(b[:4], h.ID[:])
	binary.LittleEndian.PutUint32(b[4:], h.Size)

	return b
}

// PaddedSize is the payload length including the pad byte of odd payloads.
func (h Header) PaddedSize() int64 {
	return int64(h.Size) + padding(int64(h.Size))
}

// TotalSize is the number of bytes the chunk occupies in a stream.
func (h Header) TotalSize() int64 {
	return HeaderSize + h.PaddedSize()
}

func padding(n int64) int64 {
	return n & 1
}

// readHeader reads a header from r, which is positioned at off.
func readHeader(r io.Reader, off int64) (Header, error) {
	var b [HeaderSize]byte

	if _, err := io.ReadFull(r, b[:]); err != nil {
		return Header{}, readError("read header", off, ChunkID{}, err)
	}

	return DecodeHeader(b[:])
}

// readID reads a four byte id (a container list type) from r, positioned at off.
func readID(r io.Reader, off int64, owner ChunkID) (ChunkID, error) {
	var id ChunkID

	if _, err := io.ReadFull(r, id[:]); err != nil {
		return id, readError("read list type", off, owner, err)
	}

	return id, nil
}
