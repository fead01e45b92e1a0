package riffchunk

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHeaderEncodeDecode(t *testing.T) {
	tests := []Header{
		{ID: NewChunkID("data"), Size: 0},
		{ID: NewChunkID("fmt "), Size: 16},
		{ID: RiffID, Size: 0xfffffffe},
		{ID: ChunkID{1, 2, 3, 4}, Size: 19},
	}

	for _, h := range tests {
		t.Run(h.ID.String(), func(t *testing.T) {
			b := h.Encode()
			require.Equal(t, AppendHeader(nil, h), b[:])

			got, err := DecodeHeader(b[:])
			require.NoError(t, err)
			require.Equal(t, h, got)
		})
	}
}

func TestDecodeHeaderLittleEndian(t *testing.T) {
	h, err := DecodeHeader([]byte{'R', 'I', 'F', 'F', 0x24, 0x08, 0x00, 0x00, 0xaa})
	require.NoError(t, err)
	require.Equal(t, RiffID, h.ID)
	require.Equal(t, uint32(0x0824), h.Size)
}

func TestDecodeHeaderShortInput(t *testing.T) {
	for n := range HeaderSize {
		_, err := DecodeHeader(make([]byte, n))
		require.ErrorIs(t, err, ErrUnexpectedEOF, "input of %d bytes", n)
	}
}

func TestHeaderSizes(t *testing.T) {
	tests := []struct {
		size   uint32
		padded int64
		total  int64
	}{
		{size: 0, padded: 0, total: 8},
		{size: 1, padded: 2, total: 10},
		{size: 18, padded: 18, total: 26},
		{size: 19, padded: 20, total: 28},
	}

	for _, tt := range tests {
		h := Header{ID: testID, Size: tt.size}
		require.Equal(t, tt.padded, h.PaddedSize(), "size %d", tt.size)
		require.Equal(t, tt.total, h.TotalSize(), "size %d", tt.size)
	}
}
