package riffchunk

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestChunkIDReservedIDs(t *testing.T) {
	require.Equal(t, "RIFF", RiffID.String())
	require.Equal(t, "LIST", ListID.String())
	require.True(t, RiffID.IsContainer())
	require.True(t, ListID.IsContainer())
	require.False(t, NewChunkID("list").IsContainer())
	require.False(t, NewChunkID("fmt ").IsContainer())
}

func TestParseChunkID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "four bytes", input: "data"},
		{name: "trailing space", input: "fmt "},
		{name: "too short", input: "abc", wantErr: true},
		{name: "too long", input: "abcde", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := ParseChunkID(tt.input)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidChunkID)
				return
			}

			require.NoError(t, err)
			require.Equal(t, tt.input, string(id[:]))
		})
	}
}

func TestNewChunkIDPanicsOnWrongLength(t *testing.T) {
	require.Panics(t, func() { NewChunkID("toolong") })
	require.NotPanics(t, func() { NewChunkID("JUNK") })
}

func TestChunkIDStringQuotesBinary(t *testing.T) {
	id := ChunkID{0x00, 'a', 0xff, 'b'}
	require.Equal(t, `"\x00a\xffb"`, id.String())
}
