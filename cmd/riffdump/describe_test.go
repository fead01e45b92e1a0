package main

import (
	"testing"

	"github.com/go-audio/audio"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/riffchunk"
)

var waveType = riffchunk.NewChunkID("WAVE")

func TestRegistryFmtNeedsWaveParent(t *testing.T) {
	r := newDefaultRegistry()
	payload := []byte{3, 0, 1, 0, 0x80, 0xbb, 0, 0, 0, 0, 0, 0, 4, 0, 32, 0}

	desc, err := r.describe(riffchunk.NewChunkID("fmt "), waveType, payload)
	require.NoError(t, err)
	require.Equal(t, "format=IEEE-float channels=1 rate=48000 bits=32", desc)

	desc, err = r.describe(riffchunk.NewChunkID("fmt "), riffchunk.NewChunkID("AVI "), payload)
	require.NoError(t, err)
	require.Empty(t, desc)
}

func TestRegistryShortChunks(t *testing.T) {
	r := newDefaultRegistry()

	_, err := r.describe(riffchunk.NewChunkID("fmt "), waveType, make([]byte, 10))
	require.ErrorIs(t, err, errShortFmtChunk)

	_, err = r.describe(cidFact, waveType, []byte{1})
	require.ErrorIs(t, err, errShortFactChunk)
}

func TestRegistryDataWithoutFormat(t *testing.T) {
	desc, err := newDefaultRegistry().describe(riffchunk.NewChunkID("data"), waveType, make([]byte, 8))
	require.NoError(t, err)
	require.Empty(t, desc)
}

func TestRegistryUnknownChunk(t *testing.T) {
	desc, err := newDefaultRegistry().describe(riffchunk.NewChunkID("JUNK"), waveType, []byte{1, 2, 3})
	require.NoError(t, err)
	require.Empty(t, desc)
}

func TestNullTermStr(t *testing.T) {
	require.Equal(t, "abc", nullTermStr([]byte("abc\x00def")))
	require.Equal(t, "abc", nullTermStr([]byte("abc")))
	require.Empty(t, nullTermStr(nil))
}

func TestRegistryDataUsesDecodedFormat(t *testing.T) {
	r := newDefaultRegistry()
	payload := []byte{3, 0, 1, 0, 0x80, 0xbb, 0, 0, 0, 0, 0, 0, 4, 0, 32, 0}

	_, err := r.describe(riffchunk.NewChunkID("fmt "), waveType, payload)
	require.NoError(t, err)

	fmtDesc, ok := r.describers[0].(*fmtDescriber)
	require.True(t, ok)
	require.Equal(t, &audio.Format{NumChannels: 1, SampleRate: 48000}, fmtDesc.format)

	desc, err := r.describe(riffchunk.NewChunkID("data"), waveType, make([]byte, 8))
	require.NoError(t, err)
	require.Equal(t, "frames=2 duration=41.666µs", desc)
}
