package main

import (
	"encoding/binary"
	"errors"
	"fmt"
	"time"

	"github.com/go-audio/audio"
	"github.com/go-audio/riff"

	"github.com/cwbudde/riffchunk"
)

var (
	cidFact = riffchunk.NewChunkID("fact")
	cidInfo = riffchunk.NewChunkID("INFO")

	errShortFmtChunk  = errors.New("fmt chunk shorter than 16 bytes")
	errShortFactChunk = errors.New("fact chunk shorter than 4 bytes")
)

// describer renders a short summary of a leaf payload.
type describer interface {
	CanHandle(id, parentType riffchunk.ChunkID) bool
	Describe(payload []byte) (string, error)
}

// registry resolves leaves to describers. Describers may share state, such as
// the format decoded from a fmt chunk and used by the data chunk.
type registry struct {
	describers []describer
}

func newDefaultRegistry() *registry {
	fmtDesc := &fmtDescriber{}

	return &registry{
		describers: []describer{
			fmtDesc,
			&dataDescriber{format: fmtDesc},
			&factDescriber{},
			&infoDescriber{},
		},
	}
}

// describe dispatches a leaf to the first matching describer.
func (r *registry) describe(id, parentType riffchunk.ChunkID, payload []byte) (string, error) {
	for _, d := range r.describers {
		if d.CanHandle(id, parentType) {
			desc, err := d.Describe(payload)
			if err != nil {
				return "", fmt.Errorf("failed to describe %s chunk: %w", id, err)
			}

			return desc, nil
		}
	}

	return "", nil
}

// fmtDescriber decodes the WAVE fmt chunk. The decoded format is kept for
// the data chunk that follows it.
type fmtDescriber struct {
	format     *audio.Format
	blockAlign int
}

func (d *fmtDescriber) CanHandle(id, parentType riffchunk.ChunkID) bool {
	return id == riffchunk.ChunkID(riff.FmtID) && parentType == riffchunk.ChunkID(riff.WavFormatID)
}

func (d *fmtDescriber) Describe(payload []byte) (string, error) {
	if len(payload) < 16 {
		return "", fmt.Errorf("%w: %d", errShortFmtChunk, len(payload))
	}

	formatTag := binary.LittleEndian.Uint16(payload[0:2])
	bitsPerSample := binary.LittleEndian.Uint16(payload[14:16])

	d.format = &audio.Format{
		NumChannels: int(binary.LittleEndian.Uint16(payload[2:4])),
		SampleRate:  int(binary.LittleEndian.Uint32(payload[4:8])),
	}
	d.blockAlign = int(binary.LittleEndian.Uint16(payload[12:14]))

	return fmt.Sprintf("format=%s channels=%d rate=%d bits=%d",
		formatName(formatTag), d.format.NumChannels, d.format.SampleRate, bitsPerSample), nil
}

func formatName(tag uint16) string {
	switch tag {
	case 1:
		return "PCM"
	case 3:
		return "IEEE-float"
	case 6:
		return "A-law"
	case 7:
		return "mu-law"
	case 0x31:
		return "GSM-6.10"
	case 0xfffe:
		return "extensible"
	default:
		return fmt.Sprintf("0x%04x", tag)
	}
}

// dataDescriber reports the duration of the data chunk from the preceding fmt chunk.
type dataDescriber struct {
	format *fmtDescriber
}

func (d *dataDescriber) CanHandle(id, parentType riffchunk.ChunkID) bool {
	return id == riffchunk.ChunkID(riff.DataFormatID) && parentType == riffchunk.ChunkID(riff.WavFormatID)
}

func (d *dataDescriber) Describe(payload []byte) (string, error) {
	f := d.format.format
	if f == nil || d.format.blockAlign == 0 || f.SampleRate == 0 {
		return "", nil
	}

	frames := len(payload) / d.format.blockAlign
	dur := time.Duration(frames) * time.Second / time.Duration(f.SampleRate)

	return fmt.Sprintf("frames=%d duration=%s", frames, dur), nil
}

type factDescriber struct{}

func (d *factDescriber) CanHandle(id, _ riffchunk.ChunkID) bool {
	return id == cidFact
}

func (d *factDescriber) Describe(payload []byte) (string, error) {
	if len(payload) < 4 {
		return "", fmt.Errorf("%w: %d", errShortFactChunk, len(payload))
	}

	return fmt.Sprintf("samples=%d", binary.LittleEndian.Uint32(payload)), nil
}

// infoDescriber prints the text of LIST/INFO entries.
// See http://bwfmetaedit.sourceforge.net/listinfo.html
type infoDescriber struct{}

func (d *infoDescriber) CanHandle(_, parentType riffchunk.ChunkID) bool {
	return parentType == cidInfo
}

func (d *infoDescriber) Describe(payload []byte) (string, error) {
	return fmt.Sprintf("text=%q", nullTermStr(payload)), nil
}

func nullTermStr(b []byte) string {
	for i := range b {
		if b[i] == 0 {
			return string(b[:i])
		}
	}

	return string(b)
}
