package riffchunk

import (
	"encoding/binary"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

var (
	smplID = NewChunkID("smpl")
	testID = NewChunkID("test")
	tst1ID = NewChunkID("tst1")
	tst2ID = NewChunkID("tst2")
)

// rawChunk encodes a leaf by hand, independently of Write.
func rawChunk(id string, payload []byte) []byte {
	out := make([]byte, 0, 8+len(payload)+1)
	out = append(out, id...)
	out = binary.LittleEndian.AppendUint32(out, uint32(len(payload)))
	out = append(out, payload...)

	if len(payload)%2 == 1 {
		out = append(out, 0)
	}

	return out
}

// rawList encodes a container by hand, independently of Write.
func rawList(id, listType string, children ...[]byte) []byte {
	payload := []byte(listType)
	for _, child := range children {
		payload = append(payload, child...)
	}

	return rawChunk(id, payload)
}

// sampleTree is a RIFF holding two lists with three text leaves.
func sampleTree() Contents {
	return List(RiffID, smplID,
		List(ListID, tst1ID,
			Data(testID, []byte("hey this is a test")),
			Data(testID, []byte("hey this is another test")),
		),
		List(ListID, tst2ID,
			Data(testID, []byte("final test")),
		),
	)
}

func sampleBytes() []byte {
	return rawList("RIFF", "smpl",
		rawList("LIST", "tst1",
			rawChunk("test", []byte("hey this is a test")),
			rawChunk("test", []byte("hey this is another test")),
		),
		rawList("LIST", "tst2",
			rawChunk("test", []byte("final test")),
		),
	)
}

type flatChunk struct {
	id   string
	size uint32
	data []byte
}

var errChunkExceedsInput = errors.New("chunk exceeds input")

// parseFlat scans the children of the top-level container without recursion.
func parseFlat(data []byte) ([]flatChunk, error) {
	var chunks []flatChunk

	offset := HeaderSize + ListTypeSize
	for offset+HeaderSize <= len(data) {
		id := string(data[offset : offset+4])
		size := binary.LittleEndian.Uint32(data[offset+4 : offset+8])
		offset += HeaderSize

		end := offset + int(size)
		if end > len(data) {
			return nil, fmt.Errorf("%w: %q", errChunkExceedsInput, id)
		}

		chunks = append(chunks, flatChunk{id: id, size: size, data: data[offset:end]})

		offset = end
		if size%2 == 1 {
			offset++
		}
	}

	return chunks, nil
}

// leafTexts collects leaf payloads grouped by their parent list.
func leafTexts(t *testing.T, root *Chunk) [][]string {
	t.Helper()

	var groups [][]string

	for _, list := range root.Children {
		require.True(t, list.IsContainer(), "child %s is not a list", list.ID)

		var texts []string
		for _, leaf := range list.Children {
			texts = append(texts, string(leaf.Data))
		}

		groups = append(groups, texts)
	}

	return groups
}

// failingWriter accepts limit bytes, then fails.
type failingWriter struct {
	limit int
	n     int
}

var errSinkFull = errors.New("sink full")

func (w *failingWriter) Write(p []byte) (int, error) {
	if w.n+len(p) > w.limit {
		k := w.limit - w.n
		w.n = w.limit

		return k, errSinkFull
	}

	w.n += len(p)

	return len(p), nil
}
