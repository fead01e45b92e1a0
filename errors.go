package riffchunk

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

var (
	// ErrIO reports a failure of the underlying byte source or sink.
	ErrIO = errors.New("riff: i/o failure")
	// ErrUnexpectedEOF reports a truncated stream: fewer bytes were available
	// than a header, payload or pad byte requires.
	ErrUnexpectedEOF = errors.New("riff: unexpected end of stream")
	// ErrMalformedChunk reports declared sizes that do not match the actual
	// container structure.
	ErrMalformedChunk = errors.New("riff: malformed chunk")
	// ErrInvalidChunkID is returned when building an id from text that is not four bytes.
	ErrInvalidChunkID = errors.New("riff: chunk id must be 4 bytes")
	// ErrChunkTooLarge is returned by the writer when a payload does not fit
	// the 32-bit length field.
	ErrChunkTooLarge = errors.New("riff: chunk payload exceeds 32-bit length")
	// ErrCursorBusy is returned when a cursor is used while another traversal
	// step still holds it.
	ErrCursorBusy = errors.New("riff: cursor already in use")
	// ErrNotContainer is returned when children are requested from a leaf chunk.
	ErrNotContainer = errors.New("riff: chunk is not a container")
)

// ChunkError describes a failed read or write step.
type ChunkError struct {
	// Kind is one of the package sentinel errors.
	Kind error
	Op   string
	// Offset is the stream offset the step was working at, -1 when unknown.
	Offset int64
	ID     ChunkID
	// Detail names the violated invariant.
	Detail string
	// Err is the underlying cause, if any.
	Err error
}

func (e *ChunkError) Error() string {
	var b strings.Builder

	b.WriteString(e.Kind.Error())

	if e.Op != "" {
		fmt.Fprintf(&b, ": %s", e.Op)
	}

	if e.ID != (ChunkID{}) {
		fmt.Fprintf(&b, " %s", e.ID)
	}

	if e.Offset >= 0 {
		fmt.Fprintf(&b, " at offset %d", e.Offset)
	}

	if e.Detail != "" {
		fmt.Fprintf(&b, ": %s", e.Detail)
	}

	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}

	return b.String()
}

// Unwrap exposes both the error kind and the cause to errors.Is and errors.As.
func (e *ChunkError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}

	return []error{e.Kind, e.Err}
}

// readError classifies a failure returned by the byte source.
func readError(op string, off int64, id ChunkID, err error) error {
	kind := ErrIO
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		kind = ErrUnexpectedEOF
	}

	return &ChunkError{Kind: kind, Op: op, Offset: off, ID: id, Err: err}
}

func malformed(op string, off int64, id ChunkID, format string, args ...any) error {
	return &ChunkError{
		Kind:   ErrMalformedChunk,
		Op:     op,
		Offset: off,
		ID:     id,
		Detail: fmt.Sprintf(format, args...),
	}
}
