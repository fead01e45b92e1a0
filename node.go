package riffchunk

import (
	"errors"
	"iter"
)

// Node is the surface shared by eager and lazy chunks, so traversal code
// does not depend on the reading strategy. Eager chunks ignore the cursor
// argument, which may be nil for them.
type Node interface {
	Header() Header
	ListType() (ChunkID, bool)
	// Payload returns leaf bytes, or the encoded children of a container.
	Payload(c *Cursor) ([]byte, error)
	ChildNodes(c *Cursor) iter.Seq2[Node, error]
}

var (
	_ Node = (*Chunk)(nil)
	_ Node = (*LazyChunk)(nil)
)

// SkipChildren can be returned by a WalkFunc to not descend into a container.
var SkipChildren = errors.New("skip children")

// WalkFunc is called for every node visited by Walk, with its nesting depth
// (0 for the node Walk started from).
type WalkFunc func(n Node, depth int) error

// Walk visits n and its descendants in stream order, parents first.
func Walk(n Node, c *Cursor, fn WalkFunc) error {
	return walk(n, c, fn, 0)
}

func walk(n Node, c *Cursor, fn WalkFunc, depth int) error {
	err := fn(n, depth)
	if errors.Is(err, SkipChildren) {
		return nil
	}

	if err != nil {
		return err
	}

	if _, ok := n.ListType(); !ok {
		return nil
	}

	for child, err := range n.ChildNodes(c) {
		if err != nil {
			return err
		}

		if err := walk(child, c, fn, depth+1); err != nil {
			return err
		}
	}

	return nil
}

// Materialize reads n and everything below it into an owned tree.
// For a lazy chunk this is a full traversal that reads every leaf payload.
func Materialize(n Node, c *Cursor) (*Chunk, error) {
	h := n.Header()
	ch := &Chunk{ID: h.ID}

	listType, ok := n.ListType()
	if !ok {
		data, err := n.Payload(c)
		if err != nil {
			return nil, err
		}

		ch.Data = data

		return ch, nil
	}

	ch.Type = listType

	for child, err := range n.ChildNodes(c) {
		if err != nil {
			return nil, err
		}

		m, err := Materialize(child, c)
		if err != nil {
			return nil, err
		}

		ch.Children = append(ch.Children, m)
	}

	return ch, nil
}

// Payload returns the leaf bytes, or the encoded children of a container.
func (c *Chunk) Payload(_ *Cursor) ([]byte, error) {
	if c.IsContainer() {
		return c.childBytes(), nil
	}

	return c.Data, nil
}

// ChildNodes yields the children of a container.
func (c *Chunk) ChildNodes(_ *Cursor) iter.Seq2[Node, error] {
	return func(yield func(Node, error) bool) {
		for _, child := range c.Children {
			if !yield(child, nil) {
				return
			}
		}
	}
}

// Payload reads the payload through the cursor. See ReadPayload.
func (lc *LazyChunk) Payload(c *Cursor) ([]byte, error) {
	return lc.ReadPayload(c)
}

// ChildNodes yields the children of a container, read through the cursor.
func (lc *LazyChunk) ChildNodes(c *Cursor) iter.Seq2[Node, error] {
	return func(yield func(Node, error) bool) {
		for child, err := range lc.All(c) {
			if err != nil {
				yield(nil, err)
				return
			}

			if !yield(child, nil) {
				return
			}
		}
	}
}
