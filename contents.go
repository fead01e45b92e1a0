package riffchunk

import "fmt"

// Contents is a chunk tree assembled by the caller for Write. Build it with
// Data and List; the zero value is not a valid chunk.
type Contents struct {
	id       ChunkID
	listType ChunkID
	data     []byte
	children []Contents
}

// Data returns a leaf chunk. It panics if id is a container id.
func Data(id ChunkID, b []byte) Contents {
	if id.IsContainer() {
		panic(fmt.Sprintf("riffchunk: Data called with container id %s", id))
	}

	return Contents{id: id, data: b}
}

// List returns a container chunk holding children in order. It panics if id
// is not RiffID or ListID.
func List(id, listType ChunkID, children ...Contents) Contents {
	if !id.IsContainer() {
		panic(fmt.Sprintf("riffchunk: List called with leaf id %s", id))
	}

	return Contents{id: id, listType: listType, children: children}
}

// ID returns the chunk id.
func (c Contents) ID() ChunkID { return c.id }

// IsContainer reports whether c was built with List.
func (c Contents) IsContainer() bool { return c.id.IsContainer() }

// ListType returns the list type of a container.
func (c Contents) ListType() (ChunkID, bool) { return c.listType, c.IsContainer() }

// Bytes returns the payload of a leaf.
func (c Contents) Bytes() []byte { return c.data }

// Children returns the children of a container.
func (c Contents) Children() []Contents { return c.children }

// payloadSize is the value written to the length field.
func (c Contents) payloadSize() int64 {
	if !c.IsContainer() {
		return int64(len(c.data))
	}

	size := int64(ListTypeSize)
	for _, child := range c.children {
		size += child.Size()
	}

	return size
}

// Size returns the number of bytes c occupies once written: header, payload
// and pad byte.
func (c Contents) Size() int64 {
	n := c.payloadSize()
	return HeaderSize + n + padding(n)
}
