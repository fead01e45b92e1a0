package riffchunk

// Chunk is a fully materialized chunk. Containers (ID.IsContainer) carry a
// list type and children; any other chunk is a leaf holding its payload.
type Chunk struct {
	ID ChunkID
	// Type is the list type of a container. Zero for leaves.
	Type     ChunkID
	Data     []byte
	Children []*Chunk
}

// Clone returns a deep copy of the tree.
func (c *Chunk) Clone() *Chunk {
	if c == nil {
		return nil
	}

	out := &Chunk{ID: c.ID, Type: c.Type}

	if c.Data != nil {
		out.Data = append([]byte(nil), c.Data...)
	}

	if len(c.Children) > 0 {
		out.Children = make([]*Chunk, len(c.Children))
		for i := range c.Children {
			out.Children[i] = c.Children[i].Clone()
		}
	}

	return out
}
