// Package riffchunk reads and writes RIFF (Resource Interchange File Format)
// streams: the tagged, recursively nested chunk container behind wave audio,
// AVI video and DLS sound banks.
//
// Every chunk is a four byte id, a little-endian 32-bit payload length and
// the payload, followed by a zero pad byte when the length is odd. Chunks
// with the RIFF or LIST id are containers: their payload is a four byte list
// type followed by child chunks. Any other id is a leaf with opaque bytes.
//
// Two reading strategies are available:
//
//   - ReadEager loads a chunk and its whole subtree into a *Chunk.
//   - OpenLazy reads a single header and returns a *LazyChunk whose payload
//     and children are read on demand through a *Cursor, the exclusive
//     access token to the shared byte source.
//
// Both implement Node, so Walk and Materialize work with either.
//
// Trees are written with Write from a Contents tree built with Data and List.
package riffchunk
