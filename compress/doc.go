// Package compress provides the streaming compression codecs layered over
// the value-stream region of a sorbet file.
//
// Unlike a whole-buffer compressor that takes a []byte and returns a []byte,
// sorbet writes rows one at a time and may never hold the full value stream
// in memory, so this package wraps io.Writer/io.Reader instead: NewWriter
// returns a WriteFlusher that sits between internal/iobuf.Writer and the
// underlying file, and NewReader returns an io.ReadCloser that sits between
// the file and internal/iobuf.Reader.
//
// # Supported algorithms
//
//   - None: pass-through, zero overhead
//   - Gzip (github.com/klauspost/compress/gzip): wide compatibility
//   - LZ4 (github.com/pierrec/lz4/v4): fast decompression, favors read-heavy
//     workloads
//   - Zstd (github.com/klauspost/compress/zstd): best ratio, pure Go
//
// Kind's byte values are the wire values of the header's compression flag;
// see section.Header.
package compress
