// Package file implements the Writer and Reader state machines that drive a
// sorbet file end to end: Writer streams rows cell-by-cell and rewrites the
// header with final statistics at Close; Reader recovers the schema and
// stats from the header and streams rows back out in the same order.
//
// Both sit on top of internal/iobuf for buffered I/O, compress for the
// optional value-stream codec, and section for the header/schema/stats
// wire format. Neither type is safe for concurrent use: a file handle is
// single-owner, single-threaded, matching the forward-only, seek-once
// access pattern of the format itself.
package file
