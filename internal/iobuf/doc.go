// Package iobuf implements the fixed-size buffered I/O layer the sorbet
// writer and reader build on.
//
// Writer accumulates bytes in a 16 KiB buffer and flushes it to an io.Writer
// sink once full or on an explicit Flush. Reader does the reverse: it keeps a
// 16 KiB window over an io.Reader source, refilling (and compacting any
// unread tail to the front) as callers consume bytes past what's resident.
//
// Neither type knows or cares whether the sink/source is the raw file or a
// streaming compressor sitting in front of it; that decision belongs to the
// caller, which is what lets the same buffering code serve both the
// uncompressed header region and the optionally-compressed value stream of a
// sorbet file.
package iobuf
