package compress

import (
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"

	"github.com/dkilmer/sorbet/errs"
)

// WriteFlusher is an io.Writer that can push buffered but not-yet-emitted
// bytes out (Flush) and finalize the stream with any trailing codec
// bookkeeping, such as a checksum or end-of-frame marker (Close).
//
// Close must be called before the underlying sink's bytes are considered
// final; Flush alone is not sufficient for codecs that append a trailer.
type WriteFlusher interface {
	io.Writer
	Flush() error
	Close() error
}

// NewWriter returns a WriteFlusher that compresses bytes written to it using
// kind before forwarding them to w.
func NewWriter(kind Kind, w io.Writer) (WriteFlusher, error) {
	switch kind {
	case None:
		return passthroughWriter{w}, nil
	case Gzip:
		return gzip.NewWriter(w), nil
	case LZ4:
		return lz4.NewWriter(w), nil
	case Zstd:
		return zstd.NewWriter(w)
	default:
		return nil, fmt.Errorf("compress: new writer: %w: %s", errs.ErrUnknownCompression, kind)
	}
}

// passthroughWriter adapts a plain io.Writer to WriteFlusher for Kind None,
// where flushing and closing the codec layer are no-ops.
type passthroughWriter struct {
	io.Writer
}

func (passthroughWriter) Flush() error { return nil }
func (passthroughWriter) Close() error { return nil }
