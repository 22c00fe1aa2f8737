package compress

import (
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"

	"github.com/dkilmer/sorbet/errs"
)

// NewReader returns an io.ReadCloser that decompresses bytes read from r
// using kind.
func NewReader(kind Kind, r io.Reader) (io.ReadCloser, error) {
	switch kind {
	case None:
		return io.NopCloser(r), nil
	case Gzip:
		return gzip.NewReader(r)
	case LZ4:
		return io.NopCloser(lz4.NewReader(r)), nil
	case Zstd:
		dec, err := zstd.NewReader(r)
		if err != nil {
			return nil, err
		}

		return zstdReadCloser{dec}, nil
	default:
		return nil, fmt.Errorf("compress: new reader: %w: %s", errs.ErrUnknownCompression, kind)
	}
}

// zstdReadCloser adapts *zstd.Decoder, whose Close takes no error, to
// io.ReadCloser.
type zstdReadCloser struct {
	dec *zstd.Decoder
}

func (z zstdReadCloser) Read(p []byte) (int, error) {
	return z.dec.Read(p)
}

func (z zstdReadCloser) Close() error {
	z.dec.Close()

	return nil
}
