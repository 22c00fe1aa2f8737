package file

import (
	"github.com/dkilmer/sorbet/compress"
	"github.com/dkilmer/sorbet/errs"
	"github.com/dkilmer/sorbet/internal/options"
	"github.com/dkilmer/sorbet/section"
)

type writerConfig struct {
	compression          compress.Kind
	metadataType         int32
	metadata             []byte
	allowPartialRowClose bool
}

func newWriterConfig() *writerConfig {
	return &writerConfig{compression: compress.None}
}

// WriterOption configures a Writer at construction time.
type WriterOption = options.Option[*writerConfig]

// WithCompression selects the value-stream codec. The default is
// compress.None.
func WithCompression(kind compress.Kind) WriterOption {
	return options.New(func(c *writerConfig) error {
		if !kind.Valid() {
			return errs.ErrUnknownCompression
		}
		c.compression = kind

		return nil
	})
}

// WithMetadata attaches an opaque user metadata blob, stored uncompressed
// immediately after the schema section. metadataType is producer-defined
// and round-trips unchanged.
func WithMetadata(metadataType int32, data []byte) WriterOption {
	return options.NoError(func(c *writerConfig) {
		c.metadataType = metadataType
		c.metadata = data
	})
}

// WithAllowPartialRowClose tolerates Close being called mid-row, recording
// n_rows as the count of fully completed rows instead of returning
// errs.ErrMidRowClose.
func WithAllowPartialRowClose() WriterOption {
	return options.NoError(func(c *writerConfig) {
		c.allowPartialRowClose = true
	})
}

type readerConfig struct {
	expectedSchema    *section.Schema
	expectedSchemaSet bool
}

func newReaderConfig() *readerConfig {
	return &readerConfig{}
}

// ReaderOption configures a Reader at construction time.
type ReaderOption = options.Option[*readerConfig]

// WithExpectedSchema makes NewReader fail with errs.ErrSchemaMismatch when
// the file's recovered schema has a different Fingerprint than s.
func WithExpectedSchema(s section.Schema) ReaderOption {
	return options.NoError(func(c *readerConfig) {
		c.expectedSchema = &s
		c.expectedSchemaSet = true
	})
}
