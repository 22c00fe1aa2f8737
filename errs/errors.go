// Package errs collects the sentinel error values returned by the sorbet
// packages. Callers should compare against these with errors.Is rather than
// matching on error strings.
package errs

import "errors"

var (
	// ErrEmptySchema is returned when a schema with zero columns is opened.
	ErrEmptySchema = errors.New("sorbet: schema must have at least one column")

	// ErrReservedColumnKind is returned when a schema declares a column of a
	// reserved, not-yet-implemented kind (List or Map).
	ErrReservedColumnKind = errors.New("sorbet: column kind is reserved and cannot be written")

	// ErrBadSignature is returned when a file's leading 8 bytes do not match
	// the sorbet file signature.
	ErrBadSignature = errors.New("sorbet: not a sorbet file (bad signature)")

	// ErrUnsupportedVersion is returned when a file declares a format version
	// newer than this reader understands.
	ErrUnsupportedVersion = errors.New("sorbet: unsupported file version")

	// ErrTruncatedHeader is returned when the header or schema section ends
	// before all documented fields could be read.
	ErrTruncatedHeader = errors.New("sorbet: truncated header")

	// ErrUnknownCompression is returned when a file's compression flag does
	// not match any codec this build understands.
	ErrUnknownCompression = errors.New("sorbet: unknown compression flag")

	// ErrUnexpectedTag is returned when a value's tag byte matches neither
	// the expected column kind's type tag nor its null tag.
	ErrUnexpectedTag = errors.New("sorbet: unexpected tag byte for column")

	// ErrWriterClosed is returned by any Writer method called after Close.
	ErrWriterClosed = errors.New("sorbet: writer is closed")

	// ErrReaderClosed is returned by any Reader method called after Close.
	ErrReaderClosed = errors.New("sorbet: reader is closed")

	// ErrMidRowClose is returned by Close when the write cursor is not
	// positioned at column 0, unless the writer was opened with
	// WithAllowPartialRowClose.
	ErrMidRowClose = errors.New("sorbet: close called mid-row")

	// ErrRowsExhausted is returned when a read is attempted past the row
	// count recorded in the header.
	ErrRowsExhausted = errors.New("sorbet: no more rows")

	// ErrNotSeekable is returned when the writer's or reader's underlying
	// file does not support seeking, which the header rewrite requires.
	ErrNotSeekable = errors.New("sorbet: file must support seeking")

	// ErrShortWrite is returned when the underlying sink accepts fewer bytes
	// than requested without returning an error of its own.
	ErrShortWrite = errors.New("sorbet: short write to underlying sink")

	// ErrHeaderRewriteFailed is returned when the final, post-close rewrite
	// of the header could not be completed, leaving the file's header
	// inconsistent with its value stream.
	ErrHeaderRewriteFailed = errors.New("sorbet: header rewrite at close failed, file is invalid")

	// ErrSchemaMismatch is returned by NewReader when opened with
	// WithExpectedSchema and the file's recovered schema has a different
	// fingerprint than expected.
	ErrSchemaMismatch = errors.New("sorbet: file schema does not match expected schema")
)
