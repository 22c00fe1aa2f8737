package iobuf

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/dkilmer/sorbet/errs"
)

// Size is the fixed size of the buffer both Writer and Reader maintain.
const Size = 16384

// Writer buffers writes to an io.Writer sink in fixed Size chunks.
//
// A Writer is not safe for concurrent use.
type Writer struct {
	sink io.Writer
	buf  [Size]byte
	off  int

	// ucSize, when non-nil, is incremented by every byte accepted by
	// WriteBytes regardless of how many bytes actually reach the sink once
	// compressed. It lets a caller track a single logical "uncompressed size
	// so far" counter across a header sink and a value-stream sink that may
	// be swapped out from under the same counter.
	ucSize *int64
}

// NewWriter returns a Writer that buffers into sink. If ucSize is non-nil, it
// is incremented by every byte written through this Writer.
func NewWriter(sink io.Writer, ucSize *int64) *Writer {
	return &Writer{sink: sink, ucSize: ucSize}
}

// Reset rebinds the Writer to a new sink without touching any buffered,
// unflushed bytes. Callers must Flush before Reset if those bytes need to
// reach the old sink.
func (w *Writer) Reset(sink io.Writer) {
	w.sink = sink
}

// SetCounter rebinds the uncompressed-size counter WriteBytes increments.
// Passing nil stops tracking, which a caller uses to rewrite a
// fixed-length region (such as a header) without perturbing a total that
// was already finalized by an earlier pass over the same bytes.
func (w *Writer) SetCounter(ucSize *int64) {
	w.ucSize = ucSize
}

// Flush writes any buffered bytes to the sink.
func (w *Writer) Flush() error {
	if w.off <= 0 {
		return nil
	}
	n, err := w.sink.Write(w.buf[:w.off])
	if err != nil {
		return fmt.Errorf("iobuf: flush: %w", err)
	}
	if n != w.off {
		return fmt.Errorf("iobuf: flush: %w: wrote %d of %d bytes", errs.ErrShortWrite, n, w.off)
	}
	w.off = 0

	return nil
}

// WriteBytes appends p to the buffer, flushing and spanning multiple buffer
// loads as needed when p doesn't fit in the space remaining.
func (w *Writer) WriteBytes(p []byte) error {
	if w.ucSize != nil {
		*w.ucSize += int64(len(p))
	}

	for len(p) > 0 {
		room := Size - w.off
		if room == 0 {
			if err := w.Flush(); err != nil {
				return err
			}
			room = Size
		}

		n := room
		if n > len(p) {
			n = len(p)
		}
		copy(w.buf[w.off:], p[:n])
		w.off += n
		p = p[n:]
	}

	return nil
}

// WriteUint8 writes a single byte.
func (w *Writer) WriteUint8(v uint8) error {
	return w.WriteBytes([]byte{v})
}

// WriteInt32 writes v as 4 little-endian bytes.
func (w *Writer) WriteInt32(v int32) error {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], uint32(v))

	return w.WriteBytes(b[:])
}

// WriteInt64 writes v as 8 little-endian bytes.
func (w *Writer) WriteInt64(v int64) error {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], uint64(v))

	return w.WriteBytes(b[:])
}

// WriteFloat32 writes v as 4 little-endian bytes (IEEE-754 bit pattern).
func (w *Writer) WriteFloat32(v float32) error {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], math.Float32bits(v))

	return w.WriteBytes(b[:])
}

// WriteFloat64 writes v as 8 little-endian bytes (IEEE-754 bit pattern).
func (w *Writer) WriteFloat64(v float64) error {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], math.Float64bits(v))

	return w.WriteBytes(b[:])
}
