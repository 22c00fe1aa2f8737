package iobuf

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
)

// Reader buffers reads from an io.Reader source in fixed Size chunks.
//
// A Reader is not safe for concurrent use.
type Reader struct {
	src  io.Reader
	buf  [Size]byte
	off  int // next unread byte
	size int // number of valid bytes in buf; shrinks below Size at EOF
}

// NewReader returns a Reader over src with an empty buffer; the first read
// triggers a fill.
func NewReader(src io.Reader) *Reader {
	return &Reader{src: src}
}

// Reset rebinds the Reader to a new source and discards any buffered bytes,
// forcing the next read to fill from src at its current position.
func (r *Reader) Reset(src io.Reader) {
	r.src = src
	r.off = 0
	r.size = 0
}

// fill compacts any unread tail to the front of the buffer, then reads as
// many new bytes as the source has available to fill the rest.
func (r *Reader) fill() error {
	unread := r.size - r.off
	if unread > 0 {
		copy(r.buf[:unread], r.buf[r.off:r.size])
	}
	r.off = 0
	r.size = unread

	for r.size < Size {
		n, err := r.src.Read(r.buf[r.size:])
		r.size += n
		if err != nil {
			if err == io.EOF {
				break
			}

			return fmt.Errorf("iobuf: fill: %w", err)
		}
		if n == 0 {
			break
		}
	}

	return nil
}

// ReadBytes fills p entirely from the buffer, refilling as many times as
// needed for p to span multiple buffer loads. It returns io.ErrUnexpectedEOF
// if the source is exhausted before p is fully populated.
func (r *Reader) ReadBytes(p []byte) error {
	for len(p) > 0 {
		// offset+len <= effective size is the only correct "already
		// resident" predicate; a strict < here would force a spurious
		// refill on every read that exactly drains the buffer.
		if r.off+len(p) <= r.size {
			copy(p, r.buf[r.off:r.off+len(p)])
			r.off += len(p)

			return nil
		}

		avail := r.size - r.off
		if avail > 0 {
			copy(p, r.buf[r.off:r.size])
			p = p[avail:]
			r.off = r.size
		}

		if err := r.fill(); err != nil {
			return err
		}
		if r.size == 0 {
			return io.ErrUnexpectedEOF
		}
	}

	return nil
}

// ReadUint8 reads a single byte.
func (r *Reader) ReadUint8() (uint8, error) {
	var b [1]byte
	if err := r.ReadBytes(b[:]); err != nil {
		return 0, err
	}

	return b[0], nil
}

// ReadInt32 reads 4 little-endian bytes.
func (r *Reader) ReadInt32() (int32, error) {
	var b [4]byte
	if err := r.ReadBytes(b[:]); err != nil {
		return 0, err
	}

	return int32(binary.LittleEndian.Uint32(b[:])), nil
}

// ReadInt64 reads 8 little-endian bytes.
func (r *Reader) ReadInt64() (int64, error) {
	var b [8]byte
	if err := r.ReadBytes(b[:]); err != nil {
		return 0, err
	}

	return int64(binary.LittleEndian.Uint64(b[:])), nil
}

// ReadFloat32 reads 4 little-endian bytes as an IEEE-754 bit pattern.
func (r *Reader) ReadFloat32() (float32, error) {
	var b [4]byte
	if err := r.ReadBytes(b[:]); err != nil {
		return 0, err
	}

	return math.Float32frombits(binary.LittleEndian.Uint32(b[:])), nil
}

// ReadFloat64 reads 8 little-endian bytes as an IEEE-754 bit pattern.
func (r *Reader) ReadFloat64() (float64, error) {
	var b [8]byte
	if err := r.ReadBytes(b[:]); err != nil {
		return 0, err
	}

	return math.Float64frombits(binary.LittleEndian.Uint64(b[:])), nil
}
