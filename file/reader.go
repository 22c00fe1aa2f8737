package file

import (
	"fmt"
	"io"
	"os"

	"github.com/dkilmer/sorbet/compress"
	"github.com/dkilmer/sorbet/errs"
	"github.com/dkilmer/sorbet/format"
	"github.com/dkilmer/sorbet/internal/iobuf"
	"github.com/dkilmer/sorbet/internal/options"
	"github.com/dkilmer/sorbet/section"
	"github.com/dkilmer/sorbet/value"
)

// Reader recovers the schema and statistics from a sorbet file's header and
// streams its rows back out, cell by cell or row by row, in write order.
//
// A zero Reader is not usable; construct one with NewReader.
type Reader struct {
	f   *os.File
	ior *iobuf.Reader

	header section.Header

	codecReader io.ReadCloser

	curCol  int
	rowsOut int64
	closed  bool
}

// NewReader opens path and decodes its header. If opts includes
// WithExpectedSchema and the file's schema fingerprint does not match, it
// returns errs.ErrSchemaMismatch without leaving a partially-opened handle.
func NewReader(path string, opts ...ReaderOption) (*Reader, error) {
	cfg := newReaderConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("file: open: %w", err)
	}

	ior := iobuf.NewReader(f)
	header, n, err := section.DecodeHeader(ior)
	if err != nil {
		_ = f.Close()

		return nil, err
	}

	if cfg.expectedSchemaSet && header.Schema.Fingerprint() != cfg.expectedSchema.Fingerprint() {
		_ = f.Close()

		return nil, errs.ErrSchemaMismatch
	}

	r := &Reader{f: f, ior: ior, header: header}

	if _, err := f.Seek(n, io.SeekStart); err != nil {
		_ = f.Close()

		return nil, fmt.Errorf("%w: %v", errs.ErrNotSeekable, err)
	}
	ior.Reset(f)

	if header.Compression != compress.None {
		cr, err := compress.NewReader(header.Compression, f)
		if err != nil {
			_ = f.Close()

			return nil, err
		}
		r.codecReader = cr
		ior.Reset(cr)
	}

	return r, nil
}

// Schema returns the schema recovered from the header.
func (r *Reader) Schema() section.Schema {
	return r.header.Schema
}

// Stats returns the per-column statistics recovered from the header.
func (r *Reader) Stats() []section.ColumnStats {
	return r.header.Stats
}

// NumRows returns the row count recorded in the header.
func (r *Reader) NumRows() int64 {
	return r.header.NumRows
}

func (r *Reader) checkBound() error {
	if r.curCol == 0 && r.rowsOut >= r.header.NumRows {
		return errs.ErrRowsExhausted
	}

	return nil
}

func (r *Reader) advance() {
	r.curCol++
	if r.curCol >= r.header.Schema.NumCols() {
		r.curCol = 0
		r.rowsOut++
	}
}

func (r *Reader) readTag(expected format.ColumnKind) (bool, error) {
	tag, err := r.ior.ReadUint8()
	if err != nil {
		return false, err
	}

	isNull, ok := format.KindFromTag(tag, expected)
	if !ok {
		return false, fmt.Errorf("%w: column kind %s, tag %d", errs.ErrUnexpectedTag, expected, tag)
	}

	return isNull, nil
}

// ReadInt reads the next Integer cell.
func (r *Reader) ReadInt() (int32, bool, error) {
	if r.closed {
		return 0, false, errs.ErrReaderClosed
	}
	if err := r.checkBound(); err != nil {
		return 0, false, err
	}

	isNull, err := r.readTag(format.Integer)
	if err != nil {
		return 0, false, err
	}

	var v int32
	if !isNull {
		v, err = r.ior.ReadInt32()
		if err != nil {
			return 0, false, err
		}
	}
	r.advance()

	return v, !isNull, nil
}

// ReadLong reads the next Long cell.
func (r *Reader) ReadLong() (int64, bool, error) {
	if r.closed {
		return 0, false, errs.ErrReaderClosed
	}
	if err := r.checkBound(); err != nil {
		return 0, false, err
	}

	isNull, err := r.readTag(format.Long)
	if err != nil {
		return 0, false, err
	}

	var v int64
	if !isNull {
		v, err = r.ior.ReadInt64()
		if err != nil {
			return 0, false, err
		}
	}
	r.advance()

	return v, !isNull, nil
}

// ReadFloat reads the next Float cell.
func (r *Reader) ReadFloat() (float32, bool, error) {
	if r.closed {
		return 0, false, errs.ErrReaderClosed
	}
	if err := r.checkBound(); err != nil {
		return 0, false, err
	}

	isNull, err := r.readTag(format.Float)
	if err != nil {
		return 0, false, err
	}

	var v float32
	if !isNull {
		v, err = r.ior.ReadFloat32()
		if err != nil {
			return 0, false, err
		}
	}
	r.advance()

	return v, !isNull, nil
}

// ReadDouble reads the next Double cell.
func (r *Reader) ReadDouble() (float64, bool, error) {
	if r.closed {
		return 0, false, errs.ErrReaderClosed
	}
	if err := r.checkBound(); err != nil {
		return 0, false, err
	}

	isNull, err := r.readTag(format.Double)
	if err != nil {
		return 0, false, err
	}

	var v float64
	if !isNull {
		v, err = r.ior.ReadFloat64()
		if err != nil {
			return 0, false, err
		}
	}
	r.advance()

	return v, !isNull, nil
}

// ReadBool reads the next Boolean cell.
func (r *Reader) ReadBool() (bool, bool, error) {
	if r.closed {
		return false, false, errs.ErrReaderClosed
	}
	if err := r.checkBound(); err != nil {
		return false, false, err
	}

	isNull, err := r.readTag(format.Boolean)
	if err != nil {
		return false, false, err
	}

	var v bool
	if !isNull {
		b, err := r.ior.ReadUint8()
		if err != nil {
			return false, false, err
		}
		v = b != 0
	}
	r.advance()

	return v, !isNull, nil
}

// ReadString reads the next String cell. A present, empty string returns a
// non-nil, zero-length slice; a null cell returns nil.
func (r *Reader) ReadString() ([]byte, bool, error) {
	return r.readVarWidth(format.String)
}

// ReadBinary reads the next Binary cell. A present, empty value returns a
// non-nil, zero-length slice; a null cell returns nil.
func (r *Reader) ReadBinary() ([]byte, bool, error) {
	return r.readVarWidth(format.Binary)
}

func (r *Reader) readVarWidth(kind format.ColumnKind) ([]byte, bool, error) {
	if r.closed {
		return nil, false, errs.ErrReaderClosed
	}
	if err := r.checkBound(); err != nil {
		return nil, false, err
	}

	isNull, err := r.readTag(kind)
	if err != nil {
		return nil, false, err
	}

	var v []byte
	if !isNull {
		n, err := r.ior.ReadInt32()
		if err != nil {
			return nil, false, err
		}
		v = make([]byte, n)
		if err := r.ior.ReadBytes(v); err != nil {
			return nil, false, err
		}
	}
	r.advance()

	return v, !isNull, nil
}

// ReadDate reads the next Date cell.
func (r *Reader) ReadDate() (value.Date, bool, error) {
	if r.closed {
		return value.Date{}, false, errs.ErrReaderClosed
	}
	if err := r.checkBound(); err != nil {
		return value.Date{}, false, err
	}

	isNull, err := r.readTag(format.Date)
	if err != nil {
		return value.Date{}, false, err
	}

	var d value.Date
	if !isNull {
		packed, err := r.ior.ReadInt32()
		if err != nil {
			return value.Date{}, false, err
		}
		d = value.Date{Year: int(packed / 10000), Month: int((packed / 100) % 100), Day: int(packed % 100)}
	}
	r.advance()

	return d, !isNull, nil
}

// ReadDatetime reads the next Datetime cell. The epoch convention is
// producer-defined; see timeconv for one such convention.
func (r *Reader) ReadDatetime() (int64, bool, error) {
	if r.closed {
		return 0, false, errs.ErrReaderClosed
	}
	if err := r.checkBound(); err != nil {
		return 0, false, err
	}

	isNull, err := r.readTag(format.Datetime)
	if err != nil {
		return 0, false, err
	}

	var v int64
	if !isNull {
		v, err = r.ior.ReadInt64()
		if err != nil {
			return 0, false, err
		}
	}
	r.advance()

	return v, !isNull, nil
}

// ReadTime reads the next Time cell.
func (r *Reader) ReadTime() (value.Time, bool, error) {
	if r.closed {
		return value.Time{}, false, errs.ErrReaderClosed
	}
	if err := r.checkBound(); err != nil {
		return value.Time{}, false, err
	}

	isNull, err := r.readTag(format.Time)
	if err != nil {
		return value.Time{}, false, err
	}

	var t value.Time
	if !isNull {
		packed, err := r.ior.ReadInt32()
		if err != nil {
			return value.Time{}, false, err
		}
		t = value.Time{Hour: int(packed / 10000), Minute: int((packed / 100) % 100), Second: int(packed % 100)}
	}
	r.advance()

	return t, !isNull, nil
}

// ReadRow reads one full row's worth of cells, in schema order. It returns
// errs.ErrRowsExhausted once NumRows rows have been read.
func (r *Reader) ReadRow() ([]value.Cell, error) {
	if r.closed {
		return nil, errs.ErrReaderClosed
	}
	if r.curCol != 0 {
		return nil, fmt.Errorf("file: ReadRow called with read cursor at column %d, not 0", r.curCol)
	}
	if err := r.checkBound(); err != nil {
		return nil, err
	}

	cells := make([]value.Cell, r.header.Schema.NumCols())

	for i, col := range r.header.Schema.Columns {
		cells[i].Kind = col.Type

		switch col.Type {
		case format.Integer:
			v, ok, err := r.ReadInt()
			if err != nil {
				return nil, err
			}
			cells[i].Valid, cells[i].Int = ok, v
		case format.Long:
			v, ok, err := r.ReadLong()
			if err != nil {
				return nil, err
			}
			cells[i].Valid, cells[i].Long = ok, v
		case format.Float:
			v, ok, err := r.ReadFloat()
			if err != nil {
				return nil, err
			}
			cells[i].Valid, cells[i].Float = ok, v
		case format.Double:
			v, ok, err := r.ReadDouble()
			if err != nil {
				return nil, err
			}
			cells[i].Valid, cells[i].Double = ok, v
		case format.Boolean:
			v, ok, err := r.ReadBool()
			if err != nil {
				return nil, err
			}
			cells[i].Valid, cells[i].Bool = ok, v
		case format.String, format.Binary:
			var (
				v   []byte
				ok  bool
				err error
			)
			if col.Type == format.String {
				v, ok, err = r.ReadString()
			} else {
				v, ok, err = r.ReadBinary()
			}
			if err != nil {
				return nil, err
			}
			cells[i].Valid, cells[i].Bytes = ok, v
		case format.Date:
			v, ok, err := r.ReadDate()
			if err != nil {
				return nil, err
			}
			cells[i].Valid, cells[i].Date = ok, v
		case format.Datetime:
			v, ok, err := r.ReadDatetime()
			if err != nil {
				return nil, err
			}
			cells[i].Valid, cells[i].Datetime = ok, v
		case format.Time:
			v, ok, err := r.ReadTime()
			if err != nil {
				return nil, err
			}
			cells[i].Valid, cells[i].Time = ok, v
		default:
			return nil, fmt.Errorf("file: ReadRow: column %q has non-scalar kind %s", col.Name, col.Type)
		}
	}

	return cells, nil
}

// Close releases the underlying file and any compressed-stream resources.
func (r *Reader) Close() error {
	if r.closed {
		return errs.ErrReaderClosed
	}
	r.closed = true

	if r.codecReader != nil {
		if err := r.codecReader.Close(); err != nil {
			_ = r.f.Close()

			return fmt.Errorf("file: close: close compressed stream: %w", err)
		}
	}

	if err := r.f.Close(); err != nil {
		return fmt.Errorf("file: close: %w", err)
	}

	return nil
}
