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

// Writer streams rows into a new sorbet file, cell by cell or row by row,
// and rewrites the header with final row counts and statistics at Close.
//
// A zero Writer is not usable; construct one with NewWriter.
type Writer struct {
	f   *os.File
	cfg *writerConfig

	schema section.Schema
	stats  []section.ColumnStats

	iow         *iobuf.Writer
	codecWriter compress.WriteFlusher
	ucSize      int64

	curCol  int
	numRows int64
	closed  bool
}

// NewWriter creates path, truncating any existing file, and writes a
// placeholder header built from schema. The header is rewritten with final
// statistics when Close returns successfully.
func NewWriter(path string, schema section.Schema, opts ...WriterOption) (*Writer, error) {
	if err := schema.Validate(); err != nil {
		return nil, err
	}

	cfg := newWriterConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("file: create: %w", err)
	}

	w := &Writer{
		f:      f,
		cfg:    cfg,
		schema: schema,
		stats:  make([]section.ColumnStats, schema.NumCols()),
	}
	w.iow = iobuf.NewWriter(f, &w.ucSize)

	if err := w.writeHeader(); err != nil {
		_ = f.Close()

		return nil, err
	}
	if err := w.iow.Flush(); err != nil {
		_ = f.Close()

		return nil, err
	}

	if cfg.compression != compress.None {
		cw, err := compress.NewWriter(cfg.compression, f)
		if err != nil {
			_ = f.Close()

			return nil, err
		}
		w.codecWriter = cw
		w.iow.Reset(cw)
	}

	return w, nil
}

func (w *Writer) writeHeader() error {
	h := section.Header{
		Version:      section.Version,
		Compression:  w.cfg.compression,
		NumRows:      w.numRows,
		UCSize:       w.ucSize,
		Schema:       w.schema,
		Stats:        w.stats,
		MetadataType: w.cfg.metadataType,
		Metadata:     w.cfg.metadata,
	}

	return h.Encode(w.iow)
}

func (w *Writer) advance() {
	w.curCol++
	if w.curCol >= w.schema.NumCols() {
		w.curCol = 0
		w.numRows++
	}
}

func (w *Writer) writeTag(kind format.ColumnKind, isNull bool) error {
	if isNull {
		return w.iow.WriteUint8(kind.NullTag())
	}

	return w.iow.WriteUint8(kind.TypeTag())
}

// WriteInt writes an Integer cell. A nil v writes a null.
func (w *Writer) WriteInt(v *int32) error {
	if w.closed {
		return errs.ErrWriterClosed
	}
	if err := w.writeTag(format.Integer, v == nil); err != nil {
		return err
	}
	if v == nil {
		w.stats[w.curCol].IncrNull()
	} else {
		if err := w.iow.WriteInt32(*v); err != nil {
			return err
		}
		w.stats[w.curCol].UpdateInt(*v)
	}
	w.advance()

	return nil
}

// WriteLong writes a Long cell. A nil v writes a null.
func (w *Writer) WriteLong(v *int64) error {
	if w.closed {
		return errs.ErrWriterClosed
	}
	if err := w.writeTag(format.Long, v == nil); err != nil {
		return err
	}
	if v == nil {
		w.stats[w.curCol].IncrNull()
	} else {
		if err := w.iow.WriteInt64(*v); err != nil {
			return err
		}
		w.stats[w.curCol].UpdateLong(*v)
	}
	w.advance()

	return nil
}

// WriteFloat writes a Float cell. A nil v writes a null.
func (w *Writer) WriteFloat(v *float32) error {
	if w.closed {
		return errs.ErrWriterClosed
	}
	if err := w.writeTag(format.Float, v == nil); err != nil {
		return err
	}
	if v == nil {
		w.stats[w.curCol].IncrNull()
	} else {
		if err := w.iow.WriteFloat32(*v); err != nil {
			return err
		}
		w.stats[w.curCol].UpdateFloat(*v)
	}
	w.advance()

	return nil
}

// WriteDouble writes a Double cell. A nil v writes a null.
func (w *Writer) WriteDouble(v *float64) error {
	if w.closed {
		return errs.ErrWriterClosed
	}
	if err := w.writeTag(format.Double, v == nil); err != nil {
		return err
	}
	if v == nil {
		w.stats[w.curCol].IncrNull()
	} else {
		if err := w.iow.WriteFloat64(*v); err != nil {
			return err
		}
		w.stats[w.curCol].UpdateDouble(*v)
	}
	w.advance()

	return nil
}

// WriteBool writes a Boolean cell. A nil v writes a null.
func (w *Writer) WriteBool(v *bool) error {
	if w.closed {
		return errs.ErrWriterClosed
	}
	if err := w.writeTag(format.Boolean, v == nil); err != nil {
		return err
	}
	if v == nil {
		w.stats[w.curCol].IncrNull()
	} else {
		b := uint8(0)
		if *v {
			b = 1
		}
		if err := w.iow.WriteUint8(b); err != nil {
			return err
		}
	}
	w.advance()

	return nil
}

// WriteString writes a String cell. A nil slice writes a null; a non-nil,
// possibly empty slice writes a present value.
func (w *Writer) WriteString(v []byte) error {
	return w.writeVarWidth(format.String, v)
}

// WriteBinary writes a Binary cell. A nil slice writes a null; a non-nil,
// possibly empty slice writes a present value.
func (w *Writer) WriteBinary(v []byte) error {
	return w.writeVarWidth(format.Binary, v)
}

func (w *Writer) writeVarWidth(kind format.ColumnKind, v []byte) error {
	if w.closed {
		return errs.ErrWriterClosed
	}
	if err := w.writeTag(kind, v == nil); err != nil {
		return err
	}
	if v == nil {
		w.stats[w.curCol].IncrNull()
	} else {
		if err := w.iow.WriteInt32(int32(len(v))); err != nil {
			return err
		}
		if err := w.iow.WriteBytes(v); err != nil {
			return err
		}
		w.stats[w.curCol].UpdateWidth(int32(len(v)))
	}
	w.advance()

	return nil
}

// WriteDate writes a Date cell. A nil v writes a null.
func (w *Writer) WriteDate(v *value.Date) error {
	if w.closed {
		return errs.ErrWriterClosed
	}
	if err := w.writeTag(format.Date, v == nil); err != nil {
		return err
	}
	if v == nil {
		w.stats[w.curCol].IncrNull()
	} else {
		packed := int32(v.Year*10000 + v.Month*100 + v.Day)
		if err := w.iow.WriteInt32(packed); err != nil {
			return err
		}
	}
	w.advance()

	return nil
}

// WriteDatetime writes a Datetime cell. A nil v writes a null. The epoch
// convention is producer-defined; see timeconv for one such convention.
func (w *Writer) WriteDatetime(v *int64) error {
	if w.closed {
		return errs.ErrWriterClosed
	}
	if err := w.writeTag(format.Datetime, v == nil); err != nil {
		return err
	}
	if v == nil {
		w.stats[w.curCol].IncrNull()
	} else {
		if err := w.iow.WriteInt64(*v); err != nil {
			return err
		}
		w.stats[w.curCol].UpdateLong(*v)
	}
	w.advance()

	return nil
}

// WriteTime writes a Time cell. A nil v writes a null.
func (w *Writer) WriteTime(v *value.Time) error {
	if w.closed {
		return errs.ErrWriterClosed
	}
	if err := w.writeTag(format.Time, v == nil); err != nil {
		return err
	}
	if v == nil {
		w.stats[w.curCol].IncrNull()
	} else {
		packed := int32(v.Hour*10000 + v.Minute*100 + v.Second)
		if err := w.iow.WriteInt32(packed); err != nil {
			return err
		}
	}
	w.advance()

	return nil
}

// WriteRow writes one cell per schema column, in order. len(cells) must
// equal the schema's column count, and the write cursor must currently be
// at column 0.
func (w *Writer) WriteRow(cells ...value.Cell) error {
	if w.closed {
		return errs.ErrWriterClosed
	}
	if w.curCol != 0 {
		return fmt.Errorf("file: WriteRow called with write cursor at column %d, not 0", w.curCol)
	}
	if len(cells) != w.schema.NumCols() {
		return fmt.Errorf("file: WriteRow got %d cells, schema has %d columns", len(cells), w.schema.NumCols())
	}

	for i, col := range w.schema.Columns {
		cell := cells[i]

		switch col.Type {
		case format.Integer:
			var p *int32
			if cell.Valid {
				v := cell.Int
				p = &v
			}
			if err := w.WriteInt(p); err != nil {
				return err
			}
		case format.Long:
			var p *int64
			if cell.Valid {
				v := cell.Long
				p = &v
			}
			if err := w.WriteLong(p); err != nil {
				return err
			}
		case format.Float:
			var p *float32
			if cell.Valid {
				v := cell.Float
				p = &v
			}
			if err := w.WriteFloat(p); err != nil {
				return err
			}
		case format.Double:
			var p *float64
			if cell.Valid {
				v := cell.Double
				p = &v
			}
			if err := w.WriteDouble(p); err != nil {
				return err
			}
		case format.Boolean:
			var p *bool
			if cell.Valid {
				v := cell.Bool
				p = &v
			}
			if err := w.WriteBool(p); err != nil {
				return err
			}
		case format.String:
			var v []byte
			if cell.Valid {
				v = cell.Bytes
				if v == nil {
					v = []byte{}
				}
			}
			if err := w.WriteString(v); err != nil {
				return err
			}
		case format.Binary:
			var v []byte
			if cell.Valid {
				v = cell.Bytes
				if v == nil {
					v = []byte{}
				}
			}
			if err := w.WriteBinary(v); err != nil {
				return err
			}
		case format.Date:
			var p *value.Date
			if cell.Valid {
				v := cell.Date
				p = &v
			}
			if err := w.WriteDate(p); err != nil {
				return err
			}
		case format.Datetime:
			var p *int64
			if cell.Valid {
				v := cell.Datetime
				p = &v
			}
			if err := w.WriteDatetime(p); err != nil {
				return err
			}
		case format.Time:
			var p *value.Time
			if cell.Valid {
				v := cell.Time
				p = &v
			}
			if err := w.WriteTime(p); err != nil {
				return err
			}
		default:
			return fmt.Errorf("file: WriteRow: column %q has non-scalar kind %s", col.Name, col.Type)
		}
	}

	return nil
}

// Close finalizes the value stream, rewrites the header with final row
// counts and statistics, and closes the underlying file. Close returns
// errs.ErrMidRowClose if the write cursor is not at column 0, unless the
// Writer was opened with WithAllowPartialRowClose.
func (w *Writer) Close() error {
	if w.closed {
		return errs.ErrWriterClosed
	}
	if w.curCol != 0 && !w.cfg.allowPartialRowClose {
		return errs.ErrMidRowClose
	}
	w.closed = true

	if w.codecWriter != nil {
		// iow's buffered bytes haven't reached the codec at all yet, so they
		// must drain into it before the codec itself is flushed and closed.
		if err := w.iow.Flush(); err != nil {
			return fmt.Errorf("file: close: flush value stream: %w", err)
		}
		if err := w.codecWriter.Flush(); err != nil {
			return fmt.Errorf("file: close: flush compressed stream: %w", err)
		}
		if err := w.codecWriter.Close(); err != nil {
			return fmt.Errorf("file: close: close compressed stream: %w", err)
		}
	} else if err := w.iow.Flush(); err != nil {
		return fmt.Errorf("file: close: flush value stream: %w", err)
	}

	w.iow.Reset(w.f)
	w.iow.SetCounter(nil)

	if _, err := w.f.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("%w: %v", errs.ErrNotSeekable, err)
	}
	if err := w.writeHeader(); err != nil {
		return fmt.Errorf("%w: %v", errs.ErrHeaderRewriteFailed, err)
	}
	if err := w.iow.Flush(); err != nil {
		return fmt.Errorf("%w: %v", errs.ErrHeaderRewriteFailed, err)
	}

	if err := w.f.Close(); err != nil {
		return fmt.Errorf("file: close: %w", err)
	}

	return nil
}
