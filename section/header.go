package section

import (
	"fmt"

	"github.com/dkilmer/sorbet/compress"
	"github.com/dkilmer/sorbet/errs"
	"github.com/dkilmer/sorbet/format"
	"github.com/dkilmer/sorbet/internal/iobuf"
)

// Header is the uncompressed region of a sorbet file: signature, version,
// compression flag, row count, uncompressed-size counter, schema, and
// per-column stats. Header.Encode and DecodeHeader operate directly against
// internal/iobuf so the writer and reader can reuse the same buffered I/O
// for this region as for the value stream.
type Header struct {
	Version      uint8
	Compression  compress.Kind
	NumRows      int64
	UCSize       int64
	Schema       Schema
	Stats        []ColumnStats
	MetadataType int32
	Metadata     []byte
}

// Encode writes h to w. The caller is responsible for flushing w and for
// ensuring w is backed by the raw file sink, never a compressed one (the
// header and metadata region is always uncompressed).
func (h Header) Encode(w *iobuf.Writer) error {
	if err := w.WriteInt64(Signature); err != nil {
		return err
	}
	if err := w.WriteUint8(h.Version); err != nil {
		return err
	}
	if err := w.WriteUint8(uint8(h.Compression)); err != nil {
		return err
	}
	if err := w.WriteInt64(h.NumRows); err != nil {
		return err
	}
	if err := w.WriteInt64(h.UCSize); err != nil {
		return err
	}
	if err := w.WriteInt32(int32(len(h.Schema.Columns))); err != nil {
		return err
	}

	for i, col := range h.Schema.Columns {
		nameBytes := []byte(col.Name)
		if err := w.WriteInt32(int32(len(nameBytes))); err != nil {
			return err
		}
		if err := w.WriteBytes(nameBytes); err != nil {
			return err
		}
		if err := w.WriteUint8(col.Type.TypeTag()); err != nil {
			return err
		}
		if err := w.WriteUint8(col.ValType.TypeTag()); err != nil {
			return err
		}
		if err := w.WriteUint8(col.KeyType.TypeTag()); err != nil {
			return err
		}

		st := h.Stats[i]
		if err := w.WriteInt32(st.DisplayWidth(col.Type)); err != nil {
			return err
		}
		if err := w.WriteInt64(st.NullCount); err != nil {
			return err
		}
		if err := w.WriteInt64(st.BadCount); err != nil {
			return err
		}
	}

	if err := w.WriteInt32(h.MetadataType); err != nil {
		return err
	}
	if err := w.WriteInt32(int32(len(h.Metadata))); err != nil {
		return err
	}

	return w.WriteBytes(h.Metadata)
}

// DecodeHeader reads a Header from r and returns it along with the exact
// number of bytes consumed, which the caller seeks the underlying file to
// before switching to a compressed reader for the value stream.
func DecodeHeader(r *iobuf.Reader) (Header, int64, error) {
	var h Header
	var n int64

	sig, err := r.ReadInt64()
	if err != nil {
		return h, 0, fmt.Errorf("section: decode header: %w", errs.ErrTruncatedHeader)
	}
	n += 8
	if sig != Signature {
		return h, 0, errs.ErrBadSignature
	}

	version, err := r.ReadUint8()
	if err != nil {
		return h, 0, fmt.Errorf("section: decode header: %w", errs.ErrTruncatedHeader)
	}
	n++
	if version > Version {
		return h, 0, fmt.Errorf("%w: file is version %d, this build supports up to %d", errs.ErrUnsupportedVersion, version, Version)
	}
	h.Version = version

	compByte, err := r.ReadUint8()
	if err != nil {
		return h, 0, fmt.Errorf("section: decode header: %w", errs.ErrTruncatedHeader)
	}
	n++
	h.Compression = compress.Kind(compByte)

	numRows, err := r.ReadInt64()
	if err != nil {
		return h, 0, fmt.Errorf("section: decode header: %w", errs.ErrTruncatedHeader)
	}
	n += 8
	h.NumRows = numRows

	ucSize, err := r.ReadInt64()
	if err != nil {
		return h, 0, fmt.Errorf("section: decode header: %w", errs.ErrTruncatedHeader)
	}
	n += 8
	h.UCSize = ucSize

	numCols, err := r.ReadInt32()
	if err != nil {
		return h, 0, fmt.Errorf("section: decode header: %w", errs.ErrTruncatedHeader)
	}
	n += 4

	h.Schema.Columns = make([]ColumnDescriptor, numCols)
	h.Stats = make([]ColumnStats, numCols)

	for i := int32(0); i < numCols; i++ {
		nameLen, err := r.ReadInt32()
		if err != nil {
			return h, 0, fmt.Errorf("section: decode header: %w", errs.ErrTruncatedHeader)
		}
		n += 4

		nameBytes := make([]byte, nameLen)
		if err := r.ReadBytes(nameBytes); err != nil {
			return h, 0, fmt.Errorf("section: decode header: %w", errs.ErrTruncatedHeader)
		}
		n += int64(nameLen)

		typeTag, err := r.ReadUint8()
		if err != nil {
			return h, 0, fmt.Errorf("section: decode header: %w", errs.ErrTruncatedHeader)
		}
		n++
		valTag, err := r.ReadUint8()
		if err != nil {
			return h, 0, fmt.Errorf("section: decode header: %w", errs.ErrTruncatedHeader)
		}
		n++
		keyTag, err := r.ReadUint8()
		if err != nil {
			return h, 0, fmt.Errorf("section: decode header: %w", errs.ErrTruncatedHeader)
		}
		n++

		displayWidth, err := r.ReadInt32()
		if err != nil {
			return h, 0, fmt.Errorf("section: decode header: %w", errs.ErrTruncatedHeader)
		}
		n += 4

		nullCount, err := r.ReadInt64()
		if err != nil {
			return h, 0, fmt.Errorf("section: decode header: %w", errs.ErrTruncatedHeader)
		}
		n += 8

		var badCount int64
		if version > 2 {
			badCount, err = r.ReadInt64()
			if err != nil {
				return h, 0, fmt.Errorf("section: decode header: %w", errs.ErrTruncatedHeader)
			}
			n += 8
		}

		h.Schema.Columns[i] = ColumnDescriptor{
			Name:    string(nameBytes),
			Type:    format.ColumnKind(typeTag),
			ValType: format.ColumnKind(valTag),
			KeyType: format.ColumnKind(keyTag),
		}
		h.Stats[i] = ColumnStats{
			MaxWidth:  displayWidth,
			NullCount: nullCount,
			BadCount:  badCount,
		}
	}

	metaType, err := r.ReadInt32()
	if err != nil {
		return h, 0, fmt.Errorf("section: decode header: %w", errs.ErrTruncatedHeader)
	}
	n += 4
	metaSize, err := r.ReadInt32()
	if err != nil {
		return h, 0, fmt.Errorf("section: decode header: %w", errs.ErrTruncatedHeader)
	}
	n += 4

	h.MetadataType = metaType
	if metaSize > 0 {
		h.Metadata = make([]byte, metaSize)
		if err := r.ReadBytes(h.Metadata); err != nil {
			return h, 0, fmt.Errorf("section: decode header: %w", errs.ErrTruncatedHeader)
		}
		n += int64(metaSize)
	}

	return h, n, nil
}
