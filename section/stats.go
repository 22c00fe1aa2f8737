package section

import (
	"strconv"

	"github.com/dkilmer/sorbet/format"
)

// ColumnStats is the running per-column statistics a file.Writer maintains
// during streaming. A file.Reader restores NullCount and BadCount from the
// header and puts the column's stored display width in MaxWidth; the
// magnitude maxima are not stored on disk and read back as zero.
type ColumnStats struct {
	MaxWidth  int32
	NullCount int64
	BadCount  int64
	MaxInt    int32
	MaxLong   int64
	MaxFloat  float32
	MaxDouble float64
}

// UpdateInt records a non-null Integer write.
func (s *ColumnStats) UpdateInt(v int32) {
	if abs32(v) > s.MaxInt {
		s.MaxInt = abs32(v)
	}
}

// UpdateLong records a non-null Long write.
func (s *ColumnStats) UpdateLong(v int64) {
	if abs64(v) > s.MaxLong {
		s.MaxLong = abs64(v)
	}
}

// UpdateFloat records a non-null Float write.
func (s *ColumnStats) UpdateFloat(v float32) {
	if absF32(v) > s.MaxFloat {
		s.MaxFloat = absF32(v)
	}
}

// UpdateDouble records a non-null Double write.
func (s *ColumnStats) UpdateDouble(v float64) {
	if absF64(v) > s.MaxDouble {
		s.MaxDouble = absF64(v)
	}
}

// UpdateWidth records a non-null String/Binary write of the given byte
// length.
func (s *ColumnStats) UpdateWidth(n int32) {
	if n > s.MaxWidth {
		s.MaxWidth = n
	}
}

// IncrNull records a null write to this column.
func (s *ColumnStats) IncrNull() {
	s.NullCount++
}

// DisplayWidth derives the per-column formatting hint written at close: for
// numeric kinds, the decimal digit count of the magnitude maximum (using
// MaxDouble for Double, not MaxLong, a copy-paste bug in one draft of the
// original writer used the wrong field here); for String/Binary, MaxWidth;
// otherwise 0.
func (s ColumnStats) DisplayWidth(kind format.ColumnKind) int32 {
	switch kind {
	case format.Integer:
		return int32(len(strconv.FormatInt(int64(s.MaxInt), 10)))
	case format.Long:
		return int32(len(strconv.FormatInt(s.MaxLong, 10)))
	case format.Float:
		return int32(len(strconv.FormatInt(int64(s.MaxFloat), 10)))
	case format.Double:
		return int32(len(strconv.FormatInt(int64(s.MaxDouble), 10)))
	case format.String, format.Binary:
		return s.MaxWidth
	default:
		return 0
	}
}

func abs32(v int32) int32 {
	if v < 0 {
		return -v
	}

	return v
}

func abs64(v int64) int64 {
	if v < 0 {
		return -v
	}

	return v
}

func absF32(v float32) float32 {
	if v < 0 {
		return -v
	}

	return v
}

func absF64(v float64) float64 {
	if v < 0 {
		return -v
	}

	return v
}
