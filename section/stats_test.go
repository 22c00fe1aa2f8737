package section

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dkilmer/sorbet/format"
)

func TestUpdateIntTracksMagnitudeMax(t *testing.T) {
	var s ColumnStats
	s.UpdateInt(7)
	s.UpdateInt(-4)
	assert.Equal(t, int32(7), s.MaxInt)
}

func TestUpdateWidthTracksLongestString(t *testing.T) {
	var s ColumnStats
	s.UpdateWidth(5)
	s.UpdateWidth(3)
	assert.Equal(t, int32(5), s.MaxWidth)
}

func TestIncrNull(t *testing.T) {
	var s ColumnStats
	s.IncrNull()
	s.IncrNull()
	assert.Equal(t, int64(2), s.NullCount)
}

func TestDisplayWidthUsesMaxDoubleNotMaxLong(t *testing.T) {
	s := ColumnStats{MaxLong: 123456789, MaxDouble: 42}
	assert.Equal(t, int32(2), s.DisplayWidth(format.Double))
}

func TestDisplayWidthForStringUsesMaxWidth(t *testing.T) {
	s := ColumnStats{MaxWidth: 5}
	assert.Equal(t, int32(5), s.DisplayWidth(format.String))
}

func TestDisplayWidthZeroForOtherKinds(t *testing.T) {
	s := ColumnStats{}
	assert.Equal(t, int32(0), s.DisplayWidth(format.Boolean))
}
