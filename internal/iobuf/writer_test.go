package iobuf

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriterSmallWritesAccumulateUntilFlush(t *testing.T) {
	var sink bytes.Buffer
	w := NewWriter(&sink, nil)

	require.NoError(t, w.WriteUint8(1))
	require.NoError(t, w.WriteInt32(2))
	assert.Equal(t, 0, sink.Len(), "nothing should reach the sink before a flush or a full buffer")

	require.NoError(t, w.Flush())
	assert.Equal(t, 5, sink.Len())
}

func TestWriterSpansMultipleBuffers(t *testing.T) {
	var sink bytes.Buffer
	w := NewWriter(&sink, nil)

	payload := bytes.Repeat([]byte{0xAB}, Size*2+100)
	require.NoError(t, w.WriteBytes(payload))
	require.NoError(t, w.Flush())

	assert.Equal(t, payload, sink.Bytes())
}

func TestWriterTracksUncompressedSizeAcrossSinkSwap(t *testing.T) {
	var ucSize int64
	var sinkA, sinkB bytes.Buffer
	w := NewWriter(&sinkA, &ucSize)

	require.NoError(t, w.WriteBytes([]byte("header")))
	require.NoError(t, w.Flush())

	w.Reset(&sinkB)
	require.NoError(t, w.WriteBytes([]byte("values")))
	require.NoError(t, w.Flush())

	assert.Equal(t, int64(len("header")+len("values")), ucSize)
	assert.Equal(t, "header", sinkA.String())
	assert.Equal(t, "values", sinkB.String())
}

func TestWriterPrimitivesRoundTripLittleEndian(t *testing.T) {
	var sink bytes.Buffer
	w := NewWriter(&sink, nil)

	require.NoError(t, w.WriteInt32(-7))
	require.NoError(t, w.Flush())

	assert.Equal(t, []byte{0xF9, 0xFF, 0xFF, 0xFF}, sink.Bytes())
}
