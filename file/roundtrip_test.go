package file

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkilmer/sorbet/compress"
	"github.com/dkilmer/sorbet/errs"
	"github.com/dkilmer/sorbet/format"
	"github.com/dkilmer/sorbet/internal/iobuf"
	"github.com/dkilmer/sorbet/section"
)

// TestUncompressedRoundTripHasExactSignatureBytes pins the on-disk byte
// layout of the signature: little-endian 0xCFF3B95E1A4CACCE.
func TestUncompressedRoundTripHasExactSignatureBytes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sig.sorbet")

	w, err := NewWriter(path, twoColSchema())
	require.NoError(t, err)

	id := int32(7)
	require.NoError(t, w.WriteInt(&id))
	require.NoError(t, w.WriteString([]byte("bob")))
	require.NoError(t, w.Close())

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(raw), 8)

	wantSig := []byte{0xCE, 0xAC, 0x4C, 0x1A, 0x5E, 0xB9, 0xF3, 0xCF}
	assert.Equal(t, wantSig, raw[:8])

	gotSig := int64(binary.LittleEndian.Uint64(raw[:8]))
	assert.Equal(t, section.Signature, gotSig)

	r, err := NewReader(path)
	require.NoError(t, err)
	defer func() { _ = r.Close() }()

	row, err := r.ReadRow()
	require.NoError(t, err)
	assert.Equal(t, int32(7), row[0].Int)
	assert.Equal(t, []byte("bob"), row[1].Bytes)
}

// TestGzipRoundTripPreservesHeaderRegion checks that a gzip-compressed file
// keeps its header region uncompressed, with the compression flag readable
// at byte offset 9, and that it round-trips its rows.
func TestGzipRoundTripPreservesHeaderRegion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gzip.sorbet")

	w, err := NewWriter(path, twoColSchema(), WithCompression(compress.Gzip))
	require.NoError(t, err)

	for i := int32(0); i < 3; i++ {
		v := i
		require.NoError(t, w.WriteInt(&v))
		require.NoError(t, w.WriteString([]byte("row")))
	}
	require.NoError(t, w.Close())

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(raw), 10)
	assert.Equal(t, uint8(compress.Gzip), raw[9])

	r, err := NewReader(path)
	require.NoError(t, err)
	defer func() { _ = r.Close() }()

	assert.Equal(t, int64(3), r.NumRows())

	for i := 0; i < 3; i++ {
		row, err := r.ReadRow()
		require.NoError(t, err)
		assert.Equal(t, int32(i), row[0].Int)
		assert.Equal(t, []byte("row"), row[1].Bytes)
	}
}

// TestNullCellUpdatesNullCountNotMaxStats checks that a null write advances
// NullCount but never touches the magnitude-max stat for that column.
func TestNullCellUpdatesNullCountNotMaxStats(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nulls.sorbet")
	schema := section.NewSchema(section.Column("v", format.Integer))

	w, err := NewWriter(path, schema)
	require.NoError(t, err)

	require.NoError(t, w.WriteInt(nil))
	v := int32(42)
	require.NoError(t, w.WriteInt(&v))
	require.NoError(t, w.Close())

	r, err := NewReader(path)
	require.NoError(t, err)
	defer func() { _ = r.Close() }()

	stats := r.Stats()
	require.Len(t, stats, 1)
	assert.Equal(t, int64(1), stats[0].NullCount)
	assert.Equal(t, int32(2), stats[0].MaxWidth) // display width: digits of 42

	_, ok, err := r.ReadInt()
	require.NoError(t, err)
	assert.False(t, ok)

	got, ok, err := r.ReadInt()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, int32(42), got)
}

// TestLargeBinaryCellSpansMultipleBuffers exercises a payload much larger
// than the 16,384-byte iobuf chunk size.
func TestLargeBinaryCellSpansMultipleBuffers(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bigbinary.sorbet")
	schema := section.NewSchema(section.Column("blob", format.Binary))

	payload := bytes.Repeat([]byte{0xAB}, 40000)

	w, err := NewWriter(path, schema)
	require.NoError(t, err)
	require.NoError(t, w.WriteBinary(payload))
	require.NoError(t, w.Close())

	r, err := NewReader(path)
	require.NoError(t, err)
	defer func() { _ = r.Close() }()

	got, ok, err := r.ReadBinary()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, payload, got)
}

// TestMetadataRoundTrips checks that an opaque metadata blob attached at
// open is recovered unchanged.
func TestMetadataRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "meta.sorbet")

	meta := []byte{0xDE, 0xAD, 0xBE, 0xEF}
	w, err := NewWriter(path, twoColSchema(), WithMetadata(99, meta))
	require.NoError(t, err)

	id := int32(1)
	require.NoError(t, w.WriteInt(&id))
	require.NoError(t, w.WriteString([]byte("x")))
	require.NoError(t, w.Close())

	h, _, err := decodeHeaderFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, int32(99), h.MetadataType)
	assert.Equal(t, meta, h.Metadata)
}

// TestVersion2FileSynthesizesZeroBadCount checks that a file written without
// a bad_count field (version 2 shape) decodes with BadCount 0 rather than
// failing.
func TestVersion2FileSynthesizesZeroBadCount(t *testing.T) {
	path := filepath.Join(t.TempDir(), "v2.sorbet")
	require.NoError(t, writeVersion2File(path))

	h, _, err := decodeHeaderFromPath(path)
	require.NoError(t, err)
	require.Len(t, h.Stats, 1)
	assert.Equal(t, int64(0), h.Stats[0].BadCount)
}

// TestLZ4AndZstdRoundTrip checks both remaining codecs round-trip rows.
func TestLZ4AndZstdRoundTrip(t *testing.T) {
	for _, kind := range []compress.Kind{compress.LZ4, compress.Zstd} {
		kind := kind
		t.Run(kind.String(), func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "codec.sorbet")

			w, err := NewWriter(path, twoColSchema(), WithCompression(kind))
			require.NoError(t, err)

			id := int32(5)
			require.NoError(t, w.WriteInt(&id))
			require.NoError(t, w.WriteString([]byte("compressed")))
			require.NoError(t, w.Close())

			r, err := NewReader(path)
			require.NoError(t, err)
			defer func() { _ = r.Close() }()

			row, err := r.ReadRow()
			require.NoError(t, err)
			assert.Equal(t, int32(5), row[0].Int)
			assert.Equal(t, []byte("compressed"), row[1].Bytes)
		})
	}
}

// TestSchemaFingerprintMismatchIsDetected is the file.Reader-level exercise
// of section.Schema.Fingerprint via WithExpectedSchema.
func TestSchemaFingerprintMismatchIsDetected(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fingerprint.sorbet")
	writeSimpleFile(t, path)

	_, err := NewReader(path, WithExpectedSchema(section.NewSchema(section.Column("different", format.Integer))))
	assert.ErrorIs(t, err, errs.ErrSchemaMismatch)
}

func decodeHeaderFromPath(path string) (section.Header, int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return section.Header{}, 0, err
	}
	defer func() { _ = f.Close() }()

	return section.DecodeHeader(iobuf.NewReader(f))
}

// writeVersion2File hand-encodes a minimal header in the pre-bad_count shape
// that a version 2 writer would have produced, to exercise the decode path's
// version gate without a version 2 writer implementation.
func writeVersion2File(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	w := iobuf.NewWriter(f, nil)

	if err := w.WriteInt64(section.Signature); err != nil {
		return err
	}
	if err := w.WriteUint8(2); err != nil { // version 2, no bad_count field
		return err
	}
	if err := w.WriteUint8(uint8(compress.None)); err != nil {
		return err
	}
	if err := w.WriteInt64(0); err != nil { // n_rows
		return err
	}
	if err := w.WriteInt64(0); err != nil { // uc_size
		return err
	}
	if err := w.WriteInt32(1); err != nil { // num_cols
		return err
	}

	name := []byte("v")
	if err := w.WriteInt32(int32(len(name))); err != nil {
		return err
	}
	if err := w.WriteBytes(name); err != nil {
		return err
	}
	if err := w.WriteUint8(format.Integer.TypeTag()); err != nil {
		return err
	}
	if err := w.WriteUint8(format.Null.TypeTag()); err != nil {
		return err
	}
	if err := w.WriteUint8(format.Null.TypeTag()); err != nil {
		return err
	}
	if err := w.WriteInt32(0); err != nil { // display_width
		return err
	}
	if err := w.WriteInt64(0); err != nil { // null_count
		return err
	}
	// no bad_count: this is the version-2 shape.

	if err := w.WriteInt32(0); err != nil { // metadata_type
		return err
	}
	if err := w.WriteInt32(0); err != nil { // metadata_size
		return err
	}

	return w.Flush()
}
