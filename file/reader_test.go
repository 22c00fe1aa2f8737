package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkilmer/sorbet/errs"
	"github.com/dkilmer/sorbet/format"
	"github.com/dkilmer/sorbet/section"
)

func writeJunkFile(path string) error {
	return os.WriteFile(path, []byte("not a sorbet file, just sixteen junk bytes"), 0o600)
}

func writeSimpleFile(t *testing.T, path string) {
	t.Helper()

	w, err := NewWriter(path, twoColSchema())
	require.NoError(t, err)

	id := int32(1)
	require.NoError(t, w.WriteInt(&id))
	require.NoError(t, w.WriteString([]byte("alice")))

	require.NoError(t, w.Close())
}

func TestReaderRejectsReadsPastRowCount(t *testing.T) {
	path := filepath.Join(t.TempDir(), "onerow.sorbet")
	writeSimpleFile(t, path)

	r, err := NewReader(path)
	require.NoError(t, err)
	defer func() { _ = r.Close() }()

	row, err := r.ReadRow()
	require.NoError(t, err)
	require.Len(t, row, 2)

	_, err = r.ReadRow()
	assert.ErrorIs(t, err, errs.ErrRowsExhausted)
}

func TestReaderRejectsReadsAfterClose(t *testing.T) {
	path := filepath.Join(t.TempDir(), "closed.sorbet")
	writeSimpleFile(t, path)

	r, err := NewReader(path)
	require.NoError(t, err)
	require.NoError(t, r.Close())

	_, err = r.ReadRow()
	assert.ErrorIs(t, err, errs.ErrReaderClosed)
}

func TestReaderDetectsBadSignature(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notsorbet.sorbet")
	require.NoError(t, writeJunkFile(path))

	_, err := NewReader(path)
	assert.ErrorIs(t, err, errs.ErrBadSignature)
}

func TestWithExpectedSchemaRejectsMismatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schema.sorbet")
	writeSimpleFile(t, path)

	other := section.NewSchema(section.Column("id", format.Long))
	_, err := NewReader(path, WithExpectedSchema(other))
	assert.ErrorIs(t, err, errs.ErrSchemaMismatch)
}

func TestWithExpectedSchemaAcceptsMatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schema-ok.sorbet")
	writeSimpleFile(t, path)

	r, err := NewReader(path, WithExpectedSchema(twoColSchema()))
	require.NoError(t, err)
	require.NoError(t, r.Close())
}
