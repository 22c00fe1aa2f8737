// Package hash provides the xxHash64 primitive behind Schema.Fingerprint.
package hash

import "github.com/cespare/xxhash/v2"

// Digest accumulates a schema fingerprint over a sequence of column
// descriptors. Columns must be fed in declaration order: the fingerprint is
// a hash of the schema's shape, not a set membership test, so permuting two
// columns of the same type changes the result.
type Digest struct {
	d *xxhash.Digest
}

// NewDigest returns an empty Digest ready to accept columns.
func NewDigest() *Digest {
	return &Digest{d: xxhash.New()}
}

// WriteColumn folds one column's identity into the digest: its name and the
// three bytes that make up its declared kind.
func (f *Digest) WriteColumn(name string, kind, valKind, keyKind uint8) {
	_, _ = f.d.WriteString(name)
	_, _ = f.d.Write([]byte{0, kind, valKind, keyKind})
}

// Sum64 returns the accumulated fingerprint.
func (f *Digest) Sum64() uint64 {
	return f.d.Sum64()
}
