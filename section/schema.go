package section

import (
	"github.com/dkilmer/sorbet/errs"
	"github.com/dkilmer/sorbet/format"
	"github.com/dkilmer/sorbet/internal/hash"
)

// ColumnDescriptor describes one column of a Schema.
//
// ValType and KeyType reserve container-element typing for the List and Map
// kinds; scalar columns set both to format.Null.
type ColumnDescriptor struct {
	Name    string
	Type    format.ColumnKind
	ValType format.ColumnKind
	KeyType format.ColumnKind
}

// Column is a convenience constructor for a scalar ColumnDescriptor.
func Column(name string, kind format.ColumnKind) ColumnDescriptor {
	return ColumnDescriptor{Name: name, Type: kind, ValType: format.Null, KeyType: format.Null}
}

// Schema is the ordered, finite list of columns a file.Writer or file.Reader
// operates over.
type Schema struct {
	Columns []ColumnDescriptor
}

// NewSchema builds a Schema from columns, in order. It does not validate;
// call Validate explicitly, or rely on file.NewWriter to do so at open.
// file.NewReader does not validate the schema it recovers from a file.
func NewSchema(columns ...ColumnDescriptor) Schema {
	return Schema{Columns: columns}
}

// Validate reports whether s is acceptable for opening a file: at least one
// column, and no column declared with a reserved kind.
func (s Schema) Validate() error {
	if len(s.Columns) == 0 {
		return errs.ErrEmptySchema
	}
	for _, col := range s.Columns {
		if !col.Type.Scalar() {
			return errs.ErrReservedColumnKind
		}
	}

	return nil
}

// NumCols returns the number of columns in s.
func (s Schema) NumCols() int {
	return len(s.Columns)
}

// Fingerprint computes a deterministic 64-bit hash of s's shape: the
// ordered sequence of (Name, Type, ValType, KeyType) tuples. It is not part
// of the on-disk format; callers use it to cheaply compare a schema against
// another, e.g. to detect that a file was written against a schema the
// caller no longer expects.
func (s Schema) Fingerprint() uint64 {
	d := hash.NewDigest()
	for _, col := range s.Columns {
		d.WriteColumn(col.Name, col.Type.TypeTag(), col.ValType.TypeTag(), col.KeyType.TypeTag())
	}

	return d.Sum64()
}
