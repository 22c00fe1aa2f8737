// Package format defines the column-kind enum and the per-value tag protocol
// shared by the writer and reader halves of the sorbet codec.
package format

import "fmt"

// ColumnKind identifies the declared type of a schema column, and by extension
// the wire shape of every cell written to that column.
type ColumnKind uint8

// nullTagOffset is added to a kind's type tag to produce its null tag. It must
// never change: files written by any version of this format rely on it.
const nullTagOffset = 90

const (
	Null ColumnKind = iota
	Integer
	Long
	Float
	Double
	Boolean
	String
	Binary
	Date
	Datetime
	Time

	// numKinds is one past the last kind this codec will ever emit.
	numKinds
)

// List and Map are reserved ordinals. A schema may not declare a column of
// either kind; they exist only so a future version of this package can add
// real container support without renumbering the kinds that already
// round-trip on disk.
const (
	List ColumnKind = numKinds
	Map  ColumnKind = numKinds + 1
)

var kindNames = [numKinds]string{
	Null:     "Null",
	Integer:  "Integer",
	Long:     "Long",
	Float:    "Float",
	Double:   "Double",
	Boolean:  "Boolean",
	String:   "String",
	Binary:   "Binary",
	Date:     "Date",
	Datetime: "Datetime",
	Time:     "Time",
}

// String returns the human-readable name of the kind, or "Unknown(n)" for an
// ordinal this codec doesn't recognize.
func (k ColumnKind) String() string {
	switch {
	case int(k) < len(kindNames):
		return kindNames[k]
	case k == List:
		return "List"
	case k == Map:
		return "Map"
	default:
		return fmt.Sprintf("Unknown(%d)", uint8(k))
	}
}

// Scalar reports whether k is one of the kinds this codec can read and write
// today. List and Map are valid ordinals but are not scalar.
func (k ColumnKind) Scalar() bool {
	return k < numKinds
}

// TypeTag returns the one-byte tag a present value of this kind is prefixed
// with on the wire.
func (k ColumnKind) TypeTag() uint8 {
	return uint8(k)
}

// NullTag returns the one-byte tag a null value of this kind is prefixed
// with on the wire. The offset of 90 is a fixed wire-format constant, not a
// tunable: existing files depend on it.
func (k ColumnKind) NullTag() uint8 {
	return uint8(k) + nullTagOffset
}

// KindFromTag recovers the null-ness of a tag byte read off the wire,
// validated against the kind the schema expects at this column. An ok=false
// result means the tag matched neither the expected type tag nor its null
// form, which the caller must treat as a protocol error.
func KindFromTag(tag uint8, expected ColumnKind) (isNull bool, ok bool) {
	switch tag {
	case expected.TypeTag():
		return false, true
	case expected.NullTag():
		return true, true
	default:
		return false, false
	}
}
