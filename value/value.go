// Package value defines the in-memory representations ReadRow hands back
// for a row's cells, replacing the tagged C union with a Go struct that
// carries its own kind and presence.
package value

import "github.com/dkilmer/sorbet/format"

// Date is a calendar date. Its fields are plain ints, not bytes: the
// original C struct packed year into a uint8 and truncated any year past
// 255, which this representation does not reproduce.
type Date struct {
	Year  int
	Month int
	Day   int
}

// Time is a time of day with second resolution.
type Time struct {
	Hour   int
	Minute int
	Second int
}

// Cell holds one column's value for one row as read back by file.Reader.
// Exactly one of the typed fields is meaningful, selected by Kind; Valid is
// false for a column that was written as null, in which case the typed
// fields are zero.
type Cell struct {
	Kind  format.ColumnKind
	Valid bool

	Int      int32
	Long     int64
	Float    float32
	Double   float64
	Bool     bool
	Bytes    []byte // String and Binary both land here
	Date     Date
	Datetime int64 // producer-defined epoch; timeconv uses Unix microseconds
	Time     Time
}
