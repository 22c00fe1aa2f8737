// Package timeconv adapts time.Time to the pre-decomposed date/time values
// the core reads and writes. It sits outside the file/section/format import
// graph: nothing in the core depends on time.Time or any platform clock
// type, and a caller with a different epoch convention for Datetime is free
// to skip this package and encode int64 values directly.
package timeconv

import (
	"time"

	"github.com/dkilmer/sorbet/value"
)

// DateFromTime decomposes t, in its own location, into a value.Date.
func DateFromTime(t time.Time) value.Date {
	y, m, d := t.Date()

	return value.Date{Year: y, Month: int(m), Day: d}
}

// TimeFromTime decomposes t, in its own location, into a value.Time.
func TimeFromTime(t time.Time) value.Time {
	return value.Time{Hour: t.Hour(), Minute: t.Minute(), Second: t.Second()}
}

// DatetimeFromTime converts t to the int64 microseconds-since-Unix-epoch
// convention this package uses for Datetime columns. A producer that wants
// a different epoch convention should call file.Writer.WriteDatetime
// directly with its own int64 encoding instead of going through this
// function.
func DatetimeFromTime(t time.Time) int64 {
	return t.UnixMicro()
}
