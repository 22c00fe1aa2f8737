package compress

import "fmt"

// Kind identifies a value-stream compression algorithm. Its numeric values
// are the wire values stored in the header's compression flag byte.
type Kind uint8

const (
	// None stores the value stream uncompressed.
	None Kind = iota
	// Gzip compresses the value stream with DEFLATE.
	Gzip
	// LZ4 compresses the value stream with the LZ4 frame format.
	LZ4
	// Zstd compresses the value stream with Zstandard.
	Zstd

	numKinds
)

var kindNames = [numKinds]string{"none", "gzip", "lz4", "zstd"}

func (k Kind) String() string {
	if int(k) >= len(kindNames) {
		return fmt.Sprintf("compress.Kind(%d)", uint8(k))
	}

	return kindNames[k]
}

// Valid reports whether k is one of the recognized algorithms.
func (k Kind) Valid() bool {
	return k < numKinds
}
