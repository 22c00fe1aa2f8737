// Package section defines the on-disk layout of a sorbet file's
// uncompressed region: the signature, version, compression flag, schema,
// and per-column statistics that make up Header, plus the Schema and
// ColumnStats types a file.Writer mutates while streaming and a
// file.Reader restores from disk.
//
// # Layout
//
//	[0..8)   int64  signature
//	[8..9)   uint8  version
//	[9..10)  uint8  compression flag
//	[10..18) int64  n_rows
//	[18..26) int64  uc_size
//	[26..30) int32  numCols
//	for each column:
//	   int32 name_len, name bytes, uint8 type/valType/keyType,
//	   int32 display_width, int64 null_count,
//	   int64 bad_count (only when version > 2)
//	int32 metadata_type, int32 metadata_size, metadata bytes
//
// Unlike a fixed-size header, Header.Encode and DecodeHeader stream
// directly against internal/iobuf rather than through a byte-slice Parse,
// since the schema's column count and name lengths make the header's size
// variable, so there's no fixed HeaderSize to allocate a buffer for.
package section
