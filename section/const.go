package section

// Signature is the fixed 8-byte magic every sorbet file begins with, stored
// as the little-endian encoding of this value.
const Signature int64 = -3462219874698482482 // 0xCFF3B95E1A4CACCE

// Version is the file-format version this build writes. Readers accept any
// file whose version is <= Version.
const Version uint8 = 3

// versionBadCount is the first version whose per-column record includes the
// BadCount field on disk; earlier files synthesize BadCount=0 on read.
const versionBadCount uint8 = 3
