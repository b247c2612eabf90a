// Package pck implements the CIRCUS PCK flat archive container: a
// duplicated short/long index pair followed by a 0x800-aligned,
// growable header region holding concatenated file payloads.
package pck

// NameFieldSize is the fixed width, in bytes, of each entry's NUL
// padded name field in the long index.
const NameFieldSize = 0x38

// longEntrySize is the on-disk size of one long-index record: a
// NameFieldSize name plus a uint32 offset and a uint32 size.
const longEntrySize = NameFieldSize + 4 + 4

// shortEntrySize is the on-disk size of one short-index record: a
// uint32 offset and a uint32 size, with no name.
const shortEntrySize = 4 + 4

// headerAlign is the granularity that the growable header region is
// always padded and grown to.
const headerAlign = 0x800

// Entry describes one archived file: its name and its byte range in
// the underlying stream.
type Entry struct {
	Name   string
	Offset uint32
	Size   uint32
}

// entrySpace is the total header bytes one entry occupies across both
// the short and the long index tables.
const entrySpace = shortEntrySize + longEntrySize

// CalculateHeaderSize returns the smallest multiple of headerAlign
// that can hold fileCount entries in both the short and long index
// tables plus the leading count field.
func CalculateHeaderSize(fileCount int) uint32 {
	size := uint32(fileCount)*entrySpace + 4
	if rem := size % headerAlign; rem != 0 {
		size += headerAlign - rem
	}
	return size
}
