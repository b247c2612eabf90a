package pck

import (
	"fmt"
	"io"

	"github.com/lifegpc/circus-crx-tool/internal/binio"
)

// Reader parses a PCK archive's index and hands out bounded readers
// over individual entries without loading any payload into memory.
type Reader struct {
	src     io.ReadSeeker
	entries []Entry
}

// NewReader reads and cross-validates the short and long index tables
// at the start of src and returns a Reader positioned to serve
// individual entries on demand.
func NewReader(src io.ReadSeeker) (*Reader, error) {
	count, err := binio.ReadU32(src)
	if err != nil {
		return nil, fmt.Errorf("%w: read entry count: %v", ErrTruncatedHeader, err)
	}

	type offsetSize struct {
		offset, size uint32
	}
	short := make([]offsetSize, count)
	for i := range short {
		off, err := binio.ReadU32(src)
		if err != nil {
			return nil, fmt.Errorf("%w: short index %d: %v", ErrTruncatedHeader, i, err)
		}
		sz, err := binio.ReadU32(src)
		if err != nil {
			return nil, fmt.Errorf("%w: short index %d: %v", ErrTruncatedHeader, i, err)
		}
		short[i] = offsetSize{off, sz}
	}

	entries := make([]Entry, count)
	for i := range entries {
		name, err := binio.ReadCStringWithSize(src, NameFieldSize)
		if err != nil {
			return nil, fmt.Errorf("%w: long index %d name: %v", ErrTruncatedHeader, i, err)
		}
		off, err := binio.ReadU32(src)
		if err != nil {
			return nil, fmt.Errorf("%w: long index %d: %v", ErrTruncatedHeader, i, err)
		}
		sz, err := binio.ReadU32(src)
		if err != nil {
			return nil, fmt.Errorf("%w: long index %d: %v", ErrTruncatedHeader, i, err)
		}

		if short[i].offset != off || short[i].size != sz {
			return nil, &IndexMismatchError{
				Name:      name,
				Index:     i,
				ShortOff:  short[i].offset,
				ShortSize: short[i].size,
				LongOff:   off,
				LongSize:  sz,
			}
		}
		entries[i] = Entry{Name: name, Offset: off, Size: sz}
	}

	log.Debugf("parsed %d entries", len(entries))
	return &Reader{src: src, entries: entries}, nil
}

// Entries returns the archive's file table in on-disk order.
func (r *Reader) Entries() []Entry {
	return r.entries
}

// Open returns a bounded ReadSeeker over the i'th entry's payload. The
// reader is only valid until the next call to Open, since both share
// the archive's single underlying stream.
func (r *Reader) Open(i int) (*EntryReader, error) {
	if i < 0 || i >= len(r.entries) {
		return nil, fmt.Errorf("%w: entry index %d out of range", ErrInvalidInput, i)
	}
	return &EntryReader{src: r.src, entry: r.entries[i]}, nil
}

// EntryReader restricts reads and seeks to one entry's byte range
// within the archive's shared underlying stream.
type EntryReader struct {
	src   io.ReadSeeker
	entry Entry
	pos   uint32
}

func (e *EntryReader) Read(p []byte) (int, error) {
	remaining := e.entry.Size - e.pos
	if remaining == 0 {
		return 0, io.EOF
	}
	toRead := uint32(len(p))
	if toRead > remaining {
		toRead = remaining
	}
	if _, err := e.src.Seek(int64(e.entry.Offset+e.pos), io.SeekStart); err != nil {
		return 0, err
	}
	n, err := e.src.Read(p[:toRead])
	e.pos += uint32(n)
	return n, err
}

func (e *EntryReader) Seek(offset int64, whence int) (int64, error) {
	var newPos int64
	switch whence {
	case io.SeekStart:
		newPos = offset
	case io.SeekCurrent:
		newPos = int64(e.pos) + offset
	case io.SeekEnd:
		newPos = int64(e.entry.Size) + offset
	default:
		return 0, fmt.Errorf("%w: unknown whence %d", ErrInvalidInput, whence)
	}
	if newPos < 0 || newPos > int64(e.entry.Size) {
		return 0, fmt.Errorf("%w: seek position %d out of bounds for entry of size %d", ErrInvalidInput, newPos, e.entry.Size)
	}
	e.pos = uint32(newPos)
	return newPos, nil
}
