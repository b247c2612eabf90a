package pck

import (
	"fmt"
	"io"

	"github.com/lifegpc/circus-crx-tool/internal/binio"
)

// Writer builds a PCK archive into dst, growing the header region in
// place as entries are added: relocate the payload region forward by
// one alignment step rather than rewriting the whole file.
type Writer struct {
	dst           io.ReadWriteSeeker
	entries       []Entry
	headerMaxSize uint32
}

// NewWriter creates a Writer over dst, which must already be
// positioned for writing from byte 0 (callers typically pass a
// truncated, newly created file). headerMaxSize is the initial header
// region size, typically from CalculateHeaderSize for an expected
// entry count.
func NewWriter(dst io.ReadWriteSeeker, headerMaxSize uint32) *Writer {
	return &Writer{dst: dst, headerMaxSize: headerMaxSize}
}

// AddFile reserves a new entry named name, placed immediately after
// the previous entry's payload (or at the start of the payload region
// for the first entry), and returns a writer for its bytes.
func (w *Writer) AddFile(name string) (*EntryWriter, error) {
	if len(name) > NameFieldSize {
		return nil, fmt.Errorf("%w: %q is %d bytes, limit is %d", ErrEntryNameTooLong, name, len(name), NameFieldSize)
	}

	offset := w.headerMaxSize
	if n := len(w.entries); n > 0 {
		last := w.entries[n-1]
		offset = last.Offset + last.Size
	}

	w.entries = append(w.entries, Entry{Name: name, Offset: offset, Size: 0})
	if err := w.growHeaderIfNeeded(); err != nil {
		return nil, err
	}

	return &EntryWriter{w: w, index: len(w.entries) - 1}, nil
}

// growHeaderIfNeeded relocates the payload region forward by
// headerAlign bytes once the index tables would no longer fit in the
// current header region. The relocation reads one buffer ahead of
// where it writes so the same underlying file can be used as both
// source and destination without clobbering data still to be moved:
// the first buffer written is headerAlign zero bytes, which just
// reclaims the space freed by the extension, and every buffer after
// that is the real payload data read one step earlier.
func (w *Writer) growHeaderIfNeeded() error {
	if uint32(len(w.entries))*entrySpace+4 < w.headerMaxSize {
		return nil
	}

	if _, err := w.dst.Seek(int64(w.headerMaxSize), io.SeekStart); err != nil {
		return err
	}

	var buf1, buf2 [headerAlign]byte
	buf1Len := headerAlign
	writeAt := int64(w.headerMaxSize)

	for {
		n, err := readOnce(w.dst, buf2[:])
		if err != nil {
			return err
		}

		if _, err := w.dst.Seek(writeAt, io.SeekStart); err != nil {
			return err
		}
		if _, err := w.dst.Write(buf1[:buf1Len]); err != nil {
			return err
		}
		writeAt += int64(buf1Len)

		buf1Len = n
		buf1, buf2 = buf2, buf1

		if n == 0 {
			break
		}
	}

	for i := range w.entries {
		w.entries[i].Offset += headerAlign
	}
	w.headerMaxSize += headerAlign

	log.Debugf("grew header region to 0x%X bytes", w.headerMaxSize)
	return nil
}

// readOnce issues a single Read call and normalizes io.EOF into a nil
// error with the byte count Read already reported, matching the
// single-read-per-iteration shape the relocation loop depends on.
func readOnce(r io.Reader, buf []byte) (int, error) {
	n, err := r.Read(buf)
	if err != nil && err != io.EOF {
		return n, err
	}
	return n, nil
}

// WriteHeader serializes the entry count, the short index, and the
// long index at the start of dst. It must be called once, after every
// entry has been fully written, and before the archive is considered
// complete.
func (w *Writer) WriteHeader() error {
	if _, err := w.dst.Seek(0, io.SeekStart); err != nil {
		return err
	}
	if err := binio.WriteU32(w.dst, uint32(len(w.entries))); err != nil {
		return err
	}
	for _, e := range w.entries {
		if err := binio.WriteU32(w.dst, e.Offset); err != nil {
			return err
		}
		if err := binio.WriteU32(w.dst, e.Size); err != nil {
			return err
		}
	}
	for _, e := range w.entries {
		if err := binio.WriteCStringWithSize(w.dst, e.Name, NameFieldSize); err != nil {
			return err
		}
		if err := binio.WriteU32(w.dst, e.Offset); err != nil {
			return err
		}
		if err := binio.WriteU32(w.dst, e.Size); err != nil {
			return err
		}
	}
	if f, ok := w.dst.(interface{ Sync() error }); ok {
		return f.Sync()
	}
	return nil
}

// EntryWriter appends bytes to one reserved entry's payload region,
// always writing immediately after the bytes already written for that
// entry.
type EntryWriter struct {
	w     *Writer
	index int
}

func (ew *EntryWriter) Write(p []byte) (int, error) {
	e := &ew.w.entries[ew.index]
	if _, err := ew.w.dst.Seek(int64(e.Offset+e.Size), io.SeekStart); err != nil {
		return 0, err
	}
	n, err := ew.w.dst.Write(p)
	e.Size += uint32(n)
	return n, err
}
