package pck

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput is returned for a seek that falls outside an
	// entry's bounds and for an entry index that is out of range.
	ErrInvalidInput = errors.New("pck: invalid input")
	// ErrTruncatedHeader is returned when the file ends before the
	// index tables it promised to hold have been fully read.
	ErrTruncatedHeader = errors.New("pck: truncated header")
	// ErrEntryNameTooLong is returned by AddFile for a name that does
	// not fit in the fixed 0x38-byte name field.
	ErrEntryNameTooLong = errors.New("pck: entry name too long")
)

// IndexMismatchError reports that the short offset/size table and the
// long name/offset/size table disagree for a given entry, which would
// otherwise silently corrupt every read past that point.
type IndexMismatchError struct {
	Name      string
	Index     int
	ShortOff  uint32
	ShortSize uint32
	LongOff   uint32
	LongSize  uint32
}

func (e *IndexMismatchError) Error() string {
	return fmt.Sprintf("pck: index mismatch for entry %d (%q): short=(%d,%d) long=(%d,%d)",
		e.Index, e.Name, e.ShortOff, e.ShortSize, e.LongOff, e.LongSize)
}
