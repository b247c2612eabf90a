package crx_test

import (
	"encoding/binary"
	"io"

	"github.com/klauspost/compress/flate"
)

func writeI16(w io.Writer, v int16) {
	var buf [2]byte
	binary.LittleEndian.PutUint16(buf[:], uint16(v))
	w.Write(buf[:])
}

func writeI32(w io.Writer, v int32) {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], uint32(v))
	w.Write(buf[:])
}

func newFlateWriter(w io.Writer) (*flate.Writer, error) {
	return flate.NewWriter(w, flate.DefaultCompression)
}
