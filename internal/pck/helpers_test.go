package pck_test

import (
	"encoding/binary"
	"io"
)

func writeU32(w io.Writer, v uint32) {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], v)
	w.Write(buf[:])
}
