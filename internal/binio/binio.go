// Package binio provides the little-endian integer and fixed-width
// string primitives shared by the CRX codec and the PCK container.
package binio

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"unicode/utf8"
)

// ReadI16 reads a little-endian signed 16-bit integer.
func ReadI16(r io.Reader) (int16, error) {
	var buf [2]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, unexpectedEOF(err)
	}
	return int16(binary.LittleEndian.Uint16(buf[:])), nil
}

// ReadI32 reads a little-endian signed 32-bit integer.
func ReadI32(r io.Reader) (int32, error) {
	var buf [4]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, unexpectedEOF(err)
	}
	return int32(binary.LittleEndian.Uint32(buf[:])), nil
}

// ReadU32 reads a little-endian unsigned 32-bit integer.
func ReadU32(r io.Reader) (uint32, error) {
	var buf [4]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, unexpectedEOF(err)
	}
	return binary.LittleEndian.Uint32(buf[:]), nil
}

// WriteI16 writes a little-endian signed 16-bit integer.
func WriteI16(w io.Writer, v int16) error {
	var buf [2]byte
	binary.LittleEndian.PutUint16(buf[:], uint16(v))
	_, err := w.Write(buf[:])
	return err
}

// WriteI32 writes a little-endian signed 32-bit integer.
func WriteI32(w io.Writer, v int32) error {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], uint32(v))
	_, err := w.Write(buf[:])
	return err
}

// WriteU32 writes a little-endian unsigned 32-bit integer.
func WriteU32(w io.Writer, v uint32) error {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], v)
	_, err := w.Write(buf[:])
	return err
}

// ReadCStringWithSize reads exactly n bytes and returns the UTF-8
// prefix up to (but excluding) the first NUL byte, or the whole
// buffer if no NUL is present.
func ReadCStringWithSize(r io.Reader, n int) (string, error) {
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return "", unexpectedEOF(err)
	}

	if idx := bytes.IndexByte(buf, 0); idx >= 0 {
		buf = buf[:idx]
	}

	if !utf8.Valid(buf) {
		return "", fmt.Errorf("binio: invalid UTF-8 in fixed-size string field: %w", ErrInvalidData)
	}
	return string(buf), nil
}

// WriteCStringWithSize encodes s as UTF-8, writes it followed by
// zero-padding up to n bytes total. It fails if s does not fit.
func WriteCStringWithSize(w io.Writer, s string, n int) error {
	b := []byte(s)
	if len(b) > n {
		return fmt.Errorf("binio: string %q (%d bytes) exceeds field size %d: %w", s, len(b), n, ErrInvalidInput)
	}

	buf := make([]byte, n)
	copy(buf, b)
	_, err := w.Write(buf)
	return err
}

func unexpectedEOF(err error) error {
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		return io.ErrUnexpectedEOF
	}
	return err
}
