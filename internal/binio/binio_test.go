package binio_test

import (
	"bytes"
	"io"
	"testing"

	"github.com/lifegpc/circus-crx-tool/internal/binio"
	"github.com/stretchr/testify/require"
)

func TestReadWriteRoundTrip(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, binio.WriteI16(&buf, -1234))
	require.NoError(t, binio.WriteI32(&buf, -98765))
	require.NoError(t, binio.WriteU32(&buf, 0xDEADBEEF))

	i16, err := binio.ReadI16(&buf)
	require.NoError(t, err)
	require.EqualValues(t, -1234, i16)

	i32, err := binio.ReadI32(&buf)
	require.NoError(t, err)
	require.EqualValues(t, -98765, i32)

	u32, err := binio.ReadU32(&buf)
	require.NoError(t, err)
	require.EqualValues(t, 0xDEADBEEF, u32)
}

func TestReadShortBufferFailsUnexpectedEOF(t *testing.T) {
	r := bytes.NewReader([]byte{0x01})
	_, err := binio.ReadI16(r)
	require.ErrorIs(t, err, io.ErrUnexpectedEOF)
}

func TestCStringRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, binio.WriteCStringWithSize(&buf, "a.bin", 0x38))
	require.Equal(t, 0x38, buf.Len())

	name, err := binio.ReadCStringWithSize(&buf, 0x38)
	require.NoError(t, err)
	require.Equal(t, "a.bin", name)
}

func TestCStringNoTerminatorUsesWholeBuffer(t *testing.T) {
	buf := bytes.NewReader(bytes.Repeat([]byte("x"), 8))
	name, err := binio.ReadCStringWithSize(buf, 8)
	require.NoError(t, err)
	require.Equal(t, "xxxxxxxx", name)
}

func TestCStringOversizeFails(t *testing.T) {
	var buf bytes.Buffer
	err := binio.WriteCStringWithSize(&buf, "this name is far too long for the field", 8)
	require.ErrorIs(t, err, binio.ErrInvalidInput)
}

func TestCStringInvalidUTF8Fails(t *testing.T) {
	buf := bytes.NewReader([]byte{0xff, 0xfe, 0x00, 0x00})
	_, err := binio.ReadCStringWithSize(buf, 4)
	require.ErrorIs(t, err, binio.ErrInvalidData)
}
