package pck_test

import (
	"bytes"
	"io"
	"testing"

	"github.com/lifegpc/circus-crx-tool/internal/pck"
	"github.com/stretchr/testify/require"
)

// memFile adapts a growable in-memory buffer to io.ReadWriteSeeker,
// the way *os.File behaves for the writer under test.
type memFile struct {
	buf []byte
	pos int64
}

func (m *memFile) Read(p []byte) (int, error) {
	if m.pos >= int64(len(m.buf)) {
		return 0, io.EOF
	}
	n := copy(p, m.buf[m.pos:])
	m.pos += int64(n)
	return n, nil
}

func (m *memFile) Write(p []byte) (int, error) {
	end := m.pos + int64(len(p))
	if end > int64(len(m.buf)) {
		grown := make([]byte, end)
		copy(grown, m.buf)
		m.buf = grown
	}
	copy(m.buf[m.pos:end], p)
	m.pos = end
	return len(p), nil
}

func (m *memFile) Seek(offset int64, whence int) (int64, error) {
	var newPos int64
	switch whence {
	case io.SeekStart:
		newPos = offset
	case io.SeekCurrent:
		newPos = m.pos + offset
	case io.SeekEnd:
		newPos = int64(len(m.buf)) + offset
	}
	m.pos = newPos
	return newPos, nil
}

func TestWriteThenReadRoundTrip(t *testing.T) {
	f := &memFile{}
	w := pck.NewWriter(f, pck.CalculateHeaderSize(2))

	fw1, err := w.AddFile("one.dat")
	require.NoError(t, err)
	_, err = fw1.Write([]byte("hello world"))
	require.NoError(t, err)

	fw2, err := w.AddFile("two.dat")
	require.NoError(t, err)
	_, err = fw2.Write([]byte("second file payload"))
	require.NoError(t, err)

	require.NoError(t, w.WriteHeader())

	r, err := pck.NewReader(bytes.NewReader(f.buf))
	require.NoError(t, err)
	require.Len(t, r.Entries(), 2)
	require.Equal(t, "one.dat", r.Entries()[0].Name)
	require.Equal(t, "two.dat", r.Entries()[1].Name)

	er0, err := r.Open(0)
	require.NoError(t, err)
	data, err := io.ReadAll(er0)
	require.NoError(t, err)
	require.Equal(t, "hello world", string(data))

	er1, err := r.Open(1)
	require.NoError(t, err)
	data, err = io.ReadAll(er1)
	require.NoError(t, err)
	require.Equal(t, "second file payload", string(data))
}

func TestHeaderGrowsAcrossAlignment(t *testing.T) {
	f := &memFile{}
	// A single-entry initial capacity forces growth once more entries
	// are added than the short+long tables can hold in 0x800 bytes.
	w := pck.NewWriter(f, pck.CalculateHeaderSize(1))

	const fileCount = 40 // 40 * 0x50 + 4 > 0x800, forcing at least one grow
	for i := 0; i < fileCount; i++ {
		fw, err := w.AddFile("f")
		require.NoError(t, err)
		_, err = fw.Write([]byte{byte(i), byte(i + 1), byte(i + 2)})
		require.NoError(t, err)
	}
	require.NoError(t, w.WriteHeader())

	r, err := pck.NewReader(bytes.NewReader(f.buf))
	require.NoError(t, err)
	require.Len(t, r.Entries(), fileCount)

	for i := 0; i < fileCount; i++ {
		er, err := r.Open(i)
		require.NoError(t, err)
		data, err := io.ReadAll(er)
		require.NoError(t, err)
		require.Equal(t, []byte{byte(i), byte(i + 1), byte(i + 2)}, data)
	}
}

func TestEntryReaderRejectsOutOfBoundsSeek(t *testing.T) {
	f := &memFile{}
	w := pck.NewWriter(f, pck.CalculateHeaderSize(1))
	fw, err := w.AddFile("x")
	require.NoError(t, err)
	_, err = fw.Write([]byte("abc"))
	require.NoError(t, err)
	require.NoError(t, w.WriteHeader())

	r, err := pck.NewReader(bytes.NewReader(f.buf))
	require.NoError(t, err)
	er, err := r.Open(0)
	require.NoError(t, err)

	_, err = er.Seek(100, io.SeekStart)
	require.ErrorIs(t, err, pck.ErrInvalidInput)

	_, err = er.Seek(-1, io.SeekStart)
	require.ErrorIs(t, err, pck.ErrInvalidInput)
}

func TestReaderRejectsIndexMismatch(t *testing.T) {
	var buf bytes.Buffer
	writeU32(&buf, 1)
	// short index claims size 10
	writeU32(&buf, 0x800)
	writeU32(&buf, 10)
	// long index disagrees: size 20
	name := make([]byte, pck.NameFieldSize)
	copy(name, "broken")
	buf.Write(name)
	writeU32(&buf, 0x800)
	writeU32(&buf, 20)

	_, err := pck.NewReader(bytes.NewReader(buf.Bytes()))
	require.Error(t, err)
	var mismatch *pck.IndexMismatchError
	require.ErrorAs(t, err, &mismatch)
	require.Equal(t, "broken", mismatch.Name)
}
