package crx

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/zstd"
)

var zstdMagic = []byte{0x28, 0xB5, 0x2F, 0xFD}

func isZstdFrame(payload []byte) bool {
	return bytes.HasPrefix(payload, zstdMagic)
}

func decompress(payload []byte) ([]byte, error) {
	if isZstdFrame(payload) {
		dec, err := zstd.NewReader(bytes.NewReader(payload))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrDecompressionFailed, err)
		}
		defer dec.Close()

		out, err := io.ReadAll(dec)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrDecompressionFailed, err)
		}
		return out, nil
	}

	fr := flate.NewReader(bytes.NewReader(payload))
	defer fr.Close()

	out, err := io.ReadAll(fr)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecompressionFailed, err)
	}
	return out, nil
}

// compress always produces a Zstandard frame, regardless of whether the
// source image was originally deflate- or Zstandard-compressed.
func compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	enc, err := zstd.NewWriter(&buf)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecompressionFailed, err)
	}
	if _, err := enc.Write(data); err != nil {
		enc.Close()
		return nil, fmt.Errorf("%w: %v", ErrDecompressionFailed, err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecompressionFailed, err)
	}
	return buf.Bytes(), nil
}
