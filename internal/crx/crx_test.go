package crx_test

import (
	"bytes"
	"image"
	"image/color"
	"testing"

	"github.com/lifegpc/circus-crx-tool/internal/crx"
	"github.com/stretchr/testify/require"
)

// buildRaw assembles a minimal version-2 CRX stream with a pre-built
// decompressed payload, compressing it with flate so the explicit
// payload-size path and the deflate decompression path are both
// exercised in the same helper.
func buildRaw(t *testing.T, width, height, bpp int16, decompressed []byte) []byte {
	t.Helper()

	var flatePayload bytes.Buffer
	fw, err := newFlateWriter(&flatePayload)
	require.NoError(t, err)
	_, err = fw.Write(decompressed)
	require.NoError(t, err)
	require.NoError(t, fw.Close())

	var out bytes.Buffer
	writeI32(&out, 0x47585243)
	writeI16(&out, 0)       // inner_x
	writeI16(&out, 0)       // inner_y
	writeI16(&out, width)
	writeI16(&out, height)
	writeI16(&out, 2) // version
	writeI16(&out, 0x10) // flags: explicit size
	writeI16(&out, bpp)
	writeI16(&out, 0) // unknown
	writeI32(&out, int32(flatePayload.Len()))
	out.Write(flatePayload.Bytes())
	return out.Bytes()
}

func TestDecodeLiteralRGBTwoByOne(t *testing.T) {
	// width=2 height=1, mode 0 (left predictor): first pixel literal
	// BGR (10,20,30), second pixel is a delta of (1,1,1) in BGR space.
	payload := []byte{
		crx.RowLeft,
		10, 20, 30,
		1, 1, 1,
	}
	raw := buildRaw(t, 2, 1, 0, payload)

	img, err := crx.Decode(bytes.NewReader(raw), int64(len(raw)))
	require.NoError(t, err)
	require.Equal(t, []byte{crx.RowLeft}, img.RowModes)

	// BGR(10,20,30) -> RGB(30,20,10); second pixel BGR(11,21,31) -> RGB(31,21,11)
	require.Equal(t, []byte{30, 20, 10, 31, 21, 11}, img.Pixels)
}

func TestDecodeRGBAOneByTwoAlphaComplement(t *testing.T) {
	// width=1 height=2, bpp=1 (RGBA/ABGR). Row0 mode 0 literal ABGR
	// (alpha=0, b=1,g=2,r=3). Row1 mode 1 (top predictor) delta all zero.
	payload := []byte{
		crx.RowLeft,
		0, 1, 2, 3,
		crx.RowTop,
		0, 0, 0, 0,
	}
	raw := buildRaw(t, 1, 2, 1, payload)

	img, err := crx.Decode(bytes.NewReader(raw), int64(len(raw)))
	require.NoError(t, err)
	require.Equal(t, []byte{crx.RowLeft, crx.RowTop}, img.RowModes)

	// ABGR(0,1,2,3) -> RGBA(r=3,g=2,b=1,a=255-0=255)
	row0 := []byte{3, 2, 1, 255}
	row1 := []byte{3, 2, 1, 255}
	require.Equal(t, append(append([]byte{}, row0...), row1...), img.Pixels)
}

func TestDecodeEncodeRoundTripAllModes(t *testing.T) {
	width, height := 4, 5

	var payload bytes.Buffer
	// row 0: mode 0 (left)
	payload.WriteByte(crx.RowLeft)
	payload.Write([]byte{1, 2, 3, 1, 1, 1, 2, 2, 2, 3, 3, 3})
	// row 1: mode 1 (top, all pixels)
	payload.WriteByte(crx.RowTop)
	payload.Write([]byte{0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0})
	// row 2: mode 4 (per-channel RLE): each channel literal run
	payload.WriteByte(crx.RowRLE)
	payload.Write([]byte{5, 5, 3, 6, 6, 3, 7, 7, 3})
	// row 3: mode 2 (top, first pixel literal)
	payload.WriteByte(crx.RowTopLiteralFirst)
	payload.Write([]byte{9, 9, 9, 0, 0, 0, 0, 0, 0, 0, 0, 0})
	// row 4: mode 3 (top-right, last pixel literal)
	payload.WriteByte(crx.RowTopRight)
	payload.Write([]byte{0, 0, 0, 0, 0, 0, 0, 0, 0, 1, 2, 3})

	raw := buildRaw(t, int16(width), int16(height), 0, payload.Bytes())
	img, err := crx.Decode(bytes.NewReader(raw), int64(len(raw)))
	require.NoError(t, err)
	require.Len(t, img.RowModes, height)

	var encoded bytes.Buffer
	require.NoError(t, img.Encode(&encoded))

	roundTrip, err := crx.Decode(bytes.NewReader(encoded.Bytes()), int64(encoded.Len()))
	require.NoError(t, err)
	require.Equal(t, img.Pixels, roundTrip.Pixels)
	require.Equal(t, img.RowModes, roundTrip.RowModes)
}

func TestDecodeInvalidMagic(t *testing.T) {
	var out bytes.Buffer
	writeI32(&out, 0x12345678)
	_, err := crx.Decode(&out, int64(out.Len()))
	require.ErrorIs(t, err, crx.ErrInvalidMagic)
}

func TestDecodeNonPositiveDimensions(t *testing.T) {
	raw := buildRaw(t, 0, 1, 0, []byte{crx.RowLeft, 0, 0, 0})
	_, err := crx.Decode(bytes.NewReader(raw), int64(len(raw)))
	require.ErrorIs(t, err, crx.ErrInvalidDimensions)
}

func TestImportRejectsDimensionMismatch(t *testing.T) {
	raw := buildRaw(t, 2, 1, 0, []byte{crx.RowLeft, 1, 2, 3, 0, 0, 0})
	img, err := crx.Decode(bytes.NewReader(raw), int64(len(raw)))
	require.NoError(t, err)
	originalPixels := append([]byte{}, img.Pixels...)

	src := image.NewNRGBA(image.Rect(0, 0, 3, 3))
	err = img.Import(src)
	require.ErrorIs(t, err, crx.ErrDimensionMismatch)
	require.Equal(t, originalPixels, img.Pixels)
}

func TestImportThenEncodeThenDecodeRecoversPixels(t *testing.T) {
	raw := buildRaw(t, 2, 2, 1, []byte{
		crx.RowLeft, 0, 0, 0, 0, 0, 0, 0, 0,
		crx.RowTop, 0, 0, 0, 0, 0, 0, 0, 0,
	})
	img, err := crx.Decode(bytes.NewReader(raw), int64(len(raw)))
	require.NoError(t, err)

	src := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	src.SetNRGBA(0, 0, color.NRGBA{R: 10, G: 20, B: 30, A: 255})
	src.SetNRGBA(1, 0, color.NRGBA{R: 40, G: 50, B: 60, A: 128})
	src.SetNRGBA(0, 1, color.NRGBA{R: 70, G: 80, B: 90, A: 64})
	src.SetNRGBA(1, 1, color.NRGBA{R: 1, G: 2, B: 3, A: 4})

	require.NoError(t, img.Import(src))

	var encoded bytes.Buffer
	require.NoError(t, img.Encode(&encoded))

	decoded, err := crx.Decode(bytes.NewReader(encoded.Bytes()), int64(encoded.Len()))
	require.NoError(t, err)
	require.Equal(t, img.Pixels, decoded.Pixels)
}
