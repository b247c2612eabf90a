// Package crx implements the CIRCUS CRX raster image container: header
// parsing, the row-predictor codec wrapping a deflate or Zstandard
// payload, and the matching encoder used by the import path.
package crx

// Magic is the little-endian i32 value of the four bytes "CRXG".
const Magic int32 = 0x47585243

// Flag bits within Header.Flags.
const (
	flagsModeMask  = 0x0F
	flagExplicitSz = 0x10
)

// Row predictor modes.
const (
	RowLeft            = 0 // intra-row left predictor, first pixel literal
	RowTop             = 1 // top predictor, all pixels
	RowTopLiteralFirst = 2 // top predictor, first pixel literal
	RowTopRight        = 3 // top-right predictor, last pixel literal
	RowRLE             = 4 // per-channel run-length coding
)

// Clip is one opaque 16-byte clip-table record, present only for version >= 3.
type Clip struct {
	Field0 int32
	Field4 int16
	Field6 int16
	Field8 int16
	FieldA int16
	FieldC int16
	FieldE int16
}

// Header holds the fixed CRX header fields, excluding the magic.
type Header struct {
	InnerX  int16
	InnerY  int16
	Width   int16
	Height  int16
	Version int16
	Flags   int16
	BPP     int16
	Unknown int16
}

// Image is a fully decoded CRX picture plus everything needed to
// re-encode it without losing the original row-mode selection.
type Image struct {
	Header
	Clips []Clip

	// Pixels holds natural-order RGB (BPP=0) or RGBA (BPP=1) bytes,
	// top-down, row-major, len = Width*Height*PixelSize().
	Pixels []byte

	// CompressedPayload is the last-read or last-written raw
	// compressed block (deflate or zstd framed).
	CompressedPayload []byte

	// RowModes holds one predictor mode per row, recorded at decode
	// time and required again by Encode.
	RowModes []byte
}

// PixelSize returns 3 for 24-bit RGB images and 4 for 32-bit RGBA images.
func (h Header) PixelSize() int {
	if h.BPP == 1 {
		return 4
	}
	return 3
}

func wrapAdd(a, b byte) byte { return a + b }
func wrapSub(a, b byte) byte { return a - b }
