package crx

import (
	"fmt"
	"image"
	"image/color"
	"io"

	"github.com/lifegpc/circus-crx-tool/internal/binio"
)

// countingReader tracks how many bytes have been pulled from the
// wrapped reader, so the implicit (flags&0x10==0) payload-size case
// can compute "remainder of stream" without requiring r to be seekable.
type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}

// Decode parses one CRX stream, decompresses and decodes its payload,
// and returns the reconstructed image. streamLen is the total length
// of r in bytes; it is only consulted when the header's explicit
// payload-size flag (0x10) is absent, in which case the payload is
// taken to be everything remaining in the stream.
func Decode(r io.Reader, streamLen int64) (*Image, error) {
	cr := &countingReader{r: r}

	h, clips, err := readHeader(cr)
	if err != nil {
		return nil, err
	}
	if h.Width <= 0 || h.Height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, h.Width, h.Height)
	}

	var payloadSize int64
	if h.Flags&flagExplicitSz == 0 {
		payloadSize = streamLen - cr.n
		if payloadSize < 0 {
			return nil, fmt.Errorf("crx: stream shorter than header claims")
		}
	} else {
		sz, err := binio.ReadI32(cr)
		if err != nil {
			return nil, fmt.Errorf("crx: read payload size: %w", err)
		}
		if sz < 0 {
			return nil, fmt.Errorf("crx: negative payload size %d", sz)
		}
		payloadSize = int64(sz)
	}

	payload := make([]byte, payloadSize)
	if _, err := io.ReadFull(cr, payload); err != nil {
		return nil, fmt.Errorf("crx: read payload: %w", err)
	}

	decompressed, err := decompress(payload)
	if err != nil {
		return nil, err
	}

	pixelSize := h.PixelSize()
	pixels := make([]byte, int(h.Width)*int(h.Height)*pixelSize)
	rowModes, err := decodeRows(pixels, decompressed, int(h.Width), int(h.Height), pixelSize)
	if err != nil {
		return nil, err
	}
	reorderAfterDecode(pixels, pixelSize)

	img := &Image{
		Header:            h,
		Clips:             clips,
		Pixels:            pixels,
		CompressedPayload: payload,
		RowModes:          rowModes,
	}

	log.Debugf("inner_x=%d inner_y=%d width=%d height=%d version=%d flags=0x%X bpp=%d unknown=%d data_size=%d compressed_size=%d clips=%d",
		h.InnerX, h.InnerY, h.Width, h.Height, h.Version, h.Flags, h.BPP, h.Unknown, len(pixels), len(payload), len(clips))

	return img, nil
}

// Encode serializes the image: header, clips, the explicit-size flag
// forced on, the payload length, then the raw compressed bytes
// currently held by CompressedPayload. It does not re-derive the
// payload; Import is the only operation that replaces
// Pixels/CompressedPayload together.
func (img *Image) Encode(w io.Writer) error {
	out := img.Header
	out.Flags |= flagExplicitSz

	if err := writeHeader(w, out, img.Clips); err != nil {
		return err
	}
	if err := binio.WriteI32(w, int32(len(img.CompressedPayload))); err != nil {
		return err
	}
	_, err := w.Write(img.CompressedPayload)
	return err
}

// Import replaces Pixels and CompressedPayload from a decoded PNG (or
// any image.Image), re-encoding with the RowModes recorded at decode
// time. The origin image is left untouched if Import returns an error.
func (img *Image) Import(src image.Image) error {
	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w != int(img.Width) || h != int(img.Height) {
		return fmt.Errorf("%w: origin is %dx%d, source is %dx%d", ErrDimensionMismatch, img.Width, img.Height, w, h)
	}

	eightBit, hasAlpha := imageDepthAndAlpha(src)
	if !eightBit {
		return fmt.Errorf("%w: source is not an 8-bit RGB/RGBA image", ErrColorTypeUnsupported)
	}

	pixelSize := img.PixelSize()
	natural := make([]byte, w*h*pixelSize)

	idx := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := color.NRGBAModel.Convert(src.At(x, y)).(color.NRGBA)
			natural[idx] = c.R
			natural[idx+1] = c.G
			natural[idx+2] = c.B
			if pixelSize == 4 {
				a := c.A
				if !hasAlpha {
					a = 0xFF
				}
				natural[idx+3] = a
			}
			idx += pixelSize
		}
	}

	predictorDomain := reorderBeforeEncode(natural, pixelSize)
	encoded, err := encodeRows(predictorDomain, w, h, pixelSize, img.RowModes)
	if err != nil {
		return err
	}

	compressed, err := compress(encoded)
	if err != nil {
		return err
	}

	img.Pixels = natural
	img.CompressedPayload = compressed
	img.Flags |= flagExplicitSz
	return nil
}

// imageDepthAndAlpha reports whether src is an 8-bit-per-channel image
// (as opposed to one of Go's 16-bit image types) and whether its pixel
// format carries a genuine alpha channel.
func imageDepthAndAlpha(src image.Image) (eightBit, hasAlpha bool) {
	switch src.(type) {
	case *image.NRGBA, *image.RGBA, *image.Paletted:
		return true, true
	case *image.Gray, *image.CMYK:
		return true, false
	default:
		return false, false
	}
}
