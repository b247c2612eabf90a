package crx

import (
	"image"
	"image/color"
	"image/png"
	"io"
)

// ExportPNG writes img's current Pixels buffer as a standard PNG,
// using image/png since no format in the retrieved dependency set
// offers a general-purpose encoder for it.
func ExportPNG(img *Image, w io.Writer) error {
	width, height := int(img.Width), int(img.Height)
	pixelSize := img.PixelSize()

	if pixelSize == 4 {
		out := image.NewNRGBA(image.Rect(0, 0, width, height))
		copy(out.Pix, img.Pixels)
		return png.Encode(w, out)
	}

	out := image.NewRGBA(image.Rect(0, 0, width, height))
	idx := 0
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			out.SetRGBA(x, y, color.RGBA{
				R: img.Pixels[idx],
				G: img.Pixels[idx+1],
				B: img.Pixels[idx+2],
				A: 0xFF,
			})
			idx += pixelSize
		}
	}
	return png.Encode(w, out)
}

// DecodePNG reads a PNG from r; it is a thin wrapper so cmd/cmd/import.go
// does not need to import image/png directly.
func DecodePNG(r io.Reader) (image.Image, error) {
	return png.Decode(r)
}
