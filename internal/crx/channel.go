package crx

// reorderAfterDecode converts the predictor's native channel order
// (BGR, or ABGR with inverted alpha) into natural RGB/RGBA, in place.
func reorderAfterDecode(buf []byte, pixelSize int) {
	for p := 0; p+pixelSize <= len(buf); p += pixelSize {
		if pixelSize == 3 {
			buf[p], buf[p+2] = buf[p+2], buf[p]
			continue
		}
		a, b, g, r := buf[p], buf[p+1], buf[p+2], buf[p+3]
		buf[p] = r
		buf[p+1] = g
		buf[p+2] = b
		buf[p+3] = 0xFF - a
	}
}

// reorderBeforeEncode is the inverse of reorderAfterDecode: it takes
// natural RGB/RGBA bytes and returns a new buffer in the predictor's
// native channel order, ready to feed the row encoders.
func reorderBeforeEncode(buf []byte, pixelSize int) []byte {
	out := make([]byte, len(buf))
	copy(out, buf)
	for p := 0; p+pixelSize <= len(out); p += pixelSize {
		if pixelSize == 3 {
			out[p], out[p+2] = out[p+2], out[p]
			continue
		}
		r, g, b, complementedA := out[p], out[p+1], out[p+2], out[p+3]
		out[p] = 0xFF - complementedA
		out[p+1] = b
		out[p+2] = g
		out[p+3] = r
	}
	return out
}
