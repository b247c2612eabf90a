package crx

import (
	"bytes"
	"fmt"
)

// cursor is a bounds-checked forward-only reader over an in-memory
// decompressed payload; row decoding consumes exactly as many bytes
// as each row needs and never looks past what the payload provides.
type cursor struct {
	buf []byte
	pos int
}

func (c *cursor) next() (byte, error) {
	if c.pos >= len(c.buf) {
		return 0, ErrTruncatedPayload
	}
	b := c.buf[c.pos]
	c.pos++
	return b, nil
}

func (c *cursor) peek() (byte, bool) {
	if c.pos >= len(c.buf) {
		return 0, false
	}
	return c.buf[c.pos], true
}

// decodeRows fills dst (width*height*pixelSize bytes, pre-allocated)
// from the decompressed payload and returns the per-row mode vector.
func decodeRows(dst []byte, payload []byte, width, height, pixelSize int) ([]byte, error) {
	rowModes := make([]byte, 0, height)
	c := &cursor{buf: payload}
	stride := width * pixelSize

	prevOff := 0
	for y := 0; y < height; y++ {
		mode, err := c.next()
		if err != nil {
			return nil, err
		}
		rowModes = append(rowModes, mode)

		dstOff := y * stride
		switch mode {
		case RowLeft:
			err = decodeRow0(dst, dstOff, c, width, pixelSize)
		case RowTop:
			err = decodeRow1(dst, dstOff, c, width, pixelSize, prevOff)
		case RowTopLiteralFirst:
			err = decodeRow2(dst, dstOff, c, width, pixelSize, prevOff)
		case RowTopRight:
			err = decodeRow3(dst, dstOff, c, width, pixelSize, prevOff)
		case RowRLE:
			err = decodeRow4(dst, dstOff, c, width, pixelSize)
		default:
			return nil, fmt.Errorf("%w: %d", ErrInvalidRowMode, mode)
		}
		if err != nil {
			return nil, err
		}
		prevOff = dstOff
	}
	return rowModes, nil
}

func decodeRow0(dst []byte, dstOff int, c *cursor, width, p int) error {
	for i := 0; i < p; i++ {
		b, err := c.next()
		if err != nil {
			return err
		}
		dst[dstOff+i] = b
	}
	for col := 1; col < width; col++ {
		base := dstOff + col*p
		prev := base - p
		for i := 0; i < p; i++ {
			b, err := c.next()
			if err != nil {
				return err
			}
			dst[base+i] = wrapAdd(b, dst[prev+i])
		}
	}
	return nil
}

func decodeRow1(dst []byte, dstOff int, c *cursor, width, p, prevOff int) error {
	for col := 0; col < width; col++ {
		base := dstOff + col*p
		prev := prevOff + col*p
		for i := 0; i < p; i++ {
			b, err := c.next()
			if err != nil {
				return err
			}
			dst[base+i] = wrapAdd(b, dst[prev+i])
		}
	}
	return nil
}

func decodeRow2(dst []byte, dstOff int, c *cursor, width, p, prevOff int) error {
	for i := 0; i < p; i++ {
		b, err := c.next()
		if err != nil {
			return err
		}
		dst[dstOff+i] = b
	}
	for col := 1; col < width; col++ {
		base := dstOff + col*p
		prev := prevOff + col*p
		for i := 0; i < p; i++ {
			b, err := c.next()
			if err != nil {
				return err
			}
			dst[base+i] = wrapAdd(b, dst[prev+i])
		}
	}
	return nil
}

func decodeRow3(dst []byte, dstOff int, c *cursor, width, p, prevOff int) error {
	for col := 0; col < width-1; col++ {
		base := dstOff + col*p
		prev := prevOff + (col+1)*p
		for i := 0; i < p; i++ {
			b, err := c.next()
			if err != nil {
				return err
			}
			dst[base+i] = wrapAdd(b, dst[prev+i])
		}
	}
	base := dstOff + (width-1)*p
	for i := 0; i < p; i++ {
		b, err := c.next()
		if err != nil {
			return err
		}
		dst[base+i] = b
	}
	return nil
}

func decodeRow4(dst []byte, dstOff int, c *cursor, width, p int) error {
	for ch := 0; ch < p; ch++ {
		col := 0
		for col < width {
			value, err := c.next()
			if err != nil {
				return err
			}
			dst[dstOff+col*p+ch] = value
			col++
			if col >= width {
				break
			}

			peeked, ok := c.peek()
			if ok && peeked == value {
				if _, err := c.next(); err != nil {
					return err
				}
				runLen, err := c.next()
				if err != nil {
					return err
				}
				for i := 0; i < int(runLen) && col < width; i++ {
					dst[dstOff+col*p+ch] = value
					col++
				}
			}
		}
	}
	return nil
}

// encodeRows is the exact inverse of decodeRows: given the
// predictor-domain pixel buffer and the row-mode vector recorded at
// decode time, it produces the uncompressed row stream (one mode byte
// plus the predicted bytes per row) that decodeRows consumes. The
// result is not compressed; Import compresses it afterwards.
func encodeRows(src []byte, width, height, pixelSize int, rowModes []byte) ([]byte, error) {
	if len(rowModes) != height {
		return nil, ErrRowModeCountMismatch
	}

	var buf bytes.Buffer
	stride := width * pixelSize

	prevOff := 0
	for y := 0; y < height; y++ {
		mode := rowModes[y]
		buf.WriteByte(mode)

		rowOff := y * stride
		switch mode {
		case RowLeft:
			encodeRow0(&buf, src, rowOff, width, pixelSize)
		case RowTop:
			encodeRow1(&buf, src, rowOff, prevOff, width, pixelSize)
		case RowTopLiteralFirst:
			encodeRow2(&buf, src, rowOff, prevOff, width, pixelSize)
		case RowTopRight:
			encodeRow3(&buf, src, rowOff, prevOff, width, pixelSize)
		case RowRLE:
			encodeRow4(&buf, src, rowOff, width, pixelSize)
		default:
			return nil, fmt.Errorf("%w: %d", ErrInvalidRowMode, mode)
		}
		prevOff = rowOff
	}
	return buf.Bytes(), nil
}

func encodeRow0(buf *bytes.Buffer, src []byte, rowOff, width, p int) {
	buf.Write(src[rowOff : rowOff+p])
	for col := 1; col < width; col++ {
		base := rowOff + col*p
		prev := base - p
		for i := 0; i < p; i++ {
			buf.WriteByte(wrapSub(src[base+i], src[prev+i]))
		}
	}
}

func encodeRow1(buf *bytes.Buffer, src []byte, rowOff, prevOff, width, p int) {
	for col := 0; col < width; col++ {
		base := rowOff + col*p
		prev := prevOff + col*p
		for i := 0; i < p; i++ {
			buf.WriteByte(wrapSub(src[base+i], src[prev+i]))
		}
	}
}

func encodeRow2(buf *bytes.Buffer, src []byte, rowOff, prevOff, width, p int) {
	buf.Write(src[rowOff : rowOff+p])
	for col := 1; col < width; col++ {
		base := rowOff + col*p
		prev := prevOff + col*p
		for i := 0; i < p; i++ {
			buf.WriteByte(wrapSub(src[base+i], src[prev+i]))
		}
	}
}

func encodeRow3(buf *bytes.Buffer, src []byte, rowOff, prevOff, width, p int) {
	for col := 0; col < width-1; col++ {
		base := rowOff + col*p
		prev := prevOff + (col+1)*p
		for i := 0; i < p; i++ {
			buf.WriteByte(wrapSub(src[base+i], src[prev+i]))
		}
	}
	base := rowOff + (width-1)*p
	buf.Write(src[base : base+p])
}

func encodeRow4(buf *bytes.Buffer, src []byte, rowOff, width, p int) {
	for ch := 0; ch < p; ch++ {
		col := 0
		for col < width {
			value := src[rowOff+col*p+ch]
			buf.WriteByte(value)
			col++
			if col >= width {
				break
			}

			count := 0
			for col+count < width && count < 255 && src[rowOff+(col+count)*p+ch] == value {
				count++
			}
			if count > 0 {
				buf.WriteByte(value)
				buf.WriteByte(byte(count))
				col += count
			}
		}
	}
}
