package crx

import (
	"fmt"
	"io"

	"github.com/lifegpc/circus-crx-tool/internal/binio"
)

func readHeader(r io.Reader) (Header, []Clip, error) {
	magic, err := binio.ReadI32(r)
	if err != nil {
		return Header{}, nil, fmt.Errorf("crx: read magic: %w", err)
	}
	if magic != Magic {
		return Header{}, nil, ErrInvalidMagic
	}

	var h Header
	fields := []*int16{&h.InnerX, &h.InnerY, &h.Width, &h.Height, &h.Version, &h.Flags, &h.BPP, &h.Unknown}
	for _, f := range fields {
		v, err := binio.ReadI16(r)
		if err != nil {
			return Header{}, nil, fmt.Errorf("crx: read header field: %w", err)
		}
		*f = v
	}

	if h.Version != 2 && h.Version != 3 {
		return Header{}, nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, h.Version)
	}
	if h.Flags&flagsModeMask > 1 {
		return Header{}, nil, fmt.Errorf("%w: 0x%02X", ErrUnsupportedFlags, h.Flags)
	}
	if h.BPP != 0 && h.BPP != 1 {
		return Header{}, nil, fmt.Errorf("%w: %d", ErrUnsupportedBpp, h.BPP)
	}

	var clips []Clip
	if h.Version >= 3 {
		count, err := binio.ReadI32(r)
		if err != nil {
			return Header{}, nil, fmt.Errorf("crx: read clip count: %w", err)
		}
		clips = make([]Clip, 0, count)
		for i := int32(0); i < count; i++ {
			var c Clip
			if c.Field0, err = binio.ReadI32(r); err != nil {
				return Header{}, nil, fmt.Errorf("crx: read clip %d: %w", i, err)
			}
			clipFields := []*int16{&c.Field4, &c.Field6, &c.Field8, &c.FieldA, &c.FieldC, &c.FieldE}
			for _, f := range clipFields {
				if *f, err = binio.ReadI16(r); err != nil {
					return Header{}, nil, fmt.Errorf("crx: read clip %d: %w", i, err)
				}
			}
			clips = append(clips, c)
		}
	}
	return h, clips, nil
}

func writeHeader(w io.Writer, h Header, clips []Clip) error {
	if err := binio.WriteI32(w, Magic); err != nil {
		return err
	}
	fields := []int16{h.InnerX, h.InnerY, h.Width, h.Height, h.Version, h.Flags, h.BPP, h.Unknown}
	for _, v := range fields {
		if err := binio.WriteI16(w, v); err != nil {
			return err
		}
	}
	if h.Version >= 3 {
		if err := binio.WriteI32(w, int32(len(clips))); err != nil {
			return err
		}
		for _, c := range clips {
			if err := binio.WriteI32(w, c.Field0); err != nil {
				return err
			}
			for _, v := range []int16{c.Field4, c.Field6, c.Field8, c.FieldA, c.FieldC, c.FieldE} {
				if err := binio.WriteI16(w, v); err != nil {
					return err
				}
			}
		}
	}
	return nil
}
