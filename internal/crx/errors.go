package crx

import "errors"

var (
	// ErrInvalidMagic is returned when a stream does not begin with the CRXG magic.
	ErrInvalidMagic = errors.New("crx: invalid magic")
	// ErrUnsupportedVersion is returned for a version other than 2 or 3.
	ErrUnsupportedVersion = errors.New("crx: unsupported version")
	// ErrUnsupportedFlags is returned when the low nibble of flags exceeds 1.
	ErrUnsupportedFlags = errors.New("crx: unsupported flags")
	// ErrUnsupportedBpp is returned for a bpp value other than 0 or 1.
	ErrUnsupportedBpp = errors.New("crx: unsupported bpp")
	// ErrInvalidRowMode is returned when a row's mode byte is not in [0,4].
	ErrInvalidRowMode = errors.New("crx: invalid row mode")
	// ErrTruncatedPayload is returned when the decompressed payload ends before
	// all rows have been decoded.
	ErrTruncatedPayload = errors.New("crx: truncated payload")
	// ErrDecompressionFailed wraps a deflate/zstd failure.
	ErrDecompressionFailed = errors.New("crx: decompression failed")
	// ErrDimensionMismatch is returned by Import when the source image's
	// dimensions disagree with the origin CRX.
	ErrDimensionMismatch = errors.New("crx: dimension mismatch")
	// ErrColorTypeUnsupported is returned by Import for an unsupported PNG color model.
	ErrColorTypeUnsupported = errors.New("crx: unsupported color type")
	// ErrRowModeCountMismatch is returned by Import when RowModes does not
	// have exactly Height entries.
	ErrRowModeCountMismatch = errors.New("crx: row mode count does not match height")
	// ErrInvalidDimensions is returned when a header's width or height is
	// not strictly positive.
	ErrInvalidDimensions = errors.New("crx: invalid dimensions")
)
