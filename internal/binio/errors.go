package binio

import "errors"

// ErrInvalidData signals a fixed-size string field that is not valid UTF-8.
var ErrInvalidData = errors.New("binio: invalid data")

// ErrInvalidInput signals a value that does not fit in its destination field.
var ErrInvalidInput = errors.New("binio: invalid input")
