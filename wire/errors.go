package wire

import (
	"errors"
	"fmt"
)

var (
	// ErrTruncated reports that fewer bytes remain than a read requires.
	ErrTruncated = errors.New("wire: truncated input")
	// ErrInvalid is the parent of every malformed-input error.
	ErrInvalid = errors.New("wire: invalid encoding")
)

var (
	ErrInvalidUTF8         = fmt.Errorf("%w: invalid utf-8", ErrInvalid)
	ErrVarIntOverflow      = fmt.Errorf("%w: varint has no terminating byte", ErrInvalid)
	ErrInvalidLength       = fmt.Errorf("%w: length out of range", ErrInvalid)
	ErrUnknownDiscriminant = fmt.Errorf("%w: unknown discriminant", ErrInvalid)
	ErrAddressFamily       = fmt.Errorf("%w: unknown address family", ErrInvalid)
)
