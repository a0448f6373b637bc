// Package codec converts values to and from bytes for storage and export.
// nbtconv uses the structured formats to print decoded trees; Wire and NBT
// bridge the binary formats of this module into the same interface.
package codec

import "errors"

// Codec encodes/decodes values V to []byte.
type Codec[V any] interface {
	Encode(V) ([]byte, error)
	Decode([]byte) (V, error)
}

// ErrTooLarge is returned by Limit when a payload exceeds its bound.
var ErrTooLarge = errors.New("codec: payload too large")
