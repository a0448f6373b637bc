package codec

import "fmt"

// Limit wraps another codec to bound the payload size accepted by Decode.
// Encode is forwarded to Inner unchanged. If MaxDecode <= 0, size limiting
// is disabled.
//
// nbtconv wraps its input decoder with Limit so a hostile file cannot make
// it walk gigabytes of tags.
type Limit[V any] struct {
	Inner     Codec[V]
	MaxDecode int
}

func (c Limit[V]) Encode(v V) ([]byte, error) { return c.Inner.Encode(v) }
func (c Limit[V]) Decode(b []byte) (V, error) {
	if c.MaxDecode > 0 && len(b) > c.MaxDecode {
		var zero V
		return zero, fmt.Errorf("%w: %d > %d", ErrTooLarge, len(b), c.MaxDecode)
	}
	return c.Inner.Decode(b)
}
