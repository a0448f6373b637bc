package codec

import (
	"github.com/unkn0wn-root/mcwire"
)

// Wire encodes V with its compiled mcwire layout. V may be an interface
// registered as a union. A nil Registry means mcwire.Default().
type Wire[V any] struct {
	Registry *mcwire.Registry
}

func (c Wire[V]) reg() *mcwire.Registry {
	if c.Registry == nil {
		return mcwire.Default()
	}
	return c.Registry
}

func (c Wire[V]) Encode(v V) ([]byte, error) { return c.reg().Marshal(&v) }

func (c Wire[V]) Decode(b []byte) (V, error) {
	var v V
	err := c.reg().Unmarshal(b, &v)
	return v, err
}
