package codec

import (
	"github.com/unkn0wn-root/mcwire/nbt"
)

// NBT encodes a tree with an unnamed root. The zero value uses the network
// encoding.
type NBT struct {
	Encoding nbt.Encoding
}

func (c NBT) enc() nbt.Encoding {
	if c.Encoding == nil {
		return nbt.Network
	}
	return c.Encoding
}

func (c NBT) Encode(t nbt.Tag) ([]byte, error) { return nbt.Marshal(c.enc(), t) }
func (c NBT) Decode(b []byte) (nbt.Tag, error) { return nbt.Unmarshal(c.enc(), b) }

// Tree adapts a codec over plain Go values into one over NBT trees through
// nbt.ToGo and nbt.FromGo.
type Tree struct {
	Inner Codec[any]
}

func (c Tree) Encode(t nbt.Tag) ([]byte, error) { return c.Inner.Encode(nbt.ToGo(t)) }

func (c Tree) Decode(b []byte) (nbt.Tag, error) {
	v, err := c.Inner.Decode(b)
	if err != nil {
		return nil, err
	}
	return nbt.FromGo(v)
}
