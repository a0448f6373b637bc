package raknet

import (
	"bytes"
	"fmt"

	"github.com/unkn0wn-root/mcwire/wire"
)

var magic = [16]byte{0x00, 0xff, 0xff, 0x00, 0xfe, 0xfe, 0xfe, 0xfe, 0xfd, 0xfd, 0xfd, 0xfd, 0x12, 0x34, 0x56, 0x78}

// ErrBadMagic reports an offline packet without the RakNet magic.
var ErrBadMagic = fmt.Errorf("%w: raknet: bad offline magic", wire.ErrInvalid)

// Magic is the 16-byte marker carried by every offline packet. It has no
// state: Encode always writes the constant and Decode checks it.
type Magic struct{}

func (Magic) Encode(w *wire.Writer) { w.WriteBytes(magic[:]) }

func (*Magic) Decode(r *wire.Reader) error {
	b, err := r.Take(len(magic))
	if err != nil {
		return err
	}
	if !bytes.Equal(b, magic[:]) {
		return ErrBadMagic
	}
	return nil
}
