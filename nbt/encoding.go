package nbt

import (
	"errors"
	"fmt"
	"math"

	"github.com/unkn0wn-root/mcwire/wire"
)

var ErrStringTooLong = errors.New("nbt: string exceeds encoding limit")

// Encoding supplies the scalar and string sub-codecs used while walking a
// tree. Implementations are zero-sized so they can be type parameters.
type Encoding interface {
	WriteShort(w *wire.Writer, v int16)
	ReadShort(r *wire.Reader) (int16, error)
	WriteInt(w *wire.Writer, v int32)
	ReadInt(r *wire.Reader) (int32, error)
	WriteLong(w *wire.Writer, v int64)
	ReadLong(r *wire.Reader) (int64, error)
	WriteFloat(w *wire.Writer, v float32)
	ReadFloat(r *wire.Reader) (float32, error)
	WriteDouble(w *wire.Writer, v float64)
	ReadDouble(r *wire.Reader) (float64, error)
	WriteString(w *wire.Writer, s string) error
	ReadString(r *wire.Reader) (string, error)
}

// fixed implements the fixed-width scalars for byte order O.
type fixed[O wire.ByteOrder] struct{}

func (fixed[O]) WriteShort(w *wire.Writer, v int16) { wire.I16[O](v).Encode(w) }
func (fixed[O]) ReadShort(r *wire.Reader) (int16, error) {
	var v wire.I16[O]
	err := v.Decode(r)
	return int16(v), err
}
func (fixed[O]) WriteFloat(w *wire.Writer, v float32) { wire.F32[O](v).Encode(w) }
func (fixed[O]) ReadFloat(r *wire.Reader) (float32, error) {
	var v wire.F32[O]
	err := v.Decode(r)
	return float32(v), err
}
func (fixed[O]) WriteDouble(w *wire.Writer, v float64) { wire.F64[O](v).Encode(w) }
func (fixed[O]) ReadDouble(r *wire.Reader) (float64, error) {
	var v wire.F64[O]
	err := v.Decode(r)
	return float64(v), err
}

// NetworkLittleEndian is the encoding used inside Bedrock packets.
type NetworkLittleEndian struct{ fixed[wire.LE] }

func (NetworkLittleEndian) WriteInt(w *wire.Writer, v int32) { wire.VarInt32(v).Encode(w) }
func (NetworkLittleEndian) ReadInt(r *wire.Reader) (int32, error) {
	var v wire.VarInt32
	err := v.Decode(r)
	return int32(v), err
}
func (NetworkLittleEndian) WriteLong(w *wire.Writer, v int64) { wire.VarInt64(v).Encode(w) }
func (NetworkLittleEndian) ReadLong(r *wire.Reader) (int64, error) {
	var v wire.VarInt64
	err := v.Decode(r)
	return int64(v), err
}
func (NetworkLittleEndian) WriteString(w *wire.Writer, s string) error {
	if uint64(len(s)) > math.MaxUint32 {
		return fmt.Errorf("%w: %d bytes", ErrStringTooLong, len(s))
	}
	wire.WriteString[wire.VarUint32](w, s)
	return nil
}
func (NetworkLittleEndian) ReadString(r *wire.Reader) (string, error) {
	return wire.ReadString[wire.VarUint32](r)
}

// LittleEndian is the plain encoding of Bedrock level files.
type LittleEndian struct{ fixed[wire.LE] }

func (LittleEndian) WriteInt(w *wire.Writer, v int32) { wire.I32[wire.LE](v).Encode(w) }
func (LittleEndian) ReadInt(r *wire.Reader) (int32, error) {
	var v wire.I32[wire.LE]
	err := v.Decode(r)
	return int32(v), err
}
func (LittleEndian) WriteLong(w *wire.Writer, v int64) { wire.I64[wire.LE](v).Encode(w) }
func (LittleEndian) ReadLong(r *wire.Reader) (int64, error) {
	var v wire.I64[wire.LE]
	err := v.Decode(r)
	return int64(v), err
}
func (LittleEndian) WriteString(w *wire.Writer, s string) error {
	if len(s) > math.MaxUint16 {
		return fmt.Errorf("%w: %d bytes", ErrStringTooLong, len(s))
	}
	wire.WriteString[wire.U16[wire.LE]](w, s)
	return nil
}
func (LittleEndian) ReadString(r *wire.Reader) (string, error) {
	return wire.ReadString[wire.U16[wire.LE]](r)
}

// BigEndian is the Java edition file encoding.
type BigEndian struct{ fixed[wire.BE] }

func (BigEndian) WriteInt(w *wire.Writer, v int32) { wire.B32(v).Encode(w) }
func (BigEndian) ReadInt(r *wire.Reader) (int32, error) {
	var v wire.B32
	err := v.Decode(r)
	return int32(v), err
}
func (BigEndian) WriteLong(w *wire.Writer, v int64) { wire.B64(v).Encode(w) }
func (BigEndian) ReadLong(r *wire.Reader) (int64, error) {
	var v wire.B64
	err := v.Decode(r)
	return int64(v), err
}
func (BigEndian) WriteString(w *wire.Writer, s string) error {
	if len(s) > math.MaxUint16 {
		return fmt.Errorf("%w: %d bytes", ErrStringTooLong, len(s))
	}
	wire.WriteString[wire.N16](w, s)
	return nil
}
func (BigEndian) ReadString(r *wire.Reader) (string, error) {
	return wire.ReadString[wire.N16](r)
}

var (
	Network Encoding = NetworkLittleEndian{}
	Plain   Encoding = LittleEndian{}
	Java    Encoding = BigEndian{}
)

// EncodingByName resolves "network", "le" and "be" (with a few aliases).
func EncodingByName(name string) (Encoding, bool) {
	switch name {
	case "network", "networkle", "nle":
		return Network, true
	case "le", "plain", "littleendian", "bedrock":
		return Plain, true
	case "be", "bigendian", "java":
		return Java, true
	}
	return nil, false
}
