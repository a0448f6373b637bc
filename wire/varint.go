package wire

import "encoding/binary"

// Maximum LEB128 groups: ceil(bits/7).
const (
	MaxVarintLen32 = 5
	MaxVarintLen64 = 10
)

type (
	// VarInt32 is a zig-zag LEB128 int32 (v32).
	VarInt32 int32
	// VarInt64 is a zig-zag LEB128 int64 (v64).
	VarInt64 int64
	// VarUint32 is an LEB128 uint32 (w32).
	VarUint32 uint32
	// VarUint64 is an LEB128 uint64 (w64).
	VarUint64 uint64
)

func (v VarUint32) Encode(w *Writer) { w.buf = binary.AppendUvarint(w.buf, uint64(v)) }
func (v *VarUint32) Decode(r *Reader) error {
	x, err := r.uvarint(MaxVarintLen32)
	if err != nil {
		return err
	}
	*v = VarUint32(x)
	return nil
}

func (v VarUint64) Encode(w *Writer) { w.buf = binary.AppendUvarint(w.buf, uint64(v)) }
func (v *VarUint64) Decode(r *Reader) error {
	x, err := r.uvarint(MaxVarintLen64)
	if err != nil {
		return err
	}
	*v = VarUint64(x)
	return nil
}

func (v VarInt32) Encode(w *Writer) {
	w.buf = binary.AppendUvarint(w.buf, uint64(zigzag32(int32(v))))
}
func (v *VarInt32) Decode(r *Reader) error {
	x, err := r.uvarint(MaxVarintLen32)
	if err != nil {
		return err
	}
	*v = VarInt32(unzigzag32(uint32(x)))
	return nil
}

func (v VarInt64) Encode(w *Writer) {
	w.buf = binary.AppendUvarint(w.buf, zigzag64(int64(v)))
}
func (v *VarInt64) Decode(r *Reader) error {
	x, err := r.uvarint(MaxVarintLen64)
	if err != nil {
		return err
	}
	*v = VarInt64(unzigzag64(x))
	return nil
}

func zigzag32(v int32) uint32   { return uint32(v<<1) ^ uint32(v>>31) }
func unzigzag32(u uint32) int32 { return int32(u>>1) ^ -int32(u&1) }
func zigzag64(v int64) uint64   { return uint64(v<<1) ^ uint64(v>>63) }
func unzigzag64(u uint64) int64 { return int64(u>>1) ^ -int64(u&1) }
