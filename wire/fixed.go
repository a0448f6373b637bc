package wire

import "math"

// Encoder is implemented by every wire value type.
type Encoder interface {
	Encode(w *Writer)
}

// Decoder is implemented by pointers to wire value types.
type Decoder interface {
	Decode(r *Reader) error
}

// Value ties a value type to its decoding pointer so generic helpers can
// construct and decode T without reflection.
type Value[T any] interface {
	*T
	Encoder
	Decoder
}

// Enc is an element encoder for any wire value type, for use with WriteSeq
// and friends.
func Enc[T Encoder](w *Writer, v T) { v.Encode(w) }

// Dec decodes a fresh T.
func Dec[T any, PT Value[T]](r *Reader) (T, error) {
	var v T
	if err := PT(&v).Decode(r); err != nil {
		var zero T
		return zero, err
	}
	return v, nil
}

// Encode returns the bytes of v.
func Encode(v Encoder) []byte {
	var w Writer
	v.Encode(&w)
	return w.Bytes()
}

// Decode decodes b into v and reports how many bytes were consumed.
func Decode(b []byte, v Decoder) (int, error) {
	r := NewReader(b)
	if err := v.Decode(r); err != nil {
		return 0, err
	}
	return len(b) - r.Remaining(), nil
}

type (
	U8   uint8
	I8   int8
	Bool bool
)

type (
	U16[O ByteOrder] uint16
	I16[O ByteOrder] int16
	U32[O ByteOrder] uint32
	I32[O ByteOrder] int32
	U64[O ByteOrder] uint64
	I64[O ByteOrder] int64
	F32[O ByteOrder] float32
	F64[O ByteOrder] float64
)

// Big-endian shorthands.
type (
	B16 = I16[BE]
	N16 = U16[BE]
	B32 = I32[BE]
	N32 = U32[BE]
	B64 = I64[BE]
	N64 = U64[BE]
	D32 = F32[BE]
	D64 = F64[BE]
)

func (v U8) Encode(w *Writer) { w.buf = append(w.buf, byte(v)) }
func (v *U8) Decode(r *Reader) error {
	c, err := r.ReadByte()
	*v = U8(c)
	return err
}

func (v I8) Encode(w *Writer) { w.buf = append(w.buf, byte(v)) }
func (v *I8) Decode(r *Reader) error {
	c, err := r.ReadByte()
	*v = I8(c)
	return err
}

func (v Bool) Encode(w *Writer) {
	if v {
		w.buf = append(w.buf, 1)
	} else {
		w.buf = append(w.buf, 0)
	}
}

// Decode treats only 1 as true.
func (v *Bool) Decode(r *Reader) error {
	c, err := r.ReadByte()
	*v = c == 1
	return err
}

func (v U16[O]) Encode(w *Writer) {
	var o O
	w.buf = o.AppendUint16(w.buf, uint16(v))
}
func (v *U16[O]) Decode(r *Reader) error {
	b, err := r.Take(2)
	if err != nil {
		return err
	}
	var o O
	*v = U16[O](o.Uint16(b))
	return nil
}

func (v I16[O]) Encode(w *Writer) {
	var o O
	w.buf = o.AppendUint16(w.buf, uint16(v))
}
func (v *I16[O]) Decode(r *Reader) error {
	b, err := r.Take(2)
	if err != nil {
		return err
	}
	var o O
	*v = I16[O](o.Uint16(b))
	return nil
}

func (v U32[O]) Encode(w *Writer) {
	var o O
	w.buf = o.AppendUint32(w.buf, uint32(v))
}
func (v *U32[O]) Decode(r *Reader) error {
	b, err := r.Take(4)
	if err != nil {
		return err
	}
	var o O
	*v = U32[O](o.Uint32(b))
	return nil
}

func (v I32[O]) Encode(w *Writer) {
	var o O
	w.buf = o.AppendUint32(w.buf, uint32(v))
}
func (v *I32[O]) Decode(r *Reader) error {
	b, err := r.Take(4)
	if err != nil {
		return err
	}
	var o O
	*v = I32[O](o.Uint32(b))
	return nil
}

func (v U64[O]) Encode(w *Writer) {
	var o O
	w.buf = o.AppendUint64(w.buf, uint64(v))
}
func (v *U64[O]) Decode(r *Reader) error {
	b, err := r.Take(8)
	if err != nil {
		return err
	}
	var o O
	*v = U64[O](o.Uint64(b))
	return nil
}

func (v I64[O]) Encode(w *Writer) {
	var o O
	w.buf = o.AppendUint64(w.buf, uint64(v))
}
func (v *I64[O]) Decode(r *Reader) error {
	b, err := r.Take(8)
	if err != nil {
		return err
	}
	var o O
	*v = I64[O](o.Uint64(b))
	return nil
}

func (v F32[O]) Encode(w *Writer) {
	var o O
	w.buf = o.AppendUint32(w.buf, math.Float32bits(float32(v)))
}
func (v *F32[O]) Decode(r *Reader) error {
	b, err := r.Take(4)
	if err != nil {
		return err
	}
	var o O
	*v = F32[O](math.Float32frombits(o.Uint32(b)))
	return nil
}

func (v F64[O]) Encode(w *Writer) {
	var o O
	w.buf = o.AppendUint64(w.buf, math.Float64bits(float64(v)))
}
func (v *F64[O]) Decode(r *Reader) error {
	b, err := r.Take(8)
	if err != nil {
		return err
	}
	var o O
	*v = F64[O](math.Float64frombits(o.Uint64(b)))
	return nil
}

// U24 is a 3-byte little-endian unsigned integer (RakNet "triad"). Bits above
// 24 are dropped on encode.
type U24 uint32

const MaxU24 = 1<<24 - 1

func (v U24) Encode(w *Writer) {
	w.buf = append(w.buf, byte(v), byte(v>>8), byte(v>>16))
}
func (v *U24) Decode(r *Reader) error {
	b, err := r.Take(3)
	if err != nil {
		return err
	}
	*v = U24(b[0]) | U24(b[1])<<8 | U24(b[2])<<16
	return nil
}
