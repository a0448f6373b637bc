package wire

import "math"

// Prefix is implemented by numeric codecs that can carry a length or count.
// PutLen does not range-check: a count wider than the codec (300 through a U8)
// is truncated like a Go conversion, so callers own the width bound.
// Methods use value receivers so the zero value of the type is the codec:
//
//	var p VarUint32
//	p.PutLen(w, len(s))
type Prefix interface {
	PutLen(w *Writer, n int)
	ReadLen(r *Reader) (int, error)
}

// Variant is implemented by numeric codecs that can carry a tagged-union
// discriminant.
type Variant interface {
	PutIndex(w *Writer, i int64)
	ReadIndex(r *Reader) (int64, error)
}

func ulen(u uint64) (int, error) {
	if u > math.MaxInt {
		return 0, ErrInvalidLength
	}
	return int(u), nil
}

func slen(i int64) (int, error) {
	if i < 0 || uint64(i) > math.MaxInt {
		return 0, ErrInvalidLength
	}
	return int(i), nil
}

func (U8) PutLen(w *Writer, n int) { U8(n).Encode(w) }
func (U8) ReadLen(r *Reader) (int, error) {
	var v U8
	if err := v.Decode(r); err != nil {
		return 0, err
	}
	return int(v), nil
}
func (U8) PutIndex(w *Writer, i int64) { U8(i).Encode(w) }
func (U8) ReadIndex(r *Reader) (int64, error) {
	var v U8
	err := v.Decode(r)
	return int64(v), err
}

func (I8) PutLen(w *Writer, n int) { I8(n).Encode(w) }
func (I8) ReadLen(r *Reader) (int, error) {
	var v I8
	if err := v.Decode(r); err != nil {
		return 0, err
	}
	return slen(int64(v))
}
func (I8) PutIndex(w *Writer, i int64) { I8(i).Encode(w) }
func (I8) ReadIndex(r *Reader) (int64, error) {
	var v I8
	err := v.Decode(r)
	return int64(v), err
}

func (U16[O]) PutLen(w *Writer, n int) { U16[O](n).Encode(w) }
func (U16[O]) ReadLen(r *Reader) (int, error) {
	var v U16[O]
	if err := v.Decode(r); err != nil {
		return 0, err
	}
	return int(v), nil
}
func (U16[O]) PutIndex(w *Writer, i int64) { U16[O](i).Encode(w) }
func (U16[O]) ReadIndex(r *Reader) (int64, error) {
	var v U16[O]
	err := v.Decode(r)
	return int64(v), err
}

func (I16[O]) PutLen(w *Writer, n int) { I16[O](n).Encode(w) }
func (I16[O]) ReadLen(r *Reader) (int, error) {
	var v I16[O]
	if err := v.Decode(r); err != nil {
		return 0, err
	}
	return slen(int64(v))
}
func (I16[O]) PutIndex(w *Writer, i int64) { I16[O](i).Encode(w) }
func (I16[O]) ReadIndex(r *Reader) (int64, error) {
	var v I16[O]
	err := v.Decode(r)
	return int64(v), err
}

func (U32[O]) PutLen(w *Writer, n int) { U32[O](n).Encode(w) }
func (U32[O]) ReadLen(r *Reader) (int, error) {
	var v U32[O]
	if err := v.Decode(r); err != nil {
		return 0, err
	}
	return ulen(uint64(v))
}
func (U32[O]) PutIndex(w *Writer, i int64) { U32[O](i).Encode(w) }
func (U32[O]) ReadIndex(r *Reader) (int64, error) {
	var v U32[O]
	err := v.Decode(r)
	return int64(v), err
}

func (I32[O]) PutLen(w *Writer, n int) { I32[O](n).Encode(w) }
func (I32[O]) ReadLen(r *Reader) (int, error) {
	var v I32[O]
	if err := v.Decode(r); err != nil {
		return 0, err
	}
	return slen(int64(v))
}
func (I32[O]) PutIndex(w *Writer, i int64) { I32[O](i).Encode(w) }
func (I32[O]) ReadIndex(r *Reader) (int64, error) {
	var v I32[O]
	err := v.Decode(r)
	return int64(v), err
}

func (U64[O]) PutLen(w *Writer, n int) { U64[O](n).Encode(w) }
func (U64[O]) ReadLen(r *Reader) (int, error) {
	var v U64[O]
	if err := v.Decode(r); err != nil {
		return 0, err
	}
	return ulen(uint64(v))
}
func (U64[O]) PutIndex(w *Writer, i int64) { U64[O](i).Encode(w) }
func (U64[O]) ReadIndex(r *Reader) (int64, error) {
	var v U64[O]
	err := v.Decode(r)
	return int64(v), err
}

func (I64[O]) PutLen(w *Writer, n int) { I64[O](n).Encode(w) }
func (I64[O]) ReadLen(r *Reader) (int, error) {
	var v I64[O]
	if err := v.Decode(r); err != nil {
		return 0, err
	}
	return slen(int64(v))
}
func (I64[O]) PutIndex(w *Writer, i int64) { I64[O](i).Encode(w) }
func (I64[O]) ReadIndex(r *Reader) (int64, error) {
	var v I64[O]
	err := v.Decode(r)
	return int64(v), err
}

func (VarUint32) PutLen(w *Writer, n int) { VarUint32(n).Encode(w) }
func (VarUint32) ReadLen(r *Reader) (int, error) {
	var v VarUint32
	if err := v.Decode(r); err != nil {
		return 0, err
	}
	return ulen(uint64(v))
}
func (VarUint32) PutIndex(w *Writer, i int64) { VarUint32(i).Encode(w) }
func (VarUint32) ReadIndex(r *Reader) (int64, error) {
	var v VarUint32
	err := v.Decode(r)
	return int64(v), err
}

func (VarUint64) PutLen(w *Writer, n int) { VarUint64(n).Encode(w) }
func (VarUint64) ReadLen(r *Reader) (int, error) {
	var v VarUint64
	if err := v.Decode(r); err != nil {
		return 0, err
	}
	return ulen(uint64(v))
}
func (VarUint64) PutIndex(w *Writer, i int64) { VarUint64(i).Encode(w) }
func (VarUint64) ReadIndex(r *Reader) (int64, error) {
	var v VarUint64
	err := v.Decode(r)
	return int64(v), err
}

func (VarInt32) PutLen(w *Writer, n int) { VarInt32(n).Encode(w) }
func (VarInt32) ReadLen(r *Reader) (int, error) {
	var v VarInt32
	if err := v.Decode(r); err != nil {
		return 0, err
	}
	return slen(int64(v))
}
func (VarInt32) PutIndex(w *Writer, i int64) { VarInt32(i).Encode(w) }
func (VarInt32) ReadIndex(r *Reader) (int64, error) {
	var v VarInt32
	err := v.Decode(r)
	return int64(v), err
}

func (VarInt64) PutLen(w *Writer, n int) { VarInt64(n).Encode(w) }
func (VarInt64) ReadLen(r *Reader) (int, error) {
	var v VarInt64
	if err := v.Decode(r); err != nil {
		return 0, err
	}
	return slen(int64(v))
}
func (VarInt64) PutIndex(w *Writer, i int64) { VarInt64(i).Encode(w) }
func (VarInt64) ReadIndex(r *Reader) (int64, error) {
	var v VarInt64
	err := v.Decode(r)
	return int64(v), err
}
