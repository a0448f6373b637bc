package mcwire

import (
	"fmt"
	"reflect"

	"github.com/unkn0wn-root/mcwire/wire"
)

// Marshal encodes v with the default registry. A pointer is encoded as its
// referent, so Marshal(&u) encodes an interface variable u as a union.
func Marshal(v any) ([]byte, error) { return std.Marshal(v) }

// AppendMarshal appends the encoding of v to dst.
func AppendMarshal(dst []byte, v any) ([]byte, error) { return std.AppendMarshal(dst, v) }

// Unmarshal decodes b into the value v points to. The whole of b must be
// consumed. On error *v is left untouched.
func Unmarshal(b []byte, v any) error { return std.Unmarshal(b, v) }

// Decode decodes a T from the whole of b.
func Decode[T any](b []byte) (T, error) {
	var out T
	err := std.Unmarshal(b, &out)
	return out, err
}

// EncodeTo writes v to w. T may be an interface registered as a union.
func EncodeTo[T any](w *wire.Writer, v T) error { return std.EncodeTo(w, &v) }

// DecodeFrom reads one T from r, leaving any following bytes unread.
func DecodeFrom[T any](r *wire.Reader) (T, error) {
	var out T
	err := std.DecodeFrom(r, &out)
	return out, err
}

// Compile builds codecs in the default registry.
func Compile(types ...reflect.Type) error { return std.Compile(types...) }

// Describe returns the layout of a record type in the default registry.
func Describe(t reflect.Type) (*Descriptor, error) { return std.Describe(t) }

func (r *Registry) Marshal(v any) ([]byte, error) {
	return r.AppendMarshal(nil, v)
}

func (r *Registry) AppendMarshal(dst []byte, v any) ([]byte, error) {
	w := wire.Append(dst)
	if err := r.EncodeTo(w, v); err != nil {
		return dst, err
	}
	return w.Bytes(), nil
}

// EncodeTo writes v to w. Nothing is written when v fails to encode.
func (r *Registry) EncodeTo(w *wire.Writer, v any) error {
	if v == nil {
		return &EncodeError{Err: ErrNilUnion}
	}
	rv := reflect.ValueOf(v)
	tc, err := r.codecFor(rv.Type())
	if err != nil {
		return err
	}
	mark := w.Len()
	if err := tc.encode(w, rv); err != nil {
		w.Truncate(mark)
		return &EncodeError{Type: rv.Type(), Err: err}
	}
	return nil
}

func (r *Registry) Unmarshal(b []byte, v any) error {
	rd := wire.NewReader(b)
	return r.decode(rd, v, true)
}

// DecodeFrom reads one value into the non-nil pointer v.
func (r *Registry) DecodeFrom(rd *wire.Reader, v any) error {
	return r.decode(rd, v, false)
}

func (r *Registry) decode(rd *wire.Reader, v any, whole bool) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return fmt.Errorf("%w: got %T", ErrInvalidTarget, v)
	}
	t := rv.Type().Elem()
	tc, err := r.codecFor(t)
	if err != nil {
		return err
	}

	nv := reflect.New(t).Elem()
	err = tc.decode(rd, nv)
	if err == nil && whole && rd.Remaining() > 0 {
		err = fmt.Errorf("%w: %d", ErrTrailingBytes, rd.Remaining())
	}
	if err != nil {
		r.log.Debug("mcwire: decode rejected", Fields{"type": t.String(), "err": err.Error()})
		r.hooks.DecodeRejected(t.String(), err)
		return &DecodeError{Type: t, Err: err}
	}
	rv.Elem().Set(nv)
	return nil
}
