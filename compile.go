package mcwire

import (
	"fmt"
	"reflect"
	"unicode/utf8"

	"github.com/unkn0wn-root/mcwire/wire"
)

type (
	encFunc func(w *wire.Writer, v reflect.Value) error
	// decFunc decodes into v, which is always addressable and holds the zero
	// value of its type.
	decFunc func(r *wire.Reader, v reflect.Value) error
)

// typeCodec is the compiled program for one type. Codecs refer to each other
// through *typeCodec so recursive types resolve once the batch is built.
type typeCodec struct {
	typ  reflect.Type
	enc  encFunc
	dec  decFunc
	desc *Descriptor // records only
}

func (tc *typeCodec) encode(w *wire.Writer, v reflect.Value) error { return tc.enc(w, v) }
func (tc *typeCodec) decode(r *wire.Reader, v reflect.Value) error { return tc.dec(r, v) }

var (
	encoderType  = reflect.TypeFor[wire.Encoder]()
	decoderType  = reflect.TypeFor[wire.Decoder]()
	optionalType = reflect.TypeFor[wire.Optional]()
	prefixedType = reflect.TypeFor[wire.Prefixed]()
	prefixType   = reflect.TypeFor[wire.Prefix]()
)

type compiler struct {
	reg     *Registry
	pending map[reflect.Type]*typeCodec
	order   []*typeCodec
}

func (c *compiler) compile(t reflect.Type) (*typeCodec, error) {
	if v, ok := c.reg.codecs.Load(t); ok {
		return v.(*typeCodec), nil
	}
	if tc, ok := c.pending[t]; ok {
		return tc, nil
	}
	tc := &typeCodec{typ: t}
	c.pending[t] = tc
	c.order = append(c.order, tc)
	if err := c.build(tc); err != nil {
		return nil, err
	}
	return tc, nil
}

func isValueType(t reflect.Type) bool {
	return t.Kind() != reflect.Interface && t.Kind() != reflect.Pointer &&
		t.Implements(encoderType) && reflect.PointerTo(t).Implements(decoderType)
}

// isSequence reports whether t is a string or slice whose count the record
// layout controls.
func isSequence(t reflect.Type) bool {
	if t.Kind() != reflect.String && t.Kind() != reflect.Slice {
		return false
	}
	return !isValueType(t) && !t.Implements(prefixedType)
}

func isInteger(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return true
	}
	return false
}

func (c *compiler) build(tc *typeCodec) error {
	t := tc.typ
	var err error
	switch {
	case t.Kind() == reflect.Struct && t.Implements(optionalType):
		tc.enc, tc.dec, err = c.option(t)
		return err
	case t.Kind() == reflect.Slice && t.Implements(prefixedType):
		p := reflect.Zero(t).Interface().(wire.Prefixed).LenPrefix()
		tc.enc, tc.dec, err = c.prefixed(t, p, nil)
		return err
	case isValueType(t):
		tc.enc, tc.dec = valueCodec()
		return nil
	}

	switch k := t.Kind(); {
	case k == reflect.Bool:
		tc.enc, tc.dec = boolCodec()
	case isInteger(k):
		tc.enc, tc.dec = intCodec(defaultNumeric(k))
	case k == reflect.Float32:
		tc.enc, tc.dec = float32Codec()
	case k == reflect.Float64:
		tc.enc, tc.dec = float64Codec()
	case k == reflect.String, k == reflect.Slice:
		tc.enc, tc.dec, err = c.prefixed(t, defaultPrefix.prefix, nil)
	case k == reflect.Array:
		tc.enc, tc.dec, err = c.array(t, nil)
	case k == reflect.Pointer:
		tc.enc, tc.dec, err = c.pointer(t)
	case k == reflect.Interface:
		tc.enc, tc.dec, err = c.unionCodec(t, nil)
	case k == reflect.Struct:
		tc.desc, err = c.record(tc)
	default:
		err = &SchemaError{Type: t, Err: fmt.Errorf("%w: kind %s", ErrUnsupportedType, k)}
	}
	return err
}

func valueCodec() (encFunc, decFunc) {
	enc := func(w *wire.Writer, v reflect.Value) error {
		v.Interface().(wire.Encoder).Encode(w)
		return nil
	}
	dec := func(r *wire.Reader, v reflect.Value) error {
		return v.Addr().Interface().(wire.Decoder).Decode(r)
	}
	return enc, dec
}

func boolCodec() (encFunc, decFunc) {
	enc := func(w *wire.Writer, v reflect.Value) error {
		wire.Bool(v.Bool()).Encode(w)
		return nil
	}
	dec := func(r *wire.Reader, v reflect.Value) error {
		var b wire.Bool
		if err := b.Decode(r); err != nil {
			return err
		}
		v.SetBool(bool(b))
		return nil
	}
	return enc, dec
}

// intCodec writes an integer of any kind through n. Values that do not fit
// the Go field on decode are rejected.
func intCodec(n numeric) (encFunc, decFunc) {
	enc := func(w *wire.Writer, v reflect.Value) error {
		if v.CanInt() {
			n.variant.PutIndex(w, v.Int())
		} else {
			n.variant.PutIndex(w, int64(v.Uint()))
		}
		return nil
	}
	dec := func(r *wire.Reader, v reflect.Value) error {
		i, err := n.variant.ReadIndex(r)
		if err != nil {
			return err
		}
		if v.CanInt() {
			if v.OverflowInt(i) {
				return fmt.Errorf("%w: %d overflows %s", wire.ErrInvalid, i, v.Type())
			}
			v.SetInt(i)
			return nil
		}
		if v.OverflowUint(uint64(i)) {
			return fmt.Errorf("%w: %d overflows %s", wire.ErrInvalid, i, v.Type())
		}
		v.SetUint(uint64(i))
		return nil
	}
	return enc, dec
}

func float32Codec() (encFunc, decFunc) {
	enc := func(w *wire.Writer, v reflect.Value) error {
		wire.F32[wire.LE](v.Float()).Encode(w)
		return nil
	}
	dec := func(r *wire.Reader, v reflect.Value) error {
		var f wire.F32[wire.LE]
		if err := f.Decode(r); err != nil {
			return err
		}
		v.SetFloat(float64(f))
		return nil
	}
	return enc, dec
}

func float64Codec() (encFunc, decFunc) {
	enc := func(w *wire.Writer, v reflect.Value) error {
		wire.F64[wire.LE](v.Float()).Encode(w)
		return nil
	}
	dec := func(r *wire.Reader, v reflect.Value) error {
		var f wire.F64[wire.LE]
		if err := f.Decode(r); err != nil {
			return err
		}
		v.SetFloat(float64(f))
		return nil
	}
	return enc, dec
}

// elem compiles the element codec of a container, applying an integer
// override when one was requested on the field.
func (c *compiler) elem(t reflect.Type, as *numeric) (encFunc, decFunc, error) {
	if as != nil {
		if !isInteger(t.Kind()) || isValueType(t) {
			return nil, nil, fmt.Errorf("%w: element %s", ErrAsNotNumeric, t)
		}
		enc, dec := intCodec(*as)
		return enc, dec, nil
	}
	tc, err := c.compile(t)
	if err != nil {
		return nil, nil, err
	}
	return tc.encode, tc.decode, nil
}

// seqBody is a string or slice without its count.
type seqBody struct {
	enc encFunc
	dec func(r *wire.Reader, v reflect.Value, n int) error
}

func (c *compiler) sequence(t reflect.Type, as *numeric) (seqBody, error) {
	if t.Kind() == reflect.String {
		return seqBody{
			enc: func(w *wire.Writer, v reflect.Value) error {
				_, _ = w.WriteString(v.String())
				return nil
			},
			dec: func(r *wire.Reader, v reflect.Value, n int) error {
				b, err := r.Take(n)
				if err != nil {
					return err
				}
				if !utf8.Valid(b) {
					return wire.ErrInvalidUTF8
				}
				v.SetString(string(b))
				return nil
			},
		}, nil
	}

	et := t.Elem()
	if et.Kind() == reflect.Uint8 && as == nil {
		return seqBody{
			enc: func(w *wire.Writer, v reflect.Value) error {
				w.WriteBytes(v.Bytes())
				return nil
			},
			dec: func(r *wire.Reader, v reflect.Value, n int) error {
				b, err := r.Take(n)
				if err != nil {
					return err
				}
				nv := reflect.MakeSlice(t, n, n)
				copy(nv.Bytes(), b)
				v.Set(nv)
				return nil
			},
		}, nil
	}

	encElem, decElem, err := c.elem(et, as)
	if err != nil {
		return seqBody{}, err
	}
	return seqBody{
		enc: func(w *wire.Writer, v reflect.Value) error {
			for i := 0; i < v.Len(); i++ {
				if err := encElem(w, v.Index(i)); err != nil {
					return err
				}
			}
			return nil
		},
		dec: func(r *wire.Reader, v reflect.Value, n int) error {
			nv := reflect.MakeSlice(t, 0, min(n, r.Remaining()))
			for i := 0; i < n; i++ {
				ev := reflect.New(et).Elem()
				if err := decElem(r, ev); err != nil {
					return err
				}
				nv = reflect.Append(nv, ev)
			}
			v.Set(nv)
			return nil
		},
	}, nil
}

// prefixed is a sequence with its count written immediately before it.
func (c *compiler) prefixed(t reflect.Type, p wire.Prefix, as *numeric) (encFunc, decFunc, error) {
	body, err := c.sequence(t, as)
	if err != nil {
		return nil, nil, err
	}
	enc := func(w *wire.Writer, v reflect.Value) error {
		p.PutLen(w, v.Len())
		return body.enc(w, v)
	}
	dec := func(r *wire.Reader, v reflect.Value) error {
		n, err := p.ReadLen(r)
		if err != nil {
			return err
		}
		return body.dec(r, v, n)
	}
	return enc, dec, nil
}

// array writes each element with no count. Decode fills a scratch array and
// assigns it only when every element succeeded.
func (c *compiler) array(t reflect.Type, as *numeric) (encFunc, decFunc, error) {
	n := t.Len()
	if t.Elem() == reflect.TypeFor[byte]() && as == nil {
		enc := func(w *wire.Writer, v reflect.Value) error {
			for i := 0; i < n; i++ {
				_ = w.WriteByte(byte(v.Index(i).Uint()))
			}
			return nil
		}
		dec := func(r *wire.Reader, v reflect.Value) error {
			b, err := r.Take(n)
			if err != nil {
				return err
			}
			reflect.Copy(v, reflect.ValueOf(b))
			return nil
		}
		return enc, dec, nil
	}
	encElem, decElem, err := c.elem(t.Elem(), as)
	if err != nil {
		return nil, nil, err
	}
	enc := func(w *wire.Writer, v reflect.Value) error {
		for i := 0; i < n; i++ {
			if err := encElem(w, v.Index(i)); err != nil {
				return err
			}
		}
		return nil
	}
	dec := func(r *wire.Reader, v reflect.Value) error {
		nv := reflect.New(t).Elem()
		for i := 0; i < n; i++ {
			if err := decElem(r, nv.Index(i)); err != nil {
				return err
			}
		}
		v.Set(nv)
		return nil
	}
	return enc, dec, nil
}

// pointer is transparent: it writes its referent (the zero value when nil)
// and decodes into a fresh allocation.
func (c *compiler) pointer(t reflect.Type) (encFunc, decFunc, error) {
	et := t.Elem()
	inner, err := c.compile(et)
	if err != nil {
		return nil, nil, err
	}
	enc := func(w *wire.Writer, v reflect.Value) error {
		if v.IsNil() {
			return inner.encode(w, reflect.New(et).Elem())
		}
		return inner.encode(w, v.Elem())
	}
	dec := func(r *wire.Reader, v reflect.Value) error {
		nv := reflect.New(et)
		if err := inner.decode(r, nv.Elem()); err != nil {
			return err
		}
		v.Set(nv)
		return nil
	}
	return enc, dec, nil
}

// option frames wire.Option[T]: presence byte, then T when present.
func (c *compiler) option(t reflect.Type) (encFunc, decFunc, error) {
	inner, err := c.compile(t.Field(0).Type)
	if err != nil {
		return nil, nil, err
	}
	enc := func(w *wire.Writer, v reflect.Value) error {
		valid := v.Field(1).Bool()
		wire.Bool(valid).Encode(w)
		if !valid {
			return nil
		}
		return inner.encode(w, v.Field(0))
	}
	dec := func(r *wire.Reader, v reflect.Value) error {
		var present wire.Bool
		if err := present.Decode(r); err != nil {
			return err
		}
		if !present {
			return nil
		}
		nv := reflect.New(inner.typ).Elem()
		if err := inner.decode(r, nv); err != nil {
			return err
		}
		v.Field(0).Set(nv)
		v.Field(1).SetBool(true)
		return nil
	}
	return enc, dec, nil
}

// rest reads and writes a terminal string or byte slice with no framing.
func rest(t reflect.Type) (encFunc, decFunc) {
	if t.Kind() == reflect.String {
		enc := func(w *wire.Writer, v reflect.Value) error {
			_, _ = w.WriteString(v.String())
			return nil
		}
		dec := func(r *wire.Reader, v reflect.Value) error {
			b := r.Peek(r.Remaining())
			if !utf8.Valid(b) {
				return wire.ErrInvalidUTF8
			}
			v.SetString(string(r.Rest()))
			return nil
		}
		return enc, dec
	}
	enc := func(w *wire.Writer, v reflect.Value) error {
		w.WriteBytes(v.Bytes())
		return nil
	}
	dec := func(r *wire.Reader, v reflect.Value) error {
		b := r.Rest()
		nv := reflect.MakeSlice(t, len(b), len(b))
		copy(nv.Bytes(), b)
		v.Set(nv)
		return nil
	}
	return enc, dec
}
