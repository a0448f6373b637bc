package mcwire

import (
	"fmt"
	"reflect"

	"github.com/unkn0wn-root/mcwire/wire"
)

// UnionSpec declares a tagged union over the concrete types that implement an
// interface.
type UnionSpec struct {
	// Discriminant names the codec of the leading discriminant, e.g. "u8".
	Discriminant string
	Variants     []VariantSpec
}

// VariantSpec is one member of a union. Type is a value of the variant type,
// e.g. Ping{}. Without an explicit Discriminant a variant takes the value
// after its predecessor's, starting at 0.
type VariantSpec struct {
	Type         any
	Discriminant *int64

	// Fallback marks the variant that absorbs unknown discriminants on
	// decode. It carries no payload and cannot be encoded.
	Fallback bool
}

// At is shorthand for an explicit discriminant.
func At(d int64) *int64 { return &d }

type unionSchema struct {
	desc   *UnionDescriptor
	disc   numeric
	byType map[reflect.Type]int
	byDisc map[int64]int
}

// RegisterUnion registers I as a union in the default registry.
func RegisterUnion[I any](spec UnionSpec) error {
	return std.RegisterUnion(reflect.TypeFor[I](), spec)
}

// MustRegisterUnion is RegisterUnion for package init; it panics on error.
func MustRegisterUnion[I any](spec UnionSpec) {
	if err := RegisterUnion[I](spec); err != nil {
		panic(err)
	}
}

// RegisterUnion registers the interface type iface as a union. Variant codecs
// are compiled on first use.
func (r *Registry) RegisterUnion(iface reflect.Type, spec UnionSpec) error {
	u, err := buildUnion(iface, spec)
	if err != nil {
		r.log.Warn("mcwire: union rejected", Fields{"type": iface.String(), "err": err.Error()})
		r.hooks.SchemaRejected(iface.String(), err)
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, dup := r.unions.Load(iface); dup {
		return &SchemaError{Type: iface, Err: ErrAlreadyRegistered}
	}
	r.unions.Store(iface, u)
	r.log.Debug("mcwire: union registered", Fields{"type": iface.String(), "variants": len(spec.Variants)})
	return nil
}

func buildUnion(iface reflect.Type, spec UnionSpec) (*unionSchema, error) {
	fail := func(err error) (*unionSchema, error) {
		return nil, &SchemaError{Type: iface, Err: err}
	}
	if iface.Kind() != reflect.Interface {
		return fail(fmt.Errorf("%w: %s is not an interface", ErrUnsupportedType, iface))
	}
	if spec.Discriminant == "" {
		return fail(ErrMissingDiscriminant)
	}
	disc, err := lookupNumeric(spec.Discriminant)
	if err != nil {
		return fail(err)
	}

	u := &unionSchema{
		desc: &UnionDescriptor{
			Type:         iface,
			Discriminant: spec.Discriminant,
			Variants:     make([]VariantDescriptor, 0, len(spec.Variants)),
			Fallback:     -1,
		},
		disc:   disc,
		byType: make(map[reflect.Type]int, len(spec.Variants)),
		byDisc: make(map[int64]int, len(spec.Variants)),
	}
	var next int64
	for i, vs := range spec.Variants {
		vt := reflect.TypeOf(vs.Type)
		if vt == nil || !vt.Implements(iface) {
			return fail(fmt.Errorf("%w: variant %d (%v)", ErrBadVariant, i, vt))
		}
		if _, dup := u.byType[vt]; dup {
			return fail(fmt.Errorf("%w: %s listed twice", ErrBadVariant, vt))
		}
		d := next
		if vs.Discriminant != nil {
			d = *vs.Discriminant
		}
		next = d + 1
		if j, dup := u.byDisc[d]; dup {
			return fail(fmt.Errorf("%w: %d used by %s and %s", ErrDuplicateDiscriminant, d, u.desc.Variants[j].Type, vt))
		}
		if vs.Fallback {
			if u.desc.Fallback >= 0 {
				return fail(ErrMultipleFallbacks)
			}
			u.desc.Fallback = i
		}
		u.byType[vt] = i
		u.byDisc[d] = i
		u.desc.Variants = append(u.desc.Variants, VariantDescriptor{Type: vt, Discriminant: d, Fallback: vs.Fallback})
	}
	return u, nil
}

// unionCodec writes the discriminant of the concrete variant followed by its
// payload. width overrides the registered discriminant codec.
func (c *compiler) unionCodec(t reflect.Type, width *numeric) (encFunc, decFunc, error) {
	u, ok := c.reg.union(t)
	if !ok {
		return nil, nil, &SchemaError{Type: t, Err: ErrNotRegistered}
	}
	disc := u.disc
	if width != nil {
		disc = *width
	}

	variants := u.desc.Variants
	codecs := make([]*typeCodec, len(variants))
	for i, v := range variants {
		if v.Fallback {
			continue
		}
		tc, err := c.compile(v.Type)
		if err != nil {
			return nil, nil, err
		}
		codecs[i] = tc
	}

	reg := c.reg
	fallback := u.desc.Fallback
	enc := func(w *wire.Writer, v reflect.Value) error {
		if v.IsNil() {
			return ErrNilUnion
		}
		concrete := v.Elem()
		i, ok := u.byType[concrete.Type()]
		if !ok {
			return fmt.Errorf("%w: %s in %s", ErrUnknownVariant, concrete.Type(), t)
		}
		if i == fallback {
			return ErrFallbackEncode
		}
		disc.variant.PutIndex(w, variants[i].Discriminant)
		return codecs[i].encode(w, concrete)
	}
	dec := func(r *wire.Reader, v reflect.Value) error {
		d, err := disc.variant.ReadIndex(r)
		if err != nil {
			return err
		}
		i, ok := u.byDisc[d]
		if !ok {
			if fallback < 0 {
				return fmt.Errorf("%w: %d for %s", wire.ErrUnknownDiscriminant, d, t)
			}
			reg.log.Debug("mcwire: fallback decoded", Fields{"union": t.String(), "discriminant": d})
			reg.hooks.FallbackDecoded(t.String(), d)
			i = fallback
		}
		if i == fallback {
			v.Set(reflect.New(variants[i].Type).Elem())
			return nil
		}
		nv := reflect.New(variants[i].Type).Elem()
		if err := codecs[i].decode(r, nv); err != nil {
			return err
		}
		v.Set(nv)
		return nil
	}
	return enc, dec, nil
}
