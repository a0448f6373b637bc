package mcwire

import (
	"fmt"
	"reflect"

	"github.com/unkn0wn-root/mcwire/wire"
)

// step is one field of a compiled record. lens holds the counts read by
// donors during a single decode.
type step struct {
	enc func(w *wire.Writer, rec reflect.Value) error
	dec func(r *wire.Reader, rec reflect.Value, lens []int) error
}

// record compiles a struct into its descriptor and an ordered list of steps.
func (c *compiler) record(tc *typeCodec) (*Descriptor, error) {
	t := tc.typ
	desc, tags, err := describeRecord(c.reg, t)
	if err != nil {
		return nil, err
	}

	var (
		steps []step
		slots = make(map[int]int) // donor field index -> lens slot
	)
	for i, fd := range desc.Fields {
		fail := func(err error) (*Descriptor, error) {
			if _, ok := err.(*SchemaError); ok {
				return nil, err
			}
			return nil, &SchemaError{Type: t, Field: fd.Name, Err: err}
		}
		idx := fd.Index
		switch fd.Role {
		case RoleSkipped:
			continue

		case RoleDonor:
			slot := len(slots)
			slots[idx] = slot
			p := reflect.Zero(fd.Type).Interface().(wire.Prefix)
			target := desc.Fields[indexOf(desc, fd.Target)].Index
			steps = append(steps, step{
				enc: func(w *wire.Writer, rec reflect.Value) error {
					p.PutLen(w, rec.Field(target).Len())
					return nil
				},
				dec: func(r *wire.Reader, _ reflect.Value, lens []int) error {
					n, err := p.ReadLen(r)
					if err != nil {
						return err
					}
					lens[slot] = n
					return nil
				},
			})

		case RoleConsumer:
			as, err := optNumeric(tags[i].as)
			if err != nil {
				return fail(err)
			}
			if fd.DonorIndex >= 0 {
				body, err := c.sequence(fd.Type, as)
				if err != nil {
					return fail(err)
				}
				slot := slots[fd.DonorIndex]
				steps = append(steps, step{
					enc: func(w *wire.Writer, rec reflect.Value) error {
						return body.enc(w, rec.Field(idx))
					},
					dec: func(r *wire.Reader, rec reflect.Value, lens []int) error {
						return body.dec(r, rec.Field(idx), lens[slot])
					},
				})
				continue
			}
			p, err := lookupNumeric(fd.Prefix)
			if err != nil {
				return fail(err)
			}
			enc, dec, err := c.prefixed(fd.Type, p.prefix, as)
			if err != nil {
				return fail(err)
			}
			steps = append(steps, fieldStep(idx, enc, dec))

		case RoleRest:
			enc, dec := rest(fd.Type)
			steps = append(steps, fieldStep(idx, enc, dec))

		case RolePlain:
			enc, dec, err := c.plainField(fd)
			if err != nil {
				return fail(err)
			}
			steps = append(steps, fieldStep(idx, enc, dec))
		}
	}

	donors := len(slots)
	tc.enc = func(w *wire.Writer, v reflect.Value) error {
		for _, s := range steps {
			if err := s.enc(w, v); err != nil {
				return err
			}
		}
		return nil
	}
	tc.dec = func(r *wire.Reader, v reflect.Value) error {
		var lens []int
		if donors > 0 {
			lens = make([]int, donors)
		}
		for _, s := range steps {
			if err := s.dec(r, v, lens); err != nil {
				return err
			}
		}
		return nil
	}
	return desc, nil
}

func fieldStep(idx int, enc encFunc, dec decFunc) step {
	return step{
		enc: func(w *wire.Writer, rec reflect.Value) error { return enc(w, rec.Field(idx)) },
		dec: func(r *wire.Reader, rec reflect.Value, _ []int) error { return dec(r, rec.Field(idx)) },
	}
}

func (c *compiler) plainField(fd FieldDescriptor) (encFunc, decFunc, error) {
	t := fd.Type
	switch {
	case fd.Variant != "":
		n, err := lookupNumeric(fd.Variant)
		if err != nil {
			return nil, nil, err
		}
		return c.unionCodec(t, &n)
	case fd.As != "":
		n, err := lookupNumeric(fd.As)
		if err != nil {
			return nil, nil, err
		}
		if t.Kind() == reflect.Array {
			return c.array(t, &n)
		}
		enc, dec := intCodec(n)
		return enc, dec, nil
	}
	tc, err := c.compile(t)
	if err != nil {
		return nil, nil, err
	}
	return tc.encode, tc.decode, nil
}

func optNumeric(name string) (*numeric, error) {
	if name == "" {
		return nil, nil
	}
	n, err := lookupNumeric(name)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func indexOf(d *Descriptor, name string) int {
	for i, f := range d.Fields {
		if f.Name == name {
			return i
		}
	}
	return -1
}

// describeRecord reads the field tags of t and validates the layout. It
// returns the tags in descriptor order alongside the descriptor.
func describeRecord(reg *Registry, t reflect.Type) (*Descriptor, []fieldTag, error) {
	desc := &Descriptor{Type: t, Fields: make([]FieldDescriptor, 0, t.NumField())}
	tags := make([]fieldTag, 0, t.NumField())
	fail := func(field string, err error) (*Descriptor, []fieldTag, error) {
		return nil, nil, &SchemaError{Type: t, Field: field, Err: err}
	}

	donorOf := make(map[string]int) // target name -> donor struct index
	restAt := -1
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		tag, err := parseTag(sf.Tag.Get(tagKey))
		if err != nil {
			return fail(sf.Name, err)
		}
		fd := FieldDescriptor{
			Name:       sf.Name,
			Index:      i,
			Type:       sf.Type,
			DonorIndex: -1,
			Prefix:     tag.prefix,
			Variant:    tag.variant,
			As:         tag.as,
		}

		switch {
		case tag.lenFor != "":
			if tag.overrides() {
				return fail(sf.Name, fmt.Errorf("%w: len cannot be combined with other options", ErrBadTag))
			}
			if sf.Name != "_" || !sf.Type.Implements(prefixType) || sf.Type.Kind() == reflect.Interface {
				return fail(sf.Name, ErrDonorNotBlank)
			}
			if _, dup := donorOf[tag.lenFor]; dup {
				return fail(sf.Name, fmt.Errorf("%w: %s", ErrDuplicateDonor, tag.lenFor))
			}
			donorOf[tag.lenFor] = i
			fd.Role = RoleDonor
			fd.Target = tag.lenFor

		case tag.skip, sf.Name == "_", !sf.IsExported():
			fd.Role = RoleSkipped

		case tag.rest:
			if tag.prefix != "" || tag.variant != "" || tag.as != "" {
				return fail(sf.Name, fmt.Errorf("%w: rest cannot be combined with other options", ErrBadTag))
			}
			if !isRestType(sf.Type) {
				return fail(sf.Name, ErrRestType)
			}
			fd.Role = RoleRest
			restAt = i

		case isSequence(sf.Type):
			fd.Role = RoleConsumer
			if d, ok := donorOf[sf.Name]; ok {
				if tag.prefix != "" {
					return fail(sf.Name, ErrPrefixWithDonor)
				}
				fd.DonorIndex = d
				fd.Prefix = ""
				delete(donorOf, sf.Name)
			} else if fd.Prefix == "" {
				fd.Prefix = defaultPrefix.name
			}

		default:
			fd.Role = RolePlain
			if tag.prefix != "" {
				return fail(sf.Name, ErrPrefixNotSequence)
			}
		}

		if fd.Role == RolePlain || fd.Role == RoleConsumer {
			if err := checkOverrides(reg, fd); err != nil {
				return fail(sf.Name, err)
			}
		}
		if restAt >= 0 && restAt != i && fd.Role != RoleSkipped {
			return fail(sf.Name, ErrRestNotLast)
		}
		desc.Fields = append(desc.Fields, fd)
		tags = append(tags, tag)
	}

	// donors whose target never showed up after them
	for target := range donorOf {
		if j := indexOf(desc, target); j >= 0 {
			return fail(target, fmt.Errorf("%w: %s is declared before its donor or is not a sequence", ErrDonorTarget, target))
		}
		return fail("_", fmt.Errorf("%w: no field %s", ErrDonorTarget, target))
	}
	return desc, tags, nil
}

func checkOverrides(reg *Registry, fd FieldDescriptor) error {
	if fd.Variant != "" {
		if fd.Type.Kind() != reflect.Interface {
			return ErrVariantNotUnion
		}
		if _, ok := reg.union(fd.Type); !ok {
			return fmt.Errorf("%w: %s", ErrVariantNotUnion, fd.Type)
		}
		if _, err := lookupNumeric(fd.Variant); err != nil {
			return err
		}
	}
	if fd.Prefix != "" {
		if _, err := lookupNumeric(fd.Prefix); err != nil {
			return err
		}
	}
	if fd.As != "" {
		t := fd.Type
		if t.Kind() == reflect.Slice || t.Kind() == reflect.Array {
			t = t.Elem()
		}
		if !isInteger(t.Kind()) || isValueType(t) {
			return ErrAsNotNumeric
		}
		if _, err := lookupNumeric(fd.As); err != nil {
			return err
		}
	}
	return nil
}

func isRestType(t reflect.Type) bool {
	if isValueType(t) {
		return false
	}
	return t.Kind() == reflect.String || (t.Kind() == reflect.Slice && t.Elem().Kind() == reflect.Uint8)
}
