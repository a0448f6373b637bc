package mcwire

import "reflect"

// FieldRole is how a record field takes part in the wire layout.
type FieldRole uint8

const (
	// RolePlain fields are written with their own codec.
	RolePlain FieldRole = iota
	// RoleDonor fields exist only in the layout: they carry the length of a
	// later sequence field and are never stored.
	RoleDonor
	// RoleConsumer fields are sequences whose count comes from a donor or
	// from a prefix written immediately before them.
	RoleConsumer
	// RoleSkipped fields never touch the wire and decode as their zero value.
	RoleSkipped
	// RoleRest fields take the remainder of the input.
	RoleRest
)

func (r FieldRole) String() string {
	switch r {
	case RolePlain:
		return "plain"
	case RoleDonor:
		return "donor"
	case RoleConsumer:
		return "consumer"
	case RoleSkipped:
		return "skipped"
	case RoleRest:
		return "rest"
	default:
		return "unknown"
	}
}

// FieldDescriptor describes one struct field.
type FieldDescriptor struct {
	Name  string
	Index int // struct field index
	Type  reflect.Type
	Role  FieldRole

	Target     string // donors: name of the sequence they size
	DonorIndex int    // consumers: struct index of their donor, or -1
	Prefix     string // count codec of a consumer without a donor
	Variant    string // discriminant override for union fields
	As         string // numeric override for integer fields
}

// Descriptor is the compiled layout of a record. It is immutable once
// returned by a Registry.
type Descriptor struct {
	Type   reflect.Type
	Fields []FieldDescriptor
}

// VariantDescriptor is one member of a union.
type VariantDescriptor struct {
	Type         reflect.Type
	Discriminant int64
	Fallback     bool
}

// UnionDescriptor is the layout of a tagged union.
type UnionDescriptor struct {
	Type         reflect.Type
	Discriminant string
	Variants     []VariantDescriptor
	Fallback     int // index into Variants, or -1
}

func (d *Descriptor) clone() *Descriptor {
	out := *d
	out.Fields = append([]FieldDescriptor(nil), d.Fields...)
	return &out
}

func (d *UnionDescriptor) clone() *UnionDescriptor {
	out := *d
	out.Variants = append([]VariantDescriptor(nil), d.Variants...)
	return &out
}
