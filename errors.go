package mcwire

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/unkn0wn-root/mcwire/wire"
)

// Schema violations, reported wrapped in *SchemaError.
var (
	ErrBadTag                = errors.New("malformed wire tag")
	ErrUnknownCodec          = errors.New("unknown numeric codec")
	ErrUnsupportedType       = errors.New("type has no wire form")
	ErrDuplicateDonor        = errors.New("sequence already has a length donor")
	ErrDonorTarget           = errors.New("length donor must precede a sequence field it names")
	ErrDonorNotBlank         = errors.New("length donor must be a blank (_) field of a prefix codec type")
	ErrPrefixWithDonor       = errors.New("prefix override on a field with a length donor")
	ErrPrefixNotSequence     = errors.New("prefix override on a non-sequence field")
	ErrVariantNotUnion       = errors.New("variant override on a non-union field")
	ErrAsNotNumeric          = errors.New("as override on a non-integer field")
	ErrRestNotLast           = errors.New("rest field must be the last wire field")
	ErrRestType              = errors.New("rest field must be a string or byte slice")
	ErrNotRegistered         = errors.New("interface is not a registered union")
	ErrAlreadyRegistered     = errors.New("union already registered")
	ErrMissingDiscriminant   = errors.New("union declares no discriminant codec")
	ErrMultipleFallbacks     = errors.New("union declares more than one fallback variant")
	ErrDuplicateDiscriminant = errors.New("two variants share a discriminant")
	ErrBadVariant            = errors.New("variant type does not implement the union")
)

// Runtime failures.
var (
	ErrFallbackEncode = errors.New("mcwire: fallback variant cannot be encoded")
	ErrNilUnion       = errors.New("mcwire: nil union value")
	ErrUnknownVariant = errors.New("mcwire: value is not a registered variant")
	ErrInvalidTarget  = errors.New("mcwire: decode target must be a non-nil pointer")
	ErrTrailingBytes  = fmt.Errorf("%w: trailing bytes after message", wire.ErrInvalid)
)

// SchemaError reports a type declaration the compiler cannot turn into a
// codec. It is returned at compile time, never from a decode.
type SchemaError struct {
	Type  reflect.Type
	Field string // empty when the problem is the type itself
	Err   error
}

func (e *SchemaError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("mcwire: schema %s.%s: %v", e.Type, e.Field, e.Err)
	}
	return fmt.Sprintf("mcwire: schema %s: %v", e.Type, e.Err)
}

func (e *SchemaError) Unwrap() error { return e.Err }

// DecodeError wraps a rejected decode. errors.Is(err, wire.ErrTruncated) and
// errors.Is(err, wire.ErrInvalid) see through it.
type DecodeError struct {
	Type reflect.Type
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("mcwire: decode %s: %v", e.Type, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// EncodeError reports a value that violates its type's invariants, such as a
// union holding its fallback variant.
type EncodeError struct {
	Type reflect.Type
	Err  error
}

func (e *EncodeError) Error() string {
	return fmt.Sprintf("mcwire: encode %s: %v", e.Type, e.Err)
}

func (e *EncodeError) Unwrap() error { return e.Err }
