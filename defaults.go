package mcwire

import (
	"reflect"

	"github.com/unkn0wn-root/mcwire/wire"
)

// defaultPrefix counts strings, byte slices and slices that carry no
// prefix tag and have no donor.
var defaultPrefix = num[wire.VarUint32]("varuint32")

// defaultNumeric is the codec of an integer field with no as tag:
// fixed width, little-endian, sized by the Go kind. int is written as i64 and
// uint and uintptr as u64 so the layout does not depend on GOARCH.
func defaultNumeric(k reflect.Kind) numeric {
	switch k {
	case reflect.Int8:
		return numerics["i8"]
	case reflect.Uint8:
		return numerics["u8"]
	case reflect.Int16:
		return numerics["i16"]
	case reflect.Uint16:
		return numerics["u16"]
	case reflect.Int32:
		return numerics["i32"]
	case reflect.Uint32:
		return numerics["u32"]
	case reflect.Int, reflect.Int64:
		return numerics["i64"]
	default:
		return numerics["u64"]
	}
}

// coalesce returns def when v is the zero value of T, otherwise v.
func coalesce[T comparable](v, def T) T {
	var zero T
	if v == zero {
		return def
	}
	return v
}
