package mcwire

import (
	"fmt"

	"github.com/unkn0wn-root/mcwire/wire"
)

// numeric is a named integer codec usable as a count, a discriminant, or a
// field representation.
type numeric struct {
	name    string
	prefix  wire.Prefix
	variant wire.Variant
}

func num[T interface {
	wire.Prefix
	wire.Variant
}](name string) numeric {
	var v T
	return numeric{name: name, prefix: v, variant: v}
}

var numerics = buildNumerics()

func buildNumerics() map[string]numeric {
	m := make(map[string]numeric)
	for _, n := range []numeric{
		num[wire.U8]("u8"),
		num[wire.I8]("i8"),
		num[wire.U16[wire.LE]]("u16"),
		num[wire.I16[wire.LE]]("i16"),
		num[wire.U32[wire.LE]]("u32"),
		num[wire.I32[wire.LE]]("i32"),
		num[wire.U64[wire.LE]]("u64"),
		num[wire.I64[wire.LE]]("i64"),
		num[wire.U16[wire.BE]]("u16be"),
		num[wire.I16[wire.BE]]("i16be"),
		num[wire.U32[wire.BE]]("u32be"),
		num[wire.I32[wire.BE]]("i32be"),
		num[wire.U64[wire.BE]]("u64be"),
		num[wire.I64[wire.BE]]("i64be"),
		num[wire.VarInt32]("varint32"),
		num[wire.VarUint32]("varuint32"),
		num[wire.VarInt64]("varint64"),
		num[wire.VarUint64]("varuint64"),
	} {
		m[n.name] = n
	}
	for short, long := range map[string]string{
		"n16": "u16be", "b16": "i16be",
		"n32": "u32be", "b32": "i32be",
		"n64": "u64be", "b64": "i64be",
		"v32": "varint32", "w32": "varuint32",
		"v64": "varint64", "w64": "varuint64",
	} {
		n := m[long]
		n.name = short
		m[short] = n
	}
	return m
}

func lookupNumeric(name string) (numeric, error) {
	n, ok := numerics[name]
	if !ok {
		return numeric{}, fmt.Errorf("%w: %q", ErrUnknownCodec, name)
	}
	return n, nil
}
