// Package mcwire derives binary wire codecs for Go types from their
// declarations. A struct is a record whose exported fields are written in
// order; an interface registered with RegisterUnion is a tagged union whose
// concrete types are its variants.
//
// Components:
//   - wire: Writer/Reader, fixed-width and varint codecs, composite framing.
//   - nbt: the Named Binary Tag tree and its encodings.
//   - Registry: compiles a type into an encode/decode program once, caches
//     it, and runs it on every call.
//
// Field tags (key "wire"):
//
//	_ wire.U16[wire.LE] `wire:"len:Items"` // count of Items, written here
//	Items []Item                            // no prefix of its own
//	Name  string  `wire:"prefix:u16"`       // u16 LE byte length instead of w32
//	Kind  Shape   `wire:"variant:u8"`       // union with a u8 discriminant
//	Flags int32   `wire:"as:varint32"`      // v32 instead of fixed i32
//	Body  []byte  `wire:"rest"`             // rest of the input, last field only
//	Cache int     `wire:"-"`                // never on the wire
//
// Defaults: fixed-width integers and floats are little-endian, bool is one
// byte, strings, byte slices and slices carry a w32 (VarUint32) prefix,
// arrays are written element by element, and pointers are transparent.
//
// Codec names: u8 i8 u16 i16 u32 i32 u64 i64 (little-endian), the same with a
// "be" suffix, varint32 varuint32 varint64 varuint64, and the short forms
// b16 n16 b32 n32 b64 n64 v32 w32 v64 w64.
package mcwire
