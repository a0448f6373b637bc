// Package wire is the primitive layer of mcwire: a growable Writer, a
// bounds-checked Reader over a borrowed buffer, and the numeric and composite
// codecs every packet type is built from.
//
// Value types carry their wire representation in the type:
//
//	wire.U16[wire.BE]   // fixed 16-bit, big-endian
//	wire.VarInt32       // zig-zag LEB128 (v32)
//	wire.VarUint32      // LEB128 (w32), the default length prefix
//	wire.String[wire.N16] // string with a big-endian u16 byte length
//
// Every value type encodes with a value receiver and decodes with a pointer
// receiver:
//
//	v.Encode(w)          // never fails
//	err := v.Decode(r)   // ErrTruncated or an error wrapping ErrInvalid
//
// Decoding never panics and never reads past the end of the input. A failed
// decode leaves the cursor at an unspecified position; the message should be
// rejected as a whole.
//
// Views: functions suffixed View return slices or strings aliasing the input
// buffer. They are valid only while that buffer is alive and unmodified.
package wire
