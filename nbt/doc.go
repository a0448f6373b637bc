// Package nbt implements the Named Binary Tag tree and its wire encodings.
//
// A tree is built from Tag values (Byte, Int, String, *List, *Compound, ...)
// and serialized under an Encoding:
//
//	NetworkLittleEndian  ints v32, longs v64, strings w32-prefixed
//	LittleEndian         ints/longs fixed LE, strings u16 LE-prefixed
//	BigEndian            everything fixed BE, strings u16 BE-prefixed
//
// The encodings are not cross-compatible; decoding bytes under the wrong one
// fails or yields a different tree.
//
// Root layout: tag id (u8), name (encoding string), payload. A root of kind
// End is the single byte 0.
package nbt
