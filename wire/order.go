package wire

import "encoding/binary"

// ByteOrder selects the byte order of fixed-width codecs at the type level.
// LE and BE are the only implementations; both are zero-sized.
type ByteOrder interface {
	Uint16([]byte) uint16
	Uint32([]byte) uint32
	Uint64([]byte) uint64
	AppendUint16([]byte, uint16) []byte
	AppendUint32([]byte, uint32) []byte
	AppendUint64([]byte, uint64) []byte
}

// LE is little-endian, the default for fixed-width fields.
type LE struct{}

func (LE) Uint16(b []byte) uint16                 { return binary.LittleEndian.Uint16(b) }
func (LE) Uint32(b []byte) uint32                 { return binary.LittleEndian.Uint32(b) }
func (LE) Uint64(b []byte) uint64                 { return binary.LittleEndian.Uint64(b) }
func (LE) AppendUint16(b []byte, v uint16) []byte { return binary.LittleEndian.AppendUint16(b, v) }
func (LE) AppendUint32(b []byte, v uint32) []byte { return binary.LittleEndian.AppendUint32(b, v) }
func (LE) AppendUint64(b []byte, v uint64) []byte { return binary.LittleEndian.AppendUint64(b, v) }

// BE is big-endian (network order).
type BE struct{}

func (BE) Uint16(b []byte) uint16                 { return binary.BigEndian.Uint16(b) }
func (BE) Uint32(b []byte) uint32                 { return binary.BigEndian.Uint32(b) }
func (BE) Uint64(b []byte) uint64                 { return binary.BigEndian.Uint64(b) }
func (BE) AppendUint16(b []byte, v uint16) []byte { return binary.BigEndian.AppendUint16(b, v) }
func (BE) AppendUint32(b []byte, v uint32) []byte { return binary.BigEndian.AppendUint32(b, v) }
func (BE) AppendUint64(b []byte, v uint64) []byte { return binary.BigEndian.AppendUint64(b, v) }
