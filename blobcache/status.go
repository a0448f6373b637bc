package blobcache

import (
	"github.com/unkn0wn-root/mcwire"
	"github.com/unkn0wn-root/mcwire/wire"
)

// Status is the client's answer to a chunk that referenced blobs: which
// hashes it lacks and which it already holds. Both counts precede both
// lists on the wire.
type Status struct {
	_      wire.VarUint32 `wire:"len:Misses"`
	_      wire.VarUint32 `wire:"len:Hits"`
	Misses []uint64
	Hits   []uint64
}

func (s Status) MarshalBinary() ([]byte, error) { return mcwire.Marshal(s) }

func (s *Status) UnmarshalBinary(b []byte) error { return mcwire.Unmarshal(b, s) }

// Blob is one cached payload and its hash.
type Blob struct {
	Hash    uint64
	Payload []byte
}

// MissResponse carries the blobs a client reported missing.
type MissResponse struct {
	Blobs []Blob
}

func (m MissResponse) MarshalBinary() ([]byte, error) { return mcwire.Marshal(m) }

func (m *MissResponse) UnmarshalBinary(b []byte) error { return mcwire.Unmarshal(b, m) }
