// Package entry frames blobs for storage in a provider. The framing lets a
// reader detect foreign or damaged values and check the content hash
// without trusting the key.
package entry

import (
	"errors"
	"math"

	"github.com/unkn0wn-root/mcwire/wire"
)

const (
	version    byte = 1
	kindSingle byte = 1
	kindBatch  byte = 2
)

var (
	ErrCorrupt = errors.New("mcwire: corrupt blob entry")
	ErrTooBig  = errors.New("mcwire: blob exceeds u32 length")
	magic4     = [...]byte{'M', 'C', 'B', 'C'}
)

func header(w *wire.Writer, kind byte) {
	w.WriteBytes(magic4[:])
	_ = w.WriteByte(version)
	_ = w.WriteByte(kind)
}

func readHeader(r *wire.Reader, kind byte) bool {
	b, err := r.Take(6)
	return err == nil && [4]byte(b[:4]) == magic4 && b[4] == version && b[5] == kind
}

func putBlob(w *wire.Writer, hash uint64, payload []byte) {
	wire.N64(hash).Encode(w)
	wire.N32(len(payload)).Encode(w)
	w.WriteBytes(payload)
}

func readBlob(r *wire.Reader) (uint64, []byte, error) {
	var (
		hash wire.N64
		n    wire.N32
	)
	if hash.Decode(r) != nil || n.Decode(r) != nil {
		return 0, nil, ErrCorrupt
	}
	payload, err := r.Take(int(n))
	if err != nil {
		return 0, nil, ErrCorrupt
	}
	return uint64(hash), payload, nil
}

// EncodeSingle frames one blob:
//
//	magic(4) | ver(1) | kind(1=single) | hash(u64 be) | len(u32 be) | payload(len)
func EncodeSingle(hash uint64, payload []byte) ([]byte, error) {
	if uint64(len(payload)) > math.MaxUint32 {
		return nil, ErrTooBig
	}
	w := wire.NewWriter(4 + 1 + 1 + 8 + 4 + len(payload))
	header(w, kindSingle)
	putBlob(w, hash, payload)
	return w.Bytes(), nil
}

// DecodeSingle returns the stored hash and a view of the payload inside b.
func DecodeSingle(b []byte) (hash uint64, payload []byte, err error) {
	r := wire.NewReader(b)
	if !readHeader(r, kindSingle) {
		return 0, nil, ErrCorrupt
	}
	hash, payload, err = readBlob(r)
	if err != nil || r.Remaining() != 0 {
		return 0, nil, ErrCorrupt
	}
	return hash, payload, nil
}

// Blob is one member of a batch entry.
type Blob struct {
	Hash    uint64
	Payload []byte
}

// EncodeBatch frames a set of blobs stored together:
//
//	magic(4) | ver(1) | kind(2=batch) | n(u32 be)
//	hash(u64 be) | len(u32 be) | payload(len) * n
func EncodeBatch(blobs []Blob) ([]byte, error) {
	total := 4 + 1 + 1 + 4
	for _, b := range blobs {
		if uint64(len(b.Payload)) > math.MaxUint32 {
			return nil, ErrTooBig
		}
		total += 8 + 4 + len(b.Payload)
	}
	w := wire.NewWriter(total)
	header(w, kindBatch)
	wire.N32(len(blobs)).Encode(w)
	for _, b := range blobs {
		putBlob(w, b.Hash, b.Payload)
	}
	return w.Bytes(), nil
}

// DecodeBatch returns the members of a batch entry. Payloads alias b.
func DecodeBatch(b []byte) ([]Blob, error) {
	r := wire.NewReader(b)
	if !readHeader(r, kindBatch) {
		return nil, ErrCorrupt
	}
	var n wire.N32
	if n.Decode(r) != nil {
		return nil, ErrCorrupt
	}
	// every member takes at least 12 bytes
	if int(n) > r.Remaining()/12 {
		return nil, ErrCorrupt
	}
	blobs := make([]Blob, 0, n)
	for i := 0; i < int(n); i++ {
		hash, payload, err := readBlob(r)
		if err != nil {
			return nil, err
		}
		blobs = append(blobs, Blob{Hash: hash, Payload: payload})
	}
	if r.Remaining() != 0 {
		return nil, ErrCorrupt
	}
	return blobs, nil
}
