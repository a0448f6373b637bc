package entry

import (
	"bytes"
	"encoding/binary"
	"math"
	"testing"
)

func mustEncodeSingle(t *testing.T, hash uint64, p []byte) []byte {
	t.Helper()
	b, err := EncodeSingle(hash, p)
	if err != nil {
		t.Fatalf("EncodeSingle: %v", err)
	}
	return b
}

func mustDecodeSingle(t *testing.T, b []byte) (uint64, []byte) {
	t.Helper()
	hash, p, err := DecodeSingle(b)
	if err != nil {
		t.Fatalf("DecodeSingle error: %v", err)
	}
	return hash, p
}

func TestSingleRoundTrip(t *testing.T) {
	cases := []struct {
		hash    uint64
		payload []byte
	}{
		{0, nil},
		{42, []byte("hello")},
		{math.MaxUint64, []byte{0, 1, 2, 3, 4}},
	}
	for _, tc := range cases {
		hash, p := mustDecodeSingle(t, mustEncodeSingle(t, tc.hash, tc.payload))
		if hash != tc.hash {
			t.Fatalf("hash mismatch: got %d want %d", hash, tc.hash)
		}
		if !bytes.Equal(p, tc.payload) {
			t.Fatalf("payload mismatch: got %x want %x", p, tc.payload)
		}
	}
}

func TestSingleLayout(t *testing.T) {
	got := mustEncodeSingle(t, 0x0102030405060708, []byte("z"))
	want := []byte{
		'M', 'C', 'B', 'C', 1, 1,
		1, 2, 3, 4, 5, 6, 7, 8,
		0, 0, 0, 1,
		'z',
	}
	if !bytes.Equal(got, want) {
		t.Fatalf("layout = % x, want % x", got, want)
	}
}

func TestSingleRejectsTrailingBytes(t *testing.T) {
	enc := append(mustEncodeSingle(t, 7, []byte("x")), 0xDE, 0xAD)
	if _, _, err := DecodeSingle(enc); err != ErrCorrupt {
		t.Fatalf("err=%v, want ErrCorrupt", err)
	}
}

func TestSingleCorruptHeadersAndLengths(t *testing.T) {
	enc := mustEncodeSingle(t, 1, []byte("abc"))

	mutate := func(f func(b []byte) []byte) []byte {
		return f(append([]byte(nil), enc...))
	}
	cases := map[string][]byte{
		"bad magic":   mutate(func(b []byte) []byte { b[0] = 'X'; return b }),
		"bad version": mutate(func(b []byte) []byte { b[4] = version + 1; return b }),
		"batch kind":  mutate(func(b []byte) []byte { b[5] = kindBatch; return b }),
		"len beyond buffer": mutate(func(b []byte) []byte {
			binary.BigEndian.PutUint32(b[14:18], 4)
			return b
		}),
		"truncated": enc[:len(enc)-1],
		"header only": enc[:6],
		"empty":       nil,
	}
	for name, b := range cases {
		if _, _, err := DecodeSingle(b); err != ErrCorrupt {
			t.Fatalf("%s: err=%v, want ErrCorrupt", name, err)
		}
	}
}

func TestSingleZeroCopyPayload(t *testing.T) {
	enc := mustEncodeSingle(t, 1, []byte("Z"))
	_, p := mustDecodeSingle(t, enc)
	p[0] = 'Q'
	if _, p2 := mustDecodeSingle(t, enc); p2[0] != 'Q' {
		t.Fatalf("expected payload to alias the entry")
	}
}

// ==== Batch ====

func TestBatchRoundTrip(t *testing.T) {
	cases := [][]Blob{
		nil,
		{{Hash: 1, Payload: []byte("x")}},
		{
			{Hash: 1, Payload: []byte("x")},
			{Hash: 2, Payload: nil},
			{Hash: 3, Payload: []byte{9, 8, 7}},
		},
	}
	for _, blobs := range cases {
		enc, err := EncodeBatch(blobs)
		if err != nil {
			t.Fatalf("EncodeBatch: %v", err)
		}
		got, err := DecodeBatch(enc)
		if err != nil {
			t.Fatalf("DecodeBatch: %v", err)
		}
		if len(got) != len(blobs) {
			t.Fatalf("len mismatch: got %d want %d", len(got), len(blobs))
		}
		for i := range blobs {
			if got[i].Hash != blobs[i].Hash || !bytes.Equal(got[i].Payload, blobs[i].Payload) {
				t.Fatalf("blob %d mismatch: got=%+v want=%+v", i, got[i], blobs[i])
			}
		}
	}
}

func TestBatchRejectsMalformed(t *testing.T) {
	enc, err := EncodeBatch([]Blob{{Hash: 9, Payload: []byte("xyz")}})
	if err != nil {
		t.Fatalf("EncodeBatch: %v", err)
	}
	if _, err := DecodeBatch(append(enc, 0xBE)); err != ErrCorrupt {
		t.Fatalf("trailing: err=%v", err)
	}
	if _, err := DecodeBatch(enc[:len(enc)-1]); err != ErrCorrupt {
		t.Fatalf("truncated: err=%v", err)
	}

	huge := append([]byte(nil), enc[:6]...)
	huge = binary.BigEndian.AppendUint32(huge, math.MaxUint32)
	if _, err := DecodeBatch(huge); err != ErrCorrupt {
		t.Fatalf("bogus count: err=%v", err)
	}

	single := mustEncodeSingle(t, 9, []byte("xyz"))
	if _, err := DecodeBatch(single); err != ErrCorrupt {
		t.Fatalf("single as batch: err=%v", err)
	}
}
