package util

import "testing"

func TestBlobKey(t *testing.T) {
	if got := BlobKey("w", 0xabc); got != "blob:w:abc" {
		t.Fatalf("BlobKey = %q", got)
	}
}

func TestBatchKeyOrderInsensitive(t *testing.T) {
	a := BatchKey("w", []uint64{3, 1, 2})
	b := BatchKey("w", []uint64{1, 2, 3})
	if a != b {
		t.Fatalf("BatchKey depends on order: %q vs %q", a, b)
	}
	if c := BatchKey("w", []uint64{1, 2}); c == a {
		t.Fatalf("different sets share key %q", c)
	}
	if d := BatchKey("other", []uint64{1, 2, 3}); d == a {
		t.Fatalf("namespaces share key %q", d)
	}
	in := []uint64{3, 1, 2}
	BatchKey("w", in)
	if in[0] != 3 {
		t.Fatalf("BatchKey sorted the caller's slice")
	}
}

func TestBatchKeyIgnoresRepeats(t *testing.T) {
	if a, b := BatchKey("w", []uint64{7, 7, 9}), BatchKey("w", []uint64{9, 7}); a != b {
		t.Fatalf("repeated hash changed key: %q vs %q", a, b)
	}
}
