package util

import (
	"crypto/sha256"
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// BlobKey is the storage key of a single blob.
func BlobKey(ns string, hash uint64) string {
	return "blob:" + ns + ":" + strconv.FormatUint(hash, 16)
}

// BatchKey returns a deterministic key for a set of blob hashes: the sorted,
// distinct hashes are digested and the first 16 hex chars of the digest kept.
// Order and repeats in hashes do not change the key.
func BatchKey(ns string, hashes []uint64) string {
	s := slices.Clone(hashes)
	slices.Sort(s)
	s = slices.Compact(s)
	parts := make([]string, len(s))
	for i, h := range s {
		parts[i] = strconv.FormatUint(h, 16)
	}
	sum := sha256.Sum256([]byte(strings.Join(parts, ",")))
	return fmt.Sprintf("blob:%s:batch:%x", ns, sum[:8])
}
