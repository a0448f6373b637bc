// Package blobcache stores chunk and sub-chunk blobs by content hash so a
// server only sends what a client reports missing.
package blobcache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cespare/xxhash/v2"

	"github.com/unkn0wn-root/mcwire"
	"github.com/unkn0wn-root/mcwire/internal/entry"
	"github.com/unkn0wn-root/mcwire/internal/util"
	pr "github.com/unkn0wn-root/mcwire/provider"
)

const defaultTTL = 30 * time.Minute

type SetCostFunc func(key string, raw []byte, isBatch bool, batchCount int) int64

// Options tune the cache. Only Namespace and Provider are required; others
// have sensible defaults.
type Options struct {
	// Required
	Namespace string // e.g. a world or dimension id
	Provider  pr.Provider

	Logger         mcwire.Logger // if nil, NopLogger is used
	Hooks          mcwire.Hooks  // if nil, NopHooks is used
	DefaultTTL     time.Duration // singles; 0 => 30m
	BatchTTL       time.Duration // batches; 0 => DefaultTTL
	ComputeSetCost SetCostFunc   // default len(raw)
	Disabled       bool          // default false (enabled)
	DisableBatch   bool          // default false => batch entries written by PutBatch
}

type Cache struct {
	ns             string
	provider       pr.Provider
	log            mcwire.Logger
	hooks          mcwire.Hooks
	enabled        bool
	batchEnabled   bool
	defaultTTL     time.Duration
	batchTTL       time.Duration
	computeSetCost SetCostFunc
}

// Hash is the content hash blobs are addressed by.
func Hash(blob []byte) uint64 { return xxhash.Sum64(blob) }

func New(opts Options) (*Cache, error) {
	if opts.Provider == nil {
		return nil, errors.New("blobcache: provider is required")
	}
	if opts.Namespace == "" {
		return nil, errors.New("blobcache: namespace is required")
	}

	c := &Cache{
		ns:           opts.Namespace,
		provider:     opts.Provider,
		enabled:      !opts.Disabled,
		batchEnabled: !opts.DisableBatch,
	}
	c.log = coalesce[mcwire.Logger](opts.Logger, mcwire.NopLogger{})
	c.hooks = coalesce[mcwire.Hooks](opts.Hooks, mcwire.NopHooks{})
	c.defaultTTL = coalesce(opts.DefaultTTL, defaultTTL)
	c.batchTTL = coalesce(opts.BatchTTL, c.defaultTTL)
	if opts.ComputeSetCost != nil {
		c.computeSetCost = opts.ComputeSetCost
	} else {
		c.computeSetCost = func(_ string, raw []byte, _ bool, _ int) int64 { return int64(len(raw)) }
	}
	return c, nil
}

func coalesce[T comparable](v, def T) T {
	var zero T
	if v == zero {
		return def
	}
	return v
}

func (c *Cache) Enabled() bool { return c.enabled }

func (c *Cache) Close(ctx context.Context) error {
	return c.provider.Close(ctx)
}

// Put stores blob and returns its hash. A disabled cache still returns the
// hash so callers can reference the blob in chunk data.
func (c *Cache) Put(ctx context.Context, blob []byte) (uint64, error) {
	h := Hash(blob)
	if !c.enabled {
		return h, nil
	}
	return h, c.put(ctx, h, blob)
}

func (c *Cache) put(ctx context.Context, h uint64, blob []byte) error {
	raw, err := entry.EncodeSingle(h, blob)
	if err != nil {
		return err
	}
	k := util.BlobKey(c.ns, h)
	ok, err := c.provider.Set(ctx, k, raw, c.computeSetCost(k, raw, false, 1), c.defaultTTL)
	if err != nil {
		return err
	}
	if !ok {
		c.log.Debug("blob rejected by provider (pressure)", mcwire.Fields{"key": k})
		c.hooks.ProviderSetRejected(k)
	}
	return nil
}

// PutBatch stores every distinct blob individually and, unless batches are
// disabled, once more as a single entry keyed by the set of hashes. Resolve of
// the same set then costs one provider round trip. The returned hashes follow
// blobs, repeats included.
func (c *Cache) PutBatch(ctx context.Context, blobs [][]byte) ([]uint64, error) {
	hashes := make([]uint64, len(blobs))
	members := make([]entry.Blob, 0, len(blobs))
	seen := make(map[uint64]struct{}, len(blobs))
	for i, b := range blobs {
		hashes[i] = Hash(b)
		if _, dup := seen[hashes[i]]; dup {
			continue
		}
		seen[hashes[i]] = struct{}{}
		members = append(members, entry.Blob{Hash: hashes[i], Payload: b})
	}
	if !c.enabled || len(members) == 0 {
		return hashes, nil
	}
	for _, m := range members {
		if err := c.put(ctx, m.Hash, m.Payload); err != nil {
			return hashes, err
		}
	}
	// keyed by the distinct set, as Resolve looks it up
	if !c.batchEnabled || len(members) < 2 {
		return hashes, nil
	}

	raw, err := entry.EncodeBatch(members)
	if err != nil {
		return hashes, err
	}
	k := util.BatchKey(c.ns, hashes)
	ok, err := c.provider.Set(ctx, k, raw, c.computeSetCost(k, raw, true, len(members)), c.batchTTL)
	if err != nil {
		return hashes, err
	}
	if !ok {
		c.log.Debug("batch rejected by provider (pressure)", mcwire.Fields{"key": k, "n": len(members)})
		c.hooks.ProviderSetRejected(k)
	}
	return hashes, nil
}

// Get returns the blob stored under hash. Entries that fail framing or whose
// payload no longer matches the hash are deleted and reported as a miss.
func (c *Cache) Get(ctx context.Context, hash uint64) ([]byte, bool, error) {
	if !c.enabled {
		return nil, false, nil
	}
	k := util.BlobKey(c.ns, hash)
	raw, ok, err := c.provider.Get(ctx, k)
	if err != nil || !ok {
		return nil, false, err
	}
	stored, payload, err := entry.DecodeSingle(raw)
	if err != nil {
		c.selfHeal(ctx, k, "corrupt")
		return nil, false, nil
	}
	if stored != hash || Hash(payload) != hash {
		c.selfHeal(ctx, k, "hash_mismatch")
		return nil, false, nil
	}
	return payload, true, nil
}

func (c *Cache) selfHeal(ctx context.Context, k, reason string) {
	_ = c.provider.Del(ctx, k)
	c.log.Warn("blob entry dropped", mcwire.Fields{"key": k, "reason": reason})
	c.hooks.BlobSelfHeal(k, reason)
}

// Delete removes the single entry for hash. Batch entries holding it expire
// on their own TTL.
func (c *Cache) Delete(ctx context.Context, hash uint64) error {
	if !c.enabled {
		return nil
	}
	return c.provider.Del(ctx, util.BlobKey(c.ns, hash))
}

// Resolve looks up hashes, returning the blobs found and the hashes missing
// in request order. Duplicate hashes are resolved once.
func (c *Cache) Resolve(ctx context.Context, hashes []uint64) (map[uint64][]byte, []uint64, error) {
	found := make(map[uint64][]byte, len(hashes))
	uniq := dedup(hashes)
	if !c.enabled {
		return found, uniq, nil
	}
	if len(uniq) == 0 {
		return found, nil, nil
	}

	if c.batchEnabled && len(uniq) > 1 {
		if c.resolveBatch(ctx, uniq, found) {
			return found, nil, nil
		}
	}

	var missing []uint64
	for _, h := range uniq {
		b, ok, err := c.Get(ctx, h)
		if err != nil {
			return found, nil, fmt.Errorf("blobcache: resolve %x: %w", h, err)
		}
		if ok {
			found[h] = b
		} else {
			missing = append(missing, h)
		}
	}
	return found, missing, nil
}

// resolveBatch fills found from the batch entry for exactly this set of
// hashes. It reports whether the entry existed and was complete.
func (c *Cache) resolveBatch(ctx context.Context, hashes []uint64, found map[uint64][]byte) bool {
	k := util.BatchKey(c.ns, hashes)
	raw, ok, err := c.provider.Get(ctx, k)
	if err != nil || !ok {
		return false
	}
	members, err := entry.DecodeBatch(raw)
	if err != nil {
		c.selfHeal(ctx, k, "corrupt")
		return false
	}
	got := make(map[uint64][]byte, len(members))
	for _, m := range members {
		if Hash(m.Payload) != m.Hash {
			c.selfHeal(ctx, k, "hash_mismatch")
			return false
		}
		got[m.Hash] = m.Payload
	}
	for _, h := range hashes {
		if _, ok := got[h]; !ok {
			c.selfHeal(ctx, k, "corrupt")
			return false
		}
	}
	for _, h := range hashes {
		found[h] = got[h]
	}
	return true
}

// Status reports which of hashes this cache holds, in the client's
// ClientCacheBlobStatus shape.
func (c *Cache) Status(ctx context.Context, hashes []uint64) (Status, error) {
	found, missing, err := c.Resolve(ctx, hashes)
	if err != nil {
		return Status{}, err
	}
	st := Status{Misses: missing}
	for _, h := range dedup(hashes) {
		if _, ok := found[h]; ok {
			st.Hits = append(st.Hits, h)
		}
	}
	return st, nil
}

// Answer builds the response to a client's status: every missing blob the
// cache can supply. Hashes it cannot supply are returned separately so the
// caller can regenerate them.
func (c *Cache) Answer(ctx context.Context, st Status) (MissResponse, []uint64, error) {
	found, missing, err := c.Resolve(ctx, st.Misses)
	if err != nil {
		return MissResponse{}, nil, err
	}
	resp := MissResponse{Blobs: make([]Blob, 0, len(found))}
	for _, h := range dedup(st.Misses) {
		if b, ok := found[h]; ok {
			resp.Blobs = append(resp.Blobs, Blob{Hash: h, Payload: b})
		}
	}
	return resp, missing, nil
}

func dedup(hashes []uint64) []uint64 {
	seen := make(map[uint64]struct{}, len(hashes))
	out := make([]uint64, 0, len(hashes))
	for _, h := range hashes {
		if _, dup := seen[h]; dup {
			continue
		}
		seen[h] = struct{}{}
		out = append(out, h)
	}
	return out
}
