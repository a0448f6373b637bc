package sloghooks

import (
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"sync/atomic"

	"github.com/unkn0wn-root/mcwire"
)

type Options struct {
	// Sampling to avoid floods; 0/1 = log all.
	DecodeRejectEvery uint64
	FallbackEvery     uint64
	SelfHealEvery     uint64
	// Optional key redactor. Defaults to SHA-256 prefix.
	Redact func(string) string
}

type Hooks struct {
	l    *slog.Logger
	opts Options

	decodeRejectCtr atomic.Uint64
	fallbackCtr     atomic.Uint64
	selfHealCtr     atomic.Uint64
}

var _ mcwire.Hooks = (*Hooks)(nil)

func New(l *slog.Logger, opts Options) *Hooks {
	return &Hooks{l: l, opts: opts}
}

func (h *Hooks) redact(k string) string {
	if h.opts.Redact != nil {
		return h.opts.Redact(k)
	}
	sum := sha256.Sum256([]byte(k))
	return hex.EncodeToString(sum[:8])
}

func sample(n uint64, ctr *atomic.Uint64) bool {
	if n == 0 || n == 1 {
		return true
	}
	return ctr.Add(1)%n == 0
}

func (h *Hooks) SchemaRejected(typeName string, err error) {
	if h.l == nil {
		return
	}
	h.l.Error("mcwire.schema_rejected",
		"type", typeName,
		"err", err)
}

func (h *Hooks) DecodeRejected(typeName string, err error) {
	if h.l == nil || !sample(h.opts.DecodeRejectEvery, &h.decodeRejectCtr) {
		return
	}
	h.l.Debug("mcwire.decode_rejected",
		"type", typeName,
		"err", err)
}

func (h *Hooks) FallbackDecoded(union string, discriminant int64) {
	if h.l == nil || !sample(h.opts.FallbackEvery, &h.fallbackCtr) {
		return
	}
	h.l.Info("mcwire.fallback_decoded",
		"union", union,
		"discriminant", discriminant)
}

func (h *Hooks) BlobSelfHeal(storageKey, reason string) {
	if h.l == nil || !sample(h.opts.SelfHealEvery, &h.selfHealCtr) {
		return
	}
	h.l.Debug("mcwire.blob_self_heal",
		"key", h.redact(storageKey),
		"reason", reason)
}

func (h *Hooks) ProviderSetRejected(storageKey string) {
	if h.l == nil {
		return
	}
	h.l.Warn("mcwire.provider_set_rejected",
		"key", h.redact(storageKey))
}
