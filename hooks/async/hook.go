// Package asynchook moves hook delivery off the decode path.
//
// usage:
//
//	raw := sloghooks.New(slog.Default(), sloghooks.Options{
//	    DecodeRejectEvery: 100, // sample logs: ~every 100th rejected message
//	})
//
//	hooks := asynchook.New(raw, 1, 1000) // 1 worker; queue 1000 events
//	defer hooks.Close()
//
//	reg := mcwire.NewRegistry(mcwire.Options{Hooks: hooks})
package asynchook

import (
	"sync"
	"sync/atomic"

	"github.com/unkn0wn-root/mcwire"
)

type Hooks struct {
	inner   mcwire.Hooks
	q       chan func()
	wg      sync.WaitGroup
	once    sync.Once
	closed  atomic.Bool
	dropped atomic.Uint64
}

var _ mcwire.Hooks = (*Hooks)(nil)

func New(inner mcwire.Hooks, workers, qlen int) *Hooks {
	if inner == nil {
		inner = mcwire.NopHooks{}
	}
	if workers <= 0 {
		workers = 1
	}
	if qlen <= 0 {
		qlen = 1024
	}

	h := &Hooks{inner: inner, q: make(chan func(), qlen)}
	h.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer h.wg.Done()
			for f := range h.q {
				f()
			}
		}()
	}
	return h
}

// Close drains queued events and stops the workers. Events after Close are dropped.
func (h *Hooks) Close() {
	h.once.Do(func() {
		h.closed.Store(true)
		close(h.q)
		h.wg.Wait()
	})
}

// Dropped reports events discarded because the queue was full or closed.
func (h *Hooks) Dropped() uint64 { return h.dropped.Load() }

func (h *Hooks) try(f func()) {
	if h.closed.Load() {
		h.dropped.Add(1)
		return
	}
	defer func() {
		// lost the race with Close
		if recover() != nil {
			h.dropped.Add(1)
		}
	}()
	select {
	case h.q <- f:
	default: // drop
		h.dropped.Add(1)
	}
}

func (h *Hooks) SchemaRejected(t string, err error) { h.try(func() { h.inner.SchemaRejected(t, err) }) }
func (h *Hooks) DecodeRejected(t string, err error) { h.try(func() { h.inner.DecodeRejected(t, err) }) }
func (h *Hooks) FallbackDecoded(u string, d int64)  { h.try(func() { h.inner.FallbackDecoded(u, d) }) }
func (h *Hooks) BlobSelfHeal(k, r string)           { h.try(func() { h.inner.BlobSelfHeal(k, r) }) }
func (h *Hooks) ProviderSetRejected(k string)       { h.try(func() { h.inner.ProviderSetRejected(k) }) }
