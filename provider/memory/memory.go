// Package memory is a map-backed Provider for tests and single-process tools.
package memory

import (
	"context"
	"sync"
	"time"

	pr "github.com/unkn0wn-root/mcwire/provider"
)

type entry struct {
	v   []byte
	exp time.Time // zero => no TTL
}

type Provider struct {
	mu   sync.Mutex
	m    map[string]entry
	max  int // 0 = unbounded
	now  func() time.Time
	gets int
	fail error
}

var _ pr.Provider = (*Provider)(nil)

// New returns an empty store. A positive maxEntries makes Set reject new keys
// once that many are held.
func New(maxEntries int) *Provider {
	return &Provider{m: make(map[string]entry), max: maxEntries, now: time.Now}
}

func (p *Provider) Get(_ context.Context, key string) ([]byte, bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.gets++
	if p.fail != nil {
		return nil, false, p.fail
	}
	e, ok := p.m[key]
	if !ok {
		return nil, false, nil
	}
	if !e.exp.IsZero() && p.now().After(e.exp) {
		delete(p.m, key)
		return nil, false, nil
	}
	return e.v, true, nil
}

func (p *Provider) Set(_ context.Context, key string, value []byte, _ int64, ttl time.Duration) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.fail != nil {
		return false, p.fail
	}
	if _, exists := p.m[key]; !exists && p.max > 0 && len(p.m) >= p.max {
		return false, nil
	}
	var exp time.Time
	if ttl > 0 {
		exp = p.now().Add(ttl)
	}
	p.m[key] = entry{v: append([]byte(nil), value...), exp: exp}
	return true, nil
}

func (p *Provider) Del(_ context.Context, key string) error {
	p.mu.Lock()
	delete(p.m, key)
	p.mu.Unlock()
	return nil
}

func (p *Provider) Close(context.Context) error { return nil }

// Len reports the number of stored keys, expired ones included.
func (p *Provider) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.m)
}

// Poke overwrites the raw bytes under key with no TTL and no capacity check.
// Tests use it to plant corrupt entries.
func (p *Provider) Poke(key string, value []byte) {
	p.mu.Lock()
	p.m[key] = entry{v: value}
	p.mu.Unlock()
}

// Peek returns the raw bytes under key without counting a get or expiring it.
func (p *Provider) Peek(key string) ([]byte, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	e, ok := p.m[key]
	return e.v, ok
}

// Gets reports how many Get calls reached the store.
func (p *Provider) Gets() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.gets
}

// Fail makes every later Get and Set return err. A nil err clears it.
func (p *Provider) Fail(err error) {
	p.mu.Lock()
	p.fail = err
	p.mu.Unlock()
}
