package memory

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestGetSetDel(t *testing.T) {
	ctx := context.Background()
	p := New(0)
	if _, ok, _ := p.Get(ctx, "k"); ok {
		t.Fatalf("hit on empty store")
	}
	val := []byte("v")
	if ok, err := p.Set(ctx, "k", val, 1, 0); !ok || err != nil {
		t.Fatalf("Set = %v, %v", ok, err)
	}
	val[0] = 'x'
	if b, ok, _ := p.Get(ctx, "k"); !ok || string(b) != "v" {
		t.Fatalf("Get = %q, %v", b, ok)
	}
	_ = p.Del(ctx, "k")
	if _, ok, _ := p.Get(ctx, "k"); ok {
		t.Fatalf("hit after Del")
	}
}

func TestTTL(t *testing.T) {
	ctx := context.Background()
	p := New(0)
	now := time.Unix(1000, 0)
	p.now = func() time.Time { return now }
	_, _ = p.Set(ctx, "k", []byte("v"), 1, time.Second)
	now = now.Add(2 * time.Second)
	if _, ok, _ := p.Get(ctx, "k"); ok {
		t.Fatalf("hit after expiry")
	}
	if p.Len() != 0 {
		t.Fatalf("expired entry kept")
	}
}

func TestCapacityRejects(t *testing.T) {
	ctx := context.Background()
	p := New(1)
	if ok, _ := p.Set(ctx, "a", nil, 1, 0); !ok {
		t.Fatalf("first Set rejected")
	}
	if ok, _ := p.Set(ctx, "b", nil, 1, 0); ok {
		t.Fatalf("Set over capacity accepted")
	}
	if ok, _ := p.Set(ctx, "a", []byte("again"), 1, 0); !ok {
		t.Fatalf("overwrite rejected at capacity")
	}
}

func TestPokePeekAndGets(t *testing.T) {
	ctx := context.Background()
	p := New(1)
	p.Poke("a", []byte("raw"))
	p.Poke("b", []byte("over cap"))
	if b, ok := p.Peek("b"); !ok || string(b) != "over cap" {
		t.Fatalf("Peek = %q, %v", b, ok)
	}
	if p.Gets() != 0 {
		t.Fatalf("Peek counted as get")
	}
	_, _, _ = p.Get(ctx, "a")
	_, _, _ = p.Get(ctx, "missing")
	if p.Gets() != 2 {
		t.Fatalf("Gets = %d want 2", p.Gets())
	}
}

func TestFail(t *testing.T) {
	ctx := context.Background()
	p := New(0)
	boom := errors.New("boom")
	p.Fail(boom)
	if _, _, err := p.Get(ctx, "k"); !errors.Is(err, boom) {
		t.Fatalf("Get err=%v", err)
	}
	if _, err := p.Set(ctx, "k", nil, 1, 0); !errors.Is(err, boom) {
		t.Fatalf("Set err=%v", err)
	}
	p.Fail(nil)
	if ok, err := p.Set(ctx, "k", nil, 1, 0); !ok || err != nil {
		t.Fatalf("Set after clear = %v, %v", ok, err)
	}
}
