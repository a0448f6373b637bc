package redis

import (
	"context"
	"errors"
	"time"

	goredis "github.com/redis/go-redis/v9"

	pr "github.com/unkn0wn-root/mcwire/provider"
)

var ErrNilClient = errors.New("redis provider: nil client")

// Redis shares blobs between processes, for example proxies in front of the
// same world.
type Redis struct {
	rdb         goredis.UniversalClient
	closeClient bool
	hitTTL      time.Duration
}

var _ pr.Provider = (*Redis)(nil)

type Config struct {
	Client      goredis.UniversalClient
	CloseClient bool // set true only if this provider exclusively owns the client

	// HitTTL, when positive, extends a key's expiry on every hit (GETEX), so
	// blobs clients keep asking for stay resident.
	HitTTL time.Duration
}

func New(cfg Config) (*Redis, error) {
	if cfg.Client == nil {
		return nil, ErrNilClient
	}
	return &Redis{rdb: cfg.Client, closeClient: cfg.CloseClient, hitTTL: cfg.HitTTL}, nil
}

func (p *Redis) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var cmd *goredis.StringCmd
	if p.hitTTL > 0 {
		cmd = p.rdb.GetEx(ctx, key, p.hitTTL)
	} else {
		cmd = p.rdb.Get(ctx, key)
	}
	b, err := cmd.Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, false, nil // miss
	}
	if err != nil {
		return nil, false, err // transport/server error
	}
	return b, true, nil
}

func (p *Redis) Set(ctx context.Context, key string, value []byte, _ int64, ttl time.Duration) (bool, error) {
	if ttl <= 0 {
		ttl = 0 // treat non-positive TTLs as "no expiry" per provider contract
	}
	if err := p.rdb.Set(ctx, key, value, ttl).Err(); err != nil {
		return false, err
	}
	return true, nil
}

func (p *Redis) Del(ctx context.Context, key string) error {
	return p.rdb.Del(ctx, key).Err()
}

// Close releases the underlying redis client only when this provider owns it.
// Safe to call multiple times; repeated calls become no-ops.
func (p *Redis) Close(context.Context) error {
	if p.closeClient {
		if err := p.rdb.Close(); err != nil && !errors.Is(err, goredis.ErrClosed) {
			return err
		}
	}
	return nil
}
