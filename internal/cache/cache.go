package cache

import (
	"context"
	"errors"
	"time"
)

// ErrMiss is returned by Store.Get when the key is absent.
var ErrMiss = errors.New("cache miss")

// Store holds cached read responses.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// Invalidator evicts every entry whose key starts with prefix.
type Invalidator interface {
	EvictNamespace(ctx context.Context, prefix string) error
}

// Cache is a Store that can also be invalidated by namespace.
type Cache interface {
	Store
	Invalidator
	Ping(ctx context.Context) error
}

// Nop is used when no cache backend is configured. Every read misses.
type Nop struct{}

func (Nop) Get(context.Context, string) ([]byte, error) { return nil, ErrMiss }
func (Nop) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (Nop) EvictNamespace(context.Context, string) error { return nil }
func (Nop) Ping(context.Context) error { return nil }
