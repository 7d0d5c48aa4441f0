// AngelaMos | 2026
// store.go

// Package kvstore is the key-value capability the storefront keeps its
// session pointer, user list and store profiles in. Values are opaque bytes;
// callers encode JSON through GetJSON/SetJSON/UpdateJSON.
package kvstore

import (
	"context"
	"fmt"

	"github.com/carterperez-dev/storefront/internal/core"
)

// Store is the get/set/remove contract every component depends on.
// Get returns an error wrapping core.ErrNotFound for absent keys.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Remove(ctx context.Context, key string) error
	Update(ctx context.Context, key string, fn UpdateFunc) error
}

// UpdateFunc receives the current value (nil, false when absent) and
// returns the value to store. Returning an error aborts the write.
type UpdateFunc func(current []byte, found bool) ([]byte, error)

// Pinger is implemented by backends with a remote dependency.
type Pinger interface {
	Ping(ctx context.Context) error
}

func notFound(key string) error {
	return fmt.Errorf("get %q: %w", key, core.ErrNotFound)
}

type prefixed struct {
	store  Store
	prefix string
}

// WithPrefix scopes every key of store under prefix.
func WithPrefix(store Store, prefix string) Store {
	if prefix == "" {
		return store
	}
	return &prefixed{store: store, prefix: prefix}
}

func (p *prefixed) Get(ctx context.Context, key string) ([]byte, error) {
	return p.store.Get(ctx, p.prefix+key)
}

func (p *prefixed) Set(ctx context.Context, key string, value []byte) error {
	return p.store.Set(ctx, p.prefix+key, value)
}

func (p *prefixed) Remove(ctx context.Context, key string) error {
	return p.store.Remove(ctx, p.prefix+key)
}

func (p *prefixed) Update(ctx context.Context, key string, fn UpdateFunc) error {
	return p.store.Update(ctx, p.prefix+key, fn)
}

func (p *prefixed) Ping(ctx context.Context) error {
	if pinger, ok := p.store.(Pinger); ok {
		return pinger.Ping(ctx)
	}
	return nil
}
