package cache

import (
	"context"

	"golang.org/x/sync/singleflight"
)

// Group deduplicates concurrent in-flight calls by key: while one loader for
// a key is running, later callers for the same key wait for its result
// instead of issuing their own call.
type Group[V any] struct {
	sf singleflight.Group
}

func (g *Group[V]) Do(ctx context.Context, key string, load Loader[V]) (V, bool, error) {
	v, err, shared := g.sf.Do(key, func() (any, error) {
		return load(ctx)
	})
	if err != nil {
		var zero V
		return zero, shared, err
	}
	return v.(V), shared, nil
}

// Forget drops the in-flight record so the next Do issues a fresh call.
func (g *Group[V]) Forget(key string) {
	g.sf.Forget(key)
}
