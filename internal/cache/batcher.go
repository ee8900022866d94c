package cache

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrNoBatchResult is returned to a waiter whose key was absent from the
// batch fetch result.
var ErrNoBatchResult = errors.New("batch fetch returned no result for key")

// BatchFetch resolves a whole batch of keys in one call.
type BatchFetch[K comparable, V any] func(ctx context.Context, keys []K) (map[K]V, error)

type batchResult[V any] struct {
	val V
	err error
}

type pendingBatch[K comparable, V any] struct {
	keys    []K
	waiters map[K][]chan batchResult[V]
	timer   *time.Timer
}

// Batcher coalesces individual lookups into batch fetches: the first lookup
// opens a window (Window long, at most MaxSize keys); every lookup arriving
// inside the window joins the batch, and a single fetch resolves all of them.
// Duplicate keys inside a window share one slot.
type Batcher[K comparable, V any] struct {
	maxSize int
	window  time.Duration
	fetch   BatchFetch[K, V]

	mu      sync.Mutex
	current *pendingBatch[K, V]
}

func NewBatcher[K comparable, V any](maxSize int, window time.Duration, fetch BatchFetch[K, V]) *Batcher[K, V] {
	if maxSize <= 0 {
		maxSize = 16
	}
	if window <= 0 {
		window = 10 * time.Millisecond
	}
	return &Batcher[K, V]{
		maxSize: maxSize,
		window:  window,
		fetch:   fetch,
	}
}

// Load blocks until the batch containing key resolves.
func (b *Batcher[K, V]) Load(ctx context.Context, key K) (V, error) {
	ch := make(chan batchResult[V], 1)

	b.mu.Lock()
	if b.current == nil {
		batch := &pendingBatch[K, V]{
			waiters: make(map[K][]chan batchResult[V]),
		}
		b.current = batch
		batch.timer = time.AfterFunc(b.window, func() {
			b.flush(batch)
		})
	}
	batch := b.current
	if _, joined := batch.waiters[key]; !joined {
		batch.keys = append(batch.keys, key)
	}
	batch.waiters[key] = append(batch.waiters[key], ch)
	full := len(batch.keys) >= b.maxSize
	b.mu.Unlock()

	if full {
		b.flush(batch)
	}

	select {
	case <-ctx.Done():
		var zero V
		return zero, ctx.Err()
	case res := <-ch:
		return res.val, res.err
	}
}

// flush detaches the batch and resolves it. Safe to call twice for the same
// batch (timer vs. size trigger); only the first call fetches.
func (b *Batcher[K, V]) flush(batch *pendingBatch[K, V]) {
	b.mu.Lock()
	if b.current != batch {
		b.mu.Unlock()
		return
	}
	b.current = nil
	batch.timer.Stop()
	b.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	results, err := b.fetch(ctx, batch.keys)
	for key, chans := range batch.waiters {
		res := batchResult[V]{err: err}
		if err == nil {
			val, ok := results[key]
			if ok {
				res.val = val
			} else {
				res.err = ErrNoBatchResult
			}
		}
		for _, ch := range chans {
			ch <- res
		}
	}
}
