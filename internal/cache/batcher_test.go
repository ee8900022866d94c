package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBatcherCoalescesWithinWindow(t *testing.T) {
	var fetches int32
	var gotKeys atomic.Value

	b := NewBatcher(100, 30*time.Millisecond, func(ctx context.Context, keys []string) (map[string]int, error) {
		atomic.AddInt32(&fetches, 1)
		gotKeys.Store(append([]string(nil), keys...))
		out := make(map[string]int, len(keys))
		for i, k := range keys {
			out[k] = i + 1
		}
		return out, nil
	})

	keys := []string{"aries", "taurus", "gemini", "cancer", "leo"}
	var wg sync.WaitGroup
	for _, k := range keys {
		wg.Add(1)
		go func(k string) {
			defer wg.Done()
			v, err := b.Load(context.Background(), k)
			assert.NoError(t, err)
			assert.Greater(t, v, 0)
		}(k)
	}
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&fetches))
	assert.Len(t, gotKeys.Load().([]string), len(keys))
}

func TestBatcherFlushesAtMaxSize(t *testing.T) {
	b := NewBatcher(2, time.Hour, func(ctx context.Context, keys []string) (map[string]string, error) {
		out := make(map[string]string, len(keys))
		for _, k := range keys {
			out[k] = "v:" + k
		}
		return out, nil
	})

	var wg sync.WaitGroup
	results := make([]string, 2)
	for i, k := range []string{"a", "b"} {
		wg.Add(1)
		go func(i int, k string) {
			defer wg.Done()
			v, err := b.Load(context.Background(), k)
			assert.NoError(t, err)
			results[i] = v
		}(i, k)
	}
	wg.Wait()

	assert.Equal(t, "v:a", results[0])
	assert.Equal(t, "v:b", results[1])
}

func TestBatcherDuplicateKeysShareSlot(t *testing.T) {
	var fetchedKeys atomic.Value

	b := NewBatcher(100, 20*time.Millisecond, func(ctx context.Context, keys []string) (map[string]string, error) {
		fetchedKeys.Store(append([]string(nil), keys...))
		return map[string]string{"leo": "sunny"}, nil
	})

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, err := b.Load(context.Background(), "leo")
			assert.NoError(t, err)
			assert.Equal(t, "sunny", v)
		}()
	}
	wg.Wait()

	assert.Len(t, fetchedKeys.Load().([]string), 1)
}

func TestBatcherMissingKeyErrors(t *testing.T) {
	b := NewBatcher(1, time.Millisecond, func(ctx context.Context, keys []string) (map[string]string, error) {
		return map[string]string{}, nil
	})

	_, err := b.Load(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNoBatchResult)
}

func TestBatcherFetchErrorFansOut(t *testing.T) {
	wantErr := errors.New("upstream exploded")
	b := NewBatcher(100, 10*time.Millisecond, func(ctx context.Context, keys []string) (map[string]int, error) {
		return nil, wantErr
	})

	var wg sync.WaitGroup
	errs := make([]error, 3)
	for i, k := range []string{"x", "y", "z"} {
		wg.Add(1)
		go func(i int, k string) {
			defer wg.Done()
			_, errs[i] = b.Load(context.Background(), k)
		}(i, k)
	}
	wg.Wait()

	for _, err := range errs {
		require.ErrorIs(t, err, wantErr)
	}
}
