package keycache_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/didwallet/zk-disclosure/keycache"
)

func TestGetMemoizes(t *testing.T) {
	var fetches int32
	cache := keycache.NewCache(keycache.SourceFunc(func(ctx context.Context, circuitID string) ([]byte, error) {
		atomic.AddInt32(&fetches, 1)
		return []byte("pk:" + circuitID), nil
	}))

	for i := 0; i < 3; i++ {
		key, err := cache.Get(context.Background(), "age-verification")
		require.NoError(t, err)
		assert.Equal(t, []byte("pk:age-verification"), key)
	}
	assert.Equal(t, int32(1), atomic.LoadInt32(&fetches))

	_, err := cache.Get(context.Background(), "selective-disclosure")
	require.NoError(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&fetches))
}

func TestGetCoalescesConcurrentMisses(t *testing.T) {
	var fetches int32
	started := make(chan struct{})
	release := make(chan struct{})
	var once sync.Once
	cache := keycache.NewCache(keycache.SourceFunc(func(ctx context.Context, circuitID string) ([]byte, error) {
		atomic.AddInt32(&fetches, 1)
		once.Do(func() { close(started) })
		<-release
		return []byte("pk"), nil
	}))

	const callers = 8
	var wg sync.WaitGroup
	errs := make([]error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = cache.Get(context.Background(), "student-status")
		}(i)
	}

	// Let everyone pile onto the in-flight fetch before it completes.
	<-started
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	for _, err := range errs {
		require.NoError(t, err)
	}
	assert.Equal(t, int32(1), atomic.LoadInt32(&fetches))
}

func TestFetchErrorNotCached(t *testing.T) {
	boom := errors.New("store offline")
	fail := true
	cache := keycache.NewCache(keycache.SourceFunc(func(ctx context.Context, circuitID string) ([]byte, error) {
		if fail {
			return nil, boom
		}
		return []byte("pk"), nil
	}))

	_, err := cache.Get(context.Background(), "age-verification")
	assert.ErrorIs(t, err, boom)

	fail = false
	key, err := cache.Get(context.Background(), "age-verification")
	require.NoError(t, err)
	assert.Equal(t, []byte("pk"), key)
}

func TestDirSource(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "age-verification-1.pk"), []byte("v1"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "student-status-3.pk"), []byte("v3"), 0o644))

	src := &keycache.DirSource{Dir: dir, Versions: map[string]uint{"student-status": 3}}

	key, err := src.Fetch(context.Background(), "age-verification")
	require.NoError(t, err)
	assert.Equal(t, []byte("v1"), key)

	key, err = src.Fetch(context.Background(), "student-status")
	require.NoError(t, err)
	assert.Equal(t, []byte("v3"), key)

	_, err = src.Fetch(context.Background(), "missing")
	assert.Error(t, err)
}
