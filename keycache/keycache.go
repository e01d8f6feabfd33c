// Package keycache resolves proving keys by circuit id. Keys are content-
// addressable and immutable per id, so a fetched key is memoized forever;
// concurrent misses for the same id collapse into a single fetch.
package keycache

import (
	"context"
	"fmt"
	"os"
	"sync"

	"golang.org/x/sync/singleflight"
)

// Source fetches raw proving-key bytes for a circuit id.
type Source interface {
	Fetch(ctx context.Context, circuitID string) ([]byte, error)
}

// SourceFunc adapts a function to the Source interface.
type SourceFunc func(ctx context.Context, circuitID string) ([]byte, error)

func (f SourceFunc) Fetch(ctx context.Context, circuitID string) ([]byte, error) {
	return f(ctx, circuitID)
}

// DirSource reads proving keys from a setup directory laid out as
// <circuitID>-<version>.pk, the layout the compile command produces.
type DirSource struct {
	Dir string
	// Versions maps circuit id to the key version to load. Missing
	// entries default to version 1.
	Versions map[string]uint
}

func (d *DirSource) Fetch(ctx context.Context, circuitID string) ([]byte, error) {
	version := uint(1)
	if v, ok := d.Versions[circuitID]; ok {
		version = v
	}
	path := fmt.Sprintf("%s/%s-%d.pk", d.Dir, circuitID, version)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("proving key for %s: %w", circuitID, err)
	}
	return data, nil
}

// Cache memoizes proving keys in front of a Source. Reads are lock-shared;
// a miss triggers exactly one Fetch per key regardless of how many callers
// arrive concurrently.
type Cache struct {
	src Source

	mu    sync.RWMutex
	keys  map[string][]byte
	group singleflight.Group
}

func NewCache(src Source) *Cache {
	return &Cache{
		src:  src,
		keys: make(map[string][]byte),
	}
}

// Get returns the proving key for a circuit id, fetching and memoizing it
// on first use.
func (c *Cache) Get(ctx context.Context, circuitID string) ([]byte, error) {
	c.mu.RLock()
	key, ok := c.keys[circuitID]
	c.mu.RUnlock()
	if ok {
		return key, nil
	}

	v, err, _ := c.group.Do(circuitID, func() (any, error) {
		data, err := c.src.Fetch(ctx, circuitID)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.keys[circuitID] = data
		c.mu.Unlock()
		return data, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]byte), nil
}
