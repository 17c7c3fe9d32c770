package augment

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/syssam/augment/compiler/gen"
	"github.com/syssam/augment/compiler/load"
)

// Cache stores emitted schema documents keyed by the fingerprint of their
// inputs. Users may implement it on top of an external store to share
// results between processes.
type Cache interface {
	// Get retrieves a value from the cache.
	// Returns nil, nil if the key doesn't exist.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value in the cache with an optional TTL.
	// If ttl is 0, the value does not expire.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes a value from the cache.
	Delete(ctx context.Context, key string) error

	// Clear removes all values from the cache.
	Clear(ctx context.Context) error
}

// MemoryCache is an in-process Cache. The zero value is ready to use.
type MemoryCache struct {
	mu      sync.Mutex
	entries map[string]cacheEntry
	now     func() time.Time
}

type cacheEntry struct {
	value   []byte
	expires time.Time
}

// NewMemoryCache returns an empty in-process cache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{}
}

// Get implements Cache.
func (c *MemoryCache) Get(_ context.Context, key string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		return nil, nil
	}
	if !e.expires.IsZero() && !c.clock().Before(e.expires) {
		delete(c.entries, key)
		return nil, nil
	}
	return bytes.Clone(e.value), nil
}

// Set implements Cache.
func (c *MemoryCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.entries == nil {
		c.entries = make(map[string]cacheEntry)
	}
	e := cacheEntry{value: bytes.Clone(value)}
	if ttl > 0 {
		e.expires = c.clock().Add(ttl)
	}
	c.entries[key] = e
	return nil
}

// Delete implements Cache.
func (c *MemoryCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
	return nil
}

// Clear implements Cache.
func (c *MemoryCache) Clear(context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = nil
	return nil
}

// Len returns the number of stored entries, expired ones included.
func (c *MemoryCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *MemoryCache) clock() time.Time {
	if c.now != nil {
		return c.now()
	}
	return time.Now()
}

// Fingerprint returns a stable hex digest of a model and the configuration
// it is compiled with. Equal inputs always produce equal fingerprints.
func Fingerprint(s *load.Schema, c *gen.Config) (string, error) {
	key := fingerprint{Schema: s, Indent: c.IndentOrDefault()}
	if c != nil {
		key.Header = c.Header
	}
	for _, f := range gen.AllFeatures {
		key.Features = append(key.Features, f.Name+"="+boolString(c.FeatureEnabled(f)))
	}
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	enc.SetSortMapKeys(true)
	if err := enc.Encode(key); err != nil {
		return "", err
	}
	sum := sha256.Sum256(buf.Bytes())
	return hex.EncodeToString(sum[:]), nil
}

type fingerprint struct {
	Schema   *load.Schema `msgpack:"schema"`
	Header   string       `msgpack:"header"`
	Indent   string       `msgpack:"indent"`
	Features []string     `msgpack:"features"`
}

func boolString(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
