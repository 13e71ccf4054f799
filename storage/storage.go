package storage

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
)

var (
	ErrCacheMiss    = errors.New("cache miss")
	ErrInvalidEntry = errors.New("invalid cache entry")
)

const keyPrefixPerft = "perft/"

type cacheConfig struct {
	dir      string
	inMemory bool
}

type CacheOption func(*cacheConfig)

// WithDir persists the cache under dir.
func WithDir(dir string) CacheOption {
	return func(cfg *cacheConfig) {
		cfg.dir = dir
		cfg.inMemory = false
	}
}

// WithInMemory keeps the cache in memory only.
func WithInMemory() CacheOption {
	return func(cfg *cacheConfig) {
		cfg.dir = ""
		cfg.inMemory = true
	}
}

// PerftCache wraps BadgerDB to store perft node counts by position hash and
// depth. It is safe for concurrent use.
type PerftCache struct {
	db *badger.DB
}

func NewPerftCache(opts ...CacheOption) (*PerftCache, error) {
	cfg := &cacheConfig{inMemory: true}
	for _, f := range opts {
		f(cfg)
	}

	dbOpts := badger.DefaultOptions(cfg.dir).WithInMemory(cfg.inMemory)
	dbOpts.Logger = nil

	db, err := badger.Open(dbOpts)
	if err != nil {
		return nil, fmt.Errorf("open perft cache: %w", err)
	}
	return &PerftCache{db: db}, nil
}

func (c *PerftCache) Close() error {
	if c.db != nil {
		return c.db.Close()
	}
	return nil
}

// Get returns the node count stored for the position and depth, or an error
// wrapping ErrCacheMiss.
func (c *PerftCache) Get(hash uint64, depth int) (uint64, error) {
	var nodes uint64
	err := c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(perftKey(hash, depth))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("%w: %016x at depth %d", ErrCacheMiss, hash, depth)
		}
		if err != nil {
			return err
		}
		val, err := item.ValueCopy(nil)
		if err != nil {
			return err
		}
		if len(val) != 8 {
			return fmt.Errorf("%w: %d bytes", ErrInvalidEntry, len(val))
		}
		nodes = binary.BigEndian.Uint64(val)
		return nil
	})
	return nodes, err
}

func (c *PerftCache) Put(hash uint64, depth int, nodes uint64) error {
	val := make([]byte, 8)
	binary.BigEndian.PutUint64(val, nodes)
	return c.db.Update(func(txn *badger.Txn) error {
		return txn.Set(perftKey(hash, depth), val)
	})
}

// Len counts the stored entries.
func (c *PerftCache) Len() (int, error) {
	var n int
	err := c.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = []byte(keyPrefixPerft)
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			n++
		}
		return nil
	})
	return n, err
}

func perftKey(hash uint64, depth int) []byte {
	key := make([]byte, 0, len(keyPrefixPerft)+9)
	key = append(key, keyPrefixPerft...)
	key = binary.BigEndian.AppendUint64(key, hash)
	return append(key, byte(depth))
}
