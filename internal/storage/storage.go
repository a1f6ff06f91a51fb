// Package storage provides a persistent cache of perft results backed by
// BadgerDB, so repeated suite runs skip node counts that were already
// computed for a position and depth.
package storage

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
)

// Entry is one cached perft result.
type Entry struct {
	Zobrist    uint64        `json:"zobrist"`
	Depth      int           `json:"depth"`
	Nodes      uint64        `json:"nodes"`
	ComputedAt time.Time     `json:"computed_at"`
	Elapsed    time.Duration `json:"elapsed"`
}

// Cache wraps BadgerDB for persistent perft result storage.
type Cache struct {
	db *badger.DB
}

// Open opens (or creates) the cache database in dir.
func Open(dir string) (*Cache, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil // Disable logging

	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}

	return &Cache{db: db}, nil
}

// Close closes the database.
func (c *Cache) Close() error {
	if c.db != nil {
		return c.db.Close()
	}
	return nil
}

// key builds the cache key for a position hash and depth.
func key(zobrist uint64, depth int) []byte {
	return []byte(fmt.Sprintf("perft:%016x:%d", zobrist, depth))
}

// Get returns the cached entry for a position hash and depth, if present.
func (c *Cache) Get(zobrist uint64, depth int) (*Entry, bool, error) {
	var entry Entry
	found := false

	err := c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key(zobrist, depth))
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			if err := json.Unmarshal(val, &entry); err != nil {
				return err
			}
			found = true
			return nil
		})
	})

	if err != nil || !found {
		return nil, false, err
	}
	return &entry, true, nil
}

// Put stores a perft result.
func (c *Cache) Put(entry *Entry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}

	return c.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key(entry.Zobrist, entry.Depth), data)
	})
}
