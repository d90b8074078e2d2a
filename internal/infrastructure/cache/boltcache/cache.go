// Package boltcache memoizes pipeline results by content hash in an embedded
// bbolt file, so re-uploads of the same bytes skip classification and
// extraction entirely.
package boltcache

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/itune8/autodoc-classifier/internal/core/domain"
)

var resultsBucket = []byte("results")

type Cache struct {
	db *bolt.DB
}

func Open(path string) (*Cache, error) {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create cache dir: %w", err)
		}
	}

	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: 2 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("open cache: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(resultsBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("init cache bucket: %w", err)
	}

	return &Cache{db: db}, nil
}

func (c *Cache) Close() error {
	return c.db.Close()
}

// Get returns the cached result for a content hash, or (nil, nil) on a miss.
func (c *Cache) Get(ctx context.Context, contentHash string) (*domain.ExtractionResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if contentHash == "" {
		return nil, nil
	}

	var raw []byte
	err := c.db.View(func(tx *bolt.Tx) error {
		if v := tx.Bucket(resultsBucket).Get([]byte(contentHash)); v != nil {
			raw = append([]byte(nil), v...)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("cache get: %w", err)
	}
	if raw == nil {
		return nil, nil
	}

	var result domain.ExtractionResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, fmt.Errorf("decode cached result: %w", err)
	}
	return &result, nil
}

func (c *Cache) Put(ctx context.Context, contentHash string, result domain.ExtractionResult) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if contentHash == "" {
		return nil
	}

	raw, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("encode result: %w", err)
	}

	err = c.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(resultsBucket).Put([]byte(contentHash), raw)
	})
	if err != nil {
		return fmt.Errorf("cache put: %w", err)
	}
	return nil
}
