package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.etcd.io/bbolt"
)

const blobBucket = "blobs"

type boltKV struct {
	db *bbolt.DB
}

// OpenBolt creates a KV backed by a single BoltDB file at path.
func OpenBolt(path string) (KV, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("store: bolt path is required")
	}
	cleanPath := filepath.Clean(path)
	if err := os.MkdirAll(filepath.Dir(cleanPath), 0o755); err != nil {
		return nil, fmt.Errorf("store: ensure bolt dir: %w", err)
	}
	db, err := bbolt.Open(cleanPath, 0o600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("store: open bolt db: %w", err)
	}
	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(blobBucket))
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("store: create %s bucket: %w", blobBucket, err)
	}
	return &boltKV{db: db}, nil
}

func (b *boltKV) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := checkKey(key); err != nil {
		return nil, err
	}
	var out []byte
	err := b.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(blobBucket))
		if bucket == nil {
			return fmt.Errorf("store: %s bucket is missing", blobBucket)
		}
		val := bucket.Get([]byte(key))
		if val == nil {
			return ErrNotFound
		}
		// bolt values are only valid for the life of the transaction.
		out = append([]byte(nil), val...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (b *boltKV) Set(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := checkKey(key); err != nil {
		return err
	}
	return b.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(blobBucket))
		if bucket == nil {
			return fmt.Errorf("store: %s bucket is missing", blobBucket)
		}
		return bucket.Put([]byte(key), value)
	})
}

func (b *boltKV) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := checkKey(key); err != nil {
		return err
	}
	return b.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(blobBucket))
		if bucket == nil {
			return nil
		}
		return bucket.Delete([]byte(key))
	})
}

func (b *boltKV) Close() error {
	if b == nil || b.db == nil {
		return nil
	}
	return b.db.Close()
}
