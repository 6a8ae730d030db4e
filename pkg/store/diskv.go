package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/peterbourgon/diskv/v3"
)

// OpenDiskv creates a KV backed by one file per key under basePath.
func OpenDiskv(basePath string) (KV, error) {
	if strings.TrimSpace(basePath) == "" {
		return nil, errors.New("store: base path unknown")
	}
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("store: ensure base path: %w", err)
	}
	return &diskvKV{d: diskv.New(diskv.Options{
		BasePath:     basePath,
		Transform:    flatTransform,
		CacheSizeMax: 1024 * 1024, // 1MB
	})}, nil
}

type diskvKV struct {
	d *diskv.Diskv
}

func flatTransform(string) []string {
	return []string{}
}

func (p *diskvKV) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := checkKey(key); err != nil {
		return nil, err
	}
	val, err := p.d.Read(key)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("store: read %s: %w", key, err)
	}
	return val, nil
}

func (p *diskvKV) Set(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := checkKey(key); err != nil {
		return err
	}
	if err := p.d.Write(key, value); err != nil {
		return fmt.Errorf("store: write %s: %w", key, err)
	}
	return nil
}

func (p *diskvKV) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := checkKey(key); err != nil {
		return err
	}
	if !p.d.Has(key) {
		return nil
	}
	if err := p.d.Erase(key); err != nil {
		return fmt.Errorf("store: erase %s: %w", key, err)
	}
	return nil
}

func (p *diskvKV) Close() error {
	return nil
}
