// Package store provides the named-blob persistence primitive the journal is
// written to. Every driver stores opaque byte values under string keys.
package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is returned by Get when no blob is stored under the key.
var ErrNotFound = errors.New("store: key not found")

// KV loads and saves blobs by key.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Driver selects a KV implementation.
type Driver string

const (
	DriverDiskv  Driver = "diskv"
	DriverBolt   Driver = "bolt"
	DriverSQLite Driver = "sqlite"
	DriverMemory Driver = "memory"
)

// Drivers lists the accepted driver names.
func Drivers() []Driver {
	return []Driver{DriverDiskv, DriverBolt, DriverSQLite, DriverMemory}
}

// ParseDriver maps a configured name to a Driver. Empty means diskv.
func ParseDriver(s string) (Driver, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "" {
		return DriverDiskv, nil
	}
	for _, d := range Drivers() {
		if string(d) == name {
			return d, nil
		}
	}
	return "", fmt.Errorf("store: unknown driver %q", s)
}

// Open creates the KV for driver rooted at path. The memory driver ignores path.
func Open(driver Driver, path string) (KV, error) {
	switch driver {
	case "", DriverDiskv:
		return OpenDiskv(path)
	case DriverBolt:
		return OpenBolt(path)
	case DriverSQLite:
		return OpenSQLite(path)
	case DriverMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("store: unknown driver %q", driver)
	}
}

func checkKey(key string) error {
	if strings.TrimSpace(key) == "" {
		return errors.New("store: key required")
	}
	return nil
}
