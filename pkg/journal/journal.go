// Package journal owns the list of feeling entries and the statistics derived
// from it. The whole list is persisted as one JSON blob.
package journal

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"tableflip.dev/weiwei/pkg/entry"
	"tableflip.dev/weiwei/pkg/feeling"
	"tableflip.dev/weiwei/pkg/store"
)

const (
	// StoreKey names the blob holding the serialized entries.
	StoreKey = "weiwei_logs"
	// Unrecorded is the food note used when a feeling is logged without food.
	Unrecorded = "未记录食物"
)

var ErrInvalidFeeling = errors.New("journal: invalid feeling")

// PersistenceFailure reports that the backing store could not be read,
// decoded or written.
type PersistenceFailure struct {
	Op  string
	Key string
	Err error
}

func (e *PersistenceFailure) Error() string {
	return fmt.Sprintf("journal: %s %s: %v", e.Op, e.Key, e.Err)
}

func (e *PersistenceFailure) Unwrap() error {
	return e.Err
}

// Store holds feeling entries newest first. It is safe for concurrent use.
type Store struct {
	mu      sync.Mutex
	kv      store.KV
	key     string
	entries []entry.Entry
	now     func() time.Time
	newID   func() string
}

type Option func(*Store)

// WithClock overrides the time source used to stamp entries and the seed.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDs overrides entry id generation.
func WithIDs(newID func() string) Option {
	return func(s *Store) { s.newID = newID }
}

// WithKey overrides the blob key.
func WithKey(key string) Option {
	return func(s *Store) { s.key = key }
}

func New(kv store.KV, opts ...Option) *Store {
	s := &Store{
		kv:    kv,
		key:   StoreKey,
		now:   time.Now,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load reads the persisted entries. When nothing has been persisted yet the
// illustrative seed is stored and returned.
func (s *Store) Load(ctx context.Context) ([]entry.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.loadLocked(ctx); err != nil {
		return nil, err
	}
	return s.snapshotLocked(), nil
}

func (s *Store) loadLocked(ctx context.Context) error {
	if s.kv == nil {
		return &PersistenceFailure{Op: "read", Key: s.key, Err: errors.New("no store configured")}
	}
	raw, err := s.kv.Get(ctx, s.key)
	if errors.Is(err, store.ErrNotFound) {
		seed := Seed(s.now())
		if err := s.writeLocked(ctx, seed); err != nil {
			return err
		}
		s.entries = seed
		return nil
	}
	if err != nil {
		return &PersistenceFailure{Op: "read", Key: s.key, Err: err}
	}
	var entries []entry.Entry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return &PersistenceFailure{Op: "decode", Key: s.key, Err: err}
	}
	s.entries = entries
	return nil
}

// Append records a new feeling and persists the full list before returning.
// An empty foodNote is stored as Unrecorded.
func (s *Store) Append(ctx context.Context, f feeling.Feeling, foodNote string) (entry.Entry, error) {
	if !f.Valid() {
		return entry.Entry{}, fmt.Errorf("%w: %q", ErrInvalidFeeling, f)
	}
	food := strings.TrimSpace(foodNote)
	if food == "" {
		food = Unrecorded
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.entries == nil {
		if err := s.loadLocked(ctx); err != nil {
			return entry.Entry{}, err
		}
	}

	e := entry.New(s.newID(), f, food, s.now())
	updated := make([]entry.Entry, 0, len(s.entries)+1)
	updated = append(updated, *e)
	updated = append(updated, s.entries...)
	if err := s.writeLocked(ctx, updated); err != nil {
		return entry.Entry{}, err
	}
	s.entries = updated
	return *e, nil
}

// Clear deletes every entry. The next Load starts from an empty list, not the seed.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.writeLocked(ctx, []entry.Entry{}); err != nil {
		return err
	}
	s.entries = []entry.Entry{}
	return nil
}

// Entries returns a copy of the in-memory list, newest first.
func (s *Store) Entries() []entry.Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// AggregateByFeeling counts the live entries per feeling.
func (s *Store) AggregateByFeeling() Counts {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Aggregate(s.entries)
}

func (s *Store) writeLocked(ctx context.Context, entries []entry.Entry) error {
	if s.kv == nil {
		return &PersistenceFailure{Op: "write", Key: s.key, Err: errors.New("no store configured")}
	}
	data, err := json.Marshal(entries)
	if err != nil {
		return &PersistenceFailure{Op: "encode", Key: s.key, Err: err}
	}
	if err := s.kv.Set(ctx, s.key, data); err != nil {
		return &PersistenceFailure{Op: "write", Key: s.key, Err: err}
	}
	return nil
}

func (s *Store) snapshotLocked() []entry.Entry {
	out := make([]entry.Entry, len(s.entries))
	copy(out, s.entries)
	return out
}
