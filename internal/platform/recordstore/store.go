package recordstore

import (
	"context"
	"errors"
	"log/slog"
	"maps"
	"slices"
	"sync"
)

// Codec maps one entity type to and from a flat row.
type Codec[K comparable, V any] interface {
	Header() []string
	Encode(value V) []string
	// Decode receives the header that was read alongside the row so codecs
	// can accept older column layouts.
	Decode(header, row []string) (V, error)
	Key(value V) K
}

type LoadStats struct {
	Loaded  int
	Skipped int
	Missing bool
}

// Store is a keyed in-memory collection kept in sync with a Backend. Every
// mutation rewrites the whole backing table; a failed write restores the
// previous in-memory state.
type Store[K comparable, V any] struct {
	mu      sync.RWMutex
	codec   Codec[K, V]
	backend Backend
	items   map[K]V
	order   []K
}

func New[K comparable, V any](backend Backend, codec Codec[K, V]) *Store[K, V] {
	return &Store[K, V]{
		codec:   codec,
		backend: backend,
		items:   map[K]V{},
	}
}

func (s *Store[K, V]) Name() string {
	return s.backend.Name()
}

// Load replaces the in-memory state with the backend contents. A missing
// resource yields an empty store. Rows that are too short or fail to decode
// are skipped.
func (s *Store[K, V]) Load(ctx context.Context) (LoadStats, error) {
	table, err := s.backend.Read(ctx)
	if errors.Is(err, ErrNotExist) {
		s.mu.Lock()
		s.items = map[K]V{}
		s.order = nil
		s.mu.Unlock()
		return LoadStats{Missing: true}, nil
	}
	if err != nil {
		slog.Warn("record store load failed", "store", s.Name(), "err", err)
		return LoadStats{}, &PersistenceError{Op: "load", Store: s.Name(), Err: err}
	}

	var stats LoadStats
	items := make(map[K]V, len(table.Rows))
	order := make([]K, 0, len(table.Rows))
	minFields := len(s.codec.Header())
	for i, row := range table.Rows {
		line := i + 2
		if len(row) < minFields {
			slog.Warn("skipping malformed row", "store", s.Name(), "line", line, "fields", len(row), "expected", minFields)
			stats.Skipped++
			continue
		}
		value, err := s.codec.Decode(table.Header, row)
		if err != nil {
			slog.Warn("skipping malformed row", "store", s.Name(), "line", line, "err", err)
			stats.Skipped++
			continue
		}
		key := s.codec.Key(value)
		if _, exists := items[key]; !exists {
			order = append(order, key)
		}
		items[key] = value
	}
	stats.Loaded = len(items)

	s.mu.Lock()
	s.items = items
	s.order = order
	s.mu.Unlock()
	return stats, nil
}

func (s *Store[K, V]) Save(ctx context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.saveLocked(ctx)
}

func (s *Store[K, V]) Get(key K) (V, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, ok := s.items[key]
	return value, ok
}

func (s *Store[K, V]) Has(key K) bool {
	_, ok := s.Get(key)
	return ok
}

func (s *Store[K, V]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// List returns the values in insertion order.
func (s *Store[K, V]) List() []V {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]V, 0, len(s.order))
	for _, key := range s.order {
		out = append(out, s.items[key])
	}
	return out
}

// Filter returns the values matching pred in insertion order.
func (s *Store[K, V]) Filter(pred func(K, V) bool) []V {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []V
	for _, key := range s.order {
		if pred(key, s.items[key]) {
			out = append(out, s.items[key])
		}
	}
	return out
}

// Put upserts value under its codec key and persists. No duplicate check is
// made; callers that need one must use Has first.
func (s *Store[K, V]) Put(ctx context.Context, value V) error {
	return s.PutAll(ctx, value)
}

func (s *Store[K, V]) PutAll(ctx context.Context, values ...V) error {
	if len(values) == 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mutateLocked(ctx, func() bool {
		for _, value := range values {
			s.putLocked(value)
		}
		return true
	})
}

func (s *Store[K, V]) Remove(ctx context.Context, key K) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[key]; !ok {
		return false, nil
	}
	err := s.mutateLocked(ctx, func() bool {
		s.deleteLocked(key)
		return true
	})
	return err == nil, err
}

// RemoveWhere deletes every entry matching pred and persists once. It returns
// the removed values in their former order.
func (s *Store[K, V]) RemoveWhere(ctx context.Context, pred func(K, V) bool) ([]V, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var removed []V
	err := s.mutateLocked(ctx, func() bool {
		kept := s.order[:0:0]
		for _, key := range s.order {
			value := s.items[key]
			if pred(key, value) {
				removed = append(removed, value)
				delete(s.items, key)
				continue
			}
			kept = append(kept, key)
		}
		s.order = kept
		return len(removed) > 0
	})
	if err != nil {
		return nil, err
	}
	return removed, nil
}

func (s *Store[K, V]) Clear(ctx context.Context) (int, error) {
	removed, err := s.RemoveWhere(ctx, func(K, V) bool { return true })
	return len(removed), err
}

func (s *Store[K, V]) mutateLocked(ctx context.Context, apply func() bool) error {
	items := maps.Clone(s.items)
	order := slices.Clone(s.order)
	if !apply() {
		return nil
	}
	if err := s.saveLocked(ctx); err != nil {
		s.items = items
		s.order = order
		return err
	}
	return nil
}

func (s *Store[K, V]) putLocked(value V) {
	key := s.codec.Key(value)
	if _, exists := s.items[key]; !exists {
		s.order = append(s.order, key)
	}
	s.items[key] = value
}

func (s *Store[K, V]) deleteLocked(key K) {
	delete(s.items, key)
	if i := slices.Index(s.order, key); i >= 0 {
		s.order = slices.Delete(s.order, i, i+1)
	}
}

func (s *Store[K, V]) saveLocked(ctx context.Context) error {
	table := Table{Header: cloneRow(s.codec.Header()), Rows: make([][]string, 0, len(s.order))}
	for _, key := range s.order {
		table.Rows = append(table.Rows, s.codec.Encode(s.items[key]))
	}
	if err := s.backend.Write(ctx, table); err != nil {
		slog.Warn("record store save failed", "store", s.Name(), "err", err)
		return &PersistenceError{Op: "save", Store: s.Name(), Err: err}
	}
	return nil
}
