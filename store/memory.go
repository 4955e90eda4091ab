package store

import (
	"context"
	"fmt"
	"sync"
)

// MemoryRepository keeps records in insertion order behind a RWMutex.
type MemoryRepository[T Entity[K], K comparable] struct {
	mu      sync.RWMutex
	records []T
}

func NewMemoryRepository[T Entity[K], K comparable](seed ...T) *MemoryRepository[T, K] {
	records := make([]T, len(seed))
	copy(records, seed)
	return &MemoryRepository[T, K]{records: records}
}

func (r *MemoryRepository[T, K]) List(ctx context.Context) ([]T, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]T, len(r.records))
	copy(out, r.records)
	return out, nil
}

func (r *MemoryRepository[T, K]) Get(ctx context.Context, id K) (T, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if i := r.indexOf(id); i >= 0 {
		return r.records[i], nil
	}
	var zero T
	return zero, fmt.Errorf("get %v: %w", id, ErrNotFound)
}

func (r *MemoryRepository[T, K]) Create(ctx context.Context, record T) (T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.indexOf(record.EntityID()) >= 0 {
		var zero T
		return zero, fmt.Errorf("create %v: %w", record.EntityID(), ErrDuplicate)
	}
	r.records = append(r.records, record)
	return record, nil
}

func (r *MemoryRepository[T, K]) Update(ctx context.Context, record T) (T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.indexOf(record.EntityID())
	if i < 0 {
		var zero T
		return zero, fmt.Errorf("update %v: %w", record.EntityID(), ErrNotFound)
	}
	r.records[i] = record
	return record, nil
}

func (r *MemoryRepository[T, K]) Delete(ctx context.Context, id K) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.indexOf(id)
	if i < 0 {
		return fmt.Errorf("delete %v: %w", id, ErrNotFound)
	}
	r.records = append(r.records[:i], r.records[i+1:]...)
	return nil
}

func (r *MemoryRepository[T, K]) Mutate(ctx context.Context, id K, fn func(T) (T, error)) (T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var zero T
	i := r.indexOf(id)
	if i < 0 {
		return zero, fmt.Errorf("mutate %v: %w", id, ErrNotFound)
	}
	updated, err := fn(r.records[i])
	if err != nil {
		return zero, err
	}
	if updated.EntityID() != id {
		return zero, fmt.Errorf("mutate %v: id changed to %v", id, updated.EntityID())
	}
	r.records[i] = updated
	return updated, nil
}

// indexOf must be called with the lock held.
func (r *MemoryRepository[T, K]) indexOf(id K) int {
	for i, rec := range r.records {
		if rec.EntityID() == id {
			return i
		}
	}
	return -1
}
