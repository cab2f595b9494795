package settings

import (
	"context"
	"sort"
	"strings"
	"sync"
)

// MemorySettingRepository provides an in-memory SettingRepository.
type MemorySettingRepository struct {
	mu    sync.RWMutex
	byKey map[string]*Setting
}

var _ SettingRepository = (*MemorySettingRepository)(nil)

func NewMemorySettingRepository() *MemorySettingRepository {
	return &MemorySettingRepository{byKey: make(map[string]*Setting)}
}

func (r *MemorySettingRepository) Get(_ context.Context, key string) (*Setting, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	record, ok := r.byKey[key]
	if !ok {
		return nil, &NotFoundError{Key: key}
	}
	return cloneSetting(record), nil
}

func (r *MemorySettingRepository) ListByPrefix(_ context.Context, prefix string) ([]*Setting, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Setting, 0)
	for key, record := range r.byKey {
		if strings.HasPrefix(key, prefix) {
			out = append(out, cloneSetting(record))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, nil
}

func (r *MemorySettingRepository) Upsert(_ context.Context, record *Setting) (*Setting, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.byKey[record.Key]; ok {
		existing.Value = record.Value
		existing.UpdatedBy = record.UpdatedBy
		existing.UpdatedAt = record.UpdatedAt
		return cloneSetting(existing), nil
	}
	stored := cloneSetting(record)
	r.byKey[stored.Key] = stored
	return cloneSetting(stored), nil
}

func (r *MemorySettingRepository) Delete(_ context.Context, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byKey[key]; !ok {
		return &NotFoundError{Key: key}
	}
	delete(r.byKey, key)
	return nil
}
