package settings

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// ValueValidator checks a value before it is stored for a key.
type ValueValidator func(value string) error

// Definition describes a recognised key and the consumer that reads it.
type Definition struct {
	Key      string
	Consumer string
	Validate ValueValidator
}

// KeyRegistry records which consumer owns each recognised setting key. Only
// registered keys can be written through the service.
type KeyRegistry struct {
	mu   sync.RWMutex
	defs map[string]Definition
}

func NewKeyRegistry() *KeyRegistry {
	return &KeyRegistry{defs: make(map[string]Definition)}
}

// Register claims keys for consumer without value validation.
func (r *KeyRegistry) Register(consumer string, keys ...string) error {
	defs := make([]Definition, len(keys))
	for i, key := range keys {
		defs[i] = Definition{Key: key, Consumer: consumer}
	}
	return r.RegisterDefinitions(defs...)
}

// RegisterDefinitions adds definitions atomically. Re-registering a key for
// the same consumer replaces its validator; a different consumer is rejected.
func (r *KeyRegistry) RegisterDefinitions(defs ...Definition) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range defs {
		defs[i].Key = strings.TrimSpace(defs[i].Key)
		if defs[i].Key == "" {
			return ErrKeyRequired
		}
		if current, ok := r.defs[defs[i].Key]; ok && current.Consumer != defs[i].Consumer {
			return fmt.Errorf("%w: %s owned by %s", ErrKeyAlreadyClaimed, defs[i].Key, current.Consumer)
		}
	}
	for _, def := range defs {
		r.defs[def.Key] = def
	}
	return nil
}

func (r *KeyRegistry) Lookup(key string) (Definition, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	def, ok := r.defs[strings.TrimSpace(key)]
	return def, ok
}

func (r *KeyRegistry) Recognized(key string) bool {
	_, ok := r.Lookup(key)
	return ok
}

// Keys lists the registered keys in sorted order.
func (r *KeyRegistry) Keys() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.defs))
	for key := range r.defs {
		out = append(out, key)
	}
	sort.Strings(out)
	return out
}
