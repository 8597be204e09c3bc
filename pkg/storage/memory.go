package storage

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"
)

type memoryEntry struct {
	data      []byte
	expiresAt time.Time
}

// MemoryStore implementación en memoria de Store, usada en tests y en modo local
type MemoryStore struct {
	namespace string
	now       func() time.Time

	mu      sync.RWMutex
	entries map[string]memoryEntry
}

// NewMemoryStore crea un store vacío con el namespace indicado
func NewMemoryStore(namespace string) *MemoryStore {
	return &MemoryStore{
		namespace: namespace,
		now:       time.Now,
		entries:   make(map[string]memoryEntry),
	}
}

func (m *MemoryStore) Get(key string, dst any) (bool, error) {
	m.mu.RLock()
	entry, ok := m.entries[m.namespace+key]
	m.mu.RUnlock()

	if !ok || m.expired(entry) {
		return false, nil
	}
	if err := json.Unmarshal(entry.data, dst); err != nil {
		return false, fmt.Errorf("error parsing %s: %w", key, err)
	}
	return true, nil
}

func (m *MemoryStore) Set(key string, value any, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("error serializing %s: %w", key, err)
	}

	entry := memoryEntry{data: data}
	if ttl > 0 {
		entry.expiresAt = m.now().Add(ttl)
	}

	m.mu.Lock()
	m.entries[m.namespace+key] = entry
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) Delete(key string) error {
	m.mu.Lock()
	delete(m.entries, m.namespace+key)
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) Ping() error {
	return nil
}

// Raw devuelve el JSON almacenado bajo key, útil para inspeccionar el layout persistido
func (m *MemoryStore) Raw(key string) ([]byte, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	entry, ok := m.entries[m.namespace+key]
	if !ok || m.expired(entry) {
		return nil, false
	}
	return append([]byte(nil), entry.data...), true
}

func (m *MemoryStore) expired(entry memoryEntry) bool {
	return !entry.expiresAt.IsZero() && !m.now().Before(entry.expiresAt)
}
