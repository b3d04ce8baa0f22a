package storage

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStorage keeps records in process. It backs STORAGE=memory and the
// handler tests.
type MemoryStorage struct {
	mu        sync.RWMutex
	records   map[uuid.UUID]memoryEntry
	ttl       time.Duration
	now       func() time.Time
	pingError error
}

type memoryEntry struct {
	rec     *Record
	expires time.Time
}

var _ Storage = (*MemoryStorage)(nil)

// NewMemoryStorage returns an empty store. Records expire after ttl; a
// ttl <= 0 keeps them forever.
func NewMemoryStorage(ttl time.Duration) *MemoryStorage {
	return &MemoryStorage{
		records: make(map[uuid.UUID]memoryEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// SetPingError configures Ping to fail with err. A nil err clears it.
func (m *MemoryStorage) SetPingError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pingError = err
}

func (m *MemoryStorage) Ping(ctx context.Context) error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.pingError
}

func (m *MemoryStorage) Close() error {
	return nil
}

func (m *MemoryStorage) SaveRecord(ctx context.Context, rec *Record) error {
	if rec == nil {
		return errors.New("record cannot be nil")
	}
	if rec.ID == uuid.Nil {
		return errors.New("record id cannot be empty")
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	entry := memoryEntry{rec: rec}
	if m.ttl > 0 {
		entry.expires = m.now().Add(m.ttl)
	}
	m.records[rec.ID] = entry
	return nil
}

func (m *MemoryStorage) LoadRecord(ctx context.Context, id uuid.UUID) (*Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	entry, ok := m.records[id]
	if !ok {
		return nil, nil
	}
	if !entry.expires.IsZero() && !m.now().Before(entry.expires) {
		delete(m.records, id)
		return nil, nil
	}
	return entry.rec, nil
}

func (m *MemoryStorage) DeleteRecord(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.records, id)
	return nil
}
