package kvstore

import (
	"context"
	"encoding/json"
	"sync"
	"time"
)

type memoryEntry struct {
	data      []byte
	expiresAt time.Time
}

// MemoryStore là Store in-process, dùng trong test và khi chạy không có Redis
type MemoryStore struct {
	mu    sync.Mutex
	items map[string]memoryEntry
	now   func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		items: make(map[string]memoryEntry),
		now:   time.Now,
	}
}

// WithClock thay nguồn thời gian, dùng trong test để tua TTL
func (s *MemoryStore) WithClock(now func() time.Time) *MemoryStore {
	s.now = now
	return s
}

// lookup phải được gọi khi đang giữ lock
func (s *MemoryStore) lookup(key string) (memoryEntry, bool) {
	e, ok := s.items[key]
	if !ok {
		return memoryEntry{}, false
	}
	if !e.expiresAt.IsZero() && !s.now().Before(e.expiresAt) {
		delete(s.items, key)
		return memoryEntry{}, false
	}
	return e, true
}

func (s *MemoryStore) Get(_ context.Context, key string, dest interface{}) error {
	s.mu.Lock()
	e, ok := s.lookup(key)
	s.mu.Unlock()
	if !ok {
		return ErrNotFound
	}
	return json.Unmarshal(e.data, dest)
}

func (s *MemoryStore) Set(_ context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	e := memoryEntry{data: data}
	if ttl > 0 {
		e.expiresAt = s.now().Add(ttl)
	}

	s.mu.Lock()
	s.items[key] = e
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, k := range keys {
		delete(s.items, k)
	}
	return nil
}

func (s *MemoryStore) Increment(_ context.Context, key string, ttl time.Duration) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var n int64
	e, ok := s.lookup(key)
	if ok {
		if err := json.Unmarshal(e.data, &n); err != nil {
			return 0, err
		}
	}
	n++

	data, _ := json.Marshal(n)
	e.data = data
	if ttl > 0 && e.expiresAt.IsZero() {
		e.expiresAt = s.now().Add(ttl)
	}
	s.items[key] = e
	return n, nil
}

func (s *MemoryStore) Ping(context.Context) error {
	return nil
}
