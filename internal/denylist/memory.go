package denylist

import (
	"context"
	"sync"
	"time"
)

// memoryStore — потокобезопасная in-memory реализация Store.
// Используется в тестах и в локальном режиме без Redis. Истёкшие записи
// вычищаются лениво при чтении/записи.
type memoryStore struct {
	mu      sync.Mutex
	entries map[string]time.Time // токен -> момент истечения записи
	now     func() time.Time
}

// NewMemoryStore создаёт пустой in-memory denylist.
func NewMemoryStore() Store {
	return &memoryStore{
		entries: make(map[string]time.Time),
		now:     time.Now,
	}
}

// NewMemoryStoreWithClock — вариант с внешними часами для тестов времени.
func NewMemoryStoreWithClock(now func() time.Time) Store {
	return &memoryStore{
		entries: make(map[string]time.Time),
		now:     now,
	}
}

func (s *memoryStore) Revoke(_ context.Context, token string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.purgeLocked()
	s.entries[token] = s.now().Add(ttl)

	return nil
}

func (s *memoryStore) IsRevoked(_ context.Context, token string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	exp, ok := s.entries[token]
	if !ok {
		return false, nil
	}

	if s.now().After(exp) {
		delete(s.entries, token)
		return false, nil
	}

	return true, nil
}

func (s *memoryStore) Close() error { return nil }

// purgeLocked удаляет истёкшие записи; вызывается под mu.
func (s *memoryStore) purgeLocked() {
	now := s.now()
	for token, exp := range s.entries {
		if now.After(exp) {
			delete(s.entries, token)
		}
	}
}
