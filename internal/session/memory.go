package session

import (
	"context"
	"sync"
	"time"

	"faqbot/internal/domain"
)

// MemoryStore keeps sessions in process memory with an idle timeout.
type MemoryStore struct {
	mu          sync.Mutex
	sessions    map[string]*domain.Session
	idleTimeout time.Duration
}

// NewMemoryStore creates an in-memory session store. An idleTimeout of zero
// disables expiry.
func NewMemoryStore(idleTimeout time.Duration) *MemoryStore {
	return &MemoryStore{sessions: make(map[string]*domain.Session), idleTimeout: idleTimeout}
}

func (m *MemoryStore) Get(ctx context.Context, conversationID string) (*domain.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[conversationID]
	if !ok {
		return nil, nil
	}
	if m.expired(s, time.Now()) {
		delete(m.sessions, conversationID)
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (m *MemoryStore) Put(ctx context.Context, s *domain.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *s
	m.sessions[cp.ConversationID] = &cp
	return nil
}

func (m *MemoryStore) Delete(ctx context.Context, conversationID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, conversationID)
	return nil
}

// Sweep removes every expired session and reports how many were dropped.
func (m *MemoryStore) Sweep() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := time.Now()
	removed := 0
	for id, s := range m.sessions {
		if m.expired(s, now) {
			delete(m.sessions, id)
			removed++
		}
	}
	return removed
}

// StartSweeper runs Sweep on the given interval until ctx is done.
func (m *MemoryStore) StartSweeper(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				m.Sweep()
			}
		}
	}()
}

func (m *MemoryStore) expired(s *domain.Session, now time.Time) bool {
	return m.idleTimeout > 0 && now.Sub(s.LastActivity) > m.idleTimeout
}
