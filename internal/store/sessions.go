package store

import (
	"context"
	"log"
	"sync"

	"github.com/Madhesh247/Zenfocus/internal/model"
	"github.com/Madhesh247/Zenfocus/internal/repository"
)

// SessionLogStore is the append-only collection of completed sessions.
// Entries are held in memory newest first and written through to SQLite on
// every append. A load failure leaves the collection empty rather than
// failing startup.
type SessionLogStore struct {
	mu   sync.Mutex
	repo *repository.SessionLogRepository
	logs []model.SessionLog
}

func NewSessionLogStore(repo *repository.SessionLogRepository) *SessionLogStore {
	return &SessionLogStore{repo: repo, logs: make([]model.SessionLog, 0)}
}

func (s *SessionLogStore) Load(ctx context.Context) {
	logs, err := s.repo.ListAll(ctx)
	if err != nil {
		log.Printf("session log load failed, starting empty: %v", err)
		return
	}

	s.mu.Lock()
	s.logs = logs
	s.mu.Unlock()
}

func (s *SessionLogStore) Append(ctx context.Context, entry model.SessionLog) {
	s.mu.Lock()
	s.logs = append([]model.SessionLog{entry}, s.logs...)
	s.mu.Unlock()

	if err := s.repo.Insert(ctx, &entry); err != nil {
		log.Printf("persist session log %s: %v", entry.ID, err)
	}
}

// All returns a copy of the full collection, newest first.
func (s *SessionLogStore) All() []model.SessionLog {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.SessionLog, len(s.logs))
	copy(out, s.logs)
	return out
}

// Recent returns at most n of the newest entries.
func (s *SessionLogStore) Recent(n int) []model.SessionLog {
	s.mu.Lock()
	defer s.mu.Unlock()

	if n > len(s.logs) {
		n = len(s.logs)
	}
	if n < 0 {
		n = 0
	}
	out := make([]model.SessionLog, n)
	copy(out, s.logs[:n])
	return out
}

func (s *SessionLogStore) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.logs)
}
