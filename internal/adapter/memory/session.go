package memory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/Temutjin2k/kart-laptimes/internal/domain/models"
	"github.com/Temutjin2k/kart-laptimes/internal/domain/types"
	"github.com/Temutjin2k/kart-laptimes/pkg/metrics"
)

// sweepInterval bounds how often Save scans for expired entries.
const sweepInterval = time.Minute

type memoryEntry struct {
	raw     []byte
	expires time.Time
}

// SessionStore keeps sessions in process memory. Entries are stored as JSON
// snapshots so every request works on its own copy. Expired entries are
// evicted when touched and swept on writes at most once per sweepInterval.
type SessionStore struct {
	mu        sync.Mutex
	sessions  map[string]memoryEntry
	lastSweep time.Time
	now       func() time.Time
}

func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: make(map[string]memoryEntry),
		now:      time.Now,
	}
}

func (s *SessionStore) Load(ctx context.Context, id string) (data models.SessionData, err error) {
	const op = "SessionStore.Load"
	defer observe("load", time.Now(), &err)

	s.mu.Lock()
	entry, ok := s.sessions[id]
	if ok && !s.now().Before(entry.expires) {
		delete(s.sessions, id)
		ok = false
	}
	s.mu.Unlock()

	if !ok {
		return models.SessionData{}, types.ErrSessionNotFound
	}

	if err := json.Unmarshal(entry.raw, &data); err != nil {
		return models.SessionData{}, fmt.Errorf("%s: %w", op, err)
	}
	return data, nil
}

func (s *SessionStore) Save(ctx context.Context, id string, data models.SessionData, ttl time.Duration) (err error) {
	const op = "SessionStore.Save"
	defer observe("save", time.Now(), &err)

	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.mu.Lock()
	now := s.now()
	if now.Sub(s.lastSweep) >= sweepInterval {
		s.sweep(now)
	}
	s.sessions[id] = memoryEntry{raw: raw, expires: now.Add(ttl)}
	s.mu.Unlock()

	return nil
}

func (s *SessionStore) Delete(ctx context.Context, id string) (err error) {
	defer observe("delete", time.Now(), &err)

	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()

	return nil
}

// sweep drops expired entries. Caller holds mu.
func (s *SessionStore) sweep(now time.Time) {
	for id, entry := range s.sessions {
		if !now.Before(entry.expires) {
			delete(s.sessions, id)
		}
	}
	s.lastSweep = now
}

// Len returns the number of stored sessions, expired ones included.
func (s *SessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func observe(operation string, start time.Time, err *error) {
	var opErr error
	if err != nil && !errors.Is(*err, types.ErrSessionNotFound) {
		opErr = *err
	}
	metrics.RecordSessionStoreOp(string(types.MemoryBackend), operation, opErr, time.Since(start))
}
