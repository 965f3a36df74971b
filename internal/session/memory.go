package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// MemoryStore holds sessions in process memory. Sessions are lost on restart.
// Expired entries are hidden from Get immediately and physically removed by
// the scheduled sweep.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]Session
	now      func() time.Time

	cron *cron.Cron
	log  *logrus.Logger
}

var _ Store = (*MemoryStore)(nil)

func NewMemoryStore(logger *logrus.Logger) *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]Session),
		now:      time.Now,
		log:      logger,
	}
}

func (s *MemoryStore) Get(_ context.Context, id string) (*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[id]
	if !ok || sess.Expired(s.now()) {
		return nil, ErrSessionNotFound
	}
	return &sess, nil
}

func (s *MemoryStore) Save(_ context.Context, sess *Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.ID] = *sess
	return nil
}

func (s *MemoryStore) Destroy(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}

// Sweep deletes expired sessions and reports how many were removed.
func (s *MemoryStore) Sweep() int {
	now := s.now()
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for id, sess := range s.sessions {
		if sess.Expired(now) {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// StartSweeper runs Sweep on a cron schedule such as "@every 24h".
func (s *MemoryStore) StartSweeper(schedule string) error {
	c := cron.New()
	_, err := c.AddFunc(schedule, func() {
		removed := s.Sweep()
		s.log.WithFields(logrus.Fields{
			"removed":   removed,
			"remaining": s.Len(),
		}).Info("Session sweep completed")
	})
	if err != nil {
		return fmt.Errorf("invalid session sweep schedule %q: %w", schedule, err)
	}
	s.cron = c
	c.Start()
	s.log.Infof("Session sweeper scheduled: %s", schedule)
	return nil
}

// StopSweeper stops the schedule and waits for a running sweep to finish.
func (s *MemoryStore) StopSweeper() {
	if s.cron == nil {
		return
	}
	<-s.cron.Stop().Done()
}
