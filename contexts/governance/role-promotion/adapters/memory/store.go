package memory

import (
	"context"
	"math"
	"sort"
	"sync"
	"time"

	"curia/contexts/governance/role-promotion/domain/entities"
	domainerrors "curia/contexts/governance/role-promotion/domain/errors"
	"curia/contexts/governance/role-promotion/ports"

	"github.com/google/uuid"
)

type outboxRecord struct {
	message   ports.OutboxMessage
	published bool
}

// Store is the in-memory adapter used by unit tests and default boot.
type Store struct {
	mu sync.RWMutex

	applications      map[uint64]entities.Application
	applicationsCount uint64
	outbox            map[string]outboxRecord
}

func NewStore(seed []entities.Application) *Store {
	applications := make(map[uint64]entities.Application, len(seed))
	for _, app := range seed {
		applications[app.ApplicationID] = app
	}
	return &Store{
		applications: applications,
		outbox:       make(map[string]outboxRecord),
	}
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

func (s *Store) SaveApplication(_ context.Context, app entities.Application) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.applications[app.ApplicationID] = app
	return nil
}

func (s *Store) GetApplication(_ context.Context, applicationID uint64) (entities.Application, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	app, ok := s.applications[applicationID]
	if !ok {
		return entities.Application{}, domainerrors.ErrApplicationNotFound
	}
	return app, nil
}

func (s *Store) AllocateApplicationID(_ context.Context) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.applicationsCount == math.MaxUint64 {
		return 0, domainerrors.ErrOverflow
	}
	s.applicationsCount++
	return s.applicationsCount, nil
}

func (s *Store) AppendOutbox(_ context.Context, message ports.OutboxMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.outbox[message.OutboxID] = outboxRecord{message: message}
	return nil
}

func (s *Store) ListPendingOutbox(_ context.Context, limit int) ([]ports.OutboxMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	pending := make([]ports.OutboxMessage, 0)
	for _, record := range s.outbox {
		if !record.published {
			pending = append(pending, record.message)
		}
	}
	sort.Slice(pending, func(i, j int) bool {
		return pending[i].CreatedAt.Before(pending[j].CreatedAt)
	})
	if limit > 0 && len(pending) > limit {
		pending = pending[:limit]
	}
	return pending, nil
}

func (s *Store) MarkOutboxPublished(_ context.Context, outboxID string, _ time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	record, ok := s.outbox[outboxID]
	if !ok {
		return nil
	}
	record.published = true
	s.outbox[outboxID] = record
	return nil
}
