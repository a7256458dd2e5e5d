package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"curia/contexts/governance/voting-engine/domain/entities"
	domainerrors "curia/contexts/governance/voting-engine/domain/errors"
	"curia/contexts/governance/voting-engine/ports"

	"github.com/google/uuid"
)

type castKey struct {
	accountID string
	key       entities.BallotKey
}

type outboxRecord struct {
	message   ports.OutboxMessage
	published bool
}

// Store is the in-memory adapter used by unit tests and default boot. It
// also doubles as the injectable chain clock for deterministic tests.
type Store struct {
	mu sync.RWMutex

	ballots map[entities.BallotKey]entities.Ballot
	casts   map[castKey]bool
	outbox  map[string]outboxRecord
	height  uint64
}

func NewStore(seed []entities.Ballot) *Store {
	ballots := make(map[entities.BallotKey]entities.Ballot, len(seed))
	for _, ballot := range seed {
		ballots[ballot.Key] = ballot
	}
	return &Store{
		ballots: ballots,
		casts:   make(map[castKey]bool),
		outbox:  make(map[string]outboxRecord),
	}
}

// SetHeight positions the injectable chain clock.
func (s *Store) SetHeight(height uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.height = height
}

func (s *Store) Now() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.height
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

func (s *Store) SaveBallot(_ context.Context, ballot entities.Ballot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ballots[ballot.Key] = ballot
	return nil
}

func (s *Store) GetBallot(_ context.Context, key entities.BallotKey) (entities.Ballot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ballot, ok := s.ballots[key]
	if !ok {
		return entities.Ballot{}, domainerrors.ErrVoteNotFound
	}
	return ballot, nil
}

func (s *Store) HasCastRecord(_ context.Context, accountID string, key entities.BallotKey) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.casts[castKey{accountID: strings.TrimSpace(accountID), key: key}], nil
}

func (s *Store) SaveCastRecord(_ context.Context, accountID string, key entities.BallotKey) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.casts[castKey{accountID: strings.TrimSpace(accountID), key: key}] = true
	return nil
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
