package memory

import (
	"context"
	"math"
	"sort"
	"strings"
	"sync"
	"time"

	"curia/contexts/governance/membership-service/domain/entities"
	domainerrors "curia/contexts/governance/membership-service/domain/errors"
	"curia/contexts/governance/membership-service/ports"

	"github.com/google/uuid"
)

type outboxRecord struct {
	message   ports.OutboxMessage
	published bool
}

// Store is the in-memory adapter used by unit tests and default boot. It
// also doubles as the injectable chain clock for deterministic tests.
type Store struct {
	mu sync.RWMutex

	members      map[string]entities.Member
	membersCount uint32
	outbox       map[string]outboxRecord
	height       uint64
}

func NewStore(seed []entities.Member) *Store {
	members := make(map[string]entities.Member, len(seed))
	for _, member := range seed {
		members[member.AccountID] = member
	}
	return &Store{
		members: members,
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

func (s *Store) SaveMember(_ context.Context, member entities.Member) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.members[strings.TrimSpace(member.AccountID)] = member
	return nil
}

func (s *Store) GetMember(_ context.Context, accountID string) (entities.Member, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	member, ok := s.members[strings.TrimSpace(accountID)]
	if !ok {
		return entities.Member{}, domainerrors.ErrNotAMember
	}
	return member, nil
}

func (s *Store) HasMember(_ context.Context, accountID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.members[strings.TrimSpace(accountID)]
	return ok, nil
}

func (s *Store) AllocateMemberID(_ context.Context) (uint32, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.membersCount == math.MaxUint32 {
		return 0, domainerrors.ErrOverflow
	}
	s.membersCount++
	return s.membersCount, nil
}

// MembersCount reports the number of ids handed out so far.
func (s *Store) MembersCount() uint32 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.membersCount
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
