package memory

import (
	"context"
	"math"
	"sort"
	"strings"
	"sync"
	"time"

	"curia/contexts/assets/token-ledger/domain/entities"
	domainerrors "curia/contexts/assets/token-ledger/domain/errors"
	"curia/contexts/assets/token-ledger/ports"

	"github.com/google/uuid"
)

type balanceKey struct {
	tokenID   uint64
	accountID string
}

type approvalKey struct {
	ownerID    string
	operatorID string
}

type outboxRecord struct {
	message   ports.OutboxMessage
	published bool
}

// Store is the in-memory adapter used by unit tests and default boot.
type Store struct {
	mu sync.RWMutex

	tokens      map[uint64]entities.Token
	balances    map[balanceKey]uint64
	approvals   map[approvalKey]bool
	tokensCount uint64
	outbox      map[string]outboxRecord
}

func NewStore(seed []entities.Token) *Store {
	tokens := make(map[uint64]entities.Token, len(seed))
	for _, token := range seed {
		tokens[token.TokenID] = token
	}
	return &Store{
		tokens:    tokens,
		balances:  make(map[balanceKey]uint64),
		approvals: make(map[approvalKey]bool),
		outbox:    make(map[string]outboxRecord),
	}
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

func (s *Store) SaveToken(_ context.Context, token entities.Token) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[token.TokenID] = token
	return nil
}

func (s *Store) GetToken(_ context.Context, tokenID uint64) (entities.Token, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	token, ok := s.tokens[tokenID]
	if !ok {
		return entities.Token{}, domainerrors.ErrTokenDoesNotExist
	}
	return token, nil
}

func (s *Store) TokenExists(_ context.Context, tokenID uint64) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.tokens[tokenID]
	return ok, nil
}

func (s *Store) BumpTokensCount(_ context.Context) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.tokensCount == math.MaxUint64 {
		return 0, domainerrors.ErrOverflow
	}
	s.tokensCount++
	return s.tokensCount, nil
}

func (s *Store) GetBalance(_ context.Context, tokenID uint64, accountID string) (uint64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.balances[balanceKey{tokenID: tokenID, accountID: strings.TrimSpace(accountID)}], nil
}

func (s *Store) SaveBalance(_ context.Context, tokenID uint64, accountID string, amount uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.balances[balanceKey{tokenID: tokenID, accountID: strings.TrimSpace(accountID)}] = amount
	return nil
}

func (s *Store) IsOperator(_ context.Context, ownerID string, operatorID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.approvals[approvalKey{ownerID: strings.TrimSpace(ownerID), operatorID: strings.TrimSpace(operatorID)}], nil
}

func (s *Store) SaveOperatorApproval(_ context.Context, ownerID string, operatorID string, approved bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.approvals[approvalKey{ownerID: strings.TrimSpace(ownerID), operatorID: strings.TrimSpace(operatorID)}] = approved
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
