package memory

import (
	"context"
	"math"
	"sort"
	"sync"
	"time"

	"curia/contexts/governance/curation-pipeline/domain/entities"
	domainerrors "curia/contexts/governance/curation-pipeline/domain/errors"
	"curia/contexts/governance/curation-pipeline/ports"

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

	uploads        map[uint64]entities.Upload
	reviews        map[uint64]entities.ExpertReview
	uploadsCount   uint64
	tokensCount    uint64
	approvedTokens []uint64
	outbox         map[string]outboxRecord
	height         uint64
}

func NewStore(seed []entities.Upload) *Store {
	uploads := make(map[uint64]entities.Upload, len(seed))
	for _, upload := range seed {
		uploads[upload.UploadID] = upload
	}
	return &Store{
		uploads: uploads,
		reviews: make(map[uint64]entities.ExpertReview),
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

func (s *Store) SaveUpload(_ context.Context, upload entities.Upload) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.uploads[upload.UploadID] = upload
	return nil
}

func (s *Store) GetUpload(_ context.Context, uploadID uint64) (entities.Upload, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	upload, ok := s.uploads[uploadID]
	if !ok {
		return entities.Upload{}, domainerrors.ErrUploadNotFound
	}
	return upload, nil
}

func (s *Store) AllocateUploadID(_ context.Context) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.uploadsCount == math.MaxUint64 {
		return 0, domainerrors.ErrOverflow
	}
	s.uploadsCount++
	return s.uploadsCount, nil
}

func (s *Store) SaveReview(_ context.Context, review entities.ExpertReview) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reviews[review.UploadID] = review
	return nil
}

func (s *Store) GetReview(_ context.Context, uploadID uint64) (entities.ExpertReview, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	review, ok := s.reviews[uploadID]
	if !ok {
		return entities.ExpertReview{}, domainerrors.ErrNotUnderExpertReview
	}
	return review, nil
}

func (s *Store) AllocateTokenID(_ context.Context) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.tokensCount == math.MaxUint64 {
		return 0, domainerrors.ErrOverflow
	}
	s.tokensCount++
	return s.tokensCount, nil
}

func (s *Store) AppendApprovedToken(_ context.Context, tokenID uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.approvedTokens = append(s.approvedTokens, tokenID)
	return nil
}

func (s *Store) ListApprovedTokens(_ context.Context) ([]uint64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	tokens := make([]uint64, len(s.approvedTokens))
	copy(tokens, s.approvedTokens)
	return tokens, nil
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
