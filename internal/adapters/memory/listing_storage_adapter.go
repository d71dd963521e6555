package memory

import (
	"context"
	"sync"
	"time"

	"github.com/DeepPatel29/airbnbApp-Deep-N01679203/internal/core/domain"
	"github.com/DeepPatel29/airbnbApp-Deep-N01679203/internal/core/port"
)

// ListingStorageAdapter - хранилище в памяти процесса.
// Используется драйвером "memory" для локального запуска и как тестовый двойник.
type ListingStorageAdapter struct {
	mu    sync.RWMutex
	order []string
	docs  map[string]domain.DisplayListing
	now   func() time.Time
}

var (
	_ port.ListingStoragePort = (*ListingStorageAdapter)(nil)
	_ port.ImportStoragePort  = (*ListingStorageAdapter)(nil)
)

func NewListingStorageAdapter() *ListingStorageAdapter {
	return &ListingStorageAdapter{
		docs: make(map[string]domain.DisplayListing),
		now:  time.Now,
	}
}

func clone(l domain.DisplayListing) domain.DisplayListing {
	images := make([]string, len(l.Images))
	copy(images, l.Images)
	l.Images = images
	return l
}

// Find обходит документы в порядке вставки; limit <= 0 - без ограничения.
func (s *ListingStorageAdapter) Find(ctx context.Context, query domain.ListingQuery, limit int) ([]domain.DisplayListing, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]domain.DisplayListing, 0)
	for _, id := range s.order {
		l := s.docs[id]
		if !query.Matches(l) {
			continue
		}
		result = append(result, clone(l))
		if limit > 0 && len(result) == limit {
			break
		}
	}
	return result, nil
}

func (s *ListingStorageAdapter) GetByID(ctx context.Context, id string) (*domain.DisplayListing, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	l, ok := s.docs[id]
	if !ok {
		return nil, domain.ErrListingNotFound
	}
	found := clone(l)
	return &found, nil
}

func (s *ListingStorageAdapter) Exists(ctx context.Context, id string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.docs[id]
	return ok, nil
}

func (s *ListingStorageAdapter) Create(ctx context.Context, listing domain.DisplayListing) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.insertLocked(listing)
}

func (s *ListingStorageAdapter) insertLocked(listing domain.DisplayListing) error {
	if _, ok := s.docs[listing.ID]; ok {
		return &domain.ListingExistsError{ID: listing.ID}
	}
	now := s.now()
	if listing.CreatedAt.IsZero() {
		listing.CreatedAt = now
	}
	listing.UpdatedAt = now

	s.docs[listing.ID] = clone(listing)
	s.order = append(s.order, listing.ID)
	return nil
}

func (s *ListingStorageAdapter) Update(ctx context.Context, id string, patch *domain.ListingPatch) (*domain.DisplayListing, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	l, ok := s.docs[id]
	if !ok {
		return nil, domain.ErrListingNotFound
	}
	patch.Apply(&l)
	l.UpdatedAt = s.now()
	s.docs[id] = clone(l)

	updated := clone(l)
	return &updated, nil
}

func (s *ListingStorageAdapter) Delete(ctx context.Context, id string) (*domain.DisplayListing, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	l, ok := s.docs[id]
	if !ok {
		return nil, domain.ErrListingNotFound
	}
	delete(s.docs, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return &l, nil
}

func (s *ListingStorageAdapter) Ping(ctx context.Context) error {
	return ctx.Err()
}

// --- импорт ---

func (s *ListingStorageAdapter) DeleteAll(ctx context.Context) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	deleted := int64(len(s.docs))
	s.docs = make(map[string]domain.DisplayListing)
	s.order = nil
	return deleted, nil
}

// InsertBatch ведет себя как неупорядоченная вставка: сохраняет все, что может,
// и сообщает индексы отклоненных документов.
func (s *ListingStorageAdapter) InsertBatch(ctx context.Context, batch []domain.NormalizedListing) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	var failed []int
	var firstErr error
	for i, n := range batch {
		if err := s.insertLocked(domain.Display(n)); err != nil {
			failed = append(failed, i)
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	if len(failed) > 0 {
		return &port.BatchInsertError{FailedIndexes: failed, Err: firstErr}
	}
	return nil
}

func (s *ListingStorageAdapter) InsertOne(ctx context.Context, listing domain.NormalizedListing) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.insertLocked(domain.Display(listing))
}

func (s *ListingStorageAdapter) Count(ctx context.Context) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.docs)), nil
}
