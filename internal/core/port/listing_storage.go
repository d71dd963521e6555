package port

import (
	"context"
	"fmt"

	"github.com/DeepPatel29/airbnbApp-Deep-N01679203/internal/core/domain"
)

// ListingStoragePort - хранилище объявлений для веб-приложения и API.
// Чтение возвращает витринную форму независимо от того, в какой форме лежит документ.
type ListingStoragePort interface {
	Find(ctx context.Context, query domain.ListingQuery, limit int) ([]domain.DisplayListing, error)
	// GetByID возвращает domain.ErrListingNotFound, если объявления нет.
	GetByID(ctx context.Context, id string) (*domain.DisplayListing, error)
	Exists(ctx context.Context, id string) (bool, error)
	// Create возвращает *domain.ListingExistsError при дубликате id.
	Create(ctx context.Context, listing domain.DisplayListing) error
	Update(ctx context.Context, id string, patch *domain.ListingPatch) (*domain.DisplayListing, error)
	Delete(ctx context.Context, id string) (*domain.DisplayListing, error)
	Ping(ctx context.Context) error
}

// ImportStoragePort - операции пакетного импорта нормализованных документов.
type ImportStoragePort interface {
	DeleteAll(ctx context.Context) (int64, error)
	// InsertBatch может вернуть *BatchInsertError, если часть пачки сохранилась.
	InsertBatch(ctx context.Context, batch []domain.NormalizedListing) error
	InsertOne(ctx context.Context, listing domain.NormalizedListing) error
	Count(ctx context.Context) (int64, error)
}

// BatchInsertError сообщает, какие элементы пачки не были записаны.
// Остальные элементы пачки сохранены.
type BatchInsertError struct {
	FailedIndexes []int
	Err           error
}

func (e *BatchInsertError) Error() string {
	return fmt.Sprintf("batch insert: %d documents failed: %v", len(e.FailedIndexes), e.Err)
}

func (e *BatchInsertError) Unwrap() error { return e.Err }
