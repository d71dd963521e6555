package usecases_port

import (
	"context"

	"github.com/DeepPatel29/airbnbApp-Deep-N01679203/internal/core/domain"
)

// SearchResult - найденные объявления и описание критерия поиска
type SearchResult struct {
	Listings    []domain.DisplayListing
	Description string
}

type SearchListingsUseCase interface {
	Execute(ctx context.Context, req domain.SearchRequest) (*SearchResult, error)
}

type FilterListingsUseCase interface {
	Execute(ctx context.Context, req domain.FilterRequest) ([]domain.DisplayListing, error)
}

type QuickSearchUseCase interface {
	Execute(ctx context.Context, term string) ([]domain.DisplayListing, error)
}
