package usecases_port

import (
	"context"

	"github.com/DeepPatel29/airbnbApp-Deep-N01679203/internal/core/domain"
)

type CreateListingUseCase interface {
	Execute(ctx context.Context, listing domain.DisplayListing) (*domain.DisplayListing, error)
}

type UpdateListingUseCase interface {
	Execute(ctx context.Context, id string, patch *domain.ListingPatch) (*domain.DisplayListing, error)
}

type DeleteListingUseCase interface {
	Execute(ctx context.Context, id string) error
}
