package usecases_port

import (
	"context"

	"github.com/DeepPatel29/airbnbApp-Deep-N01679203/internal/core/domain"
)

type GetListingUseCase interface {
	Execute(ctx context.Context, id string) (*domain.DisplayListing, error)
}
