package usecases_port

import (
	"context"

	"github.com/DeepPatel29/airbnbApp-Deep-N01679203/internal/core/domain"
)

type ListListingsUseCase interface {
	Execute(ctx context.Context) ([]domain.DisplayListing, error)
}
