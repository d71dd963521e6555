package usecases_port

import (
	"context"

	"github.com/DeepPatel29/airbnbApp-Deep-N01679203/internal/core/domain"
)

type ImportListingsUseCase interface {
	Execute(ctx context.Context, records []domain.NormalizedListing) (*domain.ImportStats, error)
}
