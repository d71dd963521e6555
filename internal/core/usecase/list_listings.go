package usecase

import (
	"context"

	"github.com/DeepPatel29/airbnbApp-Deep-N01679203/internal/contextkeys"
	"github.com/DeepPatel29/airbnbApp-Deep-N01679203/internal/core/domain"
	"github.com/DeepPatel29/airbnbApp-Deep-N01679203/internal/core/port"
)

type ListListingsUseCase struct {
	storage port.ListingStoragePort
}

func NewListListingsUseCase(storage port.ListingStoragePort) *ListListingsUseCase {
	return &ListListingsUseCase{storage: storage}
}

// Execute возвращает первые domain.ListLimit объявлений в порядке хранилища.
func (uc *ListListingsUseCase) Execute(ctx context.Context) ([]domain.DisplayListing, error) {
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case": "ListListings",
	})
	ucLogger.Info("Use case started", nil)

	listings, err := uc.storage.Find(ctx, domain.ListingQuery{}, domain.ListLimit)
	if err != nil {
		ucLogger.Error("Storage returned an error", err, nil)
		return nil, err
	}

	ucLogger.Info("Use case finished successfully", port.Fields{"found": len(listings)})
	return listings, nil
}
