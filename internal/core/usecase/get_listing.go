package usecase

import (
	"context"
	"errors"

	"github.com/DeepPatel29/airbnbApp-Deep-N01679203/internal/contextkeys"
	"github.com/DeepPatel29/airbnbApp-Deep-N01679203/internal/core/domain"
	"github.com/DeepPatel29/airbnbApp-Deep-N01679203/internal/core/port"
)

type GetListingUseCase struct {
	storage port.ListingStoragePort
}

func NewGetListingUseCase(storage port.ListingStoragePort) *GetListingUseCase {
	return &GetListingUseCase{storage: storage}
}

func (uc *GetListingUseCase) Execute(ctx context.Context, id string) (*domain.DisplayListing, error) {
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case":   "GetListing",
		"listing_id": id,
	})
	ucLogger.Info("Use case started", nil)

	listing, err := uc.storage.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrListingNotFound) {
			ucLogger.Warn("Listing not found", nil)
		} else {
			ucLogger.Error("Storage returned an error", err, nil)
		}
		return nil, err
	}

	ucLogger.Info("Use case finished successfully", nil)
	return listing, nil
}
