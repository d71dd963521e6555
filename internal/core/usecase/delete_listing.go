package usecase

import (
	"context"
	"errors"

	"github.com/DeepPatel29/airbnbApp-Deep-N01679203/internal/contextkeys"
	"github.com/DeepPatel29/airbnbApp-Deep-N01679203/internal/core/domain"
	"github.com/DeepPatel29/airbnbApp-Deep-N01679203/internal/core/port"
)

type DeleteListingUseCase struct {
	storage port.ListingStoragePort
	events  port.ListingEventsPort
}

func NewDeleteListingUseCase(storage port.ListingStoragePort, events port.ListingEventsPort) *DeleteListingUseCase {
	return &DeleteListingUseCase{storage: storage, events: events}
}

func (uc *DeleteListingUseCase) Execute(ctx context.Context, id string) error {
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case":   "DeleteListing",
		"listing_id": id,
	})
	ucLogger.Info("Use case started", nil)

	if _, err := uc.storage.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrListingNotFound) {
			ucLogger.Warn("Listing not found", nil)
		} else {
			ucLogger.Error("Failed to delete listing", err, nil)
		}
		return err
	}

	publishEvent(ctx, uc.events, ucLogger, domain.ListingEvent{Type: domain.ListingDeleted, ListingID: id})

	ucLogger.Info("Use case finished successfully", nil)
	return nil
}
