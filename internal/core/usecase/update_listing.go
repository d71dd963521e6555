package usecase

import (
	"context"
	"errors"

	"github.com/DeepPatel29/airbnbApp-Deep-N01679203/internal/contextkeys"
	"github.com/DeepPatel29/airbnbApp-Deep-N01679203/internal/core/domain"
	"github.com/DeepPatel29/airbnbApp-Deep-N01679203/internal/core/port"
)

type UpdateListingUseCase struct {
	storage port.ListingStoragePort
	events  port.ListingEventsPort
}

func NewUpdateListingUseCase(storage port.ListingStoragePort, events port.ListingEventsPort) *UpdateListingUseCase {
	return &UpdateListingUseCase{storage: storage, events: events}
}

// Execute сливает переданные поля с документом по внешнему id.
func (uc *UpdateListingUseCase) Execute(ctx context.Context, id string, patch *domain.ListingPatch) (*domain.DisplayListing, error) {
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case":   "UpdateListing",
		"listing_id": id,
	})
	ucLogger.Info("Use case started", nil)

	if patch == nil {
		patch = domain.NewListingPatch()
	}

	// пустой патч ничего не меняет, но отсутствие объявления все равно сообщаем
	if patch.IsEmpty() {
		listing, err := uc.storage.GetByID(ctx, id)
		if err != nil {
			return nil, uc.logFailure(ucLogger, err)
		}
		ucLogger.Info("Use case finished, nothing to update", nil)
		return listing, nil
	}

	updated, err := uc.storage.Update(ctx, id, patch)
	if err != nil {
		return nil, uc.logFailure(ucLogger, err)
	}

	publishEvent(ctx, uc.events, ucLogger, domain.ListingEvent{Type: domain.ListingUpdated, ListingID: id})

	ucLogger.Info("Use case finished successfully", port.Fields{"updated_fields": len(patch.Fields)})
	return updated, nil
}

func (uc *UpdateListingUseCase) logFailure(logger port.LoggerPort, err error) error {
	if errors.Is(err, domain.ErrListingNotFound) {
		logger.Warn("Listing not found", nil)
	} else {
		logger.Error("Failed to update listing", err, nil)
	}
	return err
}
