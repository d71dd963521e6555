package usecase

import (
	"context"
	"errors"

	"github.com/DeepPatel29/airbnbApp-Deep-N01679203/internal/contextkeys"
	"github.com/DeepPatel29/airbnbApp-Deep-N01679203/internal/core/domain"
	"github.com/DeepPatel29/airbnbApp-Deep-N01679203/internal/core/port"
)

type CreateListingUseCase struct {
	storage port.ListingStoragePort
	events  port.ListingEventsPort
}

func NewCreateListingUseCase(storage port.ListingStoragePort, events port.ListingEventsPort) *CreateListingUseCase {
	return &CreateListingUseCase{storage: storage, events: events}
}

// Execute проверяет обязательные поля и уникальность id, дополняет значения по умолчанию и сохраняет.
func (uc *CreateListingUseCase) Execute(ctx context.Context, listing domain.DisplayListing) (*domain.DisplayListing, error) {
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case":   "CreateListing",
		"listing_id": listing.ID,
	})
	ucLogger.Info("Use case started", nil)

	if err := listing.PrepareForCreate(); err != nil {
		ucLogger.Warn("Listing failed validation", port.Fields{"reason": err.Error()})
		return nil, err
	}

	exists, err := uc.storage.Exists(ctx, listing.ID)
	if err != nil {
		ucLogger.Error("Failed to check listing id", err, nil)
		return nil, err
	}
	if exists {
		ucLogger.Warn("Listing id already taken", nil)
		return nil, &domain.ListingExistsError{ID: listing.ID}
	}

	// уникальный индекс страхует от гонки между проверкой и вставкой
	if err := uc.storage.Create(ctx, listing); err != nil {
		if errors.Is(err, domain.ErrListingExists) {
			ucLogger.Warn("Listing id already taken", nil)
		} else {
			ucLogger.Error("Failed to save listing", err, nil)
		}
		return nil, err
	}

	publishEvent(ctx, uc.events, ucLogger, domain.ListingEvent{Type: domain.ListingCreated, ListingID: listing.ID})

	// отдаем сохраненную версию: метки времени проставляет хранилище
	stored, err := uc.storage.GetByID(ctx, listing.ID)
	if err != nil {
		ucLogger.Warn("Failed to reload created listing", port.Fields{"error": err.Error()})
		stored = &listing
	}

	ucLogger.Info("Use case finished successfully", nil)
	return stored, nil
}
