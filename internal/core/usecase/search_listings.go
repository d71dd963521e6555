package usecase

import (
	"context"

	"github.com/DeepPatel29/airbnbApp-Deep-N01679203/internal/contextkeys"
	"github.com/DeepPatel29/airbnbApp-Deep-N01679203/internal/core/domain"
	"github.com/DeepPatel29/airbnbApp-Deep-N01679203/internal/core/port"
	"github.com/DeepPatel29/airbnbApp-Deep-N01679203/internal/core/port/usecases_port"
)

type SearchListingsUseCase struct {
	storage port.ListingStoragePort
}

func NewSearchListingsUseCase(storage port.ListingStoragePort) *SearchListingsUseCase {
	return &SearchListingsUseCase{storage: storage}
}

// Execute выполняет поиск по одному полю либо по диапазону цены.
// Пустой результат - не ошибка; как его показать, решает вызывающий.
func (uc *SearchListingsUseCase) Execute(ctx context.Context, req domain.SearchRequest) (*usecases_port.SearchResult, error) {
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case":    "SearchListings",
		"search_type": req.Type,
	})
	ucLogger.Info("Use case started", nil)

	plan, err := req.Plan()
	if err != nil {
		ucLogger.Warn("Invalid search request", port.Fields{"reason": err.Error()})
		return nil, err
	}

	listings, err := uc.storage.Find(ctx, plan.Query, plan.Limit)
	if err != nil {
		ucLogger.Error("Storage returned an error", err, nil)
		return nil, err
	}

	ucLogger.Info("Use case finished successfully", port.Fields{"found": len(listings)})
	return &usecases_port.SearchResult{Listings: listings, Description: plan.Description}, nil
}

type FilterListingsUseCase struct {
	storage port.ListingStoragePort
}

func NewFilterListingsUseCase(storage port.ListingStoragePort) *FilterListingsUseCase {
	return &FilterListingsUseCase{storage: storage}
}

// Execute применяет комбинированный фильтр (все условия через AND).
func (uc *FilterListingsUseCase) Execute(ctx context.Context, req domain.FilterRequest) ([]domain.DisplayListing, error) {
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case": "FilterListings",
	})
	ucLogger.Info("Use case started", nil)

	query, err := req.Query()
	if err != nil {
		ucLogger.Warn("Invalid filter request", port.Fields{"reason": err.Error()})
		return nil, err
	}

	listings, err := uc.storage.Find(ctx, query, domain.FilterLimit)
	if err != nil {
		ucLogger.Error("Storage returned an error", err, nil)
		return nil, err
	}

	ucLogger.Info("Use case finished successfully", port.Fields{"found": len(listings)})
	return listings, nil
}

type QuickSearchUseCase struct {
	storage port.ListingStoragePort
}

func NewQuickSearchUseCase(storage port.ListingStoragePort) *QuickSearchUseCase {
	return &QuickSearchUseCase{storage: storage}
}

// Execute ищет вхождение строки в id или название.
func (uc *QuickSearchUseCase) Execute(ctx context.Context, term string) ([]domain.DisplayListing, error) {
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case": "QuickSearch",
		"term":     term,
	})
	ucLogger.Info("Use case started", nil)

	query := domain.QuickSearchQuery(term)
	if query.Text.Term == "" {
		return nil, domain.NewValidationError("Please enter a search term")
	}

	listings, err := uc.storage.Find(ctx, query, domain.QuickSearchLimit)
	if err != nil {
		ucLogger.Error("Storage returned an error", err, nil)
		return nil, err
	}

	ucLogger.Info("Use case finished successfully", port.Fields{"found": len(listings)})
	return listings, nil
}
