package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/DeepPatel29/airbnbApp-Deep-N01679203/internal/contextkeys"
	"github.com/DeepPatel29/airbnbApp-Deep-N01679203/internal/core/domain"
	"github.com/DeepPatel29/airbnbApp-Deep-N01679203/internal/core/port"
)

const DefaultImportBatchSize = 100

// ImportListingsUseCase полностью заменяет содержимое коллекции нормализованными записями.
// Операция не атомарна и не возобновляема.
type ImportListingsUseCase struct {
	storage   port.ImportStoragePort
	events    port.ListingEventsPort
	batchSize int
}

func NewImportListingsUseCase(storage port.ImportStoragePort, events port.ListingEventsPort, batchSize int) *ImportListingsUseCase {
	if batchSize <= 0 {
		batchSize = DefaultImportBatchSize
	}
	return &ImportListingsUseCase{storage: storage, events: events, batchSize: batchSize}
}

func (uc *ImportListingsUseCase) Execute(ctx context.Context, records []domain.NormalizedListing) (*domain.ImportStats, error) {
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case":   "ImportListings",
		"batch_size": uc.batchSize,
	})
	ucLogger.Info("Use case started", port.Fields{"records": len(records)})

	stats := &domain.ImportStats{Total: len(records)}

	deleted, err := uc.storage.DeleteAll(ctx)
	if err != nil {
		ucLogger.Error("Failed to clear existing listings", err, nil)
		return stats, fmt.Errorf("clear collection: %w", err)
	}
	ucLogger.Info("Cleared existing listings", port.Fields{"deleted": deleted})

	for start := 0; start < len(records); start += uc.batchSize {
		end := min(start+uc.batchSize, len(records))
		batchNo := start/uc.batchSize + 1

		uc.insertBatch(ctx, ucLogger.WithFields(port.Fields{"batch": batchNo}), records[start:end], stats)

		ucLogger.Info("Batch processed", port.Fields{
			"batch":     batchNo,
			"processed": end,
			"total":     len(records),
			"succeeded": stats.Succeeded,
			"failed":    stats.Failed,
		})

		if err := ctx.Err(); err != nil {
			ucLogger.Warn("Import interrupted", port.Fields{"processed": end})
			return stats, err
		}
	}

	count, err := uc.storage.Count(ctx)
	if err != nil {
		ucLogger.Error("Failed to count listings after import", err, nil)
	} else {
		stats.InCollection = count
	}

	publishEvent(ctx, uc.events, ucLogger, domain.ListingEvent{Type: domain.ListingsImported, Import: stats})

	ucLogger.Info("Use case finished successfully", port.Fields{
		"total":         stats.Total,
		"succeeded":     stats.Succeeded,
		"failed":        stats.Failed,
		"in_collection": stats.InCollection,
	})
	return stats, nil
}

// insertBatch пишет пачку целиком, а при ошибке дозаписывает по одному то, что не сохранилось.
func (uc *ImportListingsUseCase) insertBatch(ctx context.Context, logger port.LoggerPort, batch []domain.NormalizedListing, stats *domain.ImportStats) {
	err := uc.storage.InsertBatch(ctx, batch)
	if err == nil {
		stats.Succeeded += len(batch)
		return
	}

	retry := make([]int, 0, len(batch))
	var batchErr *port.BatchInsertError
	if errors.As(err, &batchErr) {
		for _, i := range batchErr.FailedIndexes {
			if i >= 0 && i < len(batch) {
				retry = append(retry, i)
			}
		}
		stats.Succeeded += len(batch) - len(retry)
	} else {
		for i := range batch {
			retry = append(retry, i)
		}
	}

	logger.Warn("Batch insert failed, falling back to per-record insert", port.Fields{
		"error":   err.Error(),
		"retries": len(retry),
	})

	for _, i := range retry {
		record := batch[i]
		if err := uc.storage.InsertOne(ctx, record); err != nil {
			stats.Failed++
			stats.FailedIDs = append(stats.FailedIDs, record.ID)
			logger.Warn("Failed to insert listing", port.Fields{"listing_id": record.ID, "error": err.Error()})
			continue
		}
		stats.Succeeded++
	}
}
