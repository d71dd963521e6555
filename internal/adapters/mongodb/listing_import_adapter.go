package mongodb

import (
	"context"
	"errors"
	"fmt"

	"github.com/DeepPatel29/airbnbApp-Deep-N01679203/internal/core/domain"
	"github.com/DeepPatel29/airbnbApp-Deep-N01679203/internal/core/port"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// DeleteAll очищает коллекцию; индексы сохраняются.
func (a *ListingStorageAdapter) DeleteAll(ctx context.Context) (int64, error) {
	res, err := a.collection.DeleteMany(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("mongodb adapter: clear collection: %w", err)
	}
	return res.DeletedCount, nil
}

func (a *ListingStorageAdapter) stamp(listing domain.NormalizedListing) domain.NormalizedListing {
	now := a.now().UTC()
	if listing.CreatedAt.IsZero() {
		listing.CreatedAt = now
	}
	listing.UpdatedAt = now
	if listing.Images == nil {
		listing.Images = []string{}
	}
	return listing
}

// InsertBatch делает неупорядоченную вставку: при ошибках остальные документы пачки все равно пишутся,
// а индексы отклоненных возвращаются в *port.BatchInsertError.
func (a *ListingStorageAdapter) InsertBatch(ctx context.Context, batch []domain.NormalizedListing) error {
	if len(batch) == 0 {
		return nil
	}
	docs := make([]interface{}, 0, len(batch))
	for _, listing := range batch {
		docs = append(docs, a.stamp(listing))
	}

	_, err := a.collection.InsertMany(ctx, docs, options.InsertMany().SetOrdered(false))
	if err == nil {
		return nil
	}

	var bulkErr mongo.BulkWriteException
	if errors.As(err, &bulkErr) && bulkErr.WriteConcernError == nil && len(bulkErr.WriteErrors) > 0 {
		failed := make([]int, 0, len(bulkErr.WriteErrors))
		for _, we := range bulkErr.WriteErrors {
			failed = append(failed, we.Index)
		}
		return &port.BatchInsertError{FailedIndexes: failed, Err: err}
	}
	return fmt.Errorf("mongodb adapter: insert batch: %w", err)
}

func (a *ListingStorageAdapter) InsertOne(ctx context.Context, listing domain.NormalizedListing) error {
	if _, err := a.collection.InsertOne(ctx, a.stamp(listing)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return &domain.ListingExistsError{ID: listing.ID}
		}
		return fmt.Errorf("mongodb adapter: insert listing %s: %w", listing.ID, err)
	}
	return nil
}

func (a *ListingStorageAdapter) Count(ctx context.Context) (int64, error) {
	count, err := a.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("mongodb adapter: count listings: %w", err)
	}
	return count, nil
}
