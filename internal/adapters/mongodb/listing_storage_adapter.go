package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/DeepPatel29/airbnbApp-Deep-N01679203/internal/core/domain"
	"github.com/DeepPatel29/airbnbApp-Deep-N01679203/internal/core/port"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const idIndexName = "listing_id_unique"

// ListingStorageAdapter хранит объявления в коллекции MongoDB.
// Коллекция может содержать документы обеих форм: витринные (из веб-формы) и нормализованные (из импорта).
type ListingStorageAdapter struct {
	collection *mongo.Collection
	now        func() time.Time
}

var (
	_ port.ListingStoragePort = (*ListingStorageAdapter)(nil)
	_ port.ImportStoragePort  = (*ListingStorageAdapter)(nil)
)

func NewListingStorageAdapter(db *mongo.Database, collection string) (*ListingStorageAdapter, error) {
	if db == nil {
		return nil, fmt.Errorf("mongodb adapter: database cannot be nil")
	}
	if collection == "" {
		return nil, fmt.Errorf("mongodb adapter: collection name cannot be empty")
	}
	return &ListingStorageAdapter{
		collection: db.Collection(collection),
		now:        time.Now,
	}, nil
}

// EnsureIndexes создает уникальный индекс по внешнему id.
func (a *ListingStorageAdapter) EnsureIndexes(ctx context.Context) error {
	_, err := a.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "id", Value: 1}},
		Options: options.Index().SetUnique(true).SetName(idIndexName),
	})
	if err != nil {
		return fmt.Errorf("mongodb adapter: failed to create id index: %w", err)
	}
	return nil
}

func (a *ListingStorageAdapter) Find(ctx context.Context, query domain.ListingQuery, limit int) ([]domain.DisplayListing, error) {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}

	cursor, err := a.collection.Find(ctx, buildFilter(query), opts)
	if err != nil {
		return nil, fmt.Errorf("mongodb adapter: find listings: %w", err)
	}
	defer cursor.Close(ctx)

	listings := make([]domain.DisplayListing, 0)
	for cursor.Next(ctx) {
		var raw bson.M
		if err := cursor.Decode(&raw); err != nil {
			return nil, fmt.Errorf("mongodb adapter: decode listing: %w", err)
		}
		listings = append(listings, toDisplay(raw))
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("mongodb adapter: iterate listings: %w", err)
	}
	return listings, nil
}

func (a *ListingStorageAdapter) GetByID(ctx context.Context, id string) (*domain.DisplayListing, error) {
	var raw bson.M
	err := a.collection.FindOne(ctx, bson.M{"id": id}).Decode(&raw)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrListingNotFound
		}
		return nil, fmt.Errorf("mongodb adapter: get listing %s: %w", id, err)
	}
	listing := toDisplay(raw)
	return &listing, nil
}

func (a *ListingStorageAdapter) Exists(ctx context.Context, id string) (bool, error) {
	count, err := a.collection.CountDocuments(ctx, bson.M{"id": id}, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("mongodb adapter: check listing %s: %w", id, err)
	}
	return count > 0, nil
}

func (a *ListingStorageAdapter) Create(ctx context.Context, listing domain.DisplayListing) error {
	now := a.now().UTC()
	listing.CreatedAt = now
	listing.UpdatedAt = now
	if listing.Images == nil {
		listing.Images = []string{}
	}

	if _, err := a.collection.InsertOne(ctx, listing); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return &domain.ListingExistsError{ID: listing.ID}
		}
		return fmt.Errorf("mongodb adapter: insert listing %s: %w", listing.ID, err)
	}
	return nil
}

// Update выполняет $set переданных полей и $unset их нормализованных синонимов.
func (a *ListingStorageAdapter) Update(ctx context.Context, id string, patch *domain.ListingPatch) (*domain.DisplayListing, error) {
	set := bson.M{"updatedAt": a.now().UTC()}
	for key, value := range patch.Fields {
		set[key] = value
	}
	if patch.ImagesSet {
		images := patch.Images
		if images == nil {
			images = []string{}
		}
		set[domain.ImagesKey] = images
	}

	update := bson.M{"$set": set}
	if aliases := patch.ReplacedAliases(); len(aliases) > 0 {
		unset := bson.M{}
		for _, alias := range aliases {
			unset[alias] = ""
		}
		update["$unset"] = unset
	}

	var raw bson.M
	err := a.collection.FindOneAndUpdate(ctx, bson.M{"id": id}, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&raw)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrListingNotFound
		}
		return nil, fmt.Errorf("mongodb adapter: update listing %s: %w", id, err)
	}
	listing := toDisplay(raw)
	return &listing, nil
}

func (a *ListingStorageAdapter) Delete(ctx context.Context, id string) (*domain.DisplayListing, error) {
	var raw bson.M
	err := a.collection.FindOneAndDelete(ctx, bson.M{"id": id}).Decode(&raw)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrListingNotFound
		}
		return nil, fmt.Errorf("mongodb adapter: delete listing %s: %w", id, err)
	}
	listing := toDisplay(raw)
	return &listing, nil
}

func (a *ListingStorageAdapter) Ping(ctx context.Context) error {
	return a.collection.Database().Client().Ping(ctx, readpref.Primary())
}
