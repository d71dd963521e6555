package domain

import "time"

// ListingEventType - тип события об изменении объявлений
type ListingEventType string

const (
	ListingCreated   ListingEventType = "listing.created"
	ListingUpdated   ListingEventType = "listing.updated"
	ListingDeleted   ListingEventType = "listing.deleted"
	ListingsImported ListingEventType = "listings.imported"
)

// ListingEvent публикуется после успешной мутации.
type ListingEvent struct {
	Type       ListingEventType
	ListingID  string
	OccurredAt time.Time
	// Import заполняется только для ListingsImported
	Import *ImportStats
}
