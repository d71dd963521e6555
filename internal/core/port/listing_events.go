package port

import (
	"context"

	"github.com/DeepPatel29/airbnbApp-Deep-N01679203/internal/core/domain"
)

// ListingEventsPort публикует события об изменениях объявлений.
type ListingEventsPort interface {
	Publish(ctx context.Context, event domain.ListingEvent) error
}
