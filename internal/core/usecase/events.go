package usecase

import (
	"context"
	"time"

	"github.com/DeepPatel29/airbnbApp-Deep-N01679203/internal/core/domain"
	"github.com/DeepPatel29/airbnbApp-Deep-N01679203/internal/core/port"
)

// publishEvent не меняет результат операции, сбой публикации только логируется.
func publishEvent(ctx context.Context, events port.ListingEventsPort, logger port.LoggerPort, event domain.ListingEvent) {
	if events == nil {
		return
	}
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now()
	}
	if err := events.Publish(ctx, event); err != nil {
		logger.Warn("Failed to publish listing event", port.Fields{
			"event_type": string(event.Type),
			"error":      err.Error(),
		})
	}
}
