package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/DeepPatel29/airbnbApp-Deep-N01679203/internal/constants"
	"github.com/DeepPatel29/airbnbApp-Deep-N01679203/internal/contextkeys"
	"github.com/DeepPatel29/airbnbApp-Deep-N01679203/internal/core/domain"
	"github.com/DeepPatel29/airbnbApp-Deep-N01679203/internal/core/port"
	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

const publishTimeout = 10 * time.Second

// Publisher - часть rabbitmq_producer.Publisher, которая нужна адаптеру
type Publisher interface {
	Publish(ctx context.Context, routingKey string, msg amqp.Publishing) error
}

// ListingEventDTO - тело сообщения о событии
type ListingEventDTO struct {
	EventID    uuid.UUID       `json:"event_id"`
	Type       string          `json:"type"`
	ListingID  string          `json:"listing_id,omitempty"`
	OccurredAt time.Time       `json:"occurred_at"`
	Import     *ImportStatsDTO `json:"import,omitempty"`
}

type ImportStatsDTO struct {
	Total        int   `json:"total"`
	Succeeded    int   `json:"succeeded"`
	Failed       int   `json:"failed"`
	InCollection int64 `json:"in_collection"`
}

// ListingEventsAdapter публикует domain.ListingEvent в RabbitMQ.
type ListingEventsAdapter struct {
	producer Publisher
}

func NewListingEventsAdapter(producer Publisher) (*ListingEventsAdapter, error) {
	if producer == nil {
		return nil, fmt.Errorf("rabbitmq adapter: producer cannot be nil")
	}
	return &ListingEventsAdapter{producer: producer}, nil
}

func routingKeyFor(eventType domain.ListingEventType) (string, error) {
	switch eventType {
	case domain.ListingCreated:
		return constants.RoutingKeyListingCreated, nil
	case domain.ListingUpdated:
		return constants.RoutingKeyListingUpdated, nil
	case domain.ListingDeleted:
		return constants.RoutingKeyListingDeleted, nil
	case domain.ListingsImported:
		return constants.RoutingKeyListingsImported, nil
	}
	return "", fmt.Errorf("rabbitmq adapter: unknown event type %q", eventType)
}

func (a *ListingEventsAdapter) Publish(ctx context.Context, event domain.ListingEvent) error {
	routingKey, err := routingKeyFor(event.Type)
	if err != nil {
		return err
	}

	adapterLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component":   "ListingEventsAdapter",
		"routing_key": routingKey,
		"listing_id":  event.ListingID,
	})

	dto := ListingEventDTO{
		EventID:    uuid.New(),
		Type:       string(event.Type),
		ListingID:  event.ListingID,
		OccurredAt: event.OccurredAt.UTC(),
	}
	if event.Import != nil {
		dto.Import = &ImportStatsDTO{
			Total:        event.Import.Total,
			Succeeded:    event.Import.Succeeded,
			Failed:       event.Import.Failed,
			InCollection: event.Import.InCollection,
		}
	}

	body, err := json.Marshal(dto)
	if err != nil {
		return fmt.Errorf("rabbitmq adapter: failed to marshal event: %w", err)
	}

	msg := amqp.Publishing{
		ContentType:  "application/json",
		Body:         body,
		DeliveryMode: amqp.Persistent,
		MessageId:    dto.EventID.String(),
		Type:         dto.Type,
		Timestamp:    time.Now(),
		Headers:      make(amqp.Table),
	}
	if traceID := contextkeys.TraceIDFromContext(ctx); traceID != "" {
		msg.Headers[constants.HeaderTraceID] = traceID
	}

	publishCtx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	adapterLogger.Debug("Publishing listing event", port.Fields{"event_id": dto.EventID.String()})
	if err := a.producer.Publish(publishCtx, routingKey, msg); err != nil {
		adapterLogger.Error("Failed to publish listing event", err, nil)
		return fmt.Errorf("rabbitmq adapter: failed to publish %s event: %w", event.Type, err)
	}
	return nil
}

// NoopListingEvents используется, когда RabbitMQ выключен
type NoopListingEvents struct{}

func (NoopListingEvents) Publish(ctx context.Context, event domain.ListingEvent) error {
	contextkeys.LoggerFromContext(ctx).Debug("Event publishing disabled, skipping", port.Fields{
		"event_type": string(event.Type),
		"listing_id": event.ListingID,
	})
	return nil
}
