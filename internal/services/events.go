package services

import (
	"encoding/json"
	"time"

	"zennexify/pkg/logger"
)

// Routing keys of the domain events.
const (
	EventUserRegistered = "user.registered"
	EventStoreCreated   = "store.created"
	EventProductCreated = "product.created"
)

// EventPublisher delivers domain events to a broker.
type EventPublisher interface {
	PublishEvent(routingKey string, body []byte) error
}

// Event is the envelope every domain event is published in.
type Event struct {
	Type       string      `json:"type"`
	OccurredAt time.Time   `json:"occurredAt"`
	Data       interface{} `json:"data"`
}

// publishEvent is best effort: a broker failure is logged and never fails
// the operation that produced the event.
func publishEvent(pub EventPublisher, log *logger.Logger, routingKey string, data interface{}) {
	if pub == nil {
		return
	}
	entry := log.WithOp("publishEvent").WithField("event", routingKey)

	body, err := json.Marshal(Event{Type: routingKey, OccurredAt: time.Now().UTC(), Data: data})
	if err != nil {
		entry.WithError(err).Error("failed to encode event")
		return
	}
	if err := pub.PublishEvent(routingKey, body); err != nil {
		entry.WithError(err).Warn("failed to publish event")
		return
	}
	entry.Debug("event published")
}
