package broker

import (
	"context"
	"fmt"
	"time"

	"github.com/xtrajank/groceries/internal/models"
	"github.com/xtrajank/groceries/internal/util"

	"github.com/google/uuid"
)

// EventPublisher handles publishing domain events
type EventPublisher struct {
	producer *Producer
}

// NewEventPublisher creates a new event publisher
func NewEventPublisher(producer *Producer) *EventPublisher {
	return &EventPublisher{producer: producer}
}

// PublishOrderAssembled publishes OrderAssembled event
func (ep *EventPublisher) PublishOrderAssembled(ctx context.Context, event *models.OrderAssembledEvent) error {
	key := fmt.Sprintf("order-%d", event.OrderID)
	err := ep.producer.PublishEvent(ctx, key, event)
	if err != nil {
		util.EventsPublishedTotal.WithLabelValues("failed").Inc()
		return err
	}
	util.EventsPublishedTotal.WithLabelValues("ok").Inc()
	return nil
}

// NewOrderAssembledEvent builds the event for an assembled order.
func NewOrderAssembledEvent(runID string, order *models.Order) *models.OrderAssembledEvent {
	items := make([]models.OrderItemData, 0, len(order.LineItems))
	for _, li := range order.LineItems {
		items = append(items, models.OrderItemData{
			ItemID:    li.Item.ID,
			Quantity:  li.Quantity,
			UnitPrice: li.Item.Price.StringFixed(2),
		})
	}

	method := ""
	if order.Payment != nil {
		method = order.Payment.Method().String()
	}

	return &models.OrderAssembledEvent{
		BaseEvent: models.BaseEvent{
			EventID:   uuid.New().String(),
			EventType: models.EventTypeOrderAssembled,
			Timestamp: time.Now(),
		},
		RunID:         runID,
		OrderID:       order.ID,
		OrderDate:     order.Date,
		CustomerID:    order.Customer.ID,
		Sum:           order.Sum.StringFixed(2),
		PaymentMethod: method,
		Items:         items,
	}
}
