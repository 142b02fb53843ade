package models

import "time"

// Event types
const (
	EventTypeOrderAssembled = "ORDER_ASSEMBLED"
)

// BaseEvent contains common fields for all events
type BaseEvent struct {
	EventID   string    `json:"event_id"`
	EventType string    `json:"event_type"`
	Timestamp time.Time `json:"timestamp"`
}

// OrderAssembledEvent published for every order written to a report
type OrderAssembledEvent struct {
	BaseEvent
	RunID         string          `json:"run_id"`
	OrderID       int             `json:"order_id"`
	OrderDate     string          `json:"order_date"`
	CustomerID    int             `json:"customer_id"`
	Sum           string          `json:"sum"`
	PaymentMethod string          `json:"payment_method"`
	Items         []OrderItemData `json:"items"`
}

// OrderItemData represents item data in events
type OrderItemData struct {
	ItemID    int    `json:"item_id"`
	Quantity  int    `json:"quantity"`
	UnitPrice string `json:"unit_price"`
}
