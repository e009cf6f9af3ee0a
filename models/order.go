package models

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

// Order lifecycle states, advanced through the status-update operation.
const (
	OrderStatusInProgress OrderStatus = "In Progress"
	OrderStatusProcessing OrderStatus = "Processing"
	OrderStatusInTransit  OrderStatus = "In Transit"
	OrderStatusDelivered  OrderStatus = "Delivered"
	OrderStatusPaid       OrderStatus = "Paid"
)

// Valid reports whether s is one of the known order states.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusInProgress, OrderStatusProcessing, OrderStatusInTransit,
		OrderStatusDelivered, OrderStatusPaid:
		return true
	}
	return false
}

// OrderItem is a single line of an order: a catalog document reference
// and the ordered quantity.
type OrderItem struct {
	Product  string `json:"product"`
	Quantity int    `json:"quantity"`
}

// Order groups catalog items purchased by an account. The "user" field
// holds the owning account's document ID and drives the ownership check
// on order lookups.
type Order struct {
	ID        string      `json:"_id"`
	User      string      `json:"user"`
	Items     []OrderItem `json:"items"`
	Total     float64     `json:"total"`
	Status    OrderStatus `json:"status"`
	CreatedAt string      `json:"createdAt"`
	UpdatedAt string      `json:"updatedAt"`
}

// Collection returns the name of the store collection holding order documents.
func (Order) Collection() string {
	return "orders"
}
