package models

// Product is a catalog item. Domain fields beyond the generic record
// envelope are opaque to the resource engine; this typed view exists for
// the transport layer and tests.
type Product struct {
	ID          string  `json:"_id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Stock       int     `json:"stock"`
	CreatedAt   string  `json:"createdAt"`
	UpdatedAt   string  `json:"updatedAt"`
}

// Collection returns the name of the store collection holding catalog documents.
func (Product) Collection() string {
	return "products"
}
