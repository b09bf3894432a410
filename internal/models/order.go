// internal/models/order.go
package models

import "time"

// Order is a customer order row in the record store.
type Order struct {
	ID         string    `json:"id"`
	CustomerID string    `json:"customerId"`
	Status     string    `json:"status"`
	TotalCents int64     `json:"totalCents"`
	CreatedAt  time.Time `json:"createdAt"`
}

// OrderItem links an order line to the store that sells the product.
type OrderItem struct {
	ID        string `json:"id"`
	OrderID   string `json:"orderId"`
	StoreID   string `json:"storeId"`
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// Store is a merchant storefront. OwnerID may be empty when no merchant
// account is on record for the store.
type Store struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	OwnerID string `json:"ownerId,omitempty"`
}

// Delivery is the zero-or-one delivery assignment for an order.
type Delivery struct {
	ID       string `json:"id"`
	OrderID  string `json:"orderId"`
	DriverID string `json:"driverId,omitempty"`
	Status   string `json:"status"`
}
