package domain

import (
	"context"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

type OrderStatus string

const (
	StatusPending    OrderStatus = "pending"
	StatusProcessing OrderStatus = "processing"
	StatusShipped    OrderStatus = "shipped"
	StatusDelivered  OrderStatus = "delivered"
	StatusCancelled  OrderStatus = "cancelled"
)

func IsValidStatus(status OrderStatus) bool {
	switch status {
	case StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	default:
		return false
	}
}

type Order struct {
	ID        int         `json:"id"        db:"id"`
	UserID    int         `json:"userId"    db:"user_id"`
	Status    OrderStatus `json:"status"    db:"status"`
	Total     float64     `json:"total"     db:"total"`
	Items     OrderItems  `json:"items"     db:"items"`
	CreatedAt time.Time   `json:"createdAt" db:"created_at"`
}

type OrderItem struct {
	ProductID int     `json:"productId" binding:"required,gt=0"`
	Quantity  int     `json:"quantity"  binding:"required,gt=0"`
	Price     float64 `json:"price"     binding:"gte=0"`
}

// OrderItems is stored as a JSONB column.
type OrderItems []OrderItem

func (items OrderItems) Value() (driver.Value, error) {
	if items == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(items)
}

func (items *OrderItems) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*items = OrderItems{}
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into OrderItems", src)
	}
	return json.Unmarshal(raw, items)
}

// CreateOrderRequest is the body of POST /api/orders. The owner is always the
// caller, so there is no user id here.
type CreateOrderRequest struct {
	Items  OrderItems  `json:"items"  binding:"required,min=1,dive"`
	Total  float64     `json:"total"  binding:"gte=0,lte=99999999.99,cents"`
	Status OrderStatus `json:"status" binding:"omitempty,oneof=pending processing shipped delivered cancelled"`
}

type UpdateOrderStatusRequest struct {
	Status OrderStatus `json:"status" binding:"required,oneof=pending processing shipped delivered cancelled"`
}

type OrderRepository interface {
	GetOrders(ctx context.Context) ([]Order, error)
	GetUserOrders(ctx context.Context, userID int) ([]Order, error)
	CreateOrder(ctx context.Context, order *Order) (*Order, error)
	UpdateOrderStatus(ctx context.Context, id int, status OrderStatus) (*Order, error)
}
