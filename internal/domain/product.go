package domain

import "context"

// Product mirrors the products table. Price is NUMERIC(10, 2) and stock is
// INTEGER, so the binding tags keep payloads inside what the columns hold.
type Product struct {
	ID          int     `json:"id"          db:"id"`
	Name        string  `json:"name"        db:"name"        binding:"required"`
	Description string  `json:"description" db:"description"`
	Price       float64 `json:"price"       db:"price"       binding:"required,gt=0,lte=99999999.99,cents"`
	ImageURL    string  `json:"imageUrl"    db:"image_url"`
	Category    string  `json:"category"    db:"category"`
	Stock       int     `json:"stock"       db:"stock"       binding:"gte=0,max=2147483647"`
}

// ProductUpdate carries the fields of a partial update; nil means unchanged.
type ProductUpdate struct {
	Name        *string  `json:"name"        binding:"omitempty,min=1"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"       binding:"omitempty,gt=0,lte=99999999.99,cents"`
	ImageURL    *string  `json:"imageUrl"`
	Category    *string  `json:"category"`
	Stock       *int     `json:"stock"       binding:"omitempty,gte=0,max=2147483647"`
}

func (u ProductUpdate) IsEmpty() bool {
	return u.Name == nil && u.Description == nil && u.Price == nil &&
		u.ImageURL == nil && u.Category == nil && u.Stock == nil
}

type ProductRepository interface {
	GetProducts(ctx context.Context) ([]Product, error)
	GetProduct(ctx context.Context, id int) (*Product, error)
	CreateProduct(ctx context.Context, product *Product) (*Product, error)
	UpdateProduct(ctx context.Context, id int, update ProductUpdate) (*Product, error)
	DeleteProduct(ctx context.Context, id int) error
}
