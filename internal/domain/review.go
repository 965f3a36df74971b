package domain

import (
	"context"
	"time"
)

type Review struct {
	ID        int       `json:"id"        db:"id"`
	ProductID int       `json:"productId" db:"product_id"`
	UserID    int       `json:"userId"    db:"user_id"`
	Rating    int       `json:"rating"    db:"rating"`
	Comment   string    `json:"comment"   db:"comment"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

type CreateReviewRequest struct {
	Rating  int    `json:"rating"  binding:"required,min=1,max=5"`
	Comment string `json:"comment"`
}

type ReviewRepository interface {
	GetProductReviews(ctx context.Context, productID int) ([]Review, error)
	CreateReview(ctx context.Context, review *Review) (*Review, error)
}
