package repository

import (
	"context"
	"fmt"

	"shop_service/internal/domain"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

const reviewColumns = "id, product_id, user_id, rating, comment, created_at"

type postgresReviewRepository struct {
	db  *sqlx.DB
	log *logrus.Logger
}

func NewPostgresReviewRepository(db *sqlx.DB, logger *logrus.Logger) domain.ReviewRepository {
	return &postgresReviewRepository{
		db:  db,
		log: logger,
	}
}

func (r *postgresReviewRepository) GetProductReviews(ctx context.Context, productID int) ([]domain.Review, error) {
	query := `
        SELECT ` + reviewColumns + `
        FROM reviews
        WHERE product_id = $1
        ORDER BY created_at DESC, id DESC`

	reviews := []domain.Review{}
	if err := r.db.SelectContext(ctx, &reviews, query, productID); err != nil {
		r.log.Errorf("Failed to list reviews for product %d: %v", productID, err)
		return nil, fmt.Errorf("could not retrieve reviews: %w", err)
	}
	return reviews, nil
}

func (r *postgresReviewRepository) CreateReview(ctx context.Context, review *domain.Review) (*domain.Review, error) {
	query := `
        INSERT INTO reviews (product_id, user_id, rating, comment)
        VALUES ($1, $2, $3, $4)
        RETURNING ` + reviewColumns
	created := &domain.Review{}

	err := r.db.GetContext(ctx, created, query, review.ProductID, review.UserID, review.Rating, review.Comment)
	if err != nil {
		switch pqCode(err) {
		case pqForeignKeyViolation:
			r.log.Warnf("Attempted to review non-existent product ID: %d", review.ProductID)
			return nil, fmt.Errorf("product with id %d %w", review.ProductID, domain.ErrNotFound)
		case pqCheckViolation:
			r.log.Warnf("Check constraint violation for review of product %d: %v", review.ProductID, err)
		default:
			r.log.Errorf("Failed to create review for product %d: %v", review.ProductID, err)
		}
		return nil, fmt.Errorf("could not create review: %w", err)
	}

	r.log.Infof("Review %d created for product %d by user %d", created.ID, created.ProductID, created.UserID)
	return created, nil
}
