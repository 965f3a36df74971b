package repository

import (
	"context"
	"fmt"

	"shop_service/internal/domain"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

type postgresStorage struct {
	domain.UserRepository
	domain.ProductRepository
	domain.OrderRepository
	domain.ReviewRepository
	db *sqlx.DB
}

var _ domain.Storage = (*postgresStorage)(nil)

// NewPostgresStorage assembles the per-entity repositories into the single
// gateway the HTTP layer depends on.
func NewPostgresStorage(db *sqlx.DB, logger *logrus.Logger) domain.Storage {
	return &postgresStorage{
		UserRepository:    NewPostgresUserRepository(db, logger),
		ProductRepository: NewPostgresProductRepository(db, logger),
		OrderRepository:   NewPostgresOrderRepository(db, logger),
		ReviewRepository:  NewPostgresReviewRepository(db, logger),
		db:                db,
	}
}

func (s *postgresStorage) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}
	return nil
}
