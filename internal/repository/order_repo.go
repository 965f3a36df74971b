package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"shop_service/internal/domain"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

const orderColumns = "id, user_id, status, total, items, created_at"

type postgresOrderRepository struct {
	db  *sqlx.DB
	log *logrus.Logger
}

func NewPostgresOrderRepository(db *sqlx.DB, logger *logrus.Logger) domain.OrderRepository {
	return &postgresOrderRepository{
		db:  db,
		log: logger,
	}
}

func (r *postgresOrderRepository) GetOrders(ctx context.Context) ([]domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders ORDER BY created_at DESC, id DESC`

	orders := []domain.Order{}
	if err := r.db.SelectContext(ctx, &orders, query); err != nil {
		r.log.Errorf("Failed to list orders: %v", err)
		return nil, fmt.Errorf("could not retrieve orders: %w", err)
	}
	r.log.Debugf("Retrieved %d orders", len(orders))
	return orders, nil
}

func (r *postgresOrderRepository) GetUserOrders(ctx context.Context, userID int) ([]domain.Order, error) {
	query := `
        SELECT ` + orderColumns + `
        FROM orders
        WHERE user_id = $1
        ORDER BY created_at DESC, id DESC`

	orders := []domain.Order{}
	if err := r.db.SelectContext(ctx, &orders, query, userID); err != nil {
		r.log.Errorf("Failed to list orders for user ID %d: %v", userID, err)
		return nil, fmt.Errorf("could not retrieve orders: %w", err)
	}
	r.log.Debugf("Retrieved %d orders for user ID %d", len(orders), userID)
	return orders, nil
}

func (r *postgresOrderRepository) CreateOrder(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	query := `
        INSERT INTO orders (user_id, status, total, items)
        VALUES ($1, $2, $3, $4)
        RETURNING ` + orderColumns
	created := &domain.Order{}

	err := r.db.GetContext(ctx, created, query, order.UserID, order.Status, order.Total, order.Items)
	if err != nil {
		if pqCode(err) == pqForeignKeyViolation {
			r.log.Warnf("Attempted to create order for non-existent user ID: %d", order.UserID)
			return nil, fmt.Errorf("user with id %d %w", order.UserID, domain.ErrNotFound)
		}
		r.log.Errorf("Failed to insert order for user %d: %v", order.UserID, err)
		return nil, fmt.Errorf("could not create order: %w", err)
	}

	r.log.Infof("Order created with ID: %d for user: %d", created.ID, created.UserID)
	return created, nil
}

func (r *postgresOrderRepository) UpdateOrderStatus(ctx context.Context, id int, status domain.OrderStatus) (*domain.Order, error) {
	query := `
        UPDATE orders
        SET status = $1
        WHERE id = $2
        RETURNING ` + orderColumns
	updated := &domain.Order{}

	if err := r.db.GetContext(ctx, updated, query, status, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.log.Warnf("Order with ID %d not found for status update", id)
			return nil, fmt.Errorf("order with id %d %w", id, domain.ErrNotFound)
		}
		r.log.Errorf("Failed to update status for order ID %d: %v", id, err)
		return nil, fmt.Errorf("could not update order status: %w", err)
	}

	r.log.Infof("Status updated for order %d to '%s'", updated.ID, updated.Status)
	return updated, nil
}
