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

const userColumns = "id, username, password, is_admin"

type postgresUserRepository struct {
	db  *sqlx.DB
	log *logrus.Logger
}

func NewPostgresUserRepository(db *sqlx.DB, logger *logrus.Logger) domain.UserRepository {
	return &postgresUserRepository{
		db:  db,
		log: logger,
	}
}

func (r *postgresUserRepository) GetUser(ctx context.Context, id int) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	user := &domain.User{}

	r.log.Debugf("Repository: Attempting to find user by ID: %d", id)
	if err := r.db.GetContext(ctx, user, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.log.Debugf("Repository: User with ID %d not found", id)
			return nil, fmt.Errorf("user with id %d %w", id, domain.ErrNotFound)
		}
		r.log.Errorf("Repository: Failed to get user by ID %d: %v", id, err)
		return nil, fmt.Errorf("could not get user by id: %w", err)
	}
	return user, nil
}

func (r *postgresUserRepository) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1`
	user := &domain.User{}

	r.log.Debugf("Repository: Attempting to find user by username: %s", username)
	if err := r.db.GetContext(ctx, user, query, username); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.log.Debugf("Repository: User %s not found", username)
			return nil, fmt.Errorf("user %s %w", username, domain.ErrNotFound)
		}
		r.log.Errorf("Repository: Failed to get user by username %s: %v", username, err)
		return nil, fmt.Errorf("could not get user by username: %w", err)
	}
	return user, nil
}

func (r *postgresUserRepository) CreateUser(ctx context.Context, user *domain.User) (*domain.User, error) {
	query := `
        INSERT INTO users (username, password, is_admin)
        VALUES ($1, $2, $3)
        RETURNING ` + userColumns
	created := &domain.User{}

	err := r.db.GetContext(ctx, created, query, user.Username, user.Password, user.IsAdmin)
	if err != nil {
		if pqCode(err) == pqUniqueViolation {
			r.log.Warnf("Repository: Attempted to create user with duplicate username: %s", user.Username)
			return nil, fmt.Errorf("user with username '%s' %w", user.Username, domain.ErrConflict)
		}
		r.log.Errorf("Repository: Failed to create user '%s': %v", user.Username, err)
		return nil, fmt.Errorf("could not create user: %w", err)
	}

	r.log.Infof("Repository: User created successfully with ID: %d, Username: %s", created.ID, created.Username)
	return created, nil
}
