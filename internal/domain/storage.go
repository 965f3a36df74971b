package domain

import "context"

// Storage is the persistence gateway used by the HTTP layer. Every method maps
// to a single statement against the store.
type Storage interface {
	UserRepository
	ProductRepository
	OrderRepository
	ReviewRepository
	Ping(ctx context.Context) error
}
