package domain

import "context"

type User struct {
	ID       int    `json:"id"       db:"id"`
	Username string `json:"username" db:"username"`
	Password string `json:"-"        db:"password"` // bcrypt hash
	IsAdmin  bool   `json:"isAdmin"  db:"is_admin"`
}

// Principal is the authenticated caller of a request. It only exists when the
// request carries a valid session.
type Principal struct {
	ID       int
	Username string
	IsAdmin  bool
}

func (u *User) Principal() *Principal {
	return &Principal{ID: u.ID, Username: u.Username, IsAdmin: u.IsAdmin}
}

type UserRepository interface {
	GetUser(ctx context.Context, id int) (*User, error)
	GetUserByUsername(ctx context.Context, username string) (*User, error)
	CreateUser(ctx context.Context, user *User) (*User, error)
}

type UserUseCase interface {
	Register(ctx context.Context, username, password string) (*User, error)
	Authenticate(ctx context.Context, username, password string) (*User, error)
	EnsureAdmin(ctx context.Context, username, password string) (*User, error)
}

type Credentials struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}
