package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"shop_service/internal/domain"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

var _ domain.UserUseCase = (*authUseCase)(nil)

type authUseCase struct {
	users domain.UserRepository
	log   *logrus.Logger
	cost  int
}

func NewAuthUseCase(users domain.UserRepository, logger *logrus.Logger) domain.UserUseCase {
	return &authUseCase{
		users: users,
		log:   logger,
		cost:  bcrypt.DefaultCost,
	}
}

// Register creates a regular (non-admin) account. A taken username surfaces
// as domain.ErrConflict from the repository.
func (uc *authUseCase) Register(ctx context.Context, username, password string) (*domain.User, error) {
	return uc.create(ctx, username, password, false)
}

func (uc *authUseCase) create(ctx context.Context, username, password string, admin bool) (*domain.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		uc.log.Warn("Use Case: Registration failed - empty username")
		return nil, fmt.Errorf("%w: username cannot be empty", domain.ErrInvalidInput)
	}
	if password == "" {
		uc.log.Warnf("Use Case: Registration failed - empty password for %s", username)
		return nil, fmt.Errorf("%w: password cannot be empty", domain.ErrInvalidInput)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), uc.cost)
	if err != nil {
		uc.log.Errorf("Use Case: Failed to hash password for %s: %v", username, err)
		return nil, fmt.Errorf("internal error processing password: %w", err)
	}

	created, err := uc.users.CreateUser(ctx, &domain.User{
		Username: username,
		Password: string(hashed),
		IsAdmin:  admin,
	})
	if err != nil {
		uc.log.Warnf("Use Case: Repository failed to create user %s: %v", username, err)
		return nil, err
	}

	uc.log.Infof("Use Case: User registered successfully. ID: %d, Username: %s, Admin: %t", created.ID, created.Username, created.IsAdmin)
	return created, nil
}

// Authenticate returns domain.ErrInvalidCredentials for both unknown users and
// wrong passwords.
func (uc *authUseCase) Authenticate(ctx context.Context, username, password string) (*domain.User, error) {
	username = strings.TrimSpace(username)

	user, err := uc.users.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			uc.log.Warnf("Use Case: Auth failed - user not found: %s", username)
			return nil, domain.ErrInvalidCredentials
		}
		uc.log.Errorf("Use Case: Error retrieving user %s during auth: %v", username, err)
		return nil, fmt.Errorf("failed to retrieve user: %w", err)
	}

	err = bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			uc.log.Warnf("Use Case: Auth failed - incorrect password for user %s (ID: %d)", username, user.ID)
			return nil, domain.ErrInvalidCredentials
		}
		uc.log.Errorf("Use Case: Error comparing password hash for user %s: %v", username, err)
		return nil, fmt.Errorf("internal error during authentication: %w", err)
	}

	uc.log.Infof("Use Case: Authentication successful for user %s (ID: %d)", username, user.ID)
	return user, nil
}

// EnsureAdmin creates the bootstrap admin account if it does not exist yet.
// A regular account already holding the username is an error, not an admin.
func (uc *authUseCase) EnsureAdmin(ctx context.Context, username, password string) (*domain.User, error) {
	existing, err := uc.users.GetUserByUsername(ctx, strings.TrimSpace(username))
	if err == nil {
		if !existing.IsAdmin {
			uc.log.Errorf("Use Case: Bootstrap admin %s exists but is not an admin", existing.Username)
			return nil, fmt.Errorf("bootstrap admin %s %w as a regular user", existing.Username, domain.ErrConflict)
		}
		return existing, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	return uc.create(ctx, username, password, true)
}
