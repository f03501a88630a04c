// Package service contains the auth and catalog workflows. Workflows
// validate input, orchestrate the stores and return typed errors; they
// know nothing about HTTP.
package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/iliyamo/library-catalog/internal/auth"
	"github.com/iliyamo/library-catalog/internal/model"
	"github.com/iliyamo/library-catalog/internal/repository"
	"github.com/iliyamo/library-catalog/internal/validator"
)

// UserStore is the credential store contract the auth workflow needs.
// *repository.UserRepo satisfies it; tests supply an in-memory fake.
type UserStore interface {
	FindByUsernameOrEmail(ctx context.Context, identifier string) (*model.User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Insert(ctx context.Context, u *model.User) error
	Update(ctx context.Context, u *model.User) error
}

// RegisterInput carries the registration fields before validation.
type RegisterInput struct {
	Username string
	Email    string
	Password string
	FullName string
}

// AuthResult is returned by both Register and Login. It never includes
// the password or its hash.
type AuthResult struct {
	ID       uint64  `json:"id"`
	Username string  `json:"username"`
	Email    string  `json:"email"`
	FullName *string `json:"full_name,omitempty"`
	Token    string  `json:"token"`
}

// AuthService implements the registration and login workflows on top of
// a credential store and the token manager.
type AuthService struct {
	users      UserStore
	tokens     *auth.TokenManager
	bcryptCost int
}

func NewAuthService(users UserStore, tokens *auth.TokenManager, bcryptCost int) *AuthService {
	return &AuthService{users: users, tokens: tokens, bcryptCost: bcryptCost}
}

// Register creates a new account and returns a fresh token. Duplicate
// username or email (case-insensitive) yields ErrConflict with no record
// mutation. The schema's unique keys catch the race where two identical
// registrations pass the exists checks concurrently.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(in.Email)
	in.FullName = strings.TrimSpace(in.FullName)

	v := validator.New()
	v.Check(len(in.Username) >= 3 && len(in.Username) <= 50, "username", "must be between 3 and 50 characters")
	v.Check(in.Email != "", "email", "must be provided")
	v.Check(len(in.Email) <= 100, "email", "must not exceed 100 characters")
	if in.Email != "" {
		v.Check(validator.Matches(in.Email, validator.EmailRX), "email", "must be a valid email address")
	}
	v.Check(len(in.Password) >= 6, "password", "must be at least 6 characters")
	v.Check(len(in.FullName) <= 100, "full_name", "must not exceed 100 characters")
	if !v.Valid() {
		return nil, &ValidationError{Fields: v.Errors}
	}

	if taken, err := s.users.ExistsByUsername(ctx, in.Username); err != nil {
		return nil, err
	} else if taken {
		return nil, ErrConflict
	}
	if taken, err := s.users.ExistsByEmail(ctx, in.Email); err != nil {
		return nil, err
	} else if taken {
		return nil, ErrConflict
	}

	hash, err := auth.HashPassword(in.Password, s.bcryptCost)
	if err != nil {
		return nil, err
	}
	u := &model.User{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}
	if in.FullName != "" {
		u.FullName = &in.FullName
	}
	if err := s.users.Insert(ctx, u); err != nil {
		if errors.Is(err, repository.ErrUsernameTaken) || errors.Is(err, repository.ErrEmailTaken) {
			return nil, ErrConflict
		}
		return nil, err
	}

	return s.result(u)
}

// Login verifies credentials against the stored hash and issues a fresh
// token. The identifier is matched exactly (case-sensitive) against
// username or email. Unknown identifier and wrong password are
// indistinguishable: both return ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, identifier, password string) (*AuthResult, error) {
	u, err := s.users.FindByUsernameOrEmail(ctx, identifier)
	if errors.Is(err, repository.ErrUserNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if !auth.VerifyPassword(u.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}

	now := time.Now().UTC()
	u.LastLoginAt = &now
	if err := s.users.Update(ctx, u); err != nil {
		return nil, err
	}

	return s.result(u)
}

func (s *AuthService) result(u *model.User) (*AuthResult, error) {
	token, err := s.tokens.Issue(u)
	if err != nil {
		return nil, err
	}
	return &AuthResult{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
		FullName: u.FullName,
		Token:    token,
	}, nil
}
