package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/iliyamo/library-catalog/internal/model"
)

// UserRepo is the credential store: persisted user records reachable by
// the lookups the auth workflow needs. It has no side effects beyond
// persistence.
type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

const userColumns = "id, username, email, password_hash, full_name, created_at, last_login_at"

// Insert persists a new user and assigns its id. Duplicate username or
// email collisions surface as ErrUsernameTaken / ErrEmailTaken; the
// unique keys in the schema act as the backstop for concurrent
// registrations that pass the workflow's exists checks.
func (r *UserRepo) Insert(ctx context.Context, u *model.User) error {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO users (username, email, password_hash, full_name, created_at) VALUES (?,?,?,?,?)",
		u.Username, u.Email, u.PasswordHash, u.FullName, u.CreatedAt)
	if err != nil {
		if isDuplicateKey(err) {
			if strings.Contains(err.Error(), "uq_users_email") {
				return ErrEmailTaken
			}
			return ErrUsernameTaken
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	u.ID = uint64(id)
	return nil
}

// FindByUsernameOrEmail looks a user up by exact username OR exact email
// match. The BINARY compare makes the match case-sensitive even though
// the columns use a case-insensitive collation; registration uniqueness
// stays case-insensitive. That asymmetry is deliberate and mirrors the
// documented login semantics.
func (r *UserRepo) FindByUsernameOrEmail(ctx context.Context, identifier string) (*model.User, error) {
	var u model.User
	err := r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE BINARY username = ? OR BINARY email = ? LIMIT 1",
		identifier, identifier,
	).Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.FullName, &u.CreatedAt, &u.LastLoginAt)
	if err == sql.ErrNoRows {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// ExistsByUsername reports whether a user with the given username exists,
// ignoring case.
func (r *UserRepo) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	var exists bool
	err := r.DB.QueryRowContext(ctx,
		"SELECT EXISTS(SELECT 1 FROM users WHERE LOWER(username) = LOWER(?))", username).Scan(&exists)
	return exists, err
}

// ExistsByEmail reports whether a user with the given email exists,
// ignoring case.
func (r *UserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.DB.QueryRowContext(ctx,
		"SELECT EXISTS(SELECT 1 FROM users WHERE LOWER(email) = LOWER(?))", email).Scan(&exists)
	return exists, err
}

// Update persists mutated fields of an existing user (the auth workflow
// uses it to stamp last-login).
func (r *UserRepo) Update(ctx context.Context, u *model.User) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE users SET username=?, email=?, full_name=?, last_login_at=? WHERE id=?",
		u.Username, u.Email, u.FullName, u.LastLoginAt, u.ID)
	return err
}

// isDuplicateKey detects MySQL error 1062 (duplicate entry for a unique key).
func isDuplicateKey(err error) bool {
	return err != nil && strings.Contains(err.Error(), "1062")
}
