package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"campground_backend/internal/models"

	"github.com/jmoiron/sqlx"
)

// AuthRepository defines the interface for user account database operations.
type AuthRepository interface {
	CreateUser(ctx context.Context, executor SQLExecutor, user *models.User) (int64, error)
	FindUserByUsername(ctx context.Context, username string) (*models.User, error)
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
	FindUserByID(ctx context.Context, userID int64) (*models.User, error)
	UpdateUser(ctx context.Context, executor SQLExecutor, user *models.User) error
	DeleteUser(ctx context.Context, executor SQLExecutor, userID int64) error
	SetStaff(ctx context.Context, username string, isStaff bool) error
}

type authRepository struct {
	db *sqlx.DB
}

// NewAuthRepository creates a new instance of AuthRepository.
func NewAuthRepository(db *sqlx.DB) AuthRepository {
	return &authRepository{db: db}
}

const userColumns = `id, username, email, first_name, last_name, password_hash, is_staff, created_at`

// CreateUser inserts a new user. PasswordHash must already be set.
func (r *authRepository) CreateUser(ctx context.Context, executor SQLExecutor, user *models.User) (int64, error) {
	query := executor.Rebind(`INSERT INTO users (username, email, first_name, last_name, password_hash, is_staff, created_at)
	          VALUES (?, ?, ?, ?, ?, ?, ?)
	          RETURNING id`)

	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}
	err := executor.GetContext(ctx, &user.ID, query,
		user.Username, user.Email, user.FirstName, user.LastName, user.PasswordHash, user.IsStaff, user.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, fmt.Errorf("%w: username '%s' is taken", ErrDuplicateKey, user.Username)
		}
		return 0, fmt.Errorf("%w: creating user: %v", ErrDatabaseError, err)
	}
	return user.ID, nil
}

func (r *authRepository) findOne(ctx context.Context, where string, arg interface{}) (*models.User, error) {
	user := &models.User{}
	query := r.db.Rebind(`SELECT ` + userColumns + ` FROM users WHERE ` + where + ` ORDER BY id LIMIT 1`)
	if err := r.db.GetContext(ctx, user, query, arg); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: finding user: %v", ErrDatabaseError, err)
	}
	return user, nil
}

// FindUserByUsername retrieves a user by their username.
func (r *authRepository) FindUserByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.findOne(ctx, "username = ?", username)
}

// FindUserByEmail retrieves the oldest user registered with the email.
// Emails are not unique, so the first account wins.
func (r *authRepository) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.findOne(ctx, "LOWER(email) = LOWER(?)", email)
}

// FindUserByID retrieves a user by their ID.
func (r *authRepository) FindUserByID(ctx context.Context, userID int64) (*models.User, error) {
	return r.findOne(ctx, "id = ?", userID)
}

// UpdateUser writes the mutable identity fields.
func (r *authRepository) UpdateUser(ctx context.Context, executor SQLExecutor, user *models.User) error {
	query := executor.Rebind(`UPDATE users SET username = ?, email = ?, first_name = ?, last_name = ? WHERE id = ?`)
	result, err := executor.ExecContext(ctx, query, user.Username, user.Email, user.FirstName, user.LastName, user.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: username '%s' is taken", ErrDuplicateKey, user.Username)
		}
		return fmt.Errorf("%w: updating user %d: %v", ErrDatabaseError, user.ID, err)
	}
	return expectAffected(result, "updating user")
}

// DeleteUser removes the account; the camper profile and everything it
// owns go with it through cascading foreign keys.
func (r *authRepository) DeleteUser(ctx context.Context, executor SQLExecutor, userID int64) error {
	result, err := executor.ExecContext(ctx, executor.Rebind(`DELETE FROM users WHERE id = ?`), userID)
	if err != nil {
		return fmt.Errorf("%w: deleting user %d: %v", ErrDatabaseError, userID, err)
	}
	return expectAffected(result, "deleting user")
}

// SetStaff grants or revokes staff access.
func (r *authRepository) SetStaff(ctx context.Context, username string, isStaff bool) error {
	result, err := r.db.ExecContext(ctx, r.db.Rebind(`UPDATE users SET is_staff = ? WHERE username = ?`), isStaff, username)
	if err != nil {
		return fmt.Errorf("%w: updating staff flag: %v", ErrDatabaseError, err)
	}
	return expectAffected(result, "updating staff flag")
}

// expectAffected maps a zero-row write to ErrNotFound.
func expectAffected(result sql.Result, op string) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrDatabaseError, op, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
