package pg

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/carhive-dev/carhive/internal/domain"
	internal_errors "github.com/carhive-dev/carhive/internal/errors"
)

// =========================================================================
// Public Methods (satisfy the service.AuthStorage interface)
// =========================================================================

// SaveUser inserts a new account and returns its generated id. A unique
// violation on the email column maps to the same conflict the signup
// pre-check produces, so a concurrent duplicate signup loses cleanly.
func (s *Storage) SaveUser(user domain.User) (domain.UserId, error) {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	var id domain.UserId
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		var err error
		id, err = s.saveUser(tx, user)
		return err
	})
	return id, err
}

// User fetches an account by email using the main connection pool.
func (s *Storage) User(email string) (domain.User, error) {
	return s.user(s.db, email)
}

// DeleteUser removes an account. Listings cascade via the schema.
func (s *Storage) DeleteUser(email string) error {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	return s.withTx(ctx, func(tx *sql.Tx) error {
		return s.deleteUser(tx, email)
	})
}

// =========================================================================
// Internal Methods (Core Database Logic)
// =========================================================================

func (s *Storage) saveUser(q Querier, user domain.User) (domain.UserId, error) {
	id := uuid.NewString()
	_, err := q.Exec("INSERT INTO users(id, email, password_hash) VALUES($1, $2, $3)",
		id, user.Email, user.PassHash)
	if err != nil {
		if isUniqueViolation(err) {
			return "", internal_errors.Conflict("User already exists, please try logging in")
		}
		return "", fmt.Errorf("failed to insert user: %w", err)
	}
	return id, nil
}

func (s *Storage) user(q Querier, email string) (domain.User, error) {
	var user domain.User
	err := q.QueryRow("SELECT id, email, password_hash FROM users WHERE email = $1", email).
		Scan(&user.Id, &user.Email, &user.PassHash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.User{}, internal_errors.NotFound("User not found")
		}
		return domain.User{}, fmt.Errorf("failed to query user: %w", err)
	}
	return user, nil
}

func (s *Storage) deleteUser(q Querier, email string) error {
	result, err := q.Exec("DELETE FROM users WHERE email = $1", email)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	rowsDeleted, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows for user deletion: %w", err)
	}
	if rowsDeleted == 0 {
		return internal_errors.NotFound("User not found for deletion")
	}
	return nil
}
