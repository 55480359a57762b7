package db

import (
	"context"
	"database/sql"
	"strings"

	"github.com/google/uuid"
	"github.com/nemopss/spendwise/models"
)

const userColumns = "id, name, email, password_hash, created_at"

// CreateUser stores u, assigning its ID and creation time. Emails are stored
// lower-cased; a taken email yields ErrDuplicate.
func (s *Storage) CreateUser(ctx context.Context, u *models.User) error {
	u.ID = uuid.NewString()
	u.Email = normalizeEmail(u.Email)
	u.CreatedAt = s.timestamp()

	var hash sql.NullString
	if u.PasswordHash != "" {
		hash = sql.NullString{String: u.PasswordHash, Valid: true}
	}

	_, err := s.exec(ctx,
		"INSERT INTO users ("+userColumns+") VALUES (?, ?, ?, ?, ?)",
		u.ID, u.Name, u.Email, hash, u.CreatedAt,
	)
	return translate(err)
}

func (s *Storage) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	row, err := s.queryRow(ctx, "SELECT "+userColumns+" FROM users WHERE id = ?", id)
	if err != nil {
		return nil, err
	}
	return scanUser(row)
}

func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	row, err := s.queryRow(ctx, "SELECT "+userColumns+" FROM users WHERE email = ?", normalizeEmail(email))
	if err != nil {
		return nil, err
	}
	return scanUser(row)
}

// UserCount returns the number of users in the database.
func (s *Storage) UserCount(ctx context.Context) (int, error) {
	row, err := s.queryRow(ctx, "SELECT COUNT(*) FROM users")
	if err != nil {
		return 0, err
	}
	var n int
	err = row.Scan(&n)
	return n, err
}

func scanUser(row *sql.Row) (*models.User, error) {
	var (
		u    models.User
		hash sql.NullString
	)
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &hash, &u.CreatedAt); err != nil {
		return nil, translate(err)
	}
	u.PasswordHash = hash.String
	return &u, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
