package db

import (
	"context"

	"github.com/google/uuid"
	"github.com/nemopss/spendwise/models"
)

const accountColumns = "id, user_id, provider, provider_account_id, created_at"

// CreateAccount links a provider login to a user.
func (s *Storage) CreateAccount(ctx context.Context, a *models.Account) error {
	a.ID = uuid.NewString()
	a.CreatedAt = s.timestamp()

	_, err := s.exec(ctx,
		"INSERT INTO accounts ("+accountColumns+") VALUES (?, ?, ?, ?, ?)",
		a.ID, a.UserID, a.Provider, a.ProviderAccountID, a.CreatedAt,
	)
	return translate(err)
}

// GetAccount finds the link for a provider's account id.
func (s *Storage) GetAccount(ctx context.Context, provider, providerAccountID string) (*models.Account, error) {
	row, err := s.queryRow(ctx,
		"SELECT "+accountColumns+" FROM accounts WHERE provider = ? AND provider_account_id = ?",
		provider, providerAccountID,
	)
	if err != nil {
		return nil, err
	}

	var a models.Account
	if err := row.Scan(&a.ID, &a.UserID, &a.Provider, &a.ProviderAccountID, &a.CreatedAt); err != nil {
		return nil, translate(err)
	}
	return &a, nil
}
