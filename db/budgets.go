package db

import (
	"context"

	"github.com/google/uuid"
	"github.com/nemopss/spendwise/models"
)

const budgetColumns = "id, user_id, category, amount, month, created_at"

func scanBudget(row rowScanner) (models.Budget, error) {
	var b models.Budget
	err := row.Scan(&b.ID, &b.UserID, &b.Category, &b.Amount, &b.Month, &b.CreatedAt)
	return b, err
}

func (s *Storage) CreateBudget(ctx context.Context, b *models.Budget) error {
	b.ID = uuid.NewString()
	b.CreatedAt = s.timestamp()

	_, err := s.exec(ctx,
		"INSERT INTO budgets ("+budgetColumns+") VALUES (?, ?, ?, ?, ?, ?)",
		b.ID, b.UserID, b.Category, b.Amount, b.Month, b.CreatedAt,
	)
	return translate(err)
}

// ListBudgets returns the user's budgets, latest month first.
func (s *Storage) ListBudgets(ctx context.Context, userID string) ([]models.Budget, error) {
	rows, err := s.query(ctx,
		"SELECT "+budgetColumns+" FROM budgets WHERE user_id = ? ORDER BY month DESC, seq DESC",
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var budgets = []models.Budget{}
	for rows.Next() {
		b, err := scanBudget(rows)
		if err != nil {
			return nil, err
		}
		budgets = append(budgets, b)
	}
	return budgets, rows.Err()
}

func (s *Storage) UpdateBudget(ctx context.Context, id, userID string, patch models.UpdateBudget) (*models.Budget, error) {
	row, err := s.queryRow(ctx, `UPDATE budgets SET
			category = COALESCE(?, category),
			amount = COALESCE(?, amount),
			month = COALESCE(?, month)
		WHERE id = ? AND user_id = ?
		RETURNING `+budgetColumns,
		nullable(patch.Category), nullable(patch.Amount), nullable(patch.Month),
		id, userID,
	)
	if err != nil {
		return nil, err
	}
	b, err := scanBudget(row)
	if err != nil {
		return nil, translate(err)
	}
	return &b, nil
}

func (s *Storage) DeleteBudget(ctx context.Context, id, userID string) error {
	res, err := s.exec(ctx, "DELETE FROM budgets WHERE id = ? AND user_id = ?", id, userID)
	if err != nil {
		return err
	}
	return affectedOne(res)
}
