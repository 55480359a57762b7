package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/nemopss/spendwise/models"
)

const transactionColumns = "id, user_id, amount, description, category, date, created_at"

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTransaction(row rowScanner) (models.Transaction, error) {
	var t models.Transaction
	err := row.Scan(&t.ID, &t.UserID, &t.Amount, &t.Description, &t.Category, &t.Date, &t.CreatedAt)
	return t, err
}

// CreateTransaction inserts t, assigning its ID and creation time.
func (s *Storage) CreateTransaction(ctx context.Context, t *models.Transaction) error {
	t.ID = uuid.NewString()
	t.CreatedAt = s.timestamp()

	_, err := s.exec(ctx,
		"INSERT INTO transactions ("+transactionColumns+") VALUES (?, ?, ?, ?, ?, ?, ?)",
		t.ID, t.UserID, t.Amount, t.Description, t.Category, t.Date, t.CreatedAt,
	)
	return translate(err)
}

// CreateTransactions inserts ts in one database transaction, in slice order.
func (s *Storage) CreateTransactions(ctx context.Context, ts []models.Transaction) error {
	conn, err := s.conn(ctx)
	if err != nil {
		return err
	}

	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, s.rebind(
		"INSERT INTO transactions ("+transactionColumns+") VALUES (?, ?, ?, ?, ?, ?, ?)",
	))
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i := range ts {
		t := &ts[i]
		t.ID = uuid.NewString()
		t.CreatedAt = s.timestamp()
		if _, err := stmt.ExecContext(ctx, t.ID, t.UserID, t.Amount, t.Description, t.Category, t.Date, t.CreatedAt); err != nil {
			return fmt.Errorf("insert transaction %d: %w", i, translate(err))
		}
	}
	return tx.Commit()
}

// ListTransactions returns the user's transactions, newest date first and,
// within a date, most recently inserted first.
func (s *Storage) ListTransactions(ctx context.Context, userID string) ([]models.Transaction, error) {
	rows, err := s.query(ctx,
		"SELECT "+transactionColumns+" FROM transactions WHERE user_id = ? ORDER BY date DESC, seq DESC",
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var transactions = []models.Transaction{}
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, t)
	}
	return transactions, rows.Err()
}

// GetTransaction returns ErrNotFound unless id exists and belongs to userID.
func (s *Storage) GetTransaction(ctx context.Context, id, userID string) (*models.Transaction, error) {
	row, err := s.queryRow(ctx,
		"SELECT "+transactionColumns+" FROM transactions WHERE id = ? AND user_id = ?",
		id, userID,
	)
	if err != nil {
		return nil, err
	}
	t, err := scanTransaction(row)
	if err != nil {
		return nil, translate(err)
	}
	return &t, nil
}

// UpdateTransaction applies the non-nil fields of patch in a single statement
// matched on both id and owner. A miss on either yields ErrNotFound.
func (s *Storage) UpdateTransaction(ctx context.Context, id, userID string, patch models.UpdateTransaction) (*models.Transaction, error) {
	row, err := s.queryRow(ctx, `UPDATE transactions SET
			amount = COALESCE(?, amount),
			description = COALESCE(?, description),
			category = COALESCE(?, category),
			date = COALESCE(?, date)
		WHERE id = ? AND user_id = ?
		RETURNING `+transactionColumns,
		nullable(patch.Amount), nullable(patch.Description), nullable(patch.Category), nullable(patch.Date),
		id, userID,
	)
	if err != nil {
		return nil, err
	}
	t, err := scanTransaction(row)
	if err != nil {
		return nil, translate(err)
	}
	return &t, nil
}

// DeleteTransaction removes id when it belongs to userID, else ErrNotFound.
func (s *Storage) DeleteTransaction(ctx context.Context, id, userID string) error {
	res, err := s.exec(ctx, "DELETE FROM transactions WHERE id = ? AND user_id = ?", id, userID)
	if err != nil {
		return err
	}
	return affectedOne(res)
}

func affectedOne(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// nullable turns a nil pointer into SQL NULL.
func nullable[T any](p *T) any {
	if p == nil {
		return nil
	}
	return *p
}
