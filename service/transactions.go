package service

import (
	"context"
	"errors"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/nemopss/spendwise/db"
	"github.com/nemopss/spendwise/logger"
	"github.com/nemopss/spendwise/models"
	"github.com/nemopss/spendwise/seed"
	"github.com/nemopss/spendwise/validate"
)

// RecentCount is how many transactions the dashboard lists as recent.
const RecentCount = 6

type TransactionStore interface {
	CreateTransaction(ctx context.Context, t *models.Transaction) error
	CreateTransactions(ctx context.Context, ts []models.Transaction) error
	ListTransactions(ctx context.Context, userID string) ([]models.Transaction, error)
	GetTransaction(ctx context.Context, id, userID string) (*models.Transaction, error)
	UpdateTransaction(ctx context.Context, id, userID string, patch models.UpdateTransaction) (*models.Transaction, error)
	DeleteTransaction(ctx context.Context, id, userID string) error
}

type TransactionList struct {
	Transactions []models.Transaction
	// Recent is a prefix of Transactions.
	Recent []models.Transaction
}

type TransactionService struct {
	store     TransactionStore
	validator *validate.Validator
	log       *logger.Logger
}

func NewTransactionService(store TransactionStore, v *validate.Validator, l *logger.Logger) *TransactionService {
	return &TransactionService{store: store, validator: v, log: l.WithComponent(logger.ComponentTransactions)}
}

func (s *TransactionService) Create(ctx context.Context, in models.CreateTransaction, who *models.Identity) (*models.Transaction, error) {
	userID, err := owner(who)
	if err != nil {
		return nil, err
	}
	in.Category = strings.TrimSpace(in.Category)
	if err := s.validator.Struct(in); err != nil {
		return nil, invalid(err)
	}

	t := &models.Transaction{
		UserID:      userID,
		Amount:      in.Amount,
		Description: in.Description,
		Category:    in.Category,
		Date:        in.Date,
	}
	if err := s.store.CreateTransaction(ctx, t); err != nil {
		return nil, err
	}
	s.log.DebugContext(ctx, "transaction created", logger.FieldUserID, userID, logger.FieldOperation, logger.OpCreate)
	return t, nil
}

func (s *TransactionService) List(ctx context.Context, who *models.Identity) (*TransactionList, error) {
	userID, err := owner(who)
	if err != nil {
		return nil, err
	}
	txs, err := s.store.ListTransactions(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &TransactionList{Transactions: txs, Recent: txs[:min(RecentCount, len(txs))]}, nil
}

func (s *TransactionService) Get(ctx context.Context, id string, who *models.Identity) (*models.Transaction, error) {
	userID, err := owner(who)
	if err != nil {
		return nil, err
	}
	t, err := s.store.GetTransaction(ctx, id, userID)
	return t, scoped(err)
}

// Update applies the non-nil fields of patch.
func (s *TransactionService) Update(ctx context.Context, id string, patch models.UpdateTransaction, who *models.Identity) (*models.Transaction, error) {
	userID, err := owner(who)
	if err != nil {
		return nil, err
	}
	patch.Category = trimmed(patch.Category)
	if err := s.validator.Struct(patch); err != nil {
		return nil, invalid(err)
	}
	t, err := s.store.UpdateTransaction(ctx, id, userID, patch)
	return t, scoped(err)
}

func (s *TransactionService) Delete(ctx context.Context, id string, who *models.Identity) error {
	userID, err := owner(who)
	if err != nil {
		return err
	}
	if err := scoped(s.store.DeleteTransaction(ctx, id, userID)); err != nil {
		return err
	}
	s.log.DebugContext(ctx, "transaction deleted", logger.FieldUserID, userID, logger.FieldOperation, logger.OpDelete)
	return nil
}

// Seed inserts a year of generated transactions for the caller and returns
// how many were written.
func (s *TransactionService) Seed(ctx context.Context, rng *rand.Rand, now time.Time, who *models.Identity) (int, error) {
	userID, err := owner(who)
	if err != nil {
		return 0, err
	}

	txs := seed.Generate(rng, now)
	for i := range txs {
		txs[i].UserID = userID
	}
	if err := s.store.CreateTransactions(ctx, txs); err != nil {
		return 0, err
	}
	s.log.InfoContext(ctx, "dummy transactions inserted", logger.FieldUserID, userID, logger.FieldOperation, logger.OpSeed, "count", len(txs))
	return len(txs), nil
}

func owner(who *models.Identity) (string, error) {
	if who == nil || who.ID == "" {
		return "", ErrUnauthenticated
	}
	return who.ID, nil
}

// trimmed returns a trimmed copy of p, leaving the caller's value alone.
func trimmed(p *string) *string {
	if p == nil {
		return nil
	}
	v := strings.TrimSpace(*p)
	return &v
}

// scoped hides whether a missing row does not exist or belongs to someone
// else.
func scoped(err error) error {
	if errors.Is(err, db.ErrNotFound) {
		return ErrNotFoundOrForbidden
	}
	return err
}
