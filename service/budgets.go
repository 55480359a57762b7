package service

import (
	"context"
	"strings"

	"github.com/nemopss/spendwise/logger"
	"github.com/nemopss/spendwise/models"
	"github.com/nemopss/spendwise/validate"
)

type BudgetStore interface {
	CreateBudget(ctx context.Context, b *models.Budget) error
	ListBudgets(ctx context.Context, userID string) ([]models.Budget, error)
	UpdateBudget(ctx context.Context, id, userID string, patch models.UpdateBudget) (*models.Budget, error)
	DeleteBudget(ctx context.Context, id, userID string) error
}

type BudgetService struct {
	store     BudgetStore
	validator *validate.Validator
	log       *logger.Logger
}

func NewBudgetService(store BudgetStore, v *validate.Validator, l *logger.Logger) *BudgetService {
	return &BudgetService{store: store, validator: v, log: l.WithComponent(logger.ComponentBudgets)}
}

func (s *BudgetService) Create(ctx context.Context, in models.CreateBudget, who *models.Identity) (*models.Budget, error) {
	userID, err := owner(who)
	if err != nil {
		return nil, err
	}
	in.Category = strings.TrimSpace(in.Category)
	if err := s.validator.Struct(in); err != nil {
		return nil, invalid(err)
	}

	b := &models.Budget{UserID: userID, Category: in.Category, Amount: in.Amount, Month: in.Month}
	if err := s.store.CreateBudget(ctx, b); err != nil {
		return nil, err
	}
	s.log.DebugContext(ctx, "budget created", logger.FieldUserID, userID, logger.FieldOperation, logger.OpCreate)
	return b, nil
}

// List returns the caller's budgets, latest month first.
func (s *BudgetService) List(ctx context.Context, who *models.Identity) ([]models.Budget, error) {
	userID, err := owner(who)
	if err != nil {
		return nil, err
	}
	return s.store.ListBudgets(ctx, userID)
}

func (s *BudgetService) Update(ctx context.Context, id string, patch models.UpdateBudget, who *models.Identity) (*models.Budget, error) {
	userID, err := owner(who)
	if err != nil {
		return nil, err
	}
	patch.Category = trimmed(patch.Category)
	if err := s.validator.Struct(patch); err != nil {
		return nil, invalid(err)
	}
	b, err := s.store.UpdateBudget(ctx, id, userID, patch)
	return b, scoped(err)
}

func (s *BudgetService) Delete(ctx context.Context, id string, who *models.Identity) error {
	userID, err := owner(who)
	if err != nil {
		return err
	}
	return scoped(s.store.DeleteBudget(ctx, id, userID))
}
