package service

import (
	"context"
	"errors"
	"strings"

	"github.com/nemopss/spendwise/db"
	"github.com/nemopss/spendwise/logger"
	"github.com/nemopss/spendwise/models"
	"github.com/nemopss/spendwise/validate"
)

type CategoryStore interface {
	GetCategories(ctx context.Context) ([]models.Category, error)
	GetCategoryByName(ctx context.Context, name string) (*models.Category, error)
	CreateCategory(ctx context.Context, c *models.Category) error
}

// CategoryService manages the shared category list. Categories have no
// owner.
type CategoryService struct {
	store     CategoryStore
	validator *validate.Validator
	log       *logger.Logger
}

func NewCategoryService(store CategoryStore, v *validate.Validator, l *logger.Logger) *CategoryService {
	return &CategoryService{store: store, validator: v, log: l.WithComponent(logger.ComponentCategories)}
}

func (s *CategoryService) List(ctx context.Context) ([]models.Category, error) {
	return s.store.GetCategories(ctx)
}

func (s *CategoryService) Create(ctx context.Context, in models.CreateCategory) (*models.Category, error) {
	in.Name = strings.TrimSpace(in.Name)
	if err := s.validator.Struct(in); err != nil {
		return nil, invalid(err)
	}

	_, err := s.store.GetCategoryByName(ctx, in.Name)
	switch {
	case err == nil:
		return nil, ErrDuplicateCategory
	case !errors.Is(err, db.ErrNotFound):
		return nil, err
	}

	c := &models.Category{Name: in.Name}
	if err := s.store.CreateCategory(ctx, c); err != nil {
		if errors.Is(err, db.ErrDuplicate) {
			return nil, ErrDuplicateCategory
		}
		return nil, err
	}
	s.log.InfoContext(ctx, "category created", "name", c.Name)
	return c, nil
}
