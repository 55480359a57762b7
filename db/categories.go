package db

import (
	"context"

	"github.com/google/uuid"
	"github.com/nemopss/spendwise/models"
)

func (s *Storage) GetCategories(ctx context.Context) ([]models.Category, error) {
	rows, err := s.query(ctx, "SELECT id, name, created_at FROM categories ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories = []models.Category{}
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.CreatedAt); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (s *Storage) GetCategoryByName(ctx context.Context, name string) (*models.Category, error) {
	row, err := s.queryRow(ctx, "SELECT id, name, created_at FROM categories WHERE name = ?", name)
	if err != nil {
		return nil, err
	}
	var c models.Category
	if err := row.Scan(&c.ID, &c.Name, &c.CreatedAt); err != nil {
		return nil, translate(err)
	}
	return &c, nil
}

// CreateCategory inserts c; a taken name yields ErrDuplicate.
func (s *Storage) CreateCategory(ctx context.Context, c *models.Category) error {
	c.ID = uuid.NewString()
	c.CreatedAt = s.timestamp()

	_, err := s.exec(ctx,
		"INSERT INTO categories (id, name, created_at) VALUES (?, ?, ?)",
		c.ID, c.Name, c.CreatedAt,
	)
	return translate(err)
}
