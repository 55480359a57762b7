package models

import "time"

// Budget is a monthly spending limit for one category.
type Budget struct {
	ID        string    `json:"id" example:"9b0f7c1e-2a4d-4e6f-8b1c-3d5e7f9a1b2c"`
	UserID    string    `json:"userId" example:"0c9e6a52-3d1f-4c4e-8f0a-7b2d1e9c5a11"`
	Category  string    `json:"category" example:"Food"`
	Amount    float64   `json:"amount" example:"1200"`
	Month     string    `json:"month" example:"2025-06"`
	CreatedAt time.Time `json:"createdAt"`
}
