package models

import "time"

// DateLayout is the wire and storage format of transaction dates.
const DateLayout = "2006-01-02"

type Transaction struct {
	ID          string    `json:"id" example:"6f1c2d4e-8a3b-4c5d-9e7f-0a1b2c3d4e5f"`
	UserID      string    `json:"userId" example:"0c9e6a52-3d1f-4c4e-8f0a-7b2d1e9c5a11"`
	Amount      float64   `json:"amount" example:"500"`
	Description string    `json:"description" example:"Groceries"`
	Category    string    `json:"category" example:"Food"`
	Date        string    `json:"date" example:"2025-06-01"`
	CreatedAt   time.Time `json:"createdAt"`
}
