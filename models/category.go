package models

import "time"

type Category struct {
	ID        string    `json:"id" example:"3e2d1c0b-9a8f-4e7d-b6c5-a4b3c2d1e0f9"`
	Name      string    `json:"name" example:"Food"`
	CreatedAt time.Time `json:"createdAt"`
}
