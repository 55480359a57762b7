package models

type CreateTransaction struct {
	Amount      float64 `json:"amount" validate:"gt=0" example:"500"`
	Description string  `json:"description" validate:"min=2,max=100" example:"Groceries"`
	Category    string  `json:"category" validate:"required,max=50" example:"Food"`
	Date        string  `json:"date" validate:"required,isodate" example:"2025-06-01"`
}

// UpdateTransaction is a partial update; nil fields are left unchanged.
type UpdateTransaction struct {
	Amount      *float64 `json:"amount,omitempty" validate:"omitnil,gt=0"`
	Description *string  `json:"description,omitempty" validate:"omitnil,min=2,max=100"`
	Category    *string  `json:"category,omitempty" validate:"omitnil,min=1,max=50"`
	Date        *string  `json:"date,omitempty" validate:"omitnil,isodate"`
}

type CreateBudget struct {
	Category string  `json:"category" validate:"required,max=50" example:"Food"`
	Amount   float64 `json:"amount" validate:"gt=0" example:"1200"`
	Month    string  `json:"month" validate:"required,yearmonth" example:"2025-06"`
}

type UpdateBudget struct {
	Category *string  `json:"category,omitempty" validate:"omitnil,min=1,max=50"`
	Amount   *float64 `json:"amount,omitempty" validate:"omitnil,gt=0"`
	Month    *string  `json:"month,omitempty" validate:"omitnil,yearmonth"`
}

type CreateCategory struct {
	Name string `json:"name" validate:"min=2,max=50,leadingupper" example:"Food"`
}

type CreateUser struct {
	Name            string `json:"name" validate:"omitempty,max=50" example:"Jane Doe"`
	Email           string `json:"email" validate:"required,email" example:"jane@example.com"`
	Password        string `json:"password" validate:"required" example:"secret123"`
	ConfirmPassword string `json:"confirmPassword,omitempty" example:"secret123"`
}

type SignIn struct {
	Email      string `json:"email" form:"email" validate:"required,email" example:"jane@example.com"`
	Password   string `json:"password" form:"password" validate:"required" example:"secret123"`
	RedirectTo string `json:"redirectTo,omitempty" form:"redirectTo" example:"/"`
}
