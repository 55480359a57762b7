package models

type SignUpResponse struct {
	Success bool   `json:"success" example:"true"`
	Message string `json:"message" example:"Account created successfully!"`
	User    *User  `json:"user,omitempty"`
}

// SignInResponse carries the outcome of a credentials sign-in. ErrorType is
// one of the auth error kinds.
type SignInResponse struct {
	Success   bool   `json:"success" example:"true"`
	Message   string `json:"message,omitempty" example:"Invalid email or password."`
	ErrorType string `json:"errorType,omitempty" example:"InvalidPassword"`
	Token     string `json:"token,omitempty" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
}

type SessionResponse struct {
	User    *Identity `json:"user,omitempty"`
	Expires string    `json:"expires,omitempty" example:"2025-07-01T00:00:00Z"`
}

type ProviderResponse struct {
	ID          string `json:"id" example:"google"`
	Name        string `json:"name" example:"Google"`
	Type        string `json:"type" example:"oauth"`
	SignInURL   string `json:"signinUrl" example:"/api/auth/signin/google"`
	CallbackURL string `json:"callbackUrl" example:"/api/auth/callback/google"`
}

type GetTransactionsResponse struct {
	Transactions       []Transaction `json:"transactions"`
	RecentTransactions []Transaction `json:"recentTransactions"`
	Total              int           `json:"total" example:"100"`
}

type SeedResponse struct {
	Message string `json:"message" example:"Dummy transactions inserted!"`
	Count   int    `json:"count" example:"30"`
}

type MessageResponse struct {
	Message string `json:"message" example:"Transaction deleted"`
}

type ErrorResponse struct {
	Error  string   `json:"error" example:"error"`
	Fields []string `json:"fields,omitempty"`
}
