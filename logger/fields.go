package logger

// Field names
const (
	FieldComponent  = "component"
	FieldRequestID  = "request_id"
	FieldClientIP   = "client_ip"
	FieldMethod     = "method"
	FieldPath       = "path"
	FieldQuery      = "query"
	FieldStatusCode = "status_code"
	FieldDuration   = "duration_ms"
	FieldUserAgent  = "user_agent"
	FieldUserID     = "user_id"
	FieldProvider   = "provider"
	FieldError      = "error"
	FieldErrorType  = "error_type"
	FieldOperation  = "operation"
)

// Components
const (
	ComponentApp          = "app"
	ComponentHTTP         = "http"
	ComponentAuth         = "auth"
	ComponentStorage      = "storage"
	ComponentTransactions = "transactions"
	ComponentBudgets      = "budgets"
	ComponentCategories   = "categories"
)

// Operations
const (
	OpCreate   = "create"
	OpList     = "list"
	OpGet      = "get"
	OpUpdate   = "update"
	OpDelete   = "delete"
	OpSignIn   = "sign_in"
	OpSignUp   = "sign_up"
	OpSignOut  = "sign_out"
	OpCallback = "oauth_callback"
	OpSeed     = "seed"
	OpStartup  = "startup"
	OpShutdown = "shutdown"
)
