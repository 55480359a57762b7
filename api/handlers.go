package api

import (
	"context"
	"errors"
	"math/rand/v2"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nemopss/spendwise/auth"
	"github.com/nemopss/spendwise/config"
	"github.com/nemopss/spendwise/db"
	"github.com/nemopss/spendwise/logger"
	"github.com/nemopss/spendwise/models"
	"github.com/nemopss/spendwise/service"
	"github.com/nemopss/spendwise/session"
	"github.com/nemopss/spendwise/validate"
)

const sessionKey = "session"

// Pinger reports whether the database is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	auth      *auth.Authenticator
	sessions  *session.Codec
	providers *auth.Registry
	gate      *auth.Gate

	transactions *service.TransactionService
	budgets      *service.BudgetService
	categories   *service.CategoryService

	health       Pinger
	cookieSecure bool
	seedEnabled  bool
	log          *logger.Logger
	now          func() time.Time
}

func NewHandler(s *db.Storage, cfg *config.Config, l *logger.Logger) *Handler {
	v := validate.New()

	var providers []auth.Provider
	callback := func(id string) string { return cfg.OAuthRedirectBase + "/api/auth/callback/" + id }
	if cfg.Google.Enabled() {
		providers = append(providers, auth.NewGoogle(cfg.Google.ClientID, cfg.Google.ClientSecret, callback(auth.ProviderGoogle)))
	}
	if cfg.GitHub.Enabled() {
		providers = append(providers, auth.NewGitHub(cfg.GitHub.ClientID, cfg.GitHub.ClientSecret, callback(auth.ProviderGitHub)))
	}

	authenticator := auth.NewAuthenticator(s, v,
		auth.WithBcryptCost(cfg.BcryptCost),
		auth.WithEmailLinking(auth.ProviderGoogle, cfg.AllowEmailLinking),
		auth.WithEmailLinking(auth.ProviderGitHub, cfg.AllowEmailLinking),
		auth.WithLogger(l),
	)

	return &Handler{
		auth:         authenticator,
		sessions:     session.NewCodec(cfg.JWTSecret, cfg.SessionTTL),
		providers:    auth.NewRegistry(providers...),
		gate:         auth.NewGate(),
		transactions: service.NewTransactionService(s, v, l),
		budgets:      service.NewBudgetService(s, v, l),
		categories:   service.NewCategoryService(s, v, l),
		health:       s,
		cookieSecure: cfg.CookieSecure,
		seedEnabled:  cfg.SeedEnabled,
		log:          l.WithComponent(logger.ComponentAuth),
		now:          time.Now,
	}
}

// Register mounts every route on r behind the session middleware.
func (h *Handler) Register(r *gin.Engine) {
	r.Use(h.SessionMiddleware())

	r.GET("/healthz", h.Health)

	authGroup := r.Group("/api/auth")
	authGroup.POST("/signup", h.SignUp)
	authGroup.POST("/signin", h.SignIn)
	authGroup.POST("/signout", h.SignOut)
	authGroup.GET("/session", h.Session)
	authGroup.GET("/providers", h.Providers)
	authGroup.GET("/signin/:provider", h.ProviderSignIn)
	authGroup.GET("/callback/:provider", h.ProviderCallback)

	api := r.Group("/api")
	api.GET("/transactions", h.GetTransactions)
	api.POST("/transactions", h.CreateTransaction)
	api.POST("/transactions/seed", h.SeedTransactions)
	api.GET("/transactions/:id", h.GetTransaction)
	api.PATCH("/transactions/:id", h.UpdateTransaction)
	api.PUT("/transactions/:id", h.UpdateTransaction)
	api.DELETE("/transactions/:id", h.DeleteTransaction)

	api.GET("/budgets", h.GetBudgets)
	api.POST("/budgets", h.CreateBudget)
	api.PATCH("/budgets/:id", h.UpdateBudget)
	api.DELETE("/budgets/:id", h.DeleteBudget)

	api.GET("/categories", h.GetCategories)
	api.POST("/categories", h.CreateCategory)
	api.POST("/categories/add", h.CreateCategory)

	api.GET("/stats/categories", h.CategoryStats)
	api.GET("/stats/monthly", h.MonthlyStats)
	api.GET("/stats/budgets", h.BudgetStats)
}

// SessionMiddleware resolves the request's session, if any, and applies the
// route policy. API callers get JSON errors; page requests are redirected.
func (h *Handler) SessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := h.loadSession(c)
		if sess != nil {
			c.Set(sessionKey, sess)
		}

		p := c.Request.URL.Path
		if h.gate.IsAuthorized(p, sess != nil) {
			c.Next()
			return
		}

		isAPI := strings.HasPrefix(p, "/api/")
		switch {
		case sess == nil && isAPI:
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse{Error: "Unauthorized"})
		case sess == nil:
			c.Redirect(http.StatusFound, "/signin")
			c.Abort()
		case isAPI:
			c.AbortWithStatusJSON(http.StatusForbidden, models.ErrorResponse{Error: "Already signed in"})
		default:
			c.Redirect(http.StatusFound, "/")
			c.Abort()
		}
	}
}

func (h *Handler) loadSession(c *gin.Context) *session.Session {
	token := session.TokenFromRequest(c.Request)
	if token == "" {
		return nil
	}
	claims, err := h.sessions.Parse(token)
	if err != nil {
		return nil
	}
	// A token for a deleted user is no session.
	user, err := h.auth.User(c.Request.Context(), claims.ID)
	if err != nil {
		if !errors.Is(err, db.ErrNotFound) {
			logger.FromContext(c).ErrorContext(c.Request.Context(), "load session user", logger.FieldError, err)
		}
		return nil
	}
	return session.Materialize(claims, user)
}

func currentSession(c *gin.Context) *session.Session {
	if v, ok := c.Get(sessionKey); ok {
		if s, ok := v.(*session.Session); ok {
			return s
		}
	}
	return nil
}

func currentIdentity(c *gin.Context) *models.Identity {
	if s := currentSession(c); s != nil {
		id := s.User
		return &id
	}
	return nil
}

// respondError maps service errors onto status codes. Unexpected errors are
// logged and answered with a generic body.
func respondError(c *gin.Context, err error) {
	var ve *service.ValidationError
	switch {
	case errors.As(err, &ve):
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "Invalid input", Fields: ve.Fields})
	case errors.Is(err, service.ErrUnauthenticated):
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "Unauthorized"})
	case errors.Is(err, service.ErrNotFoundOrForbidden):
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "Not found"})
	case errors.Is(err, service.ErrDuplicateCategory):
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "Category already exists"})
	default:
		logger.FromContext(c).ErrorContext(c.Request.Context(), "request failed",
			logger.FieldPath, c.Request.URL.Path, logger.FieldError, err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Internal server error"})
	}
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body: " + err.Error()})
}

// Health godoc
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /healthz [get]
func (h *Handler) Health(c *gin.Context) {
	if err := h.health.Ping(c.Request.Context()); err != nil {
		logger.FromContext(c).WarnContext(c.Request.Context(), "health check failed", logger.FieldError, err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func newRand() *rand.Rand {
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}
