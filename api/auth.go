package api

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nemopss/spendwise/auth"
	"github.com/nemopss/spendwise/logger"
	"github.com/nemopss/spendwise/models"
	"github.com/nemopss/spendwise/session"
)

const (
	stateCookie = "oauth_state"
	stateTTL    = 10 * time.Minute
)

// SignUp godoc
// @Summary Create a password account
// @Tags auth
// @Accept json
// @Produce json
// @Param user body models.CreateUser true "New account"
// @Success 201 {object} models.SignUpResponse
// @Failure 400 {object} models.SignUpResponse
// @Failure 403 {object} models.ErrorResponse
// @Router /api/auth/signup [post]
func (h *Handler) SignUp(c *gin.Context) {
	var in models.CreateUser
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return
	}

	user, err := h.auth.SignUp(c.Request.Context(), in)
	switch {
	case err == nil:
	case errors.Is(err, auth.ErrDuplicateEmail):
		c.JSON(http.StatusBadRequest, models.SignUpResponse{Message: "User already exists"})
		return
	case errors.Is(err, auth.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, models.SignUpResponse{Message: "Invalid input"})
		return
	default:
		h.log.ErrorContext(c.Request.Context(), "sign up failed", logger.FieldOperation, logger.OpSignUp, logger.FieldError, err)
		c.JSON(http.StatusInternalServerError, models.SignUpResponse{Message: "Something went wrong"})
		return
	}

	c.JSON(http.StatusCreated, models.SignUpResponse{Success: true, Message: "Account created successfully!", User: user})
}

// SignIn godoc
// @Summary Sign in with email and password
// @Description Returns a token and sets the session cookie. When redirectTo
// @Description is given the response is a 303 to that path instead.
// @Tags auth
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param credentials body models.SignIn true "Credentials"
// @Success 200 {object} models.SignInResponse
// @Success 303
// @Failure 400 {object} models.SignInResponse
// @Failure 401 {object} models.SignInResponse
// @Router /api/auth/signin [post]
func (h *Handler) SignIn(c *gin.Context) {
	var creds models.SignIn
	if err := c.ShouldBind(&creds); err != nil {
		badRequest(c, err)
		return
	}

	token, err := h.signIn(c, creds)
	if to, ok := auth.IsRedirect(err); ok {
		c.Redirect(http.StatusSeeOther, to)
		return
	}
	if err != nil {
		resp := auth.SignInResponseFor(err)
		h.log.WarnContext(c.Request.Context(), "sign in failed",
			logger.FieldOperation, logger.OpSignIn,
			logger.FieldErrorType, auth.KindOf(err).String(),
			logger.FieldError, err,
		)
		status := http.StatusUnauthorized
		if errors.Is(err, auth.ErrInvalidInput) {
			status = http.StatusBadRequest
		} else if auth.KindOf(err) == auth.KindUnknown {
			status = http.StatusInternalServerError
		}
		c.JSON(status, resp)
		return
	}

	c.JSON(http.StatusOK, models.SignInResponse{Success: true, Token: token})
}

// signIn authenticates creds and sets the session cookie. A sign-in that
// asked for a redirect finishes with a *auth.RedirectError.
func (h *Handler) signIn(c *gin.Context, creds models.SignIn) (string, error) {
	user, err := h.auth.Authenticate(c.Request.Context(), creds)
	if err != nil {
		return "", err
	}
	token, err := h.startSession(c, user, nil)
	if err != nil {
		return "", err
	}
	h.log.InfoContext(c.Request.Context(), "user signed in", logger.FieldUserID, user.ID, logger.FieldOperation, logger.OpSignIn)

	if creds.RedirectTo != "" {
		return token, &auth.RedirectError{To: localPath(creds.RedirectTo)}
	}
	return token, nil
}

func (h *Handler) startSession(c *gin.Context, user *models.User, link *models.Account) (string, error) {
	subject, err := session.Subject(user, link)
	if err != nil {
		return "", err
	}
	token, _, err := h.sessions.Issue(subject)
	if err != nil {
		return "", err
	}
	h.setCookie(c, session.CookieName, token, h.sessions.TTL())
	return token, nil
}

// SignOut godoc
// @Summary Sign out
// @Description Clears the session cookie. Issued tokens stay valid until they expire.
// @Tags auth
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} models.MessageResponse
// @Failure 401 {object} models.ErrorResponse
// @Router /api/auth/signout [post]
func (h *Handler) SignOut(c *gin.Context) {
	h.setCookie(c, session.CookieName, "", -1)
	if id := currentIdentity(c); id != nil {
		h.log.InfoContext(c.Request.Context(), "user signed out", logger.FieldUserID, id.ID, logger.FieldOperation, logger.OpSignOut)
	}
	c.JSON(http.StatusOK, models.MessageResponse{Message: "Signed out"})
}

// Session godoc
// @Summary Current session
// @Description Returns the signed-in user and expiry, or an empty object.
// @Tags auth
// @Produce json
// @Success 200 {object} models.SessionResponse
// @Router /api/auth/session [get]
func (h *Handler) Session(c *gin.Context) {
	s := currentSession(c)
	if s == nil {
		c.JSON(http.StatusOK, models.SessionResponse{})
		return
	}
	user := s.User
	c.JSON(http.StatusOK, models.SessionResponse{User: &user, Expires: s.Expires.UTC().Format(time.RFC3339)})
}

// Providers godoc
// @Summary Configured sign-in providers
// @Tags auth
// @Produce json
// @Success 200 {object} map[string]models.ProviderResponse
// @Router /api/auth/providers [get]
func (h *Handler) Providers(c *gin.Context) {
	out := map[string]models.ProviderResponse{
		"credentials": {
			ID:          "credentials",
			Name:        "Credentials",
			Type:        "credentials",
			SignInURL:   "/api/auth/signin",
			CallbackURL: "/api/auth/callback/credentials",
		},
	}
	for _, p := range h.providers.All() {
		out[p.ID()] = models.ProviderResponse{
			ID:          p.ID(),
			Name:        p.Name(),
			Type:        "oauth",
			SignInURL:   "/api/auth/signin/" + p.ID(),
			CallbackURL: "/api/auth/callback/" + p.ID(),
		}
	}
	c.JSON(http.StatusOK, out)
}

// ProviderSignIn godoc
// @Summary Start an OAuth sign-in
// @Tags auth
// @Param provider path string true "Provider id" Enums(google, github)
// @Success 302
// @Failure 404 {object} models.ErrorResponse
// @Router /api/auth/signin/{provider} [get]
func (h *Handler) ProviderSignIn(c *gin.Context) {
	p, ok := h.providers.Get(c.Param("provider"))
	if !ok {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "Unknown provider"})
		return
	}

	state, err := newState()
	if err != nil {
		respondError(c, err)
		return
	}
	h.setCookie(c, stateCookie, state, stateTTL)
	c.Redirect(http.StatusFound, p.AuthCodeURL(state))
}

// ProviderCallback godoc
// @Summary Finish an OAuth sign-in
// @Description Sets the session cookie and redirects to /, or to
// @Description /signin?error=<kind> when the sign-in fails.
// @Tags auth
// @Param provider path string true "Provider id" Enums(google, github)
// @Param code query string true "Authorization code"
// @Param state query string true "State"
// @Success 302
// @Router /api/auth/callback/{provider} [get]
func (h *Handler) ProviderCallback(c *gin.Context) {
	ctx := c.Request.Context()
	providerID := c.Param("provider")

	fail := func(err error) {
		h.log.WarnContext(ctx, "provider sign in failed",
			logger.FieldOperation, logger.OpCallback,
			logger.FieldProvider, providerID,
			logger.FieldErrorType, auth.KindOf(err).String(),
			logger.FieldError, err,
		)
		c.Redirect(http.StatusFound, "/signin?error="+url.QueryEscape(auth.KindOf(err).String()))
	}

	p, ok := h.providers.Get(providerID)
	if !ok {
		fail(&auth.Error{Kind: auth.ProviderError, Err: errors.New("unknown provider")})
		return
	}

	expected, err := c.Cookie(stateCookie)
	h.setCookie(c, stateCookie, "", -1)
	got := c.Query("state")
	if err != nil || got == "" || subtle.ConstantTimeCompare([]byte(expected), []byte(got)) != 1 {
		fail(&auth.Error{Kind: auth.ProviderError, Err: errors.New("state mismatch")})
		return
	}
	if e := c.Query("error"); e != "" {
		fail(&auth.Error{Kind: auth.ProviderError, Err: errors.New(e)})
		return
	}

	profile, err := p.Exchange(ctx, c.Query("code"))
	if err != nil {
		fail(err)
		return
	}
	res, err := h.auth.ResolveOAuth(ctx, p.ID(), profile)
	if err != nil {
		fail(err)
		return
	}
	if _, err := h.startSession(c, res.User, res.Account); err != nil {
		fail(err)
		return
	}

	h.log.InfoContext(ctx, "user signed in",
		logger.FieldOperation, logger.OpCallback,
		logger.FieldProvider, p.ID(),
		logger.FieldUserID, res.User.ID,
		"created", res.Created,
		"linked", res.Linked,
	)
	c.Redirect(http.StatusFound, "/")
}

func (h *Handler) setCookie(c *gin.Context, name, value string, ttl time.Duration) {
	maxAge := -1
	if ttl > 0 {
		maxAge = int(ttl.Seconds())
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(name, value, maxAge, "/", "", h.cookieSecure, true)
}

// localPath keeps redirects on this site.
func localPath(to string) string {
	if !strings.HasPrefix(to, "/") || strings.HasPrefix(to, "//") || strings.HasPrefix(to, "/\\") {
		return "/"
	}
	return to
}

func newState() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
