// Package session issues and reads signed session tokens, and turns a
// verified token into the session object handlers see.
package session

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/nemopss/spendwise/models"
)

// CookieName is the cookie carrying the session token for browser clients.
const CookieName = "session_token"

var (
	ErrNoSubject    = errors.New("session: identity has no id")
	ErrInvalidToken = errors.New("session: invalid token")
)

// Claims is the signed payload: the user id and the registered time claims.
type Claims struct {
	ID string `json:"id"`
	jwt.RegisteredClaims
}

// Session is the outward-facing view of an authenticated request.
type Session struct {
	User    models.Identity `json:"user"`
	Expires time.Time       `json:"expires"`
}

type Codec struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewCodec(secret string, ttl time.Duration) *Codec {
	if ttl <= 0 {
		ttl = 30 * 24 * time.Hour
	}
	return &Codec{secret: []byte(secret), ttl: ttl, now: time.Now}
}

func (c *Codec) TTL() time.Duration {
	return c.ttl
}

// Subject returns the id a session should be issued for. Credential sign-in
// yields a user row keyed by ID; a provider login may only carry the link's
// UserID. Both are checked before giving up.
func Subject(u *models.User, link *models.Account) (string, error) {
	if u != nil && u.ID != "" {
		return u.ID, nil
	}
	if link != nil && link.UserID != "" {
		return link.UserID, nil
	}
	return "", ErrNoSubject
}

// Issue signs a token for subject and returns it with its expiry.
func (c *Codec) Issue(subject string) (string, time.Time, error) {
	if subject == "" {
		return "", time.Time{}, ErrNoSubject
	}
	now := c.now()
	expires := now.Add(c.ttl)
	claims := &Claims{
		ID: subject,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expires),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return token, expires, nil
}

// Parse verifies the signature and expiry of token.
func (c *Codec) Parse(token string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(token, &Claims{}, c.key,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(c.now),
	)
	if err != nil {
		return nil, errors.Join(ErrInvalidToken, err)
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid || claims.ID == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func (c *Codec) key(*jwt.Token) (interface{}, error) {
	return c.secret, nil
}

// Materialize builds the session for verified claims and the stored user.
// The claim id is copied onto the session user so consumers always read
// Session.User.ID, whatever produced the login.
func Materialize(claims *Claims, u *models.User) *Session {
	s := &Session{User: models.Identity{ID: claims.ID}}
	if claims.ExpiresAt != nil {
		s.Expires = claims.ExpiresAt.Time
	}
	if u != nil {
		s.User.Name = u.Name
		s.User.Email = u.Email
	}
	return s
}

// TokenFromRequest looks for a token in the Authorization header, then the
// token query parameter, then the session cookie.
func TokenFromRequest(r *http.Request) string {
	if h := r.Header.Get("Authorization"); h != "" {
		parts := strings.SplitN(h, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return strings.TrimSpace(parts[1])
		}
	}
	if t := r.URL.Query().Get("token"); t != "" {
		return t
	}
	if cookie, err := r.Cookie(CookieName); err == nil {
		return cookie.Value
	}
	return ""
}
