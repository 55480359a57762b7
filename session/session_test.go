package session

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/nemopss/spendwise/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndParse(t *testing.T) {
	codec := NewCodec("secret", time.Hour)

	token, expires, err := codec.Issue("user-1")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expires, 5*time.Second)

	claims, err := codec.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.ID)
}

func TestParseRejectsWrongSecret(t *testing.T) {
	token, _, err := NewCodec("secret", time.Hour).Issue("user-1")
	require.NoError(t, err)

	_, err = NewCodec("other", time.Hour).Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseRejectsExpired(t *testing.T) {
	codec := NewCodec("secret", time.Minute)
	codec.now = func() time.Time { return time.Now().Add(-time.Hour) }

	token, _, err := codec.Issue("user-1")
	require.NoError(t, err)

	codec.now = time.Now
	_, err = codec.Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseRejectsOtherAlgorithms(t *testing.T) {
	claims := &Claims{ID: "user-1", RegisteredClaims: jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}}
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = NewCodec("secret", time.Hour).Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestIssueWithoutSubject(t *testing.T) {
	_, _, err := NewCodec("secret", time.Hour).Issue("")
	assert.ErrorIs(t, err, ErrNoSubject)
}

func TestSubject(t *testing.T) {
	id, err := Subject(&models.User{ID: "u1"}, &models.Account{UserID: "u2"})
	require.NoError(t, err)
	assert.Equal(t, "u1", id)

	id, err = Subject(&models.User{}, &models.Account{UserID: "u2"})
	require.NoError(t, err)
	assert.Equal(t, "u2", id)

	id, err = Subject(nil, &models.Account{UserID: "u3"})
	require.NoError(t, err)
	assert.Equal(t, "u3", id)

	_, err = Subject(&models.User{}, nil)
	assert.True(t, errors.Is(err, ErrNoSubject))
}

func TestMaterializeCopiesClaimID(t *testing.T) {
	expires := time.Now().Add(time.Hour).Truncate(time.Second)
	claims := &Claims{ID: "u1", RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(expires)}}

	s := Materialize(claims, &models.User{ID: "ignored", Name: "Jane", Email: "jane@example.com"})
	assert.Equal(t, "u1", s.User.ID)
	assert.Equal(t, "Jane", s.User.Name)
	assert.Equal(t, "jane@example.com", s.User.Email)
	assert.True(t, expires.Equal(s.Expires))
}

func TestTokenFromRequest(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/?token=query", nil)
	r.Header.Set("Authorization", "Bearer header")
	r.AddCookie(&http.Cookie{Name: CookieName, Value: "cookie"})
	assert.Equal(t, "header", TokenFromRequest(r))

	r.Header.Del("Authorization")
	assert.Equal(t, "query", TokenFromRequest(r))

	r = httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: CookieName, Value: "cookie"})
	assert.Equal(t, "cookie", TokenFromRequest(r))

	assert.Equal(t, "", TokenFromRequest(httptest.NewRequest(http.MethodGet, "/", nil)))
}
