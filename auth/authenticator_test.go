package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/nemopss/spendwise/db"
	"github.com/nemopss/spendwise/models"
	"github.com/nemopss/spendwise/validate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func setupAuthenticator(t *testing.T, opts ...Option) (*Authenticator, *db.Storage) {
	t.Helper()

	store, err := db.New(db.SQLite, ":memory:")
	require.NoError(t, err)
	require.NoError(t, store.Connect(context.Background()))
	t.Cleanup(func() { store.Close() })

	opts = append([]Option{WithBcryptCost(bcrypt.MinCost)}, opts...)
	return NewAuthenticator(store, validate.New(), opts...), store
}

func signUp(t *testing.T, a *Authenticator, email, password string) *models.User {
	t.Helper()

	u, err := a.SignUp(context.Background(), models.CreateUser{Email: email, Password: password})
	require.NoError(t, err)
	return u
}

func TestSignUp(t *testing.T) {
	a, store := setupAuthenticator(t)
	ctx := context.Background()

	u := signUp(t, a, " Jane@Example.com ", "p")
	assert.NotEmpty(t, u.ID)
	assert.Equal(t, "jane", u.Name)
	assert.Equal(t, "jane@example.com", u.Email)
	assert.Empty(t, u.PasswordHash, "returned user must not carry the hash")

	stored, err := store.GetUserByEmail(ctx, "jane@example.com")
	require.NoError(t, err)
	assert.True(t, stored.HasPassword())
	assert.NotEqual(t, "p", stored.PasswordHash)

	_, err = a.SignUp(ctx, models.CreateUser{Email: "jane@example.com", Password: "q"})
	assert.ErrorIs(t, err, ErrDuplicateEmail)

	_, err = a.SignUp(ctx, models.CreateUser{Email: "JANE@example.COM", Password: "q"})
	assert.ErrorIs(t, err, ErrDuplicateEmail)

	named, err := a.SignUp(ctx, models.CreateUser{Name: "  Joe ", Email: "Joe@Example.com", Password: "p"})
	require.NoError(t, err)
	assert.Equal(t, "Joe", named.Name)
}

func TestSignUpRejectsInvalidInput(t *testing.T) {
	a, _ := setupAuthenticator(t)
	ctx := context.Background()

	cases := []models.CreateUser{
		{Email: "", Password: "p"},
		{Email: "not-an-email", Password: "p"},
		{Email: "a@example.com", Password: ""},
		{Email: "a@example.com", Password: "p", ConfirmPassword: "q"},
	}
	for _, in := range cases {
		_, err := a.SignUp(ctx, in)
		assert.ErrorIs(t, err, ErrInvalidInput, "input %+v", in)
	}
}

func TestAuthenticate(t *testing.T) {
	a, store := setupAuthenticator(t)
	ctx := context.Background()

	signUp(t, a, "a@example.com", "p")

	u, err := a.Authenticate(ctx, models.SignIn{Email: "a@example.com", Password: "p"})
	require.NoError(t, err)
	assert.Equal(t, "a@example.com", u.Email)
	assert.Empty(t, u.PasswordHash)

	u, err = a.Authenticate(ctx, models.SignIn{Email: " A@Example.com", Password: "p"})
	require.NoError(t, err)
	assert.Equal(t, "a@example.com", u.Email)

	_, err = a.Authenticate(ctx, models.SignIn{Email: "a@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidPassword)
	assert.Equal(t, InvalidPassword, KindOf(err))

	_, err = a.Authenticate(ctx, models.SignIn{Email: "nobody@example.com", Password: "p"})
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, err = a.Authenticate(ctx, models.SignIn{Email: "", Password: "p"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	oauthOnly := &models.User{Name: "O", Email: "o@example.com"}
	require.NoError(t, store.CreateUser(ctx, oauthOnly))
	_, err = a.Authenticate(ctx, models.SignIn{Email: "o@example.com", Password: "p"})
	assert.ErrorIs(t, err, ErrOAuthAccountExists)
}

func TestResolveOAuthCreatesUser(t *testing.T) {
	a, store := setupAuthenticator(t)
	ctx := context.Background()

	res, err := a.ResolveOAuth(ctx, ProviderGitHub, Profile{Subject: "42", Email: "new@example.com", Name: "New"})
	require.NoError(t, err)
	assert.True(t, res.Created)
	assert.False(t, res.Linked)
	assert.Equal(t, "New", res.User.Name)
	assert.Equal(t, res.User.ID, res.Account.UserID)

	stored, err := store.GetUserByID(ctx, res.User.ID)
	require.NoError(t, err)
	assert.False(t, stored.HasPassword())

	// The second login finds the link.
	again, err := a.ResolveOAuth(ctx, ProviderGitHub, Profile{Subject: "42", Email: "new@example.com"})
	require.NoError(t, err)
	assert.False(t, again.Created)
	assert.Equal(t, res.User.ID, again.User.ID)
}

func TestResolveOAuthNormalizesEmail(t *testing.T) {
	a, _ := setupAuthenticator(t)

	res, err := a.ResolveOAuth(context.Background(), ProviderGoogle, Profile{Subject: "g-9", Email: "Mixed.Case@Example.com"})
	require.NoError(t, err)
	assert.Equal(t, "mixed.case", res.User.Name)
	assert.Equal(t, "mixed.case@example.com", res.User.Email)
}

// racingStore misses the first email lookup, as if another login created
// the user between the lookup and the insert.
type racingStore struct {
	*db.Storage
	missed bool
}

func (s *racingStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	if !s.missed {
		s.missed = true
		return nil, db.ErrNotFound
	}
	return s.Storage.GetUserByEmail(ctx, email)
}

func TestResolveOAuthConcurrentFirstLogin(t *testing.T) {
	setup := func(t *testing.T, opts ...Option) (*Authenticator, *models.User) {
		_, store := setupAuthenticator(t)
		winner := &models.User{Name: "Winner", Email: "race@example.com"}
		require.NoError(t, store.CreateUser(context.Background(), winner))

		opts = append([]Option{WithBcryptCost(bcrypt.MinCost)}, opts...)
		return NewAuthenticator(&racingStore{Storage: store}, validate.New(), opts...), winner
	}

	t.Run("linking enabled", func(t *testing.T) {
		a, winner := setup(t, WithEmailLinking(ProviderGoogle, true))

		res, err := a.ResolveOAuth(context.Background(), ProviderGoogle, Profile{Subject: "g-r", Email: "race@example.com"})
		require.NoError(t, err)
		assert.True(t, res.Linked)
		assert.False(t, res.Created)
		assert.Equal(t, winner.ID, res.User.ID)
	})

	t.Run("linking disabled", func(t *testing.T) {
		a, _ := setup(t)

		_, err := a.ResolveOAuth(context.Background(), ProviderGoogle, Profile{Subject: "g-r", Email: "race@example.com"})
		assert.ErrorIs(t, err, ErrOAuthAccountNotLinked)
		assert.Equal(t, OAuthAccountNotLinked, KindOf(err))
	})
}

func TestResolveOAuthEmailLinking(t *testing.T) {
	t.Run("enabled", func(t *testing.T) {
		a, _ := setupAuthenticator(t, WithEmailLinking(ProviderGoogle, true))
		existing := signUp(t, a, "a@example.com", "p")

		res, err := a.ResolveOAuth(context.Background(), ProviderGoogle, Profile{Subject: "g-1", Email: "a@example.com"})
		require.NoError(t, err)
		assert.True(t, res.Linked)
		assert.Equal(t, existing.ID, res.User.ID)
	})

	t.Run("disabled", func(t *testing.T) {
		a, _ := setupAuthenticator(t)
		signUp(t, a, "a@example.com", "p")

		_, err := a.ResolveOAuth(context.Background(), ProviderGoogle, Profile{Subject: "g-1", Email: "a@example.com"})
		assert.ErrorIs(t, err, ErrOAuthAccountNotLinked)
	})
}

func TestResolveOAuthEmailOwnedByAnotherUser(t *testing.T) {
	a, _ := setupAuthenticator(t)
	ctx := context.Background()

	first, err := a.ResolveOAuth(ctx, ProviderGitHub, Profile{Subject: "7", Email: "one@example.com"})
	require.NoError(t, err)
	signUp(t, a, "two@example.com", "p")

	// The provider now reports an email that belongs to someone else.
	_, err = a.ResolveOAuth(ctx, ProviderGitHub, Profile{Subject: "7", Email: "two@example.com"})
	assert.ErrorIs(t, err, ErrOAuthAccountNotLinked)

	res, err := a.ResolveOAuth(ctx, ProviderGitHub, Profile{Subject: "7"})
	require.NoError(t, err)
	assert.Equal(t, first.User.ID, res.User.ID)
}

func TestResolveOAuthIncompleteProfile(t *testing.T) {
	a, _ := setupAuthenticator(t)
	ctx := context.Background()

	_, err := a.ResolveOAuth(ctx, ProviderGoogle, Profile{Email: "a@example.com"})
	assert.ErrorIs(t, err, ErrProvider)

	_, err = a.ResolveOAuth(ctx, ProviderGoogle, Profile{Subject: "g-2"})
	assert.ErrorIs(t, err, ErrProvider)
}

func TestUser(t *testing.T) {
	a, _ := setupAuthenticator(t)
	created := signUp(t, a, "a@example.com", "p")

	u, err := a.User(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, u.ID)
	assert.Empty(t, u.PasswordHash)

	_, err = a.User(context.Background(), "missing")
	assert.True(t, errors.Is(err, db.ErrNotFound))
}
