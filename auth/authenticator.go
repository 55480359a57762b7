// Package auth signs users in with a password or an OAuth provider, signs
// them up, and decides which paths need a session.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/nemopss/spendwise/db"
	"github.com/nemopss/spendwise/logger"
	"github.com/nemopss/spendwise/models"
	"github.com/nemopss/spendwise/validate"
	"golang.org/x/crypto/bcrypt"
)

// Store is the credential store the authenticator needs.
type Store interface {
	CreateUser(ctx context.Context, u *models.User) error
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	CreateAccount(ctx context.Context, a *models.Account) error
	GetAccount(ctx context.Context, provider, providerAccountID string) (*models.Account, error)
}

type Authenticator struct {
	store      Store
	validator  *validate.Validator
	bcryptCost int
	// linking lists providers whose first login may attach to an existing
	// account with the same email.
	linking map[string]bool
	log     *logger.Logger
}

type Option func(*Authenticator)

// WithBcryptCost sets the cost for new password hashes.
func WithBcryptCost(cost int) Option {
	return func(a *Authenticator) { a.bcryptCost = cost }
}

// WithEmailLinking enables or disables email linking for provider.
func WithEmailLinking(provider string, allowed bool) Option {
	return func(a *Authenticator) { a.linking[provider] = allowed }
}

func WithLogger(l *logger.Logger) Option {
	return func(a *Authenticator) { a.log = l.WithComponent(logger.ComponentAuth) }
}

func NewAuthenticator(store Store, v *validate.Validator, opts ...Option) *Authenticator {
	a := &Authenticator{
		store:      store,
		validator:  v,
		bcryptCost: bcrypt.DefaultCost,
		linking:    map[string]bool{},
		log:        logger.Discard(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Authenticate checks email/password credentials and returns the user
// without its password hash.
func (a *Authenticator) Authenticate(ctx context.Context, creds models.SignIn) (*models.User, error) {
	creds.Email = normalizeEmail(creds.Email)
	if err := a.validator.Struct(creds); err != nil {
		return nil, newError(InvalidInput, err)
	}

	user, err := a.store.GetUserByEmail(ctx, creds.Email)
	if errors.Is(err, db.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}

	if !user.HasPassword() {
		return nil, ErrOAuthAccountExists
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(creds.Password)); err != nil {
		return nil, newError(InvalidPassword, err)
	}

	return user.Sanitized(), nil
}

// SignUp creates a password account.
func (a *Authenticator) SignUp(ctx context.Context, in models.CreateUser) (*models.User, error) {
	in.Email = normalizeEmail(in.Email)
	if err := a.validator.Struct(in); err != nil {
		return nil, newError(InvalidInput, err)
	}
	if in.ConfirmPassword != "" && in.ConfirmPassword != in.Password {
		return nil, newError(InvalidInput, errors.New("passwords do not match"))
	}

	_, err := a.store.GetUserByEmail(ctx, in.Email)
	switch {
	case err == nil:
		return nil, ErrDuplicateEmail
	case !errors.Is(err, db.ErrNotFound):
		return nil, fmt.Errorf("find user: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), a.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		Name:         displayName(in.Name, in.Email),
		Email:        in.Email,
		PasswordHash: string(hash),
	}
	if err := a.store.CreateUser(ctx, user); err != nil {
		if errors.Is(err, db.ErrDuplicate) {
			return nil, newError(DuplicateEmail, err)
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	a.log.InfoContext(ctx, "user signed up", logger.FieldUserID, user.ID)
	return user.Sanitized(), nil
}

// User returns the stored user for id without its password hash.
func (a *Authenticator) User(ctx context.Context, id string) (*models.User, error) {
	u, err := a.store.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return u.Sanitized(), nil
}

// Result is the outcome of a provider login.
type Result struct {
	User    *models.User
	Account *models.Account
	// Created is set when the login created the local user.
	Created bool
	// Linked is set when the login attached the provider to an existing user.
	Linked bool
}

// ResolveOAuth maps a provider profile onto a local user:
//   - a known provider account signs in its linked user, unless the profile
//     email belongs to a different local user;
//   - an unknown provider account whose email matches a user is linked to it
//     when email linking is enabled for the provider;
//   - otherwise a user without a password is created and linked.
func (a *Authenticator) ResolveOAuth(ctx context.Context, provider string, p Profile) (*Result, error) {
	p.Email = normalizeEmail(p.Email)
	if p.Subject == "" {
		return nil, newError(ProviderError, errors.New("profile has no account id"))
	}

	account, err := a.store.GetAccount(ctx, provider, p.Subject)
	switch {
	case err == nil:
		return a.signInLinked(ctx, account, p)
	case !errors.Is(err, db.ErrNotFound):
		return nil, fmt.Errorf("find account: %w", err)
	}

	if p.Email == "" {
		return nil, newError(ProviderError, errors.New("profile has no email"))
	}

	existing, err := a.store.GetUserByEmail(ctx, p.Email)
	switch {
	case err == nil:
		return a.linkByEmail(ctx, existing, provider, p)
	case !errors.Is(err, db.ErrNotFound):
		return nil, fmt.Errorf("find user: %w", err)
	}

	user := &models.User{Name: displayName(p.Name, p.Email), Email: p.Email}
	if err := a.store.CreateUser(ctx, user); err != nil {
		if !errors.Is(err, db.ErrDuplicate) {
			return nil, fmt.Errorf("create user: %w", err)
		}
		// A concurrent login created the user first.
		existing, err := a.store.GetUserByEmail(ctx, p.Email)
		if err != nil {
			return nil, fmt.Errorf("find user: %w", err)
		}
		return a.linkByEmail(ctx, existing, provider, p)
	}
	link, err := a.link(ctx, user.ID, provider, p.Subject)
	if err != nil {
		return nil, err
	}
	a.log.InfoContext(ctx, "user created from provider", logger.FieldUserID, user.ID, logger.FieldProvider, provider)
	return &Result{User: user.Sanitized(), Account: link, Created: true}, nil
}

func (a *Authenticator) linkByEmail(ctx context.Context, existing *models.User, provider string, p Profile) (*Result, error) {
	if !a.linking[provider] {
		return nil, ErrOAuthAccountNotLinked
	}
	link, err := a.link(ctx, existing.ID, provider, p.Subject)
	if err != nil {
		return nil, err
	}
	a.log.InfoContext(ctx, "provider linked by email", logger.FieldUserID, existing.ID, logger.FieldProvider, provider)
	return &Result{User: existing.Sanitized(), Account: link, Linked: true}, nil
}

func (a *Authenticator) signInLinked(ctx context.Context, account *models.Account, p Profile) (*Result, error) {
	user, err := a.store.GetUserByID(ctx, account.UserID)
	if err != nil {
		return nil, fmt.Errorf("find linked user: %w", err)
	}

	if p.Email != "" {
		other, err := a.store.GetUserByEmail(ctx, p.Email)
		switch {
		case err == nil && other.ID != user.ID:
			return nil, ErrOAuthAccountNotLinked
		case err != nil && !errors.Is(err, db.ErrNotFound):
			return nil, fmt.Errorf("find user: %w", err)
		}
	}
	return &Result{User: user.Sanitized(), Account: account}, nil
}

func (a *Authenticator) link(ctx context.Context, userID, provider, subject string) (*models.Account, error) {
	link := &models.Account{UserID: userID, Provider: provider, ProviderAccountID: subject}
	if err := a.store.CreateAccount(ctx, link); err != nil {
		return nil, fmt.Errorf("link account: %w", err)
	}
	return link, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// displayName falls back to the local part of email.
func displayName(name, email string) string {
	if n := strings.TrimSpace(name); n != "" {
		return n
	}
	local, _, _ := strings.Cut(email, "@")
	return local
}
