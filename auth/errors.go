package auth

import (
	"errors"
	"fmt"
)

// Kind is the closed set of authentication failures.
type Kind int

const (
	KindUnknown Kind = iota
	InvalidInput
	UserNotFound
	OAuthAccountExists
	InvalidPassword
	OAuthAccountNotLinked
	DuplicateEmail
	ProviderError
)

var kindNames = map[Kind]string{
	KindUnknown:           "UnknownError",
	InvalidInput:          "InvalidInput",
	UserNotFound:          "UserNotFound",
	OAuthAccountExists:    "OAuthAccountExists",
	InvalidPassword:       "InvalidPassword",
	OAuthAccountNotLinked: "OAuthAccountNotLinked",
	DuplicateEmail:        "DuplicateEmail",
	ProviderError:         "ProviderError",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return kindNames[KindUnknown]
}

// Error is the only error type the authenticator produces for expected
// failures. Err holds the underlying cause, if any.
type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	}
	return e.Kind.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches any *Error of the same kind, so errors.Is(err, ErrUserNotFound)
// works whatever the cause.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

var (
	ErrInvalidInput          = &Error{Kind: InvalidInput}
	ErrUserNotFound          = &Error{Kind: UserNotFound}
	ErrOAuthAccountExists    = &Error{Kind: OAuthAccountExists}
	ErrInvalidPassword       = &Error{Kind: InvalidPassword}
	ErrOAuthAccountNotLinked = &Error{Kind: OAuthAccountNotLinked}
	ErrDuplicateEmail        = &Error{Kind: DuplicateEmail}
	ErrProvider              = &Error{Kind: ProviderError}
)

func newError(kind Kind, err error) *Error {
	return &Error{Kind: kind, Err: err}
}

// KindOf returns the kind of the first *Error in err's chain.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// RedirectError reports a sign-in that finished by redirecting the client.
// It is not a failure: boundaries must issue the redirect.
type RedirectError struct {
	To string
}

func (e *RedirectError) Error() string {
	return "redirect to " + e.To
}

// IsRedirect returns the redirect target when err carries one.
func IsRedirect(err error) (string, bool) {
	var r *RedirectError
	if errors.As(err, &r) {
		return r.To, true
	}
	return "", false
}
