package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/github"
	"golang.org/x/oauth2/google"
)

const (
	ProviderGoogle = "google"
	ProviderGitHub = "github"
)

// Profile is what a provider tells us about the signed-in account.
type Profile struct {
	Subject string
	Email   string
	Name    string
}

// Provider runs the authorization-code flow for one OAuth provider.
type Provider interface {
	ID() string
	Name() string
	AuthCodeURL(state string) string
	Exchange(ctx context.Context, code string) (Profile, error)
}

type oauthProvider struct {
	id      string
	name    string
	config  *oauth2.Config
	profile func(ctx context.Context, client *http.Client) (Profile, error)
}

func (p *oauthProvider) ID() string   { return p.id }
func (p *oauthProvider) Name() string { return p.name }

func (p *oauthProvider) AuthCodeURL(state string) string {
	return p.config.AuthCodeURL(state)
}

// Exchange trades the callback code for a token and fetches the profile.
func (p *oauthProvider) Exchange(ctx context.Context, code string) (Profile, error) {
	if code == "" {
		return Profile{}, newError(ProviderError, errors.New("missing authorization code"))
	}
	tok, err := p.config.Exchange(ctx, code)
	if err != nil {
		return Profile{}, newError(ProviderError, fmt.Errorf("%s token exchange: %w", p.id, err))
	}
	profile, err := p.profile(ctx, p.config.Client(ctx, tok))
	if err != nil {
		return Profile{}, newError(ProviderError, fmt.Errorf("%s profile: %w", p.id, err))
	}
	return profile, nil
}

// NewGoogle returns the Google provider. redirectURL must be registered with
// the OAuth client.
func NewGoogle(clientID, clientSecret, redirectURL string) Provider {
	return &oauthProvider{
		id:   ProviderGoogle,
		name: "Google",
		config: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Endpoint:     google.Endpoint,
			Scopes:       []string{"openid", "email", "profile"},
		},
		profile: googleProfile("https://openidconnect.googleapis.com/v1/userinfo"),
	}
}

// NewGitHub returns the GitHub provider.
func NewGitHub(clientID, clientSecret, redirectURL string) Provider {
	return &oauthProvider{
		id:   ProviderGitHub,
		name: "GitHub",
		config: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Endpoint:     github.Endpoint,
			Scopes:       []string{"read:user", "user:email"},
		},
		profile: githubProfile("https://api.github.com"),
	}
}

func googleProfile(userInfoURL string) func(context.Context, *http.Client) (Profile, error) {
	return func(ctx context.Context, client *http.Client) (Profile, error) {
		var info struct {
			Sub   string `json:"sub"`
			Email string `json:"email"`
			Name  string `json:"name"`
		}
		if err := getJSON(ctx, client, userInfoURL, &info); err != nil {
			return Profile{}, err
		}
		return Profile{Subject: info.Sub, Email: info.Email, Name: info.Name}, nil
	}
}

func githubProfile(apiBase string) func(context.Context, *http.Client) (Profile, error) {
	return func(ctx context.Context, client *http.Client) (Profile, error) {
		var user struct {
			ID    int64  `json:"id"`
			Login string `json:"login"`
			Name  string `json:"name"`
			Email string `json:"email"`
		}
		if err := getJSON(ctx, client, apiBase+"/user", &user); err != nil {
			return Profile{}, err
		}

		p := Profile{Subject: strconv.FormatInt(user.ID, 10), Email: user.Email, Name: user.Name}
		if p.Name == "" {
			p.Name = user.Login
		}
		if p.Email != "" {
			return p, nil
		}

		// Private emails are only listed on /user/emails.
		var emails []struct {
			Email    string `json:"email"`
			Primary  bool   `json:"primary"`
			Verified bool   `json:"verified"`
		}
		if err := getJSON(ctx, client, apiBase+"/user/emails", &emails); err != nil {
			return Profile{}, err
		}
		for _, e := range emails {
			if e.Primary && e.Verified {
				p.Email = e.Email
				break
			}
		}
		return p, nil
	}
}

func getJSON(ctx context.Context, client *http.Client, url string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("GET %s: unexpected status %d", url, resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(v)
}

// Registry holds the configured providers in display order.
type Registry struct {
	providers []Provider
}

func NewRegistry(providers ...Provider) *Registry {
	return &Registry{providers: providers}
}

// Get returns the provider with id, if configured.
func (r *Registry) Get(id string) (Provider, bool) {
	for _, p := range r.providers {
		if p.ID() == id {
			return p, true
		}
	}
	return nil, false
}

func (r *Registry) All() []Provider {
	return r.providers
}
