package oauth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/presenta/backend/domain"
)

const userInfoURL = "https://www.googleapis.com/oauth2/v3/userinfo"

// ErrProviderUnavailable is returned when the code exchange fails after the
// retry budget is exhausted. The caller redirects the browser to the frontend
// error page, never surfacing a 5xx.
var ErrProviderUnavailable = domain.NewError(domain.ErrCodeUnauthorized, "No se pudo verificar la identidad con Google")

// Profile is the normalized identity returned by the provider after a
// successful code exchange.
type Profile struct {
	GoogleID string
	Email    string
	Name     string
}

// GoogleProvider drives the redirect-based Google login handshake.
type GoogleProvider struct {
	conf            *oauth2.Config
	userInfoURL     string
	exchangeTimeout time.Duration
}

func NewGoogleProvider(clientID, clientSecret, callbackURL string) *GoogleProvider {
	return &GoogleProvider{
		conf: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			Endpoint:     google.Endpoint,
			RedirectURL:  callbackURL,
			Scopes: []string{
				"https://www.googleapis.com/auth/userinfo.profile",
				"https://www.googleapis.com/auth/userinfo.email",
			},
		},
		userInfoURL:     userInfoURL,
		exchangeTimeout: 10 * time.Second,
	}
}

// AuthURL builds the authorization-request URL the client must navigate to.
// Offline access plus a consent prompt, matching the scopes granted to the
// frontend.
func (p *GoogleProvider) AuthURL(state string) string {
	return p.conf.AuthCodeURL(state,
		oauth2.AccessTypeOffline,
		oauth2.SetAuthURLParam("prompt", "consent"),
	)
}

// Exchange redeems the authorization code and fetches the verified profile.
// Each provider call runs under a bounded timeout with at most one retry;
// exhausting the budget fails closed.
func (p *GoogleProvider) Exchange(ctx context.Context, code string) (*Profile, error) {
	tok, err := p.exchangeCode(ctx, code)
	if err != nil {
		tok, err = p.exchangeCode(ctx, code)
	}
	if err != nil {
		return nil, domain.WrapError(domain.ErrCodeUnauthorized, ErrProviderUnavailable.Message, err)
	}
	return p.fetchProfile(ctx, tok)
}

func (p *GoogleProvider) exchangeCode(ctx context.Context, code string) (*oauth2.Token, error) {
	callCtx, cancel := context.WithTimeout(ctx, p.exchangeTimeout)
	defer cancel()
	return p.conf.Exchange(callCtx, code)
}

func (p *GoogleProvider) fetchProfile(ctx context.Context, tok *oauth2.Token) (*Profile, error) {
	callCtx, cancel := context.WithTimeout(ctx, p.exchangeTimeout)
	defer cancel()

	resp, err := p.conf.Client(callCtx, tok).Get(p.userInfoURL)
	if err != nil {
		return nil, domain.WrapError(domain.ErrCodeUnauthorized, ErrProviderUnavailable.Message, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, domain.WrapError(domain.ErrCodeUnauthorized, ErrProviderUnavailable.Message,
			fmt.Errorf("userinfo returned status %d", resp.StatusCode))
	}

	var info struct {
		Sub   string `json:"sub"`
		Email string `json:"email"`
		Name  string `json:"name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, domain.WrapError(domain.ErrCodeUnauthorized, ErrProviderUnavailable.Message, err)
	}
	if info.Sub == "" || info.Email == "" {
		return nil, ErrProviderUnavailable
	}

	return &Profile{GoogleID: info.Sub, Email: info.Email, Name: info.Name}, nil
}
