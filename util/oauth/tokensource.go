package oauth

import (
	"sync"

	"golang.org/x/oauth2"
)

// TokenRefresher refreshes the token when it expires
type TokenRefresher interface {
	RefreshToken(token *oauth2.Token) (*oauth2.Token, error)
}

// TokenSource is an oauth2.TokenSource that refreshes expired tokens through
// the given refresher. Access is serialized.
type TokenSource struct {
	mu        sync.Mutex
	token     *oauth2.Token
	refresher TokenRefresher
}

// RefreshTokenSource creates a token source with the given initial token
func RefreshTokenSource(token *oauth2.Token, refresher TokenRefresher) oauth2.TokenSource {
	return &TokenSource{
		token:     token,
		refresher: refresher,
	}
}

// Token implements oauth2.TokenSource
func (ts *TokenSource) Token() (*oauth2.Token, error) {
	ts.mu.Lock()
	defer ts.mu.Unlock()

	if ts.token.Valid() {
		return ts.token, nil
	}

	token, err := ts.refresher.RefreshToken(ts.token)
	if err != nil {
		return nil, err
	}
	ts.token = token

	return token, nil
}
