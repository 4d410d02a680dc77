package toyota

import (
	"context"
	"fmt"
	"net/http"

	"github.com/willrr/ha-toyota-willrr/api"
	"github.com/willrr/ha-toyota-willrr/util"
	"github.com/willrr/ha-toyota-willrr/util/oauth"
	"github.com/willrr/ha-toyota-willrr/util/request"
	"golang.org/x/oauth2"
)

// https://github.com/DurgNomis-drol/mytoyota

// Identity performs the credential login against the connected services SSO
// endpoint and provides the resulting token source
type Identity struct {
	*request.Helper
	user     string
	password string
	locale   string
	uuid     string
	oauth2.TokenSource
}

// NewIdentity creates a Toyota identity
func NewIdentity(log *util.Logger, user, password, locale string) *Identity {
	return &Identity{
		Helper:   request.NewHelper(log),
		user:     user,
		password: password,
		locale:   locale,
	}
}

// UUID returns the customer profile id obtained during login
func (v *Identity) UUID() string {
	return v.uuid
}

// Login authenticates with the configured credentials
func (v *Identity) Login(ctx context.Context) error {
	token, err := v.login(ctx)
	if err != nil {
		return err
	}

	v.TokenSource = oauth.RefreshTokenSource(token, v)

	return nil
}

// RefreshToken implements oauth.TokenRefresher. The api has no refresh
// grant, an expired token requires a fresh credential login.
func (v *Identity) RefreshToken(_ *oauth2.Token) (*oauth2.Token, error) {
	return v.login(context.Background())
}

func (v *Identity) login(ctx context.Context) (*oauth2.Token, error) {
	data := map[string]string{
		"username": v.user,
		"password": v.password,
	}

	body, err := request.MarshalJSON(data)
	if err != nil {
		return nil, err
	}

	req, err := request.New(http.MethodPost, AuthURI, body, request.JSONEncoding, map[string]string{
		"X-TME-LC": v.locale,
	})
	if err != nil {
		return nil, err
	}

	var res loginResponse
	if err := v.DoJSON(req.WithContext(ctx), &res); err != nil {
		return nil, classify(err)
	}

	if res.Token.AccessToken == "" {
		return nil, fmt.Errorf("%w: missing token", api.ErrValidation)
	}

	v.uuid = res.UUID

	return &res.Token.Token, nil
}
