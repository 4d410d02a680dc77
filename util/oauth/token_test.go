package oauth

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenExpiresIn(t *testing.T) {
	var tok Token
	require.NoError(t, json.Unmarshal([]byte(`{
		"access_token": "at",
		"refresh_token": "rt",
		"expires_in": 3600
	}`), &tok))

	assert.Equal(t, "at", tok.AccessToken)
	assert.Equal(t, "rt", tok.RefreshToken)
	assert.False(t, tok.Expiry.IsZero())
	assert.True(t, tok.Expiry.After(time.Now().Add(59*time.Minute)))
}

func TestTokenWithoutExpiry(t *testing.T) {
	var tok Token
	require.NoError(t, json.Unmarshal([]byte(`{"access_token": "at"}`), &tok))

	assert.Equal(t, "at", tok.AccessToken)
	assert.True(t, tok.Expiry.IsZero())
}
