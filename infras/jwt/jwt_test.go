package jwt_test

import (
	"testing"
	"time"

	"roomdesk/config"
	"roomdesk/infras/jwt"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService(secret string) jwt.JWT {
	cfg := &config.Config{}
	cfg.JWT.AccessSecret = secret

	return jwt.New(cfg)
}

func TestValidateToken(t *testing.T) {
	svc := newService("s3cret")

	token, err := svc.GenerateAccessToken("42", "guest@example.com", time.Hour)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "42", claims.UserID)
	assert.Equal(t, "guest@example.com", claims.Email)
	assert.NotEmpty(t, claims.TokenID)
}

func TestValidateToken_Failures(t *testing.T) {
	svc := newService("s3cret")

	expired, err := svc.GenerateAccessToken("42", "guest@example.com", -time.Minute)
	require.NoError(t, err)

	foreign, err := newService("other").GenerateAccessToken("42", "guest@example.com", time.Hour)
	require.NoError(t, err)

	noUser, err := svc.GenerateAccessToken("", "guest@example.com", time.Hour)
	require.NoError(t, err)

	_, err = svc.ValidateToken(expired)
	assert.ErrorIs(t, err, jwt.ErrExpiredToken)

	_, err = svc.ValidateToken(foreign)
	assert.ErrorIs(t, err, jwt.ErrInvalidToken)

	_, err = svc.ValidateToken("not-a-token")
	assert.ErrorIs(t, err, jwt.ErrInvalidToken)

	_, err = svc.ValidateToken(noUser)
	assert.ErrorIs(t, err, jwt.ErrInvalidClaim)
}

func TestExtractTokenFromHeader(t *testing.T) {
	token, err := jwt.ExtractTokenFromHeader("Bearer abc.def.ghi")
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", token)

	_, err = jwt.ExtractTokenFromHeader("")
	assert.ErrorIs(t, err, jwt.ErrMissingHeader)

	_, err = jwt.ExtractTokenFromHeader("Basic dXNlcjpwYXNz")
	assert.ErrorIs(t, err, jwt.ErrInvalidHeader)

	_, err = jwt.ExtractTokenFromHeader("Bearer ")
	assert.ErrorIs(t, err, jwt.ErrInvalidHeader)
}
