package session

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIssueAndValidateToken(t *testing.T) {
	service := NewService()

	token, err := service.IssueToken("abc123", "owner@example.com")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := service.ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, "abc123", claims.SessionID)
	assert.Equal(t, "owner@example.com", claims.Contact)
	assert.Greater(t, claims.Exp, time.Now().Unix())
}

func TestValidateToken_BearerPrefix(t *testing.T) {
	service := NewService()
	token, _ := service.IssueToken("abc123", "owner@example.com")

	claims, err := service.ValidateToken("Bearer " + token)
	assert.NoError(t, err)
	assert.Equal(t, "abc123", claims.SessionID)
}

func TestValidateToken_Garbage(t *testing.T) {
	service := NewService()
	_, err := service.ValidateToken("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateToken_Expired(t *testing.T) {
	os.Setenv("SESSION_EXPIRY", "-1h")
	defer os.Unsetenv("SESSION_EXPIRY")

	service := NewService()
	token, err := service.IssueToken("abc123", "owner@example.com")
	assert.NoError(t, err)

	_, err = service.ValidateToken(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	os.Setenv("SESSION_SECRET", "first-secret")
	issuer := NewService()
	token, _ := issuer.IssueToken("abc123", "owner@example.com")

	os.Setenv("SESSION_SECRET", "second-secret")
	defer os.Unsetenv("SESSION_SECRET")
	verifier := NewService()

	_, err := verifier.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestExtractTokenFromHeader(t *testing.T) {
	service := NewService()

	token, err := service.ExtractTokenFromHeader("Bearer abc")
	assert.NoError(t, err)
	assert.Equal(t, "abc", token)

	_, err = service.ExtractTokenFromHeader("")
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = service.ExtractTokenFromHeader("Basic abc")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestNewSessionID(t *testing.T) {
	a, err := NewSessionID()
	assert.NoError(t, err)
	b, err := NewSessionID()
	assert.NoError(t, err)
	assert.Len(t, a, 32)
	assert.NotEqual(t, a, b)
}
