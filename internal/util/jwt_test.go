package util

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"guruschool_backend/internal/model"
)

const testSecret = "unit-test-secret"

func testProfile() *model.Profile {
	p := &model.Profile{
		Email: "student@example.com",
		Role:  model.Student,
	}
	p.ID = "11111111-2222-3333-4444-555555555555"
	return p
}

func TestGenerateAndParseJWT(t *testing.T) {
	token, err := GenerateJWT(testProfile(), testSecret, time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ParseJWT(token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, "11111111-2222-3333-4444-555555555555", claims.UserID)
	assert.Equal(t, model.Student, claims.Role)
	assert.Equal(t, "student@example.com", claims.Email)
	assert.Equal(t, claims.UserID, claims.Subject)
}

func TestParseJWTWrongSecret(t *testing.T) {
	token, err := GenerateJWT(testProfile(), testSecret, time.Hour)
	require.NoError(t, err)

	_, err = ParseJWT(token, "a-different-secret")
	assert.Error(t, err)
}

func TestParseJWTExpired(t *testing.T) {
	token, err := GenerateJWT(testProfile(), testSecret, -time.Minute)
	require.NoError(t, err)

	_, err = ParseJWT(token, testSecret)
	require.Error(t, err)
	assert.True(t, errors.Is(err, jwt.ErrTokenExpired))
}

func TestParseJWTGarbage(t *testing.T) {
	_, err := ParseJWT("not.a.token", testSecret)
	assert.Error(t, err)
}
