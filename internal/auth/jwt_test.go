package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGenerateAndValidateJWT(t *testing.T) {
	secret := "test-secret"
	token, err := GenerateJWT("64f1b2c3d4e5f60718293a4b", secret, time.Hour)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := ValidateJWT(token, secret)
	assert.NoError(t, err)
	assert.Equal(t, "64f1b2c3d4e5f60718293a4b", claims.UserID)
	assert.Equal(t, "64f1b2c3d4e5f60718293a4b", claims.Subject)
}

func TestValidateJWT_WrongSecret(t *testing.T) {
	token, err := GenerateJWT("64f1b2c3d4e5f60718293a4b", "secret-a", time.Hour)
	assert.NoError(t, err)

	_, err = ValidateJWT(token, "secret-b")
	assert.Error(t, err)
}

func TestValidateJWT_Expired(t *testing.T) {
	token, err := GenerateJWT("64f1b2c3d4e5f60718293a4b", "secret", -time.Minute)
	assert.NoError(t, err)

	_, err = ValidateJWT(token, "secret")
	assert.Error(t, err)
}

func TestValidateJWT_Garbage(t *testing.T) {
	_, err := ValidateJWT("not-a-token", "secret")
	assert.Error(t, err)
}

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("ArkAdmin2024!")
	assert.NoError(t, err)
	assert.True(t, CheckPasswordHash("ArkAdmin2024!", hash))
	assert.False(t, CheckPasswordHash("wrong", hash))
}
