package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key"

func TestEncryptDecrypt(t *testing.T) {
	sealed, err := Encrypt([]byte("IGQVJ-long-lived"), []byte(testSecret))
	require.NoError(t, err)
	assert.NotContains(t, sealed, "IGQVJ")

	plain, err := Decrypt(sealed, []byte(testSecret))
	require.NoError(t, err)
	assert.Equal(t, "IGQVJ-long-lived", plain)

	_, err = Decrypt(sealed, []byte("other-secret"))
	assert.Error(t, err)
}

func TestEncrypt_EmptyKey(t *testing.T) {
	_, err := Encrypt([]byte("x"), nil)
	assert.Error(t, err)
}

func TestSessionToken(t *testing.T) {
	token, err := GenerateToken(testSecret, "user-1", time.Hour)
	require.NoError(t, err)

	claims, err := ValidateToken(testSecret, token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)

	_, err = ValidateToken("wrong", token)
	assert.Error(t, err)
}

func TestPurposeToken_NotInterchangeable(t *testing.T) {
	link, err := GeneratePurposeToken(testSecret, "user-1", PurposeInstagramLink, 10*time.Minute)
	require.NoError(t, err)

	_, err = ValidateToken(testSecret, link)
	assert.ErrorIs(t, err, ErrInvalidToken)

	claims, err := ValidatePurposeToken(testSecret, link, PurposeInstagramLink)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
}

func TestExpiredToken(t *testing.T) {
	token, err := GenerateToken(testSecret, "user-1", -time.Minute)
	require.NoError(t, err)

	_, err = ValidateToken(testSecret, token)
	assert.Error(t, err)
}

func TestGenerateRandomKey(t *testing.T) {
	a, err := GenerateRandomKey(16)
	require.NoError(t, err)
	b, err := GenerateRandomKey(16)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
	assert.Len(t, a, 22)
}
