package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncryptionRoundTrip(t *testing.T) {
	enc, err := NewEncryption("0123456789abcdef0123456789abcdef")
	require.NoError(t, err)

	plain := `{"version":1,"recipients":[{"name":"Asha"}]}`
	cipher, err := enc.Encrypt(plain)
	require.NoError(t, err)
	require.NotEqual(t, plain, cipher)

	got, err := enc.Decrypt(cipher)
	require.NoError(t, err)
	require.Equal(t, plain, got)
}

func TestEncryptionRejectsBadKeyAndCiphertext(t *testing.T) {
	_, err := NewEncryption("short")
	require.Error(t, err)

	enc, err := NewEncryption("0123456789abcdef0123456789abcdef")
	require.NoError(t, err)

	_, err = enc.Decrypt("not base64 at all!!!")
	require.Error(t, err)

	_, err = enc.Decrypt("YWJj")
	require.Error(t, err)
}

func TestJWTManager(t *testing.T) {
	jm := NewJWTManager("test-secret", 1)

	token, err := jm.GenerateToken(42, "asha@example.com", "Asha")
	require.NoError(t, err)

	claims, err := jm.ValidateToken(token)
	require.NoError(t, err)
	require.Equal(t, uint(42), claims.UserID)
	require.Equal(t, "asha@example.com", claims.Email)
	require.Equal(t, "safewings", claims.Issuer)

	other := NewJWTManager("different-secret", 1)
	_, err = other.ValidateToken(token)
	require.Error(t, err)
}

func TestValidator(t *testing.T) {
	v := NewValidator()

	require.True(t, v.ValidateEmail("asha@example.com"))
	require.False(t, v.ValidateEmail("not-an-email"))

	require.Equal(t, "hello", v.SanitizeInput("  hello\x00\x1f  "))
}

func TestTokenGenerator(t *testing.T) {
	tg := NewTokenGenerator()

	sid := tg.GenerateSessionID()
	require.Len(t, sid, 32)
	require.False(t, strings.Contains(sid, "-"))

	tok, err := tg.GenerateSecureToken(16)
	require.NoError(t, err)
	require.Len(t, tok, 32)
}

func TestPagination(t *testing.T) {
	p := NewPagination(2, 10, 25)
	require.Equal(t, 10, p.GetOffset())
	require.Equal(t, 3, p.TotalPages)
	require.True(t, p.HasNextPage())
	require.True(t, p.HasPrevPage())

	p = NewPagination(0, 0, 0)
	require.Equal(t, 1, p.Page)
	require.Equal(t, 10, p.Limit)
	require.Equal(t, 1, p.TotalPages)
}
