package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key"

func TestGenerateAndValidateToken(t *testing.T) {
	token, err := GenerateToken("admin", RoleAdmin, testSecret, time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ValidateToken(token, testSecret)
	require.NoError(t, err)
	require.Equal(t, "admin", claims.Subject)
	require.Equal(t, RoleAdmin, claims.Role)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	token, err := GenerateToken("admin", RoleAdmin, testSecret, time.Hour)
	require.NoError(t, err)

	_, err = ValidateToken(token, "some-other-secret")
	require.Error(t, err)
}

func TestValidateToken_Expired(t *testing.T) {
	token, err := GenerateToken("admin", RoleAdmin, testSecret, -time.Minute)
	require.NoError(t, err)

	_, err = ValidateToken(token, testSecret)
	require.Error(t, err)
}

func TestValidateToken_Garbage(t *testing.T) {
	_, err := ValidateToken("not.a.token", testSecret)
	require.Error(t, err)
}

func TestValidateToken_RoleRoundTrip(t *testing.T) {
	token, err := GenerateToken("teller-7", "banking", testSecret, time.Hour)
	require.NoError(t, err)

	claims, err := ValidateToken(token, testSecret)
	require.NoError(t, err)
	require.Equal(t, "banking", claims.Role)
	require.NotEqual(t, RoleAdmin, claims.Role)
}
