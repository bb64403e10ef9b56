package token

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/require"

	"github.com/presenta/backend/domain"
)

func testUser() *domain.User {
	return &domain.User{
		ID:     "user-1",
		Name:   "Ana",
		Email:  "ana@example.com",
		Role:   domain.RoleUser,
		Active: true,
	}
}

func TestIssueAndVerifyPair(t *testing.T) {
	issuer := NewIssuer("access-secret", "refresh-secret", time.Hour, 2*time.Hour)

	pair, err := issuer.Issue(testUser())
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)
	require.NotEqual(t, pair.AccessToken, pair.RefreshToken)

	access, err := issuer.VerifyAccess(pair.AccessToken)
	require.NoError(t, err)
	require.Equal(t, "user-1", access.User.ID)
	require.Equal(t, "ana@example.com", access.User.Email)
	require.Equal(t, TypeAccess, access.Type)

	refresh, err := issuer.VerifyRefresh(pair.RefreshToken)
	require.NoError(t, err)
	require.Equal(t, "user-1", refresh.User.ID)
	require.Equal(t, TypeRefresh, refresh.Type)
}

func TestTokenTypeConfusionRejected(t *testing.T) {
	issuer := NewIssuer("access-secret", "refresh-secret", time.Hour, 2*time.Hour)
	pair, err := issuer.Issue(testUser())
	require.NoError(t, err)

	_, err = issuer.VerifyAccess(pair.RefreshToken)
	require.ErrorIs(t, err, domain.ErrTokenInvalid)

	_, err = issuer.VerifyRefresh(pair.AccessToken)
	require.ErrorIs(t, err, domain.ErrRefreshInvalid)
}

func TestCrossSecretRejected(t *testing.T) {
	issuer := NewIssuer("access-secret", "refresh-secret", time.Hour, 2*time.Hour)
	other := NewIssuer("another-access", "another-refresh", time.Hour, 2*time.Hour)

	pair, err := issuer.Issue(testUser())
	require.NoError(t, err)

	_, err = other.VerifyAccess(pair.AccessToken)
	require.ErrorIs(t, err, domain.ErrTokenInvalid)

	_, err = other.VerifyRefresh(pair.RefreshToken)
	require.ErrorIs(t, err, domain.ErrRefreshInvalid)
}

func signExpiredAccess(t *testing.T, secret string) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, &AccessClaims{
		User: domain.TokenUser{ID: "user-1"},
		Type: TypeAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	})
	signed, err := tok.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestExpiredAccessToken(t *testing.T) {
	issuer := NewIssuer("access-secret", "refresh-secret", time.Hour, 2*time.Hour)

	_, err := issuer.VerifyAccess(signExpiredAccess(t, "access-secret"))
	require.ErrorIs(t, err, domain.ErrTokenExpired)
}

func TestExpiredWinsOverBadSignature(t *testing.T) {
	issuer := NewIssuer("access-secret", "refresh-secret", time.Hour, 2*time.Hour)

	// Signed with the wrong secret, but expiry is still what gets reported.
	_, err := issuer.VerifyAccess(signExpiredAccess(t, "totally-different-secret"))
	require.ErrorIs(t, err, domain.ErrTokenExpired)
}

func TestExpiredRefreshToken(t *testing.T) {
	issuer := NewIssuer("access-secret", "refresh-secret", time.Hour, 2*time.Hour)

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, &RefreshClaims{
		User: RefreshUser{ID: "user-1"},
		Type: TypeRefresh,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	})
	signed, err := tok.SignedString([]byte("refresh-secret"))
	require.NoError(t, err)

	_, err = issuer.VerifyRefresh(signed)
	require.ErrorIs(t, err, domain.ErrRefreshExpired)
}

func TestGarbageTokenInvalid(t *testing.T) {
	issuer := NewIssuer("access-secret", "refresh-secret", time.Hour, 2*time.Hour)

	_, err := issuer.VerifyAccess("not-a-token")
	require.ErrorIs(t, err, domain.ErrTokenInvalid)

	_, err = issuer.VerifyRefresh("")
	require.ErrorIs(t, err, domain.ErrRefreshInvalid)
}

func TestIssueNilUser(t *testing.T) {
	issuer := NewIssuer("access-secret", "refresh-secret", time.Hour, 2*time.Hour)
	_, err := issuer.Issue(nil)
	require.Error(t, err)

	var dErr *domain.Error
	require.True(t, errors.As(err, &dErr))
}
