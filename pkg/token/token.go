package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"github.com/presenta/backend/domain"
)

// Token kinds carried in the "type" claim. A refresh token must never be
// accepted where an access token is expected and vice versa.
const (
	TypeAccess  = "access"
	TypeRefresh = "refresh"
)

// Default lifetimes: 24h access, 7d refresh.
const (
	DefaultAccessTTL  = 24 * time.Hour
	DefaultRefreshTTL = 7 * 24 * time.Hour
)

// AccessClaims is the payload of an access token. The embedded user snapshot
// is an authorization hint; active status is always re-checked against the
// store by the request guard.
type AccessClaims struct {
	User domain.TokenUser `json:"user"`
	Type string           `json:"type"`
	jwt.RegisteredClaims
}

// RefreshClaims carries only enough to re-resolve the user.
type RefreshClaims struct {
	User RefreshUser `json:"user"`
	Type string      `json:"type"`
	jwt.RegisteredClaims
}

type RefreshUser struct {
	ID string `json:"id"`
}

// Issuer mints and verifies the bearer token pair. Access and refresh tokens
// are signed with independent secrets.
type Issuer struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

func NewIssuer(accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration) *Issuer {
	if accessTTL <= 0 {
		accessTTL = DefaultAccessTTL
	}
	if refreshTTL <= 0 {
		refreshTTL = DefaultRefreshTTL
	}
	return &Issuer{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}
}

// Issue mints a fresh access/refresh pair for the user.
func (i *Issuer) Issue(user *domain.User) (domain.TokenPair, error) {
	if user == nil {
		return domain.TokenPair{}, domain.ErrInvalidPayload
	}
	now := time.Now()

	access := jwt.NewWithClaims(jwt.SigningMethodHS256, &AccessClaims{
		User: user.Snapshot(),
		Type: TypeAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.accessTTL)),
		},
	})
	accessToken, err := access.SignedString(i.accessSecret)
	if err != nil {
		return domain.TokenPair{}, domain.WrapError(domain.ErrCodeInternal, "failed to sign access token", err)
	}

	refresh := jwt.NewWithClaims(jwt.SigningMethodHS256, &RefreshClaims{
		User: RefreshUser{ID: user.ID},
		Type: TypeRefresh,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.refreshTTL)),
		},
	})
	refreshToken, err := refresh.SignedString(i.refreshSecret)
	if err != nil {
		return domain.TokenPair{}, domain.WrapError(domain.ErrCodeInternal, "failed to sign refresh token", err)
	}

	return domain.TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

// VerifyAccess validates an access token against the access secret.
// Expiry is reported as expired even when the signature does not verify, so
// clients can always tell whether a refresh attempt makes sense.
func (i *Issuer) VerifyAccess(tokenString string) (*AccessClaims, error) {
	if expired(tokenString) {
		return nil, domain.ErrTokenExpired
	}

	claims := &AccessClaims{}
	if err := i.parse(tokenString, claims, i.accessSecret); err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrTokenExpired
		}
		return nil, domain.ErrTokenInvalid
	}
	if claims.Type != TypeAccess || claims.User.ID == "" {
		return nil, domain.ErrTokenInvalid
	}
	return claims, nil
}

// VerifyRefresh validates a refresh token against the refresh secret only.
func (i *Issuer) VerifyRefresh(tokenString string) (*RefreshClaims, error) {
	if expired(tokenString) {
		return nil, domain.ErrRefreshExpired
	}

	claims := &RefreshClaims{}
	if err := i.parse(tokenString, claims, i.refreshSecret); err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrRefreshExpired
		}
		return nil, domain.ErrRefreshInvalid
	}
	if claims.Type != TypeRefresh || claims.User.ID == "" {
		return nil, domain.ErrRefreshInvalid
	}
	return claims, nil
}

func (i *Issuer) parse(tokenString string, claims jwt.Claims, secret []byte) error {
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return secret, nil
	})
	if err != nil {
		return err
	}
	if !token.Valid {
		return jwt.ErrTokenSignatureInvalid
	}
	return nil
}

// expired peeks at the exp claim without verifying the signature.
func expired(tokenString string) bool {
	var claims jwt.RegisteredClaims
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(tokenString, &claims); err != nil {
		return false
	}
	return claims.ExpiresAt != nil && claims.ExpiresAt.Before(time.Now())
}
