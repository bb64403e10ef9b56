package middleware

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"

	"github.com/presenta/backend/api/transport"
	"github.com/presenta/backend/domain"
	"github.com/presenta/backend/pkg/httpcontext"
	"github.com/presenta/backend/pkg/token"
)

type fakeUserRepo struct {
	users map[string]*domain.User
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	if u, ok := f.users[id]; ok {
		clone := *u
		return &clone, nil
	}
	return nil, domain.ErrUserNotFound
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, _ string) (*domain.User, error) {
	return nil, domain.ErrUserNotFound
}

func (f *fakeUserRepo) GetByGoogleID(_ context.Context, _ string) (*domain.User, error) {
	return nil, domain.ErrUserNotFound
}

func (f *fakeUserRepo) Create(_ context.Context, _ *domain.User) error   { return nil }
func (f *fakeUserRepo) Update(_ context.Context, _ *domain.User) error   { return nil }
func (f *fakeUserRepo) TouchLastLogin(_ context.Context, _ string) error { return nil }

func testSetup(users ...*domain.User) (*Authenticator, *token.Issuer) {
	repo := &fakeUserRepo{users: make(map[string]*domain.User)}
	for _, u := range users {
		repo.users[u.ID] = u
	}
	issuer := token.NewIssuer("access-secret", "refresh-secret", time.Hour, 2*time.Hour)
	adapter := httpcontext.NewAdapter(5 * time.Second)
	return NewAuthenticator(issuer, repo, adapter, nil), issuer
}

func decodeEnvelope(t *testing.T, ctx *fasthttp.RequestCtx) transport.Envelope {
	t.Helper()
	var env transport.Envelope
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &env))
	return env
}

func TestRequireMissingToken(t *testing.T) {
	auth, _ := testSetup()

	called := false
	handler := auth.Require(func(ctx *fasthttp.RequestCtx) { called = true })

	var ctx fasthttp.RequestCtx
	handler(&ctx)

	require.False(t, called)
	require.Equal(t, fasthttp.StatusUnauthorized, ctx.Response.StatusCode())
	env := decodeEnvelope(t, &ctx)
	require.False(t, env.Success)
	require.Equal(t, string(domain.ErrCodeUnauthorized), env.Code)
}

func TestRequireValidToken(t *testing.T) {
	user := &domain.User{ID: "u-1", Email: "ana@example.com", Role: domain.RoleUser, Active: true}
	auth, issuer := testSetup(user)

	pair, err := issuer.Issue(user)
	require.NoError(t, err)

	var resolved *domain.User
	handler := auth.Require(func(ctx *fasthttp.RequestCtx) {
		resolved, _ = UserFrom(ctx)
	})

	var ctx fasthttp.RequestCtx
	ctx.Request.Header.Set("Authorization", "Bearer "+pair.AccessToken)
	handler(&ctx)

	require.NotNil(t, resolved)
	require.Equal(t, "u-1", resolved.ID)
}

func TestRequireInactiveUser(t *testing.T) {
	user := &domain.User{ID: "u-1", Role: domain.RoleUser, Active: false}
	auth, issuer := testSetup(user)

	pair, err := issuer.Issue(user)
	require.NoError(t, err)

	called := false
	handler := auth.Require(func(ctx *fasthttp.RequestCtx) { called = true })

	var ctx fasthttp.RequestCtx
	ctx.Request.Header.Set("Authorization", "Bearer "+pair.AccessToken)
	handler(&ctx)

	require.False(t, called)
	require.Equal(t, fasthttp.StatusForbidden, ctx.Response.StatusCode())
	env := decodeEnvelope(t, &ctx)
	require.Equal(t, string(domain.ErrCodeInactiveUser), env.Code)
}

func TestRequireDeletedUser(t *testing.T) {
	user := &domain.User{ID: "gone", Role: domain.RoleUser, Active: true}
	auth, issuer := testSetup() // repo does not know the user

	pair, err := issuer.Issue(user)
	require.NoError(t, err)

	handler := auth.Require(func(ctx *fasthttp.RequestCtx) {
		t.Fatal("handler must not run")
	})

	var ctx fasthttp.RequestCtx
	ctx.Request.Header.Set("Authorization", "Bearer "+pair.AccessToken)
	handler(&ctx)

	require.Equal(t, fasthttp.StatusUnauthorized, ctx.Response.StatusCode())
}

func TestRequireGarbageToken(t *testing.T) {
	auth, _ := testSetup()

	handler := auth.Require(func(ctx *fasthttp.RequestCtx) {
		t.Fatal("handler must not run")
	})

	var ctx fasthttp.RequestCtx
	ctx.Request.Header.Set("Authorization", "Bearer not-a-token")
	handler(&ctx)

	require.Equal(t, fasthttp.StatusUnauthorized, ctx.Response.StatusCode())
	env := decodeEnvelope(t, &ctx)
	require.Equal(t, string(domain.ErrCodeInvalidToken), env.Code)
}

func TestRequireRoleAdmin(t *testing.T) {
	admin := &domain.User{ID: "a-1", Role: domain.RoleAdmin, Active: true}
	regular := &domain.User{ID: "u-1", Role: domain.RoleUser, Active: true}
	auth, issuer := testSetup(admin, regular)

	guard := RequireRole(domain.RoleAdmin)
	var reached bool
	handler := auth.Require(guard(func(ctx *fasthttp.RequestCtx) { reached = true }))

	adminPair, err := issuer.Issue(admin)
	require.NoError(t, err)
	userPair, err := issuer.Issue(regular)
	require.NoError(t, err)

	var userCtx fasthttp.RequestCtx
	userCtx.Request.Header.Set("Authorization", "Bearer "+userPair.AccessToken)
	handler(&userCtx)
	require.False(t, reached)
	require.Equal(t, fasthttp.StatusForbidden, userCtx.Response.StatusCode())
	env := decodeEnvelope(t, &userCtx)
	require.Equal(t, string(domain.ErrCodeForbidden), env.Code)
	require.Equal(t, domain.ErrForbidden.Message, env.Message)

	var adminCtx fasthttp.RequestCtx
	adminCtx.Request.Header.Set("Authorization", "Bearer "+adminPair.AccessToken)
	handler(&adminCtx)
	require.True(t, reached)
}

func TestRequireRoleWithoutAuth(t *testing.T) {
	guard := RequireRole(domain.RoleAdmin)
	handler := guard(func(ctx *fasthttp.RequestCtx) {
		t.Fatal("handler must not run")
	})

	var ctx fasthttp.RequestCtx
	handler(&ctx)
	require.Equal(t, fasthttp.StatusUnauthorized, ctx.Response.StatusCode())
}

func TestExtractBearer(t *testing.T) {
	require.Equal(t, "abc", extractBearer("Bearer abc"))
	require.Equal(t, "abc", extractBearer("abc"))
	require.Equal(t, "", extractBearer(""))
	require.Equal(t, "abc", extractBearer("  Bearer abc  "))
}
