package auth

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/presenta/backend/domain"
	"github.com/presenta/backend/internal/oauth"
	"github.com/presenta/backend/pkg/token"
)

// fakeUserRepo is an in-memory UserRepository, safe for concurrent use.
type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*domain.User)}
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.users[id]; ok {
		clone := *u
		return &clone, nil
	}
	return nil, domain.ErrUserNotFound
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (f *fakeUserRepo) GetByGoogleID(_ context.Context, googleID string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.GoogleID != "" && u.GoogleID == googleID {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (f *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == user.Email {
			return domain.ErrDuplicateUser
		}
	}
	clone := *user
	f.users[user.ID] = &clone
	return nil
}

func (f *fakeUserRepo) Update(_ context.Context, user *domain.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[user.ID]; !ok {
		return domain.ErrUserNotFound
	}
	clone := *user
	f.users[user.ID] = &clone
	return nil
}

func (f *fakeUserRepo) TouchLastLogin(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	now := time.Now()
	u.LastLogin = &now
	return nil
}

type fakeProvider struct {
	profile  *oauth.Profile
	err      error
	calls    int
	authURLs int
}

func (f *fakeProvider) AuthURL(state string) string {
	f.authURLs++
	return "https://accounts.example.com/consent?state=" + state
}

func (f *fakeProvider) Exchange(_ context.Context, code string) (*oauth.Profile, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.profile, nil
}

type fakeStates struct {
	verifyErr error
}

func (f *fakeStates) Issue() (string, error) { return "state-token", nil }

func (f *fakeStates) Verify(string) error { return f.verifyErr }

func newTestUseCase(repo *fakeUserRepo, provider *fakeProvider, states *fakeStates) *UseCase {
	issuer := token.NewIssuer("access-secret", "refresh-secret", time.Hour, 2*time.Hour)
	if provider == nil {
		provider = &fakeProvider{}
	}
	if states == nil {
		states = &fakeStates{}
	}
	return New(repo, issuer, provider, states, nil)
}

func TestRegisterAndLogin(t *testing.T) {
	repo := newFakeUserRepo()
	uc := newTestUseCase(repo, nil, nil)
	ctx := context.Background()

	result, err := uc.Register(ctx, "Ana", "Ana@Example.com", "secreto1", "")
	require.NoError(t, err)
	require.Equal(t, "ana@example.com", result.User.Email)
	require.Equal(t, domain.RoleUser, result.User.Role)
	require.True(t, result.User.Active)
	require.NotEmpty(t, result.Tokens.AccessToken)
	require.NotEmpty(t, result.Tokens.RefreshToken)
	require.NotNil(t, result.User.LastLogin)

	// Password is stored hashed, never verbatim.
	stored, err := repo.GetByEmail(ctx, "ana@example.com")
	require.NoError(t, err)
	require.NotEqual(t, "secreto1", stored.PasswordHash)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("secreto1")))

	logged, err := uc.Login(ctx, "ana@example.com", "secreto1")
	require.NoError(t, err)
	require.Equal(t, result.User.ID, logged.User.ID)
}

func TestRegisterValidation(t *testing.T) {
	uc := newTestUseCase(newFakeUserRepo(), nil, nil)
	ctx := context.Background()

	_, err := uc.Register(ctx, "", "ana@example.com", "secreto1", "")
	require.True(t, domain.IsDomainError(err, domain.ErrCodeValidation))

	_, err = uc.Register(ctx, "Ana", "not-an-email", "secreto1", "")
	require.True(t, domain.IsDomainError(err, domain.ErrCodeValidation))

	_, err = uc.Register(ctx, "Ana", "ana@example.com", "corta", "")
	require.True(t, domain.IsDomainError(err, domain.ErrCodeValidation))
}

func TestRegisterDuplicateEmail(t *testing.T) {
	uc := newTestUseCase(newFakeUserRepo(), nil, nil)
	ctx := context.Background()

	_, err := uc.Register(ctx, "Ana", "ana@example.com", "secreto1", "")
	require.NoError(t, err)

	_, err = uc.Register(ctx, "Otra Ana", "ana@example.com", "secreto2", "")
	require.ErrorIs(t, err, domain.ErrDuplicateUser)
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	repo := newFakeUserRepo()
	uc := newTestUseCase(repo, nil, nil)
	ctx := context.Background()

	_, err := uc.Register(ctx, "Ana", "ana@example.com", "secreto1", "")
	require.NoError(t, err)

	_, unknownErr := uc.Login(ctx, "nadie@example.com", "whatever")
	_, wrongPassErr := uc.Login(ctx, "ana@example.com", "incorrecta")

	// Same error value for unknown account and wrong password.
	require.ErrorIs(t, unknownErr, domain.ErrInvalidCredentials)
	require.ErrorIs(t, wrongPassErr, domain.ErrInvalidCredentials)
	require.Equal(t, unknownErr, wrongPassErr)
}

func TestLoginInactiveUser(t *testing.T) {
	repo := newFakeUserRepo()
	uc := newTestUseCase(repo, nil, nil)
	ctx := context.Background()

	result, err := uc.Register(ctx, "Ana", "ana@example.com", "secreto1", "")
	require.NoError(t, err)

	repo.users[result.User.ID].Active = false

	_, err = uc.Login(ctx, "ana@example.com", "secreto1")
	require.ErrorIs(t, err, domain.ErrInactiveUser)
}

func TestLoginGoogleOnlyAccountRejectsPassword(t *testing.T) {
	repo := newFakeUserRepo()
	repo.users["g-1"] = &domain.User{
		ID:       "g-1",
		Email:    "fed@example.com",
		GoogleID: "google-123",
		Role:     domain.RoleUser,
		Active:   true,
	}
	uc := newTestUseCase(repo, nil, nil)

	_, err := uc.Login(context.Background(), "fed@example.com", "anything")
	require.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestRefreshNotRotated(t *testing.T) {
	repo := newFakeUserRepo()
	uc := newTestUseCase(repo, nil, nil)
	ctx := context.Background()

	result, err := uc.Register(ctx, "Ana", "ana@example.com", "secreto1", "")
	require.NoError(t, err)

	// Two exchanges racing on the same refresh token both succeed: nothing is
	// consumed or rotated, so neither call can invalidate the other.
	results := make([]*AuthResult, 2)
	errs := make([]error, 2)
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = uc.Refresh(ctx, result.Tokens.RefreshToken)
		}(i)
	}
	wg.Wait()

	for i := 0; i < 2; i++ {
		require.NoError(t, errs[i])
		require.NotEmpty(t, results[i].Tokens.AccessToken)
	}

	// And the token is still not spent afterwards.
	third, err := uc.Refresh(ctx, result.Tokens.RefreshToken)
	require.NoError(t, err)
	require.NotEmpty(t, third.Tokens.AccessToken)
}

func TestRefreshDeletedUser(t *testing.T) {
	repo := newFakeUserRepo()
	uc := newTestUseCase(repo, nil, nil)
	ctx := context.Background()

	result, err := uc.Register(ctx, "Ana", "ana@example.com", "secreto1", "")
	require.NoError(t, err)

	delete(repo.users, result.User.ID)

	// The refresh path reports the deleted account as not found rather than
	// disguising it as a broken token.
	_, err = uc.Refresh(ctx, result.Tokens.RefreshToken)
	require.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestRefreshRejectsAccessToken(t *testing.T) {
	repo := newFakeUserRepo()
	uc := newTestUseCase(repo, nil, nil)
	ctx := context.Background()

	result, err := uc.Register(ctx, "Ana", "ana@example.com", "secreto1", "")
	require.NoError(t, err)

	_, err = uc.Refresh(ctx, result.Tokens.AccessToken)
	require.ErrorIs(t, err, domain.ErrRefreshInvalid)
}

func TestRefreshDeactivatedUser(t *testing.T) {
	repo := newFakeUserRepo()
	uc := newTestUseCase(repo, nil, nil)
	ctx := context.Background()

	result, err := uc.Register(ctx, "Ana", "ana@example.com", "secreto1", "")
	require.NoError(t, err)

	repo.users[result.User.ID].Active = false

	_, err = uc.Refresh(ctx, result.Tokens.RefreshToken)
	require.ErrorIs(t, err, domain.ErrInactiveUser)
}

func TestCheck(t *testing.T) {
	uc := newTestUseCase(newFakeUserRepo(), nil, nil)

	info := uc.Check(nil)
	require.False(t, info.Authenticated)
	require.Nil(t, info.User)

	user := &domain.User{ID: "u-1", Active: true}
	info = uc.Check(user)
	require.True(t, info.Authenticated)
	require.Equal(t, "u-1", info.User.ID)
}

func TestGoogleCallbackNewUser(t *testing.T) {
	repo := newFakeUserRepo()
	provider := &fakeProvider{profile: &oauth.Profile{
		GoogleID: "google-123",
		Email:    "Fede@Example.com",
		Name:     "Fede",
	}}
	uc := newTestUseCase(repo, provider, nil)

	result, err := uc.GoogleCallback(context.Background(), "state-token", "auth-code")
	require.NoError(t, err)
	require.Equal(t, "fede@example.com", result.User.Email)
	require.Equal(t, "google-123", result.User.GoogleID)
	require.Equal(t, domain.RoleUser, result.User.Role)
	require.NotEmpty(t, result.Tokens.AccessToken)
}

func TestGoogleCallbackLinksByEmail(t *testing.T) {
	repo := newFakeUserRepo()
	uc := newTestUseCase(repo, &fakeProvider{profile: &oauth.Profile{
		GoogleID: "google-123",
		Email:    "ana@example.com",
		Name:     "Ana",
	}}, nil)
	ctx := context.Background()

	registered, err := uc.Register(ctx, "Ana", "ana@example.com", "secreto1", "")
	require.NoError(t, err)

	result, err := uc.GoogleCallback(ctx, "state-token", "auth-code")
	require.NoError(t, err)

	// Same account, now carrying the Google link; no duplicate created.
	require.Equal(t, registered.User.ID, result.User.ID)
	require.Equal(t, "google-123", result.User.GoogleID)
	require.Len(t, repo.users, 1)

	// Local password still works after linking.
	_, err = uc.Login(ctx, "ana@example.com", "secreto1")
	require.NoError(t, err)
}

func TestGoogleCallbackInvalidStateCreatesNothing(t *testing.T) {
	repo := newFakeUserRepo()
	provider := &fakeProvider{profile: &oauth.Profile{GoogleID: "g", Email: "x@example.com"}}
	uc := newTestUseCase(repo, provider, &fakeStates{verifyErr: oauth.ErrInvalidState})

	_, err := uc.GoogleCallback(context.Background(), "forged", "auth-code")
	require.True(t, domain.IsDomainError(err, domain.ErrCodeUnauthorized))

	// Fails before any provider round trip.
	require.Zero(t, provider.calls)
	require.Empty(t, repo.users)
}

func TestGoogleCallbackProviderFailure(t *testing.T) {
	repo := newFakeUserRepo()
	provider := &fakeProvider{err: oauth.ErrProviderUnavailable}
	uc := newTestUseCase(repo, provider, nil)

	_, err := uc.GoogleCallback(context.Background(), "state-token", "auth-code")
	require.True(t, domain.IsDomainError(err, domain.ErrCodeUnauthorized))
	require.Empty(t, repo.users)
}

func TestGoogleCallbackMissingCode(t *testing.T) {
	uc := newTestUseCase(newFakeUserRepo(), nil, nil)

	_, err := uc.GoogleCallback(context.Background(), "state-token", "")
	require.True(t, domain.IsDomainError(err, domain.ErrCodeValidation))
}

func TestGoogleCallbackReturningUser(t *testing.T) {
	repo := newFakeUserRepo()
	repo.users["u-1"] = &domain.User{
		ID:       "u-1",
		Email:    "fede@example.com",
		GoogleID: "google-123",
		Role:     domain.RoleUser,
		Active:   true,
	}
	uc := newTestUseCase(repo, &fakeProvider{profile: &oauth.Profile{
		GoogleID: "google-123",
		Email:    "fede@example.com",
		Name:     "Fede",
	}}, nil)

	result, err := uc.GoogleCallback(context.Background(), "state-token", "auth-code")
	require.NoError(t, err)
	require.Equal(t, "u-1", result.User.ID)
	require.Len(t, repo.users, 1)
}

func TestGoogleAuthURLCarriesState(t *testing.T) {
	provider := &fakeProvider{}
	uc := newTestUseCase(newFakeUserRepo(), provider, nil)

	authURL, err := uc.GoogleAuthURL()
	require.NoError(t, err)
	require.Contains(t, authURL, "state=state-token")
	require.Equal(t, 1, provider.authURLs)
}
