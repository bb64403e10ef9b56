package auth

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/presenta/backend/domain"
	"github.com/presenta/backend/internal/oauth"
	"github.com/presenta/backend/pkg/token"
	"github.com/presenta/backend/repository"
)

const (
	bcryptCost        = 10
	minPasswordLength = 6
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Provider is the subset of the Google integration the use case needs.
type Provider interface {
	AuthURL(state string) string
	Exchange(ctx context.Context, code string) (*oauth.Profile, error)
}

// StateIssuer mints and checks the anti-forgery state parameter.
type StateIssuer interface {
	Issue() (string, error)
	Verify(state string) error
}

// UseCase implements registration, local and federated login, token refresh
// and session inspection.
type UseCase struct {
	users    repository.UserRepository
	issuer   *token.Issuer
	provider Provider
	states   StateIssuer
	logger   *zap.Logger
}

func New(users repository.UserRepository, issuer *token.Issuer, provider Provider, states StateIssuer, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		users:    users,
		issuer:   issuer,
		provider: provider,
		states:   states,
		logger:   logger,
	}
}

// AuthResult pairs the issued tokens with the account they belong to.
type AuthResult struct {
	User   *domain.User     `json:"user"`
	Tokens domain.TokenPair `json:"tokens"`
}

// Register creates a local-credentials account and logs it in.
func (uc *UseCase) Register(ctx context.Context, name, email, password, phone string) (*AuthResult, error) {
	name = strings.TrimSpace(name)
	email = normalizeEmail(email)

	if name == "" {
		return nil, domain.Validation("El nombre es obligatorio")
	}
	if !emailPattern.MatchString(email) {
		return nil, domain.Validation("El email no es válido")
	}
	if len(password) < minPasswordLength {
		return nil, domain.Validation("La contraseña debe tener al menos 6 caracteres")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, domain.WrapError(domain.ErrCodeInternal, "no se pudo procesar la contraseña", err)
	}

	now := time.Now()
	user := &domain.User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Phone:        strings.TrimSpace(phone),
		Role:         domain.RoleUser,
		Active:       true,
		Preferences:  domain.DefaultPreferences(),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := uc.users.Create(ctx, user); err != nil {
		return nil, err
	}
	uc.logger.Info("user registered", zap.String("user_id", user.ID))

	return uc.finishLogin(ctx, user)
}

// Login verifies local credentials. Unknown email and wrong password return
// the same error value so responses never reveal whether an account exists.
func (uc *UseCase) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	user, err := uc.verifyLocal(ctx, normalizeEmail(email), password)
	if err != nil {
		return nil, err
	}
	return uc.finishLogin(ctx, user)
}

func (uc *UseCase) verifyLocal(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := uc.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}
	if !user.HasPassword() {
		return nil, domain.ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}
	if !user.Active {
		return nil, domain.ErrInactiveUser
	}
	return user, nil
}

// Refresh exchanges a valid refresh token for a fresh pair. Tokens are not
// rotated: the presented refresh token stays usable until it expires.
func (uc *UseCase) Refresh(ctx context.Context, refreshToken string) (*AuthResult, error) {
	claims, err := uc.issuer.VerifyRefresh(refreshToken)
	if err != nil {
		return nil, err
	}

	// A deleted account surfaces as ErrUserNotFound here; the refresh path is
	// the one place a token error may reveal that the user no longer exists.
	user, err := uc.users.GetByID(ctx, claims.User.ID)
	if err != nil {
		return nil, err
	}
	if !user.Active {
		return nil, domain.ErrInactiveUser
	}
	return uc.finishLogin(ctx, user)
}

// Check resolves a session without failing: a missing or broken token simply
// reports an unauthenticated session.
type SessionInfo struct {
	Authenticated bool         `json:"authenticated"`
	User          *domain.User `json:"user,omitempty"`
}

func (uc *UseCase) Check(user *domain.User) SessionInfo {
	if user == nil {
		return SessionInfo{Authenticated: false}
	}
	return SessionInfo{Authenticated: true, User: user}
}

// GoogleAuthURL starts the federated handshake.
func (uc *UseCase) GoogleAuthURL() (string, error) {
	state, err := uc.states.Issue()
	if err != nil {
		return "", domain.WrapError(domain.ErrCodeInternal, "no se pudo iniciar la autenticación", err)
	}
	return uc.provider.AuthURL(state), nil
}

// GoogleCallback finishes the federated handshake: the state parameter must
// verify before any provider call, then the code is exchanged for a profile
// and the account is created or linked by Google ID first, email second.
func (uc *UseCase) GoogleCallback(ctx context.Context, state, code string) (*AuthResult, error) {
	if err := uc.states.Verify(state); err != nil {
		uc.logger.Warn("google callback rejected", zap.Error(err))
		return nil, domain.WrapError(domain.ErrCodeUnauthorized, "Solicitud de autenticación no válida", err)
	}
	if code == "" {
		return nil, domain.Validation("Código de autorización faltante")
	}

	profile, err := uc.provider.Exchange(ctx, code)
	if err != nil {
		uc.logger.Error("google exchange failed", zap.Error(err))
		return nil, domain.WrapError(domain.ErrCodeUnauthorized, "Error al autenticar con Google", err)
	}

	user, err := uc.createOrLinkFederated(ctx, profile)
	if err != nil {
		return nil, err
	}
	if !user.Active {
		return nil, domain.ErrInactiveUser
	}
	return uc.finishLogin(ctx, user)
}

func (uc *UseCase) createOrLinkFederated(ctx context.Context, profile *oauth.Profile) (*domain.User, error) {
	user, err := uc.users.GetByGoogleID(ctx, profile.GoogleID)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	// Same email, no Google link yet: merge instead of duplicating.
	user, err = uc.users.GetByEmail(ctx, normalizeEmail(profile.Email))
	if err == nil {
		user.GoogleID = profile.GoogleID
		if err := uc.users.Update(ctx, user); err != nil {
			return nil, err
		}
		uc.logger.Info("google identity linked", zap.String("user_id", user.ID))
		return user, nil
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	now := time.Now()
	user = &domain.User{
		ID:          uuid.NewString(),
		Name:        profile.Name,
		Email:       normalizeEmail(profile.Email),
		GoogleID:    profile.GoogleID,
		Role:        domain.RoleUser,
		Active:      true,
		Preferences: domain.DefaultPreferences(),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.users.Create(ctx, user); err != nil {
		return nil, err
	}
	uc.logger.Info("user registered via google", zap.String("user_id", user.ID))
	return user, nil
}

func (uc *UseCase) finishLogin(ctx context.Context, user *domain.User) (*AuthResult, error) {
	pair, err := uc.issuer.Issue(user)
	if err != nil {
		return nil, domain.WrapError(domain.ErrCodeInternal, "no se pudieron generar los tokens", err)
	}

	if err := uc.users.TouchLastLogin(ctx, user.ID); err != nil {
		uc.logger.Warn("failed to update last login", zap.String("user_id", user.ID), zap.Error(err))
	} else {
		now := time.Now()
		user.LastLogin = &now
	}

	return &AuthResult{User: user, Tokens: pair}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
