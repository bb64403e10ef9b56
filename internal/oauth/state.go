package oauth

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"strings"
	"time"

	"github.com/presenta/backend/domain"
)

// State errors map to the same redirect-to-error-page handling as any other
// callback failure.
var (
	ErrInvalidState = domain.NewError(domain.ErrCodeInvalidToken, "Estado de autenticación inválido")
	ErrStateExpired = domain.NewError(domain.ErrCodeExpiredToken, "Estado de autenticación expirado")
)

// StateManager issues and verifies the anti-forgery state parameter. The
// state is self-contained (nonce + expiry, HMAC signed) so no pending-login
// record needs to be held server-side between redirect and callback.
type StateManager struct {
	secret []byte
	ttl    time.Duration
}

func NewStateManager(secret string, ttl time.Duration) *StateManager {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &StateManager{secret: []byte(secret), ttl: ttl}
}

type statePayload struct {
	Nonce     string `json:"n"`
	IssuedAt  int64  `json:"iat"`
	ExpiresAt int64  `json:"exp"`
}

// Issue creates a signed state token valid for the manager TTL.
func (sm *StateManager) Issue() (string, error) {
	nonce := make([]byte, 16)
	if _, err := rand.Read(nonce); err != nil {
		return "", domain.WrapError(domain.ErrCodeInternal, "failed to generate state nonce", err)
	}

	now := time.Now()
	payload, err := json.Marshal(statePayload{
		Nonce:     base64.RawURLEncoding.EncodeToString(nonce),
		IssuedAt:  now.Unix(),
		ExpiresAt: now.Add(sm.ttl).Unix(),
	})
	if err != nil {
		return "", domain.WrapError(domain.ErrCodeInternal, "failed to encode state", err)
	}

	return base64.RawURLEncoding.EncodeToString(payload) + "." + sm.sign(payload), nil
}

// Verify checks the signature and expiry of a state token returned by the
// provider callback.
func (sm *StateManager) Verify(token string) error {
	encoded, signature, ok := strings.Cut(token, ".")
	if !ok {
		return ErrInvalidState
	}

	payload, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		return ErrInvalidState
	}
	if !hmac.Equal([]byte(signature), []byte(sm.sign(payload))) {
		return ErrInvalidState
	}

	var state statePayload
	if err := json.Unmarshal(payload, &state); err != nil {
		return ErrInvalidState
	}
	if time.Now().Unix() > state.ExpiresAt {
		return ErrStateExpired
	}
	return nil
}

func (sm *StateManager) sign(payload []byte) string {
	mac := hmac.New(sha256.New, sm.secret)
	mac.Write(payload)
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}
