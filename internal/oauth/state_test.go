package oauth

import (
	"encoding/base64"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestStateRoundTrip(t *testing.T) {
	sm := NewStateManager("state-secret", 10*time.Minute)

	state, err := sm.Issue()
	require.NoError(t, err)
	require.Contains(t, state, ".")

	require.NoError(t, sm.Verify(state))
}

func TestStateUniquePerIssue(t *testing.T) {
	sm := NewStateManager("state-secret", 10*time.Minute)

	a, err := sm.Issue()
	require.NoError(t, err)
	b, err := sm.Issue()
	require.NoError(t, err)
	require.NotEqual(t, a, b)
}

func TestStateTamperedPayloadRejected(t *testing.T) {
	sm := NewStateManager("state-secret", 10*time.Minute)

	state, err := sm.Issue()
	require.NoError(t, err)

	encoded, signature, ok := strings.Cut(state, ".")
	require.True(t, ok)

	payload, err := base64.RawURLEncoding.DecodeString(encoded)
	require.NoError(t, err)

	var decoded statePayload
	require.NoError(t, json.Unmarshal(payload, &decoded))
	decoded.ExpiresAt = time.Now().Add(24 * time.Hour).Unix()

	forged, err := json.Marshal(decoded)
	require.NoError(t, err)

	tampered := base64.RawURLEncoding.EncodeToString(forged) + "." + signature
	require.ErrorIs(t, sm.Verify(tampered), ErrInvalidState)
}

func TestStateWrongSecretRejected(t *testing.T) {
	issuer := NewStateManager("state-secret", 10*time.Minute)
	verifier := NewStateManager("other-secret", 10*time.Minute)

	state, err := issuer.Issue()
	require.NoError(t, err)
	require.ErrorIs(t, verifier.Verify(state), ErrInvalidState)
}

func TestStateExpired(t *testing.T) {
	sm := NewStateManager("state-secret", 10*time.Minute)

	payload, err := json.Marshal(statePayload{
		Nonce:     "n",
		IssuedAt:  time.Now().Add(-time.Hour).Unix(),
		ExpiresAt: time.Now().Add(-30 * time.Minute).Unix(),
	})
	require.NoError(t, err)

	expired := base64.RawURLEncoding.EncodeToString(payload) + "." + sm.sign(payload)
	require.ErrorIs(t, sm.Verify(expired), ErrStateExpired)
}

func TestStateGarbageRejected(t *testing.T) {
	sm := NewStateManager("state-secret", 10*time.Minute)
	require.ErrorIs(t, sm.Verify(""), ErrInvalidState)
	require.ErrorIs(t, sm.Verify("no-dot-here"), ErrInvalidState)
	require.ErrorIs(t, sm.Verify("!!!.###"), ErrInvalidState)
}
