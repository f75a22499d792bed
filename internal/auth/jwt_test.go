// AngelaMos | 2026
// jwt_test.go

package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rossoverde/supporters/internal/config"
	"github.com/rossoverde/supporters/internal/core"
)

func TestEnsureKeyPairOnlyCreatesOnce(t *testing.T) {
	dir := t.TempDir()
	priv := filepath.Join(dir, "keys", "private.pem")
	pub := filepath.Join(dir, "keys", "public.pem")

	created, err := EnsureKeyPair(priv, pub)
	require.NoError(t, err)
	assert.True(t, created)

	created, err = EnsureKeyPair(priv, pub)
	require.NoError(t, err)
	assert.False(t, created)
}

func TestKeyIDStableForSameKey(t *testing.T) {
	dir := t.TempDir()
	priv := filepath.Join(dir, "private.pem")
	pub := filepath.Join(dir, "public.pem")
	require.NoError(t, GenerateKeyPair(priv, pub))

	cfg := config.JWTConfig{
		PrivateKeyPath:    priv,
		PublicKeyPath:     pub,
		AccessTokenExpire: time.Minute,
		Issuer:            "rossoverde",
		Audience:          "rossoverde-api",
	}
	a, err := NewJWTManager(cfg)
	require.NoError(t, err)
	b, err := NewJWTManager(cfg)
	require.NoError(t, err)

	assert.Len(t, a.KeyID(), 16)
	assert.Equal(t, a.KeyID(), b.KeyID())
}

func TestAccessTokenRoundTrip(t *testing.T) {
	m := newTestJWTManager(t)

	issued, err := m.CreateAccessToken(AccessTokenClaims{
		UserID:       "user-1",
		Email:        "tifosa@example.com",
		TokenVersion: 3,
	})
	require.NoError(t, err)

	claims, err := m.ParseAccessToken(issued.Token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "tifosa@example.com", claims.Email)
	assert.Equal(t, 3, claims.TokenVersion)
	assert.Equal(t, issued.JTI, claims.JTI)

	_, err = m.ParseAccessToken(issued.Token + "x")
	assert.ErrorIs(t, err, core.ErrTokenInvalid)
}

func TestJWKSHandlerPublishesKey(t *testing.T) {
	m := newTestJWTManager(t)

	w := httptest.NewRecorder()
	m.JWKSHandler()(w, httptest.NewRequest(http.MethodGet, "/.well-known/jwks.json", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var set struct {
		Keys []map[string]any `json:"keys"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &set))
	require.Len(t, set.Keys, 1)
	assert.Equal(t, m.KeyID(), set.Keys[0]["kid"])
	assert.NotContains(t, set.Keys[0], "d")
}

func TestRefreshTokenKeepsFamily(t *testing.T) {
	m := newTestJWTManager(t)

	fresh, err := m.CreateRefreshToken("")
	require.NoError(t, err)
	assert.NotEmpty(t, fresh.FamilyID)
	assert.Equal(t, core.HashToken(fresh.Token), fresh.Hash)

	rotated, err := m.CreateRefreshToken(fresh.FamilyID)
	require.NoError(t, err)
	assert.Equal(t, fresh.FamilyID, rotated.FamilyID)
	assert.NotEqual(t, fresh.Token, rotated.Token)
}
