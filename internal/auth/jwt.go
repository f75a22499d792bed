// AngelaMos | 2026
// jwt.go

package auth

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lestrrat-go/jwx/v3/jwa"
	"github.com/lestrrat-go/jwx/v3/jwk"
	"github.com/lestrrat-go/jwx/v3/jwt"

	"github.com/rossoverde/supporters/internal/config"
	"github.com/rossoverde/supporters/internal/core"
	"github.com/rossoverde/supporters/internal/middleware"
)

const (
	claimEmail   = "email"
	claimVersion = "token_version"
	claimType    = "type"
	accessType   = "access"
)

// JWTManager signs access tokens with one ES256 key. The key id is the
// key's thumbprint, so every replica loading the same PEM advertises the
// same kid.
type JWTManager struct {
	signing jwk.Key
	verify  jwk.Key
	jwks    jwk.Set
	kid     string
	config  config.JWTConfig
}

func NewJWTManager(cfg config.JWTConfig) (*JWTManager, error) {
	raw, err := os.ReadFile(cfg.PrivateKeyPath)
	if err != nil {
		return nil, fmt.Errorf("read signing key: %w", err)
	}

	signing, err := jwk.ParseKey(raw, jwk.WithPEM(true))
	if err != nil {
		return nil, fmt.Errorf("parse signing key: %w", err)
	}

	kid, err := thumbprintID(signing)
	if err != nil {
		return nil, err
	}
	if err := annotate(signing, kid); err != nil {
		return nil, err
	}

	verify, err := signing.PublicKey()
	if err != nil {
		return nil, fmt.Errorf("derive verification key: %w", err)
	}
	if err := verify.Set(jwk.KeyUsageKey, "sig"); err != nil {
		return nil, fmt.Errorf("mark key usage: %w", err)
	}

	set := jwk.NewSet()
	if err := set.AddKey(verify); err != nil {
		return nil, fmt.Errorf("publish verification key: %w", err)
	}

	return &JWTManager{
		signing: signing,
		verify:  verify,
		jwks:    set,
		kid:     kid,
		config:  cfg,
	}, nil
}

// EnsureKeyPair creates the key files when the private key is missing.
// It reports whether new keys were written.
func EnsureKeyPair(privatePath, publicPath string) (bool, error) {
	_, err := os.Stat(privatePath)
	switch {
	case err == nil:
		return false, nil
	case !errors.Is(err, fs.ErrNotExist):
		return false, fmt.Errorf("stat signing key: %w", err)
	}

	for _, p := range []string{privatePath, publicPath} {
		if mkErr := os.MkdirAll(filepath.Dir(p), 0o700); mkErr != nil {
			return false, fmt.Errorf("create key dir: %w", mkErr)
		}
	}
	if err := GenerateKeyPair(privatePath, publicPath); err != nil {
		return false, err
	}
	return true, nil
}

// GenerateKeyPair writes a fresh P-256 key pair as PEM files.
func GenerateKeyPair(privatePath, publicPath string) error {
	ecKey, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		return fmt.Errorf("generate key: %w", err)
	}

	private, err := jwk.Import(ecKey)
	if err != nil {
		return fmt.Errorf("import key: %w", err)
	}
	public, err := private.PublicKey()
	if err != nil {
		return fmt.Errorf("derive public key: %w", err)
	}

	files := []struct {
		path string
		key  jwk.Key
		mode os.FileMode
	}{
		{privatePath, private, 0o600},
		{publicPath, public, 0o644},
	}
	for _, f := range files {
		pem, encErr := jwk.Pem(f.key)
		if encErr != nil {
			return fmt.Errorf("encode %s: %w", f.path, encErr)
		}
		//nolint:gosec // G306: the public half is meant to be readable
		if writeErr := os.WriteFile(f.path, pem, f.mode); writeErr != nil {
			return fmt.Errorf("write %s: %w", f.path, writeErr)
		}
	}
	return nil
}

func thumbprintID(key jwk.Key) (string, error) {
	sum, err := key.Thumbprint(crypto.SHA256)
	if err != nil {
		return "", fmt.Errorf("thumbprint signing key: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(sum)[:16], nil
}

func annotate(key jwk.Key, kid string) error {
	if err := key.Set(jwk.AlgorithmKey, jwa.ES256()); err != nil {
		return fmt.Errorf("set algorithm: %w", err)
	}
	if err := key.Set(jwk.KeyIDKey, kid); err != nil {
		return fmt.Errorf("set key id: %w", err)
	}
	return nil
}

type AccessTokenClaims struct {
	UserID       string
	Email        string
	TokenVersion int
}

// IssuedToken is a signed access token with the identifiers needed to revoke
// it later.
type IssuedToken struct {
	Token     string
	JTI       string
	ExpiresAt time.Time
}

func (m *JWTManager) AccessTokenTTL() time.Duration {
	return m.config.AccessTokenExpire
}

func (m *JWTManager) KeyID() string {
	return m.kid
}

func (m *JWTManager) CreateAccessToken(
	claims AccessTokenClaims,
) (*IssuedToken, error) {
	issued := time.Now()
	expires := issued.Add(m.config.AccessTokenExpire)
	jti := uuid.NewString()

	token, err := jwt.NewBuilder().
		JwtID(jti).
		Issuer(m.config.Issuer).
		Audience([]string{m.config.Audience}).
		Subject(claims.UserID).
		IssuedAt(issued).
		NotBefore(issued).
		Expiration(expires).
		Claim(claimEmail, claims.Email).
		Claim(claimVersion, claims.TokenVersion).
		Claim(claimType, accessType).
		Build()
	if err != nil {
		return nil, fmt.Errorf("build access token: %w", err)
	}

	signed, err := jwt.Sign(token, jwt.WithKey(jwa.ES256(), m.signing))
	if err != nil {
		return nil, fmt.Errorf("sign access token: %w", err)
	}

	return &IssuedToken{
		Token:     string(signed),
		JTI:       jti,
		ExpiresAt: expires.Truncate(time.Second),
	}, nil
}

// ParseAccessToken checks signature, issuer, audience and lifetime. It does
// not consult the blacklist or the account's token version.
func (m *JWTManager) ParseAccessToken(
	raw string,
) (*middleware.AccessTokenClaims, error) {
	token, err := jwt.Parse(
		[]byte(raw),
		jwt.WithKey(jwa.ES256(), m.verify),
		jwt.WithValidate(true),
		jwt.WithIssuer(m.config.Issuer),
		jwt.WithAudience(m.config.Audience),
	)
	if err != nil {
		if expired(err) {
			return nil, fmt.Errorf("parse access token: %w", core.ErrTokenExpired)
		}
		return nil, fmt.Errorf("parse access token: %w", core.ErrTokenInvalid)
	}

	var kind, email string
	var version float64
	if token.Get(claimType, &kind) != nil || kind != accessType {
		return nil, rejectClaim(claimType)
	}
	if token.Get(claimEmail, &email) != nil {
		return nil, rejectClaim(claimEmail)
	}
	if token.Get(claimVersion, &version) != nil {
		return nil, rejectClaim(claimVersion)
	}

	subject, _ := token.Subject()
	if subject == "" {
		return nil, rejectClaim("sub")
	}
	jti, _ := token.JwtID()
	if jti == "" {
		return nil, rejectClaim("jti")
	}
	expiresAt, _ := token.Expiration()

	return &middleware.AccessTokenClaims{
		UserID:       subject,
		Email:        email,
		TokenVersion: int(version),
		JTI:          jti,
		ExpiresAt:    expiresAt,
	}, nil
}

func rejectClaim(name string) error {
	return fmt.Errorf("parse access token: bad %s claim: %w", name, core.ErrTokenInvalid)
}

// jwx reports a failed exp check as `"exp" not satisfied`.
func expired(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "exp") && strings.Contains(msg, "not satisfied")
}

// JWKSHandler serves the verification key set.
func (m *JWTManager) JWKSHandler() http.HandlerFunc {
	body, err := json.Marshal(m.jwks)
	return func(w http.ResponseWriter, _ *http.Request) {
		if err != nil {
			core.InternalServerError(w, err)
			return
		}
		w.Header().Set("Content-Type", "application/jwk-set+json")
		w.Header().Set("Cache-Control", "public, max-age=3600")
		_, _ = w.Write(body)
	}
}

type RefreshTokenData struct {
	Token     string
	Hash      string
	ExpiresAt time.Time
	FamilyID  string
}

// CreateRefreshToken mints an opaque refresh token. An empty familyID starts
// a new rotation family.
func (m *JWTManager) CreateRefreshToken(familyID string) (*RefreshTokenData, error) {
	token, err := core.GenerateRefreshToken()
	if err != nil {
		return nil, fmt.Errorf("generate refresh token: %w", err)
	}
	if familyID == "" {
		familyID = uuid.NewString()
	}

	return &RefreshTokenData{
		Token:     token,
		Hash:      core.HashToken(token),
		ExpiresAt: time.Now().Add(m.config.RefreshTokenExpire),
		FamilyID:  familyID,
	}, nil
}
