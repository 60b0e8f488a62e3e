package auth

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/spec-kit/dispatch-service/internal/domain"
)

// Identity is what a bearer token resolves to. Role is carried as-is;
// an unrecognized role still counts as authenticated and is rejected
// later by the permission checks.
type Identity struct {
	Role  domain.Role
	Email string
	Name  string
	ID    string
}

// TokenDecoder turns a raw bearer token into an Identity.
// Any decode failure means "no role", never a panic or HTTP error.
type TokenDecoder interface {
	Decode(token string) (*Identity, error)
}

// TokenManager issues and validates HS256 JWTs.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenManager builds a new manager.
func NewTokenManager(secret string, ttlMinutes int) *TokenManager {
	if ttlMinutes <= 0 {
		ttlMinutes = 60
	}
	return &TokenManager{secret: []byte(secret), ttl: time.Duration(ttlMinutes) * time.Minute}
}

// Claims describes the JWT payload.
type Claims struct {
	Role  string `json:"role"`
	Email string `json:"email,omitempty"`
	Name  string `json:"name,omitempty"`
	jwt.RegisteredClaims
}

// GenerateToken builds and signs a JWT for the user.
func (tm *TokenManager) GenerateToken(user *domain.User) (string, time.Time, error) {
	expiresAt := time.Now().Add(tm.ttl)
	claims := &Claims{
		Role:  string(user.Role),
		Email: user.Email,
		Name:  user.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(tm.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

// Decode validates the signature and expiry and returns the identity.
func (tm *TokenManager) Decode(tokenStr string) (*Identity, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return tm.secret, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, errors.New("invalid token claims")
	}
	if claims.Role == "" {
		return nil, errors.New("token carries no role")
	}
	return &Identity{
		Role:  domain.Role(claims.Role),
		Email: claims.Email,
		Name:  claims.Name,
		ID:    claims.Subject,
	}, nil
}

// LegacyDecoder reads the predecessor system's unsigned tokens:
// base64(JSON {role, email, name, id}). No signature, no expiry.
// Kept only for migration parity; not suitable for production.
type LegacyDecoder struct{}

type legacyPayload struct {
	Role  string `json:"role"`
	Email string `json:"email"`
	Name  string `json:"name"`
	ID    string `json:"id"`
}

// Decode base64-decodes and JSON-parses the token.
func (LegacyDecoder) Decode(tokenStr string) (*Identity, error) {
	raw, err := base64.StdEncoding.DecodeString(tokenStr)
	if err != nil {
		raw, err = base64.RawStdEncoding.DecodeString(tokenStr)
		if err != nil {
			return nil, err
		}
	}

	var payload legacyPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, err
	}
	if payload.Role == "" {
		return nil, errors.New("token carries no role")
	}
	return &Identity{
		Role:  domain.Role(payload.Role),
		Email: payload.Email,
		Name:  payload.Name,
		ID:    payload.ID,
	}, nil
}
