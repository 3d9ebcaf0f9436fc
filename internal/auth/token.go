package auth

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/finlight/dashboard-be/internal/models"
)

// ErrMissingToken indicates no token was presented at all.
var ErrMissingToken = errors.New("missing session token")

// ErrInvalidToken covers bad signature, bad shape, and expiry. Callers must
// treat it exactly like no session and clear the cookie that carried it.
var ErrInvalidToken = errors.New("invalid session token")

// clockSkewLeeway is applied at verification only, never at issuance.
const clockSkewLeeway = 5 * time.Second

// SessionClaims is the decoded content of a session token. Values are
// immutable once issued; rotation produces a new value.
type SessionClaims struct {
	UserID       string
	Role         models.Role
	SessionStart time.Time
	IssuedAt     time.Time
	ExpiresAt    time.Time
}

// wireClaims is the JWT shape: iat/exp/sub are registered claims so standard
// verifiers accept the token; role and sessionStart ride as custom claims.
type wireClaims struct {
	Role         string `json:"role"`
	SessionStart int64  `json:"sessionStart"`
	jwt.RegisteredClaims
}

// TokenCodec signs and verifies session tokens with a server-held HS256 key.
type TokenCodec struct {
	secret   []byte
	duration time.Duration
}

// NewTokenCodec creates a codec. Key length is validated by config before we
// get here.
func NewTokenCodec(secret string, duration time.Duration) *TokenCodec {
	return &TokenCodec{secret: []byte(secret), duration: duration}
}

// Issue mints a fresh session: sessionStart and iat are now, exp is now plus
// the configured session duration.
func (c *TokenCodec) Issue(userID string, role models.Role, now time.Time) (SessionClaims, string, error) {
	claims := SessionClaims{
		UserID:       userID,
		Role:         role,
		SessionStart: now,
		IssuedAt:     now,
		ExpiresAt:    now.Add(c.duration),
	}
	token, err := c.Sign(claims)
	if err != nil {
		return SessionClaims{}, "", err
	}
	return claims, token, nil
}

// Sign serializes and signs the given claims. Rotation uses this directly so
// the policy can preserve sessionStart while moving exp.
func (c *TokenCodec) Sign(claims SessionClaims) (string, error) {
	wc := wireClaims{
		Role:         string(claims.Role),
		SessionStart: claims.SessionStart.Unix(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   claims.UserID,
			IssuedAt:  jwt.NewNumericDate(claims.IssuedAt),
			ExpiresAt: jwt.NewNumericDate(claims.ExpiresAt),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, wc).SignedString(c.secret)
}

// Decode verifies signature and expiry (with leeway) and structurally
// validates the claim shape. A token that fails any check is never trusted
// for role decisions.
func (c *TokenCodec) Decode(token string) (SessionClaims, error) {
	if strings.TrimSpace(token) == "" {
		return SessionClaims{}, ErrMissingToken
	}

	var wc wireClaims
	parsed, err := jwt.ParseWithClaims(token, &wc,
		func(t *jwt.Token) (any, error) { return c.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithLeeway(clockSkewLeeway),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !parsed.Valid {
		return SessionClaims{}, ErrInvalidToken
	}

	role := models.Role(wc.Role)
	if wc.Subject == "" || !role.Valid() || wc.IssuedAt == nil || wc.ExpiresAt == nil || wc.SessionStart == 0 {
		return SessionClaims{}, ErrInvalidToken
	}
	sessionStart := time.Unix(wc.SessionStart, 0)
	if sessionStart.After(wc.ExpiresAt.Time) {
		return SessionClaims{}, ErrInvalidToken
	}

	return SessionClaims{
		UserID:       wc.Subject,
		Role:         role,
		SessionStart: sessionStart,
		IssuedAt:     wc.IssuedAt.Time,
		ExpiresAt:    wc.ExpiresAt.Time,
	}, nil
}
