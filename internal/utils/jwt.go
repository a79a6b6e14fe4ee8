package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/jocke0406/Back-MyM/internal/models"
)

// Claims carried by the bearer tokens issued at login.
type Claims struct {
	ID     string `json:"_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	Pseudo string `json:"pseudo"`
	jwt.RegisteredClaims
}

var ErrInvalidToken = errors.New("invalid token")

// JWTManager signs and verifies HS256 tokens. The secret comes from the
// configuration, not from a package-level read of the environment.
type JWTManager struct {
	secret []byte
	ttl    time.Duration
}

func NewJWTManager(secret string, ttl time.Duration) *JWTManager {
	return &JWTManager{secret: []byte(secret), ttl: ttl}
}

// Generate issues a token for the user with the given effective role.
func (m *JWTManager) Generate(u *models.User, role string) (string, error) {
	if len(m.secret) == 0 {
		return "", errors.New("jwt secret is not configured")
	}
	claims := &Claims{
		ID:     u.ID.Hex(),
		Email:  u.Email,
		Role:   role,
		Pseudo: u.Pseudo,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(m.ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// Parse validates a token string and returns its claims.
func (m *JWTManager) Parse(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// EffectiveRole elevates the configured administrator email at token-issuance
// time only; the stored role is never rewritten.
func EffectiveRole(storedRole, loginEmail, adminEmail string) string {
	if adminEmail != "" && loginEmail == adminEmail {
		return models.RoleSuperAdmin
	}
	return storedRole
}
