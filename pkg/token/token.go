package token

import (
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// RoleType set member role
type RoleType string

const (
	// RoleAdmin is the admin role
	RoleAdmin RoleType = "admin"
	// RoleModerator is the moderator role
	RoleModerator RoleType = "moderator"
	// RoleUser is the user role
	RoleUser RoleType = "user"
)

// Claims structure for custom claims in JWT
type Claims struct {
	MemberID string `json:"user_id"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

var (
	// ErrInvalidToken token 無法解析或簽章錯誤
	ErrInvalidToken = errors.New("invalid token")

	mu              sync.RWMutex
	jwtSecret       = []byte("secure_secret_key")
	tokenExpiration = 60 * time.Minute
)

// SetSecret 由設定檔覆蓋簽章金鑰
func SetSecret(secret string) {
	if secret == "" {
		return
	}
	mu.Lock()
	defer mu.Unlock()
	jwtSecret = []byte(secret)
}

// SetExpiration 由設定檔覆蓋 token 有效期
func SetExpiration(d time.Duration) {
	if d <= 0 {
		return
	}
	mu.Lock()
	defer mu.Unlock()
	tokenExpiration = d
}

func secret() []byte {
	mu.RLock()
	defer mu.RUnlock()
	return jwtSecret
}

func expiration() time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return tokenExpiration
}

// GenerateJWT generates a JWT token
func GenerateJWT(memberID, role, issuer string) (string, error) {
	now := time.Now()
	claims := Claims{
		MemberID: memberID,
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(expiration())),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    issuer,
			Subject:   memberID,
		},
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(secret())
}

// ParseJWT parses a JWT and extracts the Claims
func ParseJWT(tokenStr string) (*Claims, error) {
	t, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secret(), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := t.Claims.(*Claims)
	if !ok || !t.Valid || claims.MemberID == "" {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// ExtractBearer 取出 "Bearer xxx" 的 token
func ExtractBearer(header string) (string, bool) {
	const prefix = "Bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", false
	}
	t := strings.TrimSpace(header[len(prefix):])
	return t, t != ""
}
