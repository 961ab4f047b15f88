package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims là access token do identity provider cấp.
// Subject = identity id, Email dùng để map sang profile.
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// Manager verify (và ký cho môi trường dev) HS256 access tokens
type Manager struct {
	secret []byte
	issuer string
}

// NewManager creates new JWT manager, issuer rỗng = không check "iss"
func NewManager(secret, issuer string) *Manager {
	return &Manager{secret: []byte(secret), issuer: issuer}
}

// GenerateAccessToken ký token với sub/email, dùng cho cmsctl và tests
func (m *Manager) GenerateAccessToken(subject, email string, ttl time.Duration) (string, error) {
	if subject == "" {
		return "", errors.New("subject is required")
	}

	now := time.Now()
	claims := Claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			Issuer:    m.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// ValidateAccessToken validates and parses token
func (m *Manager) ValidateAccessToken(tokenString string) (*Claims, error) {
	claims := &Claims{}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if m.issuer != "" {
		opts = append(opts, jwt.WithIssuer(m.issuer))
	}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	}, opts...)
	if err != nil {
		return nil, err
	}

	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	if claims.Subject == "" {
		return nil, fmt.Errorf("token has no subject")
	}
	if claims.Email == "" {
		return nil, fmt.Errorf("token has no email")
	}

	return claims, nil
}
