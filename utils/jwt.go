package utils

import (
	"errors"
	"time"

	"carelink/models"

	"github.com/golang-jwt/jwt"
)

// SessionClaims are the claims carried by a session token.
type SessionClaims struct {
	Role  models.Role `json:"role"`
	Email string      `json:"email"`
	Name  string      `json:"name"`
	jwt.StandardClaims
}

// TokenIssuer signs and verifies session tokens with an HMAC secret.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenIssuer returns an issuer whose tokens expire after ttl.
func NewTokenIssuer(secret string, ttl time.Duration) *TokenIssuer {
	return &TokenIssuer{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// GenerateToken creates a signed token for sess.
func (t *TokenIssuer) GenerateToken(sess models.Session) (string, error) {
	if len(t.secret) == 0 {
		return "", errors.New("token secret is not configured")
	}
	now := t.now()
	claims := SessionClaims{
		Role:  sess.Role,
		Email: sess.Email,
		Name:  sess.Name,
		StandardClaims: jwt.StandardClaims{
			Subject:   sess.ID,
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(t.ttl).Unix(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.secret)
}

// ValidateToken parses a token string and returns its claims if it is valid.
func (t *TokenIssuer) ValidateToken(tokenString string) (*SessionClaims, error) {
	claims := &SessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		// Ensure that the token's signing method is HMAC.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return t.secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	if claims.Subject == "" {
		return nil, errors.New("token does not contain a valid 'sub' claim")
	}
	return claims, nil
}

// Session rebuilds the session identity carried by the claims.
func (c *SessionClaims) Session() models.Session {
	return models.Session{ID: c.Subject, Role: c.Role, Email: c.Email, Name: c.Name}
}
