package auth

import (
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Credential identifies a signed-in operator
type Credential struct {
	Token     string
	Username  string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// NewCredential creates a credential for token. When token is a JWT its iat, exp
// and name claims are used; otherwise the credential lives for fallbackTTL.
// The signature is not checked: the console is not the token's audience.
func NewCredential(token, username string, now time.Time, fallbackTTL time.Duration) Credential {
	cred := Credential{
		Token:     token,
		Username:  username,
		IssuedAt:  now,
		ExpiresAt: now.Add(fallbackTTL),
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return cred
	}

	if iat, err := claims.GetIssuedAt(); err == nil && iat != nil {
		cred.IssuedAt = iat.Time
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		cred.ExpiresAt = exp.Time
	} else {
		cred.ExpiresAt = cred.IssuedAt.Add(fallbackTTL)
	}
	if name, ok := claims["name"].(string); ok && strings.TrimSpace(name) != "" {
		cred.Username = name
	}
	return cred
}

// Valid reports whether the credential authorizes requests at now
func (c Credential) Valid(now time.Time) bool {
	if c.Token == "" {
		return false
	}
	return c.ExpiresAt.IsZero() || now.Before(c.ExpiresAt)
}
