// Package auth provides JWT issuance/verification and password hashing.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Token-related errors.
var (
	ErrTokenExpired    = errors.New("token has expired")
	ErrTokenMalformed  = errors.New("token is malformed")
	ErrTokenInvalidSig = errors.New("token signature is invalid")
	ErrTokenInvalid    = errors.New("token is invalid")
)

// TokenConfig holds the signing parameters for an Issuer.
type TokenConfig struct {
	// Secret is the HMAC signing key (HS256).
	Secret string

	// TTL is the token lifetime from issuance.
	TTL time.Duration

	// Issuer and Audience are stamped into issued tokens when non-empty.
	Issuer   string
	Audience string

	// StrictClaims enables issuer/audience validation on Verify. When false,
	// tokens are accepted regardless of their iss/aud claims; validity is a
	// function of signature and expiry only.
	StrictClaims bool
}

// Issuer mints and verifies signed identity tokens. Tokens carry no server
// state: once issued, a token is valid until its natural expiry.
type Issuer struct {
	secret       []byte
	ttl          time.Duration
	issuer       string
	audience     string
	strictClaims bool
}

func NewIssuer(cfg TokenConfig) *Issuer {
	return &Issuer{
		secret:       []byte(cfg.Secret),
		ttl:          cfg.TTL,
		issuer:       cfg.Issuer,
		audience:     cfg.Audience,
		strictClaims: cfg.StrictClaims,
	}
}

// Issue produces a compact HS256 token with subject = userID and an absolute
// expiry of now + TTL.
func (i *Issuer) Issue(userID string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
	}
	if i.issuer != "" {
		claims.Issuer = i.issuer
	}
	if i.audience != "" {
		claims.Audience = jwt.ClaimStrings{i.audience}
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(i.secret)
}

// Verify parses and validates a token, returning the subject user id.
// It fails if the signature does not match or the token has expired.
// Issuer/audience are checked only when StrictClaims is set.
func (i *Issuer) Verify(tokenString string) (string, error) {
	claims := &jwt.RegisteredClaims{}

	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if i.strictClaims {
		if i.issuer != "" {
			opts = append(opts, jwt.WithIssuer(i.issuer))
		}
		if i.audience != "" {
			opts = append(opts, jwt.WithAudience(i.audience))
		}
	}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return i.secret, nil
	}, opts...)
	if err != nil {
		return "", mapJWTError(err)
	}
	if !token.Valid || claims.Subject == "" {
		return "", ErrTokenInvalid
	}

	return claims.Subject, nil
}

// mapJWTError maps jwt/v5 errors to this package's error values.
func mapJWTError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return ErrTokenExpired
	case errors.Is(err, jwt.ErrTokenMalformed):
		return ErrTokenMalformed
	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrSignatureInvalid):
		return ErrTokenInvalidSig
	default:
		return ErrTokenInvalid
	}
}
