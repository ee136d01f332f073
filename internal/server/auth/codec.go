// Package auth implements the signed session-token codec. Tokens are compact
// HS256 JWTs: base64url(header).base64url(payload).base64url(signature), no
// padding, signature = HMAC-SHA256 over the first two segments. The wire
// format must stay bit-compatible with tokens already held by clients.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dstepanenko/storefront/internal/common"
)

// Claims is the identity payload embedded in a session token: the account
// email plus the profile fields, with the registered expiry claim. The JSON
// keys are part of the wire format.
type Claims struct {
	Email     string `json:"e-mail"`
	Firstname string `json:"firstname"`
	Lastname  string `json:"lastname"`
	Gender    string `json:"gender"`
	Birthday  int64  `json:"birthday"`
	jwt.RegisteredClaims
}

// Codec signs and verifies session tokens with a single process-wide secret.
// The secret is read-only after construction, so a Codec is safe for
// concurrent use.
type Codec struct {
	secret []byte
}

func NewCodec(secret []byte) *Codec {
	return &Codec{secret: secret}
}

// Encode stamps claims with an expiry of now+ttl and returns the signed
// token. The expiry is written back into claims so the caller can reuse it,
// e.g. for the cookie expiry attribute.
func (c *Codec) Encode(claims *Claims, ttl time.Duration) (string, error) {
	claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(ttl))

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(c.secret)
}

// Decode verifies the signature and expiry of tokenString and returns its
// claims. Failures map onto the sentinel errors in internal/common:
// common.ErrInvalidSignature, common.ErrTokenExpired, and
// common.ErrTokenMalformed for everything else (wrong segment count, broken
// base64 or JSON, non-numeric expiry, unexpected signing method).
func (c *Codec) Decode(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, common.ErrTokenMalformed
		}
		return c.secret, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, common.ErrInvalidSignature
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, common.ErrTokenExpired
		default:
			return nil, common.ErrTokenMalformed
		}
	}

	if !token.Valid {
		return nil, common.ErrTokenMalformed
	}

	return claims, nil
}

// IsValid reports whether Decode would succeed. It never panics or returns
// an error, whatever the input looks like.
func (c *Codec) IsValid(tokenString string) bool {
	_, err := c.Decode(tokenString)
	return err == nil
}
