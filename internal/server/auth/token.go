// Package auth implements the session gate: HS256 token issue and
// verification, the session cookie, and the HTTP middleware that attaches
// a verified identity to the request context.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrNoToken means no credential was presented.
	ErrNoToken = errors.New("no token")
	// ErrInvalidToken covers every present-but-unusable credential:
	// bad signature, foreign secret, wrong algorithm, malformed or expired.
	ErrInvalidToken = errors.New("invalid token")
)

// Identity is the trusted subject reconstructed from a verified token.
type Identity struct {
	SubjectID string
	Username  string
}

// Claims is the signed token payload: {id, username, iat, exp}.
type Claims struct {
	UserID   string `json:"id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// IssueToken signs identity into an HS256 token valid for ttl.
func IssueToken(identity Identity, secret []byte, ttl time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		UserID:   identity.SubjectID,
		Username: identity.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	})

	return token.SignedString(secret)
}

// VerifyAndExtract validates raw and returns the identity it carries.
// The error is always nil, ErrNoToken or ErrInvalidToken.
func VerifyAndExtract(raw string, secret []byte) (Identity, error) {
	if raw == "" {
		return Identity{}, ErrNoToken
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return secret, nil
	}, jwt.WithExpirationRequired())
	if err != nil || !token.Valid {
		return Identity{}, ErrInvalidToken
	}

	if claims.UserID == "" || claims.Username == "" {
		return Identity{}, ErrInvalidToken
	}

	return Identity{SubjectID: claims.UserID, Username: claims.Username}, nil
}
