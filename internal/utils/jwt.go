package utils // package utils provides helper functions for token creation and password hashing

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5" // JWT library for creating and parsing signed tokens
)

// AuthToken represents a signed JWT along with its expiry. The Token field
// contains the serialized JWT string. Exp stores the UTC expiration time.
// Tokens are minted at register/login and sent back in the Authorization
// header on protected requests.
type AuthToken struct {
	Token string    // the serialized JWT string
	Exp   time.Time // the UTC expiration time
}

// Identity is the decoded content of a verified auth token: who the caller
// is. It is deliberately free of any HTTP-framework types so verification
// stays a pure function of (secret, token).
type Identity struct {
	UserID uint64
	Email  string
	Name   string
}

// ErrInvalidToken is returned by ParseAuthToken for any token that cannot
// be accepted: bad signature, malformed structure, wrong algorithm or past
// expiry. Callers do not need to distinguish between those cases.
var ErrInvalidToken = errors.New("invalid or expired token")

// NewAuthToken builds and signs an HS256 JWT for a user. It takes the
// signing secret, the user's ID, email and name, and a TTL in minutes. The
// JWT carries the subject (sub), email, name, expiration (exp) and issued
// at (iat) claims. There is no server-side state: expiry is the only
// invalidation mechanism.
func NewAuthToken(secret string, userID uint64, email, name string, ttlMin int) (AuthToken, error) {
	exp := time.Now().UTC().Add(time.Duration(ttlMin) * time.Minute)
	claims := jwt.MapClaims{
		"sub":   strconv.FormatUint(userID, 10),
		"email": email,
		"name":  name,
		"exp":   exp.Unix(),
		"iat":   time.Now().UTC().Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return AuthToken{}, err
	}
	return AuthToken{Token: signed, Exp: exp}, nil
}

// ParseAuthToken verifies a raw token string against the secret and returns
// the identity it encodes. Signature, algorithm and expiry are all checked
// by the jwt library; any failure collapses into ErrInvalidToken.
func ParseAuthToken(secret, raw string) (Identity, error) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		// Reject tokens signed with anything but HMAC.
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		return Identity{}, ErrInvalidToken
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return Identity{}, ErrInvalidToken
	}

	var id Identity
	switch sub := claims["sub"].(type) {
	case string:
		n, err := strconv.ParseUint(sub, 10, 64)
		if err != nil {
			return Identity{}, ErrInvalidToken
		}
		id.UserID = n
	case float64:
		// Numeric claims decode as float64.
		id.UserID = uint64(sub)
	default:
		return Identity{}, ErrInvalidToken
	}
	if v, ok := claims["email"].(string); ok {
		id.Email = v
	}
	if v, ok := claims["name"].(string); ok {
		id.Name = v
	}
	return id, nil
}
