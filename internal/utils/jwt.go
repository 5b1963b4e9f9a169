package utils // package utils provides helpers for issuing and parsing flow tokens

import (
    "errors"
    "fmt"
    "time"

    "github.com/golang-jwt/jwt/v5"
)

// FlowToken is a signed JWT that addresses one booking flow.  The Token
// field contains the JWT string and Exp its expiry.
type FlowToken struct {
    Token string    `json:"token"`
    Exp   time.Time `json:"expires_at"`
}

// ErrInvalidToken is returned by ParseFlowToken for malformed, expired or
// wrongly signed tokens.
var ErrInvalidToken = errors.New("invalid flow token")

// NewFlowToken builds and signs an HS256 JWT whose subject is the flow id.
// The token expires ttl after now.
func NewFlowToken(secret, flowID string, ttl time.Duration, now time.Time) (FlowToken, error) {
    exp := now.UTC().Add(ttl)
    claims := jwt.RegisteredClaims{
        Subject:   flowID,
        IssuedAt:  jwt.NewNumericDate(now.UTC()),
        ExpiresAt: jwt.NewNumericDate(exp),
    }
    signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
    if err != nil {
        return FlowToken{}, fmt.Errorf("sign flow token: %w", err)
    }
    return FlowToken{Token: signed, Exp: exp}, nil
}

// ParseFlowToken validates raw and returns the flow id it carries.  Only
// HMAC signatures are accepted.
func ParseFlowToken(secret, raw string) (string, error) {
    var claims jwt.RegisteredClaims
    tok, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (interface{}, error) {
        if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
            return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
        }
        return []byte(secret), nil
    })
    if err != nil || !tok.Valid {
        return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
    }
    if claims.Subject == "" {
        return "", fmt.Errorf("%w: missing subject", ErrInvalidToken)
    }
    return claims.Subject, nil
}
