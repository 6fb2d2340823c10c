package identity

import (
	"context"
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

// HMACVerifier validates HS256-signed tokens carrying an email claim.
// It exists for local development and tests, where minting real Firebase
// ID tokens is impractical. Selected with AUTH_MODE=hmac.
type HMACVerifier struct {
	secret []byte
}

func NewHMACVerifier(secret string) *HMACVerifier {
	return &HMACVerifier{secret: []byte(secret)}
}

type emailClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

func (v *HMACVerifier) Verify(_ context.Context, token string) (string, error) {
	claims := &emailClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return v.secret, nil
	})
	if err != nil {
		return "", err
	}
	if !tkn.Valid || claims.Email == "" {
		return "", errors.New("invalid token")
	}
	return claims.Email, nil
}

// Sign mints a token for the given email. Test helper; not used by the server.
func (v *HMACVerifier) Sign(email string) (string, error) {
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, &emailClaims{Email: email})
	return t.SignedString(v.secret)
}

var _ Verifier = (*HMACVerifier)(nil)
