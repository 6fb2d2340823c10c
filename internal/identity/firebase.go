package identity

import (
	"context"
	"encoding/base64"
	"errors"
	"time"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"
)

// FirebaseVerifier validates Firebase ID tokens and extracts the verified
// email claim.
type FirebaseVerifier struct {
	client  *auth.Client
	timeout time.Duration
}

// NewFirebaseVerifier builds a verifier from a base64-encoded service
// account JSON, matching how the credential is delivered via environment.
func NewFirebaseVerifier(ctx context.Context, serviceAccountB64 string, timeout time.Duration) (*FirebaseVerifier, error) {
	if serviceAccountB64 == "" {
		return nil, errors.New("firebase service account is not configured")
	}
	creds, err := base64.StdEncoding.DecodeString(serviceAccountB64)
	if err != nil {
		return nil, err
	}
	app, err := firebase.NewApp(ctx, nil, option.WithCredentialsJSON(creds))
	if err != nil {
		return nil, err
	}
	client, err := app.Auth(ctx)
	if err != nil {
		return nil, err
	}
	return &FirebaseVerifier{client: client, timeout: timeout}, nil
}

func (v *FirebaseVerifier) Verify(ctx context.Context, token string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, v.timeout)
	defer cancel()

	decoded, err := v.client.VerifyIDToken(ctx, token)
	if err != nil {
		return "", err
	}
	email, _ := decoded.Claims["email"].(string)
	if email == "" {
		return "", errors.New("token carries no email claim")
	}
	return email, nil
}

var _ Verifier = (*FirebaseVerifier)(nil)
