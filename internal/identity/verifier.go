package identity

import "context"

// Verifier maps a bearer credential to a verified email address.
// Verification failure is terminal for the request; there are no retries.
type Verifier interface {
	Verify(ctx context.Context, token string) (email string, err error)
}
