// Package webhook guards inbound GitLab webhook calls using the pre-shared
// secret token carried in the X-Gitlab-Token header.
package webhook

import (
	"errors"
	"net/http"
	"strings"

	"github.com/dvcrn/gitlab-api-client/gitlab"
)

var (
	// ErrMissingSignature means the secret token header was absent.
	ErrMissingSignature = errors.New("secret token header is required")

	// ErrInvalidSignature means the secret token header did not match.
	ErrInvalidSignature = errors.New("invalid secret token")
)

// Verifier checks inbound webhook headers against a pre-shared secret
// token. A blank secret disables verification.
type Verifier struct {
	secret string
}

// NewVerifier returns a verifier for the given secret token. Whitespace is
// trimmed; a blank secret means every call verifies.
func NewVerifier(secret string) *Verifier {
	return &Verifier{secret: strings.TrimSpace(secret)}
}

// Verify returns nil when no secret is configured or the X-Gitlab-Token
// header matches it exactly. Comparison is case-sensitive and byte-exact.
func (v *Verifier) Verify(header http.Header) error {
	if v.secret == "" {
		return nil
	}

	got := header.Get(gitlab.SecretTokenHeader)
	if got == "" {
		return ErrMissingSignature
	}
	if got != v.secret {
		return ErrInvalidSignature
	}

	return nil
}
