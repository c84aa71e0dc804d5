package webhook

import (
	"net/http"

	"github.com/dvcrn/gitlab-api-client/internal/logger"
)

// Middleware rejects requests whose secret token does not verify,
// responding 401 Unauthorized and logging the reject. Requests that verify
// pass through untouched.
func Middleware(v *Verifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if err := v.Verify(r.Header); err != nil {
				logger.Get().Warn().
					Err(err).
					Str("method", r.Method).
					Str("url", r.URL.String()).
					Str("remote_addr", r.RemoteAddr).
					Msg("Rejected webhook call")
				http.Error(w, "invalid secret token", http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
