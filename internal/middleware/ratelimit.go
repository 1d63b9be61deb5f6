package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/campusware/tuition-api/internal/handler"
	"github.com/campusware/tuition-api/internal/logging"
	"github.com/campusware/tuition-api/internal/ratelimit"
)

// RateLimit guards the public balance query with a per-student daily
// quota. The key is the caller-supplied studentNo, not the network
// address; a blank studentNo passes through unlimited and the handler's
// own not-found path deals with it. The quota decision is computed once
// and is final for the request.
func RateLimit(store ratelimit.Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			studentNo := strings.TrimSpace(r.URL.Query().Get("studentNo"))
			if studentNo == "" {
				next.ServeHTTP(w, r)
				return
			}

			d := store.CheckAndIncrement(studentNo)

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(d.Limit))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(d.Remaining))

			if !d.Allowed {
				retryAfter := int(d.RetryAfter / time.Second)
				w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
				w.Header().Set("X-RateLimit-Reset", d.ResetAt.Format(time.RFC3339))

				logging.FromContext(r.Context()).Info("query rate limited",
					"student_no", studentNo,
					"limit", d.Limit,
					"retry_after_s", retryAfter,
				)

				handler.RespondAppError(w, handler.ErrRateLimited, map[string]any{
					"limit":             d.Limit,
					"retryAfterSeconds": retryAfter,
					"resetAtUtc":        d.ResetAt.Format(time.RFC3339),
				})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
