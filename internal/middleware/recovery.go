package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/BlurryShady/gear-store-frontend/internal/httputil"
	"github.com/BlurryShady/gear-store-frontend/internal/logger"
)

// Recovery recovers from panics and answers with the storefront's
// standard error envelope instead of crashing the process. The panic is
// logged through the request-scoped logger when one is mounted.
func Recovery(l *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					reqLogger := logger.FromContext(r.Context())
					if reqLogger == slog.Default() {
						reqLogger = l
					}
					reqLogger.ErrorContext(r.Context(), "panic recovered",
						slog.Any("panic", rec),
						slog.String("stack", string(debug.Stack())),
						slog.String("method", r.Method),
						slog.String("path", r.URL.Path),
					)

					httputil.WriteJSON(w, http.StatusInternalServerError, httputil.Response{
						Error: &httputil.ErrorResponse{
							Code:      "INTERNAL_ERROR",
							Message:   "an internal error occurred",
							RequestID: logger.CorrelationIDFromContext(r.Context()),
						},
					})
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
