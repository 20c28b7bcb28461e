package http

import (
	"context"
	"net/http"
	"strings"
	"time"

	"fleetrent-backend/internal/logger"
	"fleetrent-backend/internal/security"
)

type contextKey string

const tenantIDKey contextKey = "tenant-id"

// tenantID returns the authenticated tenant for a request. Zero means the
// auth middleware did not run, which only happens on public routes.
func tenantID(ctx context.Context) int32 {
	id, _ := ctx.Value(tenantIDKey).(int32)
	return id
}

// authMiddleware validates the Bearer token and stamps the tenant id into
// the request context. Any client-supplied tenant header is discarded.
func authMiddleware(tokenMgr security.TokenManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				writeJSON(w, http.StatusUnauthorized, errorBody{Error: "authorization token is not provided"})
				return
			}

			claims, err := tokenMgr.ValidateToken(token)
			if err != nil {
				writeError(w, err)
				return
			}
			if claims.Type != security.TokenTypeAccess {
				writeError(w, security.ErrWrongTokenType)
				return
			}

			ctx := context.WithValue(r.Context(), tenantIDKey, claims.UserID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// loggingMiddleware logs one line per request.
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		logger.Debug("request handled", "method", r.Method, "path", r.URL.Path, "duration_ms", time.Since(start).Milliseconds())
	})
}
