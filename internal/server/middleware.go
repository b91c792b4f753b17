package server

import (
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/rasoihq/kitchen-service/internal/auth"
	"github.com/rasoihq/kitchen-service/internal/model"
	"github.com/rasoihq/kitchen-service/internal/server/respond"
	"github.com/rasoihq/kitchen-service/pkg/logger"
)

// Authenticate verifies the bearer token and places the session identity on
// the request context.
func Authenticate(tokens *auth.TokenManager, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			respond.Error(w, http.StatusUnauthorized, "missing bearer token")
			return
		}

		claims, err := tokens.Parse(token)
		if err != nil {
			respond.Error(w, http.StatusUnauthorized, "invalid or expired token")
			return
		}

		ctx := auth.WithUser(r.Context(), claims.Subject, model.Role(claims.Role))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequestLogger logs method, path, and latency for every request.
func RequestLogger(log logger.ZapLogger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Debug("http request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Duration("took", time.Since(start)),
		)
	})
}
