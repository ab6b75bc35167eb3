package middleware

import (
	"net/http"
	"strings"

	"event-booking/pkg/utils"

	"go.uber.org/zap"
)

// Auth middleware untuk validasi JWT Bearer token
func Auth(jwtSecret string, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				utils.ResponseUnauthorized(w, "Missing authorization token")
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				utils.ResponseUnauthorized(w, "Invalid token format. Use: Bearer <token>")
				return
			}

			userID, role, err := utils.ParseAccessToken(jwtSecret, parts[1])
			if err != nil {
				logger.Warn("Invalid or expired token",
					zap.Error(err),
					zap.String("path", r.URL.Path))
				utils.ResponseUnauthorized(w, "Invalid or expired token")
				return
			}

			// Set context dengan user info dari claims
			ctx := utils.SetUserContext(r.Context(), userID, role)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Admin - middleware cek role admin (role diambil dari JWT claims,
// sudah diset oleh Auth)
func Admin(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, ok := utils.GetRoleFromContext(r.Context())
			if !ok {
				utils.ResponseUnauthorized(w, "Authentication required")
				return
			}

			if role != "admin" {
				userID, _ := utils.GetUserIDFromContext(r.Context())
				logger.Warn("Admin check: non-admin access attempt",
					zap.String("user_id", userID.String()),
					zap.String("path", r.URL.Path))
				utils.ResponseForbidden(w, "Admin access required")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
