package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"
	"github.com/hrmsuite/time-management-backend-go/internal/domain/auth"
	"github.com/hrmsuite/time-management-backend-go/internal/handler/http/response"
)

// HRAdminOnly rejects requests whose token does not carry the HR_ADMIN role.
// It assumes AuthRequired has already verified the token.
func HRAdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.Unauthorized(w, "Unauthorized")
			return
		}

		role, ok := claims["role"].(string)
		if !ok || role != string(auth.RoleHRAdmin) {
			response.Forbidden(w, "HR administrator role required")
			return
		}

		next.ServeHTTP(w, r)
	})
}
