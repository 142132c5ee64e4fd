package middleware

import (
	"net/http"

	"github.com/dashgames/scrambledash/internal/api/apierr"
	"github.com/dashgames/scrambledash/internal/services/auth"
)

// AdminPasswordHeader carries the shared admin password
const AdminPasswordHeader = "X-Admin-Password"

// Admin gates a route behind the shared admin password
func Admin(authService *auth.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			password := r.Header.Get(AdminPasswordHeader)
			if password == "" {
				apierr.WriteError(w, apierr.NewUnauthorizedError())
				return
			}

			if err := authService.Verify(password); err != nil {
				apierr.WriteError(w, apierr.NewUnauthorizedError())
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
