package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"
	"github.com/praxishr/timecontrol-backend-go/internal/domain/user"
	"github.com/praxishr/timecontrol-backend-go/internal/handler/http/response"
)

// RequireRole admits requests whose role carries at least the required
// privilege. Roles are strictly ordered: employee < supervisor < admin
// < superuser.
func RequireRole(required user.Role) func(http.Handler) http.Handler {
	deniedErr := deniedError(required)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, claims, err := jwtauth.FromContext(r.Context())
			if err != nil {
				response.HandleError(w, deniedErr)
				return
			}

			roleStr, ok := claims["role"].(string)
			if !ok {
				response.HandleError(w, deniedErr)
				return
			}

			if !user.Role(roleStr).AtLeast(required) {
				response.HandleError(w, deniedErr)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireSupervisor requires supervisor role or above
func RequireSupervisor(next http.Handler) http.Handler {
	return RequireRole(user.RoleSupervisor)(next)
}

// RequireAdmin requires admin role or above
func RequireAdmin(next http.Handler) http.Handler {
	return RequireRole(user.RoleAdmin)(next)
}

// RequireSuperuser requires superuser role
func RequireSuperuser(next http.Handler) http.Handler {
	return RequireRole(user.RoleSuperuser)(next)
}

func deniedError(required user.Role) error {
	switch required {
	case user.RoleSuperuser:
		return user.ErrSuperuserAccessRequired
	case user.RoleAdmin:
		return user.ErrAdminAccessRequired
	default:
		return user.ErrSupervisorAccessRequired
	}
}
