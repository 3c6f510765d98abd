package rbac

import (
	"log/slog"
	"net/http"
)

// RequirePermission returns an HTTP middleware that allows the request
// through only when the role carried in the request context grants the
// permission. A missing role or a denial answers 403; a malformed
// requested permission answers 500 and is logged, since it is a
// programming error at the mount site.
//
// The middleware is compatible with any stdlib-style router:
//
//	r.With(m.RequirePermission("docs.view")).Get("/docs", listDocs)
func (m *Manager) RequirePermission(perm string) func(http.Handler) http.Handler {
	return m.requirePermissions(func(role string) (bool, error) {
		return m.RoleHasPermission(role, perm)
	})
}

// RequireAnyPermission is like RequirePermission but allows the request
// when the role grants at least one of the permissions.
func (m *Manager) RequireAnyPermission(perms ...string) func(http.Handler) http.Handler {
	return m.requirePermissions(func(role string) (bool, error) {
		return m.RoleHasAny(role, perms...)
	})
}

func (m *Manager) requirePermissions(check func(role string) (bool, error)) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, ok := GetRoleFromContext(r.Context())
			if !ok || role == "" {
				http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
				return
			}

			allowed, err := check(role)
			if err != nil {
				m.logger.ErrorContext(r.Context(), "rbac permission check failed",
					slog.String("role", role), slog.Any("error", err))
				http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
				return
			}
			if !allowed {
				http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
