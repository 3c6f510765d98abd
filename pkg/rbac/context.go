package rbac

import "context"

// roleCtxKey is the context key for storing role information.
type roleCtxKey struct{}

// SetRoleToContext stores the actor's role in the context.
func SetRoleToContext(ctx context.Context, role string) context.Context {
	return context.WithValue(ctx, roleCtxKey{}, role)
}

// GetRoleFromContext retrieves the actor's role from the context.
func GetRoleFromContext(ctx context.Context) (string, bool) {
	role, ok := ctx.Value(roleCtxKey{}).(string)
	return role, ok
}

// ContextRoleProvider adapts a context-carried role into a RoleProvider.
// The context is captured at construction time; build a fresh provider per
// request when using it with SetRoleProvider.
func ContextRoleProvider(ctx context.Context) RoleProvider {
	return func() (string, bool) {
		return GetRoleFromContext(ctx)
	}
}
