package rbac

import (
	"errors"
	"fmt"
)

// Domain errors for RBAC operations. Configuration errors are raised
// synchronously and always leave the previously valid registries intact.
var (
	// ErrInvalidRoleName is returned when a role is configured with an
	// empty name.
	ErrInvalidRoleName = errors.New("rbac: invalid role name")

	// ErrDuplicateRole is returned when two roles share a name within a
	// single SetRoles call.
	ErrDuplicateRole = errors.New("rbac: duplicate role")

	// ErrUnknownPermissionSet is returned when a role references a
	// permission set that is not declared in the registry.
	ErrUnknownPermissionSet = errors.New("rbac: unknown permission set")

	// ErrRoleNotFound is returned when a role name cannot be resolved.
	// Permission checks treat an unknown role as a denial, not an error.
	ErrRoleNotFound = errors.New("rbac: role not found")

	// ErrPermissionDenied is the terminal access-denied signal, returned by
	// a guarded call only when no fail handler is configured.
	ErrPermissionDenied = errors.New("rbac: permission denied")
)

// DeniedError carries the permission string that was denied. It is always
// joined with ErrPermissionDenied, so both errors.Is and errors.As work:
//
//	var denied *rbac.DeniedError
//	if errors.As(err, &denied) {
//	    log.Printf("missing %s", denied.Permission)
//	}
type DeniedError struct {
	Permission string
}

func (e *DeniedError) Error() string {
	return fmt.Sprintf("permission %q required", e.Permission)
}

// DeniedPermission extracts the denied permission string from an error
// returned by a guarded call. Returns "" if err carries no denial.
func DeniedPermission(err error) string {
	var denied *DeniedError
	if errors.As(err, &denied) {
		return denied.Permission
	}
	return ""
}
