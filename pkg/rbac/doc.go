// Package rbac provides an embeddable role-based access-control engine.
// It resolves roles to flattened permission sets, answers grant/deny
// questions with hierarchical wildcard matching, and guards protected
// operations with pluggable failure handlers.
//
// Key concepts:
//
//   - Permission: a dot-separated token such as "docs.view", optionally
//     wildcarded at its final segment ("docs.*", "*")
//   - Permission set: a named, reusable group of permission tokens
//   - Role: a named bundle resolved from direct permissions plus the tokens
//     of every referenced permission set
//   - Role provider: a callable resolving the current actor's role on every
//     check, so decisions reflect live request context
//
// Basic usage:
//
//	m := rbac.New()
//
//	err := m.Apply(rbac.Config{
//	    PermissionSets: map[string][]string{
//	        "doc_readers": {"docs.view", "docs.list"},
//	    },
//	    Roles: []rbac.RoleConfig{
//	        {Name: "viewer", PermissionSets: []string{"doc_readers"}},
//	        {Name: "editor", Permissions: []string{"docs.*"}},
//	        {Name: "admin", Permissions: []string{"*"}},
//	    },
//	})
//
//	m.SetRoleProvider(func() (string, bool) {
//	    return sessionRole(), true
//	})
//
//	ok, err := m.HasPermission("docs.view")
//
// Guarding an operation:
//
//	deleteDoc := m.Require("docs.delete", func() (any, error) {
//	    return repo.Delete(id)
//	})
//	result, err := deleteDoc()
//	// Denied with no fail handler configured: err wraps ErrPermissionDenied.
//
// Configuration can also be loaded from YAML files:
//
//	src := rbac.NewYAMLSource("roles/*.yaml", "permission_sets.yaml")
//	if err := m.Load(ctx, src); err != nil {
//	    // Handle configuration error; prior registries remain intact.
//	}
//
// Registry replacement is all-or-nothing: either every role and permission
// set validates and both registries are swapped, or nothing is applied.
// Checks are read-only over immutable snapshots and safe for concurrent use.
package rbac
