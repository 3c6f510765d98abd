package rbac

// RoleConfig is the configuration shape of a single role. It is the
// contract between the engine and whatever produced the configuration:
// YAML, JSON, or in-memory construction all decode to this struct.
type RoleConfig struct {
	// Name uniquely identifies the role within the registry.
	Name string `yaml:"role_name" json:"role_name"`

	// Description is informational only.
	Description string `yaml:"description,omitempty" json:"description,omitempty"`

	// Permissions lists permission tokens granted directly to the role.
	Permissions []string `yaml:"permissions,omitempty" json:"permissions,omitempty"`

	// PermissionSets lists names of permission sets whose tokens the role
	// pulls in. Every referenced set must be declared in the registry.
	PermissionSets []string `yaml:"permission_sets,omitempty" json:"permission_sets,omitempty"`
}

// Config bundles a full RBAC configuration: the permission-set registry and
// the roles resolved against it.
type Config struct {
	// PermissionSets maps set name to its permission tokens.
	PermissionSets map[string][]string `yaml:"permission_sets,omitempty" json:"permission_sets,omitempty"`

	// Roles lists the role definitions.
	Roles []RoleConfig `yaml:"roles,omitempty" json:"roles,omitempty"`
}

// RoleProvider resolves the current actor's role. It is invoked fresh on
// every permission check so it can reflect live request context, such as a
// session variable. The second return value is false when no role is bound.
type RoleProvider func() (string, bool)

// FailHandler is invoked with the denied permission when a guarded call
// fails its check. Its return values become the guarded call's result.
type FailHandler func(permission string) (any, error)

// GuardedFunc is an operation wrapped by Require.
type GuardedFunc func() (any, error)
