package rbac

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"sync"

	"github.com/dmitrymomot/rbackit/pkg/permission"
)

// Manager is the RBAC engine. It owns the role and permission-set
// registries, resolves the current role through an injected provider, and
// answers permission checks.
//
// Registry replacement is exclusive; checks are read-only over immutable
// snapshots and may run fully in parallel. A Manager is safe for concurrent
// use under this single-writer/many-readers discipline.
type Manager struct {
	mu sync.RWMutex

	// roles maps role name to its resolved, flattened granted set.
	// Both the map and the sets it holds are never mutated after a swap.
	roles map[string]permission.Set

	// roleConfigs preserves the validated role definitions so roles can be
	// re-resolved when the permission-set registry is replaced.
	roleConfigs []RoleConfig

	// permissionSets maps set name to its validated tokens.
	permissionSets map[string][]permission.Token

	provider      RoleProvider
	defaultOnFail FailHandler
	restrictions  ObjectRestrictionProvider
	logger        *slog.Logger
}

// Option configures a Manager.
type Option func(*Manager)

// WithRoleProvider sets the current-role provider.
func WithRoleProvider(p RoleProvider) Option {
	return func(m *Manager) {
		m.provider = p
	}
}

// WithFailHandler sets the engine-wide default fail handler used by guarded
// calls that do not supply a local one.
func WithFailHandler(h FailHandler) Option {
	return func(m *Manager) {
		m.defaultOnFail = h
	}
}

// WithObjectRestrictions sets the object-restriction provider.
func WithObjectRestrictions(p ObjectRestrictionProvider) Option {
	return func(m *Manager) {
		if p != nil {
			m.restrictions = p
		}
	}
}

// WithLogger sets the logger used for middleware and loading diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(m *Manager) {
		if l != nil {
			m.logger = l
		}
	}
}

// New creates a Manager with empty registries.
func New(opts ...Option) *Manager {
	m := &Manager{
		roles:          make(map[string]permission.Set),
		permissionSets: make(map[string][]permission.Token),
		restrictions:   NoRestrictions{},
		logger:         slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// SetRoleProvider stores the current-role provider. The provider's return
// value is not validated until a check invokes it.
func (m *Manager) SetRoleProvider(p RoleProvider) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.provider = p
}

// SetFailHandler stores the engine-wide default fail handler.
func (m *Manager) SetFailHandler(h FailHandler) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.defaultOnFail = h
}

// SetPermissionSets validates and atomically replaces the permission-set
// registry. Every token of every set is validated; all malformed tokens are
// reported in a single error rather than stopping at the first.
//
// Roles already registered are re-resolved against the new sets. If a role
// references a set the new registry no longer declares, the call fails with
// ErrUnknownPermissionSet and neither registry changes.
func (m *Manager) SetPermissionSets(sets map[string][]string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	newSets, err := buildPermissionSets(sets)
	if err != nil {
		return err
	}

	newRoles, err := buildRoles(m.roleConfigs, newSets)
	if err != nil {
		return err
	}

	m.permissionSets = newSets
	m.roles = newRoles
	return nil
}

// SetRoles validates and atomically replaces the role registry. Each role
// is resolved into a flattened granted set: the union of its direct
// permissions and the tokens of every referenced permission set. Only after
// every role validates does the registry swap; on error the previous
// registry remains untouched.
func (m *Manager) SetRoles(roles []RoleConfig) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	newRoles, err := buildRoles(roles, m.permissionSets)
	if err != nil {
		return err
	}

	m.roles = newRoles
	m.roleConfigs = cloneRoleConfigs(roles)
	return nil
}

// Apply validates and atomically replaces both registries from a full
// configuration. Roles are validated against the incoming permission sets,
// so a configuration is accepted or rejected as a whole.
func (m *Manager) Apply(cfg Config) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	newSets, err := buildPermissionSets(cfg.PermissionSets)
	if err != nil {
		return err
	}

	newRoles, err := buildRoles(cfg.Roles, newSets)
	if err != nil {
		return err
	}

	m.permissionSets = newSets
	m.roles = newRoles
	m.roleConfigs = cloneRoleConfigs(cfg.Roles)
	return nil
}

// Load reads a configuration from the source and applies it.
func (m *Manager) Load(ctx context.Context, src ConfigSource) error {
	cfg, err := src.Load(ctx)
	if err != nil {
		return err
	}
	return m.Apply(cfg)
}

// Role returns a copy of the resolved granted set for the named role, or
// ErrRoleNotFound.
func (m *Manager) Role(name string) (permission.Set, error) {
	m.mu.RLock()
	granted, ok := m.roles[name]
	m.mu.RUnlock()

	if !ok {
		return nil, errors.Join(ErrRoleNotFound, fmt.Errorf("role %q is not registered", name))
	}
	return granted.Clone(), nil
}

// Roles returns all registered role names sorted alphabetically.
func (m *Manager) Roles() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	names := make([]string, 0, len(m.roles))
	for name := range m.roles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// PermissionSet returns the tokens of the named permission set, or
// ErrUnknownPermissionSet.
func (m *Manager) PermissionSet(name string) ([]permission.Token, error) {
	m.mu.RLock()
	tokens, ok := m.permissionSets[name]
	m.mu.RUnlock()

	if !ok {
		return nil, errors.Join(ErrUnknownPermissionSet, fmt.Errorf("permission set %q is not declared", name))
	}
	out := make([]permission.Token, len(tokens))
	copy(out, tokens)
	return out, nil
}

// PermissionSetNames returns all declared set names sorted alphabetically.
func (m *Manager) PermissionSetNames() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	names := make([]string, 0, len(m.permissionSets))
	for name := range m.permissionSets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// HasPermission resolves the current role via the provider and reports
// whether it grants the requested permission. A missing provider, an absent
// role, or a role name unknown to the registry is an ordinary denial, never
// an error. The returned error is non-nil only for a malformed or wildcard
// requested permission, which is a programming error at the call site.
func (m *Manager) HasPermission(perm string) (bool, error) {
	m.mu.RLock()
	provider := m.provider
	m.mu.RUnlock()

	if provider == nil {
		return false, nil
	}
	role, ok := provider()
	if !ok || role == "" {
		return false, nil
	}
	return m.RoleHasPermission(role, perm)
}

// RoleHasPermission reports whether the named role grants the requested
// permission. An unknown role denies rather than errors.
func (m *Manager) RoleHasPermission(role, perm string) (bool, error) {
	requested, err := permission.Parse(perm)
	if err != nil {
		return false, err
	}

	granted, ok := m.grantedSet(role)
	if !ok {
		return false, nil
	}
	return permission.IsGranted(granted, requested)
}

// RoleHasAny reports whether the named role grants at least one of the
// requested permissions. An empty request list is vacuously granted.
func (m *Manager) RoleHasAny(role string, perms ...string) (bool, error) {
	requested, err := permission.ParseAll(perms)
	if err != nil {
		return false, err
	}

	granted, ok := m.grantedSet(role)
	if !ok {
		return false, nil
	}
	return permission.IsAnyGranted(granted, requested)
}

// RoleHasAll reports whether the named role grants every requested
// permission. An empty request list is vacuously granted.
func (m *Manager) RoleHasAll(role string, perms ...string) (bool, error) {
	requested, err := permission.ParseAll(perms)
	if err != nil {
		return false, err
	}

	granted, ok := m.grantedSet(role)
	if !ok {
		return false, nil
	}
	return permission.IsAllGranted(granted, requested)
}

// grantedSet snapshots the granted set for a role. The set is immutable
// after publication, so it is safe to use after the lock is released.
func (m *Manager) grantedSet(role string) (permission.Set, bool) {
	m.mu.RLock()
	granted, ok := m.roles[role]
	m.mu.RUnlock()
	return granted, ok
}

// buildPermissionSets validates raw sets into a fresh registry, collecting
// every malformed token across all sets into one error.
func buildPermissionSets(sets map[string][]string) (map[string][]permission.Token, error) {
	newSets := make(map[string][]permission.Token, len(sets))
	var errs []error
	for name, raws := range sets {
		tokens, err := permission.ParseAll(raws)
		if err != nil {
			errs = append(errs, fmt.Errorf("permission set %q: %w", name, err))
			continue
		}
		newSets[name] = tokens
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return newSets, nil
}

// buildRoles validates role configs against the given permission sets and
// resolves each into its flattened granted set.
func buildRoles(roles []RoleConfig, sets map[string][]permission.Token) (map[string]permission.Set, error) {
	newRoles := make(map[string]permission.Set, len(roles))
	for _, rc := range roles {
		if rc.Name == "" {
			return nil, errors.Join(ErrInvalidRoleName, errors.New("role name must not be empty"))
		}
		if _, exists := newRoles[rc.Name]; exists {
			return nil, errors.Join(ErrDuplicateRole, fmt.Errorf("role %q is declared more than once", rc.Name))
		}

		direct, err := permission.ParseAll(rc.Permissions)
		if err != nil {
			return nil, fmt.Errorf("role %q: %w", rc.Name, err)
		}

		granted := permission.NewSet(direct...)
		for _, setName := range rc.PermissionSets {
			tokens, ok := sets[setName]
			if !ok {
				return nil, errors.Join(ErrUnknownPermissionSet,
					fmt.Errorf("role %q references undeclared permission set %q", rc.Name, setName))
			}
			for _, t := range tokens {
				granted.Add(t)
			}
		}

		newRoles[rc.Name] = granted
	}
	return newRoles, nil
}

func cloneRoleConfigs(roles []RoleConfig) []RoleConfig {
	cloned := make([]RoleConfig, len(roles))
	for i, rc := range roles {
		cloned[i] = RoleConfig{
			Name:           rc.Name,
			Description:    rc.Description,
			Permissions:    append([]string(nil), rc.Permissions...),
			PermissionSets: append([]string(nil), rc.PermissionSets...),
		}
	}
	return cloned
}
