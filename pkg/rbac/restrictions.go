package rbac

// ObjectRestrictionProvider is the extension point for row- or field-level
// filtering. Implementations return an opaque restriction value keyed by
// role and object type; the engine never inspects or interprets the value.
type ObjectRestrictionProvider interface {
	// ObjectRestrictions returns the restriction for the given role and
	// object type, or nil when no restriction applies.
	ObjectRestrictions(roleName, objectType string) any
}

// NoRestrictions is the default provider: no restriction for anything.
type NoRestrictions struct{}

// ObjectRestrictions implements ObjectRestrictionProvider.
func (NoRestrictions) ObjectRestrictions(string, string) any {
	return nil
}

// ObjectRestrictions delegates to the configured provider.
func (m *Manager) ObjectRestrictions(roleName, objectType string) any {
	m.mu.RLock()
	provider := m.restrictions
	m.mu.RUnlock()

	return provider.ObjectRestrictions(roleName, objectType)
}
