package rbac

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dmitrymomot/rbackit/pkg/permission"
)

// LintDefined checks the configured registries against the permission
// constants the host application declares in code and returns a warning
// for every configured token that matches nothing declared: an exact token
// must be declared itself, a prefix wildcard must cover at least one
// declared permission, and the global wildcard always passes.
//
// This is a safety net for configuration drift (a role granting
// "docs.vew"), not an access check; it never errors and never mutates
// state.
func (m *Manager) LintDefined(defined []string) []string {
	declared := make(map[string]struct{}, len(defined))
	for _, p := range defined {
		declared[p] = struct{}{}
	}

	m.mu.RLock()
	sets := m.permissionSets
	roleConfigs := m.roleConfigs
	m.mu.RUnlock()

	var warnings []string

	setNames := make([]string, 0, len(sets))
	for name := range sets {
		setNames = append(setNames, name)
	}
	sort.Strings(setNames)
	for _, name := range setNames {
		for _, tok := range sets[name] {
			lintToken(tok.String(), fmt.Sprintf("permission set %q", name), declared, &warnings)
		}
	}

	for _, rc := range roleConfigs {
		for _, raw := range rc.Permissions {
			lintToken(raw, fmt.Sprintf("role %q", rc.Name), declared, &warnings)
		}
	}

	return warnings
}

func lintToken(tok, context string, declared map[string]struct{}, warnings *[]string) {
	if tok == permission.Wildcard {
		return
	}

	if strings.HasSuffix(tok, permission.Delimiter+permission.Wildcard) {
		prefix := strings.TrimSuffix(tok, permission.Wildcard)
		for p := range declared {
			if strings.HasPrefix(p, prefix) {
				return
			}
		}
		*warnings = append(*warnings,
			fmt.Sprintf("%s: prefix %q matches no declared permission", context, tok))
		return
	}

	if _, ok := declared[tok]; !ok {
		*warnings = append(*warnings,
			fmt.Sprintf("%s: permission %q is not declared", context, tok))
	}
}
