package rbac

import (
	"context"
	"sync"
)

// ConfigSource provides a full RBAC configuration. The engine does not care
// where the data came from; a source's only contract is producing the
// Config shape.
type ConfigSource interface {
	Load(ctx context.Context) (Config, error)
}

// mapSource is a ConfigSource backed by an in-memory Config. It makes
// defensive copies to prevent external modification after construction.
type mapSource struct {
	mu  sync.RWMutex
	cfg Config
}

// NewMapSource creates an in-memory ConfigSource from the given
// configuration. The input is deep-copied.
func NewMapSource(cfg Config) ConfigSource {
	sets := make(map[string][]string, len(cfg.PermissionSets))
	for name, tokens := range cfg.PermissionSets {
		sets[name] = append([]string(nil), tokens...)
	}

	return &mapSource{
		cfg: Config{
			PermissionSets: sets,
			Roles:          cloneRoleConfigs(cfg.Roles),
		},
	}
}

// Load implements ConfigSource. The returned config shares the source's
// internal copy; the engine treats it as read-only.
func (s *mapSource) Load(ctx context.Context) (Config, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg, nil
}
