package rbac

import (
	"github.com/caarlos0/env/v11"
	_ "github.com/joho/godotenv/autoload" // Load .env file automatically
)

// SourceConfig holds the environment-driven settings for a YAMLSource.
type SourceConfig struct {
	// RolesGlob matches the role definition files.
	RolesGlob string `env:"RBAC_ROLES_GLOB" envDefault:"roles/*.yaml"`

	// PermissionSetsFile is the permission-set definition file. Empty
	// disables permission-set loading.
	PermissionSetsFile string `env:"RBAC_PERMISSION_SETS_FILE" envDefault:"permission_sets.yaml"`
}

// LoadSourceConfig reads the YAMLSource settings from the environment.
func LoadSourceConfig() (SourceConfig, error) {
	var cfg SourceConfig
	if err := env.Parse(&cfg); err != nil {
		return SourceConfig{}, err
	}
	return cfg, nil
}

// NewYAMLSourceFromEnv builds a YAMLSource from environment settings.
func NewYAMLSourceFromEnv(opts ...YAMLSourceOption) (*YAMLSource, error) {
	cfg, err := LoadSourceConfig()
	if err != nil {
		return nil, err
	}
	return NewYAMLSource(cfg.RolesGlob, cfg.PermissionSetsFile, opts...), nil
}
