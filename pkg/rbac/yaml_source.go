package rbac

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"
)

// Loader errors, matched with errors.Is.
var (
	// ErrLoadCancelled is returned when configuration loading is cancelled
	// through the context.
	ErrLoadCancelled = errors.New("rbac: configuration loading cancelled")

	// ErrInvalidGlob is returned when the role-file glob pattern is
	// malformed.
	ErrInvalidGlob = errors.New("rbac: invalid role file glob")

	// ErrReadPermissionSets is returned when the permission-set file cannot
	// be read.
	ErrReadPermissionSets = errors.New("rbac: failed to read permission set file")

	// ErrParsePermissionSets is returned when the permission-set file is
	// not a valid mapping of set name to token list.
	ErrParsePermissionSets = errors.New("rbac: failed to parse permission set file")
)

// YAMLSource loads configuration from YAML files: role files matched by a
// glob pattern (one role document per file) and an optional permission-set
// file holding a mapping of set name to token list.
//
// A role file that cannot be read or parsed is logged and skipped so a
// single broken file does not take every role down; the permission-set
// file, being a single document, fails the load instead. Validation of the
// loaded tokens and references happens in Manager.Apply, not here.
type YAMLSource struct {
	rolesGlob string
	setsFile  string
	logger    *slog.Logger
}

// YAMLSourceOption configures a YAMLSource.
type YAMLSourceOption func(*YAMLSource)

// WithSourceLogger sets the logger used for skipped-file diagnostics.
func WithSourceLogger(l *slog.Logger) YAMLSourceOption {
	return func(s *YAMLSource) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewYAMLSource creates a YAMLSource. rolesGlob matches the role files
// (e.g. "roles/*.yaml"); setsFile is the permission-set file path and may
// be empty when no permission sets are used.
func NewYAMLSource(rolesGlob, setsFile string, opts ...YAMLSourceOption) *YAMLSource {
	s := &YAMLSource{
		rolesGlob: rolesGlob,
		setsFile:  setsFile,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load implements ConfigSource.
func (s *YAMLSource) Load(ctx context.Context) (Config, error) {
	if err := ctx.Err(); err != nil {
		return Config{}, errors.Join(ErrLoadCancelled, err)
	}

	roles, err := s.loadRoles(ctx)
	if err != nil {
		return Config{}, err
	}

	sets, err := s.loadPermissionSets(ctx)
	if err != nil {
		return Config{}, err
	}

	return Config{Roles: roles, PermissionSets: sets}, nil
}

func (s *YAMLSource) loadRoles(ctx context.Context) ([]RoleConfig, error) {
	if s.rolesGlob == "" {
		return nil, nil
	}

	files, err := filepath.Glob(s.rolesGlob)
	if err != nil {
		return nil, errors.Join(ErrInvalidGlob, err)
	}
	if len(files) == 0 {
		s.logger.Warn("no role files matched", slog.String("glob", s.rolesGlob))
		return nil, nil
	}

	// Glob order is filesystem dependent; sort for deterministic loading.
	sort.Strings(files)

	roles := make([]RoleConfig, 0, len(files))
	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return nil, errors.Join(ErrLoadCancelled, err)
		}

		content, err := os.ReadFile(file)
		if err != nil {
			s.logger.Warn("skipping unreadable role file",
				slog.String("file", file), slog.Any("error", err))
			continue
		}

		var role RoleConfig
		if err := yaml.Unmarshal(content, &role); err != nil {
			s.logger.Warn("skipping unparsable role file",
				slog.String("file", file), slog.Any("error", err))
			continue
		}
		if role.Name == "" {
			s.logger.Warn("skipping role file without role_name", slog.String("file", file))
			continue
		}

		roles = append(roles, role)
	}

	return roles, nil
}

func (s *YAMLSource) loadPermissionSets(ctx context.Context) (map[string][]string, error) {
	if s.setsFile == "" {
		return nil, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, errors.Join(ErrLoadCancelled, err)
	}

	content, err := os.ReadFile(s.setsFile)
	if err != nil {
		return nil, errors.Join(ErrReadPermissionSets, err)
	}

	var sets map[string][]string
	if err := yaml.Unmarshal(content, &sets); err != nil {
		return nil, errors.Join(ErrParsePermissionSets,
			fmt.Errorf("file %q: %w", s.setsFile, err))
	}

	return sets, nil
}
