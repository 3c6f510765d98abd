package rbac_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/rbackit/pkg/permission"
	"github.com/dmitrymomot/rbackit/pkg/rbac"
)

func newGuardManager(t *testing.T, role string) *rbac.Manager {
	t.Helper()

	m := newTestManager(t)
	m.SetRoleProvider(func() (string, bool) { return role, true })
	return m
}

func TestManager_Require(t *testing.T) {
	t.Parallel()

	t.Run("granted runs the wrapped operation", func(t *testing.T) {
		t.Parallel()

		m := newGuardManager(t, "editor")
		called := false
		guarded := m.Require("docs.edit", func() (any, error) {
			called = true
			return "edited", nil
		})

		result, err := guarded()
		require.NoError(t, err)
		assert.True(t, called)
		assert.Equal(t, "edited", result)
	})

	t.Run("wrapped operation error propagates", func(t *testing.T) {
		t.Parallel()

		m := newGuardManager(t, "editor")
		opErr := errors.New("storage unavailable")
		guarded := m.Require("docs.edit", func() (any, error) {
			return nil, opErr
		})

		_, err := guarded()
		assert.True(t, errors.Is(err, opErr))
	})

	t.Run("denied without handlers fails with the denied permission", func(t *testing.T) {
		t.Parallel()

		m := newGuardManager(t, "viewer")
		guarded := m.Require("docs.delete", func() (any, error) {
			t.Fatal("wrapped operation must not run on denial")
			return nil, nil
		})

		result, err := guarded()
		require.Error(t, err)
		assert.Nil(t, result)
		assert.True(t, errors.Is(err, rbac.ErrPermissionDenied))
		assert.Equal(t, "docs.delete", rbac.DeniedPermission(err))
	})

	t.Run("local handler result substitutes without error", func(t *testing.T) {
		t.Parallel()

		m := newGuardManager(t, "viewer")
		guarded := m.Require("docs.delete",
			func() (any, error) { return "deleted", nil },
			func(perm string) (any, error) { return "denied:" + perm, nil },
		)

		result, err := guarded()
		require.NoError(t, err)
		assert.Equal(t, "denied:docs.delete", result)
	})

	t.Run("default handler used when no local handler", func(t *testing.T) {
		t.Parallel()

		m := newGuardManager(t, "viewer")
		m.SetFailHandler(func(perm string) (any, error) {
			return nil, errors.New("redirect to " + perm + " upgrade page")
		})
		guarded := m.Require("docs.delete", func() (any, error) { return nil, nil })

		_, err := guarded()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "docs.delete")
		assert.False(t, errors.Is(err, rbac.ErrPermissionDenied))
	})

	t.Run("local handler takes precedence over default", func(t *testing.T) {
		t.Parallel()

		m := newGuardManager(t, "viewer")
		m.SetFailHandler(func(string) (any, error) {
			t.Fatal("default handler must not run when a local one is supplied")
			return nil, nil
		})
		guarded := m.Require("docs.delete",
			func() (any, error) { return nil, nil },
			func(perm string) (any, error) { return "local", nil },
		)

		result, err := guarded()
		require.NoError(t, err)
		assert.Equal(t, "local", result)
	})

	t.Run("handler panic propagates unchanged", func(t *testing.T) {
		t.Parallel()

		m := newGuardManager(t, "viewer")
		guarded := m.Require("docs.delete",
			func() (any, error) { return nil, nil },
			func(perm string) (any, error) { panic("request aborted") },
		)

		assert.PanicsWithValue(t, "request aborted", func() {
			_, _ = guarded()
		})
	})

	t.Run("check re-evaluates on every invocation", func(t *testing.T) {
		t.Parallel()

		role := "viewer"
		m := newTestManager(t)
		m.SetRoleProvider(func() (string, bool) { return role, true })
		guarded := m.Require("docs.delete", func() (any, error) { return "ok", nil })

		_, err := guarded()
		assert.True(t, errors.Is(err, rbac.ErrPermissionDenied))

		role = "admin"
		result, err := guarded()
		require.NoError(t, err)
		assert.Equal(t, "ok", result)
	})

	t.Run("wildcard guard permission surfaces the call-site error", func(t *testing.T) {
		t.Parallel()

		m := newGuardManager(t, "admin")
		guarded := m.Require("docs.*", func() (any, error) { return nil, nil })

		_, err := guarded()
		require.Error(t, err)
		assert.True(t, errors.Is(err, permission.ErrInvalidRequest))
	})
}

func TestDeniedPermission(t *testing.T) {
	t.Parallel()

	assert.Empty(t, rbac.DeniedPermission(errors.New("unrelated")))
	assert.Empty(t, rbac.DeniedPermission(nil))
}
