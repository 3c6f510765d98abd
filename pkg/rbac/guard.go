package rbac

import "errors"

// Require wraps an operation with a permission check. Invoking the returned
// function evaluates HasPermission first: on success the wrapped operation
// runs and its result is returned unchanged; on denial the failure is
// handled by, in order of precedence, the local onFail handler, the
// manager's default fail handler, or an error wrapping ErrPermissionDenied
// that carries the denied permission string.
//
// A fail handler's return values become the guarded call's result, so
// handlers may substitute a value instead of failing. A handler that panics
// propagates unchanged.
func (m *Manager) Require(perm string, fn GuardedFunc, onFail ...FailHandler) GuardedFunc {
	return func() (any, error) {
		ok, err := m.HasPermission(perm)
		if err != nil {
			return nil, err
		}
		if ok {
			return fn()
		}

		var handler FailHandler
		if len(onFail) > 0 && onFail[0] != nil {
			handler = onFail[0]
		} else {
			m.mu.RLock()
			handler = m.defaultOnFail
			m.mu.RUnlock()
		}
		if handler != nil {
			return handler(perm)
		}

		return nil, errors.Join(ErrPermissionDenied, &DeniedError{Permission: perm})
	}
}
