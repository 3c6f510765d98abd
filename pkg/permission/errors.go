package permission

import "errors"

var (
	// ErrMalformedToken is returned when a permission string violates the
	// token syntax. It is raised during configuration, never during matching.
	ErrMalformedToken = errors.New("permission: malformed token")

	// ErrInvalidRequest is returned when a check is asked about a wildcard
	// token. Requested permissions must always be concrete.
	ErrInvalidRequest = errors.New("permission: requested token must be concrete")
)
