package repositories

import "errors"

// Stable error kinds surfaced by the stores. Handlers match these with
// errors.Is and translate them into HTTP status codes; the stores never
// retry or collapse them into generic failures.
var (
	// ErrNotFound means the addressed entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrForbidden means the caller is not authorized for the mutation.
	ErrForbidden = errors.New("forbidden")

	// ErrDuplicateIdentity means the email or username is already taken.
	ErrDuplicateIdentity = errors.New("duplicate identity")

	// ErrSelfReference means the caller targeted themselves where that is
	// not allowed (e.g. following their own account).
	ErrSelfReference = errors.New("self reference")
)
