package errs

import "errors"

// Common sentinel errors for cross-layer signaling.
var (
	ErrNotFound  = errors.New("not_found")
	ErrForbidden = errors.New("forbidden")
	ErrInvalid   = errors.New("invalid")
	// ErrDuplicateKhate indicates an account create collided on khate number
	ErrDuplicateKhate = errors.New("duplicate_khate")
	// ErrNoAccount indicates an entry names a khate number no account has
	ErrNoAccount = errors.New("no_such_account")
	// ErrImmutable indicates an attempt to change immutable fields
	ErrImmutable = errors.New("immutable")
)
