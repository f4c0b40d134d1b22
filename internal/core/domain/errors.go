package domain

import "errors"

// Error classes. Every domain error wraps exactly one of these so the HTTP
// layer can map it to a status with errors.Is.
var (
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrForbidden       = errors.New("access forbidden")
	ErrNotFound        = errors.New("not found")
	ErrConflict        = errors.New("conflict")
	ErrInvalid         = errors.New("invalid input")
)

// Error is a classified domain error carrying a client-safe message.
type Error struct {
	Kind error
	Msg  string
}

func (e *Error) Error() string { return e.Msg }

func (e *Error) Unwrap() error { return e.Kind }

// NewError builds an error of the given class.
func NewError(kind error, msg string) error {
	return &Error{Kind: kind, Msg: msg}
}

var (
	ErrInvalidCredentials = NewError(ErrUnauthenticated, "invalid credentials")
	ErrInvalidToken       = NewError(ErrUnauthenticated, "invalid or expired token")

	ErrAdminRequired = NewError(ErrForbidden, "admin privileges required")
	ErrNotApprover   = NewError(ErrForbidden, "approver is not an admin")

	ErrUserNotFound     = NewError(ErrNotFound, "user not found")
	ErrServiceNotFound  = NewError(ErrNotFound, "service not found")
	ErrProjectNotFound  = NewError(ErrNotFound, "project not found")
	ErrCategoryNotFound = NewError(ErrNotFound, "category not found")

	ErrUserExists     = NewError(ErrConflict, "user already exists")
	ErrCategoryExists = NewError(ErrConflict, "category already exists")
	ErrContentExists  = NewError(ErrConflict, "content item already exists")
)
