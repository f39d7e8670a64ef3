package core

import "errors"

// ValidationError marks input problems that are caught before anything is
// written. Handlers answer them with 422 and keep the form open.
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string { return e.msg }

func newValidation(msg string) *ValidationError { return &ValidationError{msg: msg} }

var (
	ErrInvalidAmount      = newValidation("invalid amount")
	ErrInvalidDate        = newValidation("invalid date")
	ErrInvalidMonth       = newValidation("invalid month")
	ErrEmptyName          = newValidation("empty client name")
	ErrNameTooLong        = newValidation("client name too long (max 120 characters)")
	ErrEmptyDescription   = newValidation("empty description")
	ErrDescriptionTooLong = newValidation("description too long (max 500 characters)")
	ErrMissingClient      = newValidation("missing client")
	ErrInvalidExpenseType = newValidation("invalid expense type")
	ErrEmptyUpdate        = newValidation("nothing to update")
)

var (
	ErrNotFound       = errors.New("not found")
	ErrMissingUser    = errors.New("missing user id")
	ErrCascadeAborted = errors.New("client deletion aborted")
)

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}
