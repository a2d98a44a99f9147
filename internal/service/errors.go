package service

import "errors"

type ErrorKind string

const (
	KindValidation   ErrorKind = "validation"
	KindConflict     ErrorKind = "conflict"
	KindNotFound     ErrorKind = "not_found"
	KindUnauthorized ErrorKind = "unauthorized"
	KindForbidden    ErrorKind = "forbidden"
)

// Error is a caller-facing domain error. Infrastructure failures (storage,
// delivery) are never wrapped in it and propagate opaque.
type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// KindOf extracts the domain kind, or "" for infrastructure errors.
func KindOf(err error) ErrorKind {
	var domainErr *Error
	if errors.As(err, &domainErr) {
		return domainErr.Kind
	}
	return ""
}

var (
	ErrInvalidRequest     = &Error{KindValidation, "One or more fields are missing in the request."}
	ErrInvalidFirstName   = &Error{KindValidation, "Invalid first name."}
	ErrInvalidLastName    = &Error{KindValidation, "Invalid last name."}
	ErrInvalidGender      = &Error{KindValidation, "Invalid gender. Must be either 'm' or 'f'."}
	ErrInvalidEmail       = &Error{KindValidation, "Invalid email address."}
	ErrInvalidPhoneNumber = &Error{KindValidation, "Invalid phone number."}
	ErrInvalidPassword    = &Error{KindValidation, "Password must be at least 6 characters."}
	ErrPasswordMismatch   = &Error{KindValidation, "Passwords do not match."}
	ErrInvalidProvider    = &Error{KindValidation, "Invalid oauth provider. Must be either 'google' or 'facebook'."}
	ErrInvalidMedium      = &Error{KindValidation, "Invalid transmission medium. Must be either 'email' or 'sms'."}
	ErrNoPermissions      = &Error{KindValidation, "A role must have at least one permission."}

	ErrAccountExists   = &Error{KindConflict, "An account with this email already exists."}
	ErrAlreadyVerified = &Error{KindConflict, "This account has already been verified."}
	ErrRoleExists      = &Error{KindConflict, "A role with this name already exists."}
	ErrRoleInUse       = &Error{KindConflict, "This role is still assigned to one or more accounts."}

	ErrAccountNotFound    = &Error{KindNotFound, "Account not found."}
	ErrRoleNotFound       = &Error{KindNotFound, "Role not found."}
	ErrPermissionNotFound = &Error{KindNotFound, "Permission not found."}

	ErrInvalidCredentials = &Error{KindUnauthorized, "Invalid credentials."}
	ErrAccountDisabled    = &Error{KindUnauthorized, "This account has been disabled. Kindly contact an administrator."}
	ErrAccountNotVerified = &Error{KindUnauthorized, "Your account has not been verified. Please verify with the token that was sent to you, or request a new token."}

	ErrPermissionDenied = &Error{KindForbidden, "You do not have permission to perform this operation. Kindly contact an administrator."}

	// BadRequest kinds surface the same way as validation errors; expired and
	// nonexistent tokens are deliberately indistinguishable.
	ErrInvalidVerificationToken = &Error{KindValidation, "The verification token is invalid or has expired."}
	ErrInvalidResetToken        = &Error{KindValidation, "The password reset token is invalid or has expired."}
)

// ErrTokenSpaceExhausted reports that the bounded uniqueness loop ran out of
// attempts against a saturated token keyspace. It is an infrastructure
// failure, not part of the caller-facing taxonomy.
var ErrTokenSpaceExhausted = errors.New("token keyspace exhausted")
