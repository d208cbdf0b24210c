package domain

import "errors"

var (
	ErrForbidden          = errors.New("access denied")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid or expired token")

	ErrUserNotFound       = errors.New("user not found")
	ErrEmailExists        = errors.New("user with this email already exists")
	ErrEmailDomain        = errors.New("email is outside the organization domain")
	ErrWrongPassword      = errors.New("current password is incorrect")
	ErrCannotDeleteSelf   = errors.New("cannot delete your own account")

	ErrComplaintNotFound    = errors.New("complaint not found")
	ErrDepartmentNotFound   = errors.New("selected department not found")
	ErrNoHandlerAvailable   = errors.New("no handler found for this inquiry type")
	ErrForwardTargetInvalid = errors.New("forward target is not a complaints handler")
	ErrAttachmentRejected   = errors.New("attachment rejected")

	ErrNotificationNotFound = errors.New("notification not found")

	ErrInvalidReportRange = errors.New("invalid report range")
)
