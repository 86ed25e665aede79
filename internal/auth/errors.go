package auth

import "errors"

var (
	// ErrUserNotFound is returned when a user cannot be found in the database.
	ErrUserNotFound = errors.New("user not found")

	// ErrInvalidPassword is returned when the provided password is incorrect during authentication.
	ErrInvalidPassword = errors.New("invalid password")

	// ErrOTPRequired is returned when the account has a second factor and no code was given.
	ErrOTPRequired = errors.New("one-time password required")

	// ErrInvalidOTP is returned when the one-time password does not validate.
	ErrInvalidOTP = errors.New("invalid one-time password")

	// ErrUserNameExists is returned when attempting to create a user with a username that already exists.
	ErrUserNameExists = errors.New("user with username already exists")

	// ErrInvalidRole is returned for roles other than user and admin.
	ErrInvalidRole = errors.New("invalid role")
)
