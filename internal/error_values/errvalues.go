package errorvalues

import "errors"

var (
	ErrUserExists       = errors.New("such user already exists")
	ErrUserNotFound     = errors.New("user doesn't exists")
	ErrWrongCredentials = errors.New("wrong email or password")
	ErrInvalidToken     = errors.New("invalid token")
	ErrValidation       = errors.New("validation error")

	ErrMealNotFound  = errors.New("meal doesn't exist")
	ErrOwnerNotFound = errors.New("owner of the record doesn't exist")
	ErrWrongOwner    = errors.New("record belongs to another user")
	ErrInvalidDate   = errors.New("invalid date key, expected YYYY-MM-DD")
	ErrInvalidRange  = errors.New("invalid date range")

	ErrTargetsNotFound = errors.New("targets are not set")

	ErrEmptyDescription = errors.New("meal description is required")
	ErrEstimationFailed = errors.New("failed to estimate meal nutrients")
)
