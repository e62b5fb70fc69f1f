package errors

import "errors"

var (
	// ErrInvalidRange is returned when a query's start time is not strictly
	// before its end time.
	ErrInvalidRange = errors.New("start_time must be less than end_time")
	// ErrInvalidParameter is returned for an unrecognized ordering key.
	ErrInvalidParameter = errors.New("parameter must be one of user_id, phone, voicemail, cluster")
	// ErrUnauthorized is a generic sentinel for auth failures.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrNotFound is a generic sentinel for missing resources.
	ErrNotFound = errors.New("not found")
)
