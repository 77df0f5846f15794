package domain

import "errors"

var (
	// ErrPermissionDenied is returned when the caller lacks the role or ownership required
	ErrPermissionDenied = errors.New("permission denied")

	// ErrNotFound is returned when the referenced item, token, or user does not exist
	ErrNotFound = errors.New("not found")

	// ErrInvalidArgument is returned for malformed requests, e.g. both or neither assignee set
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrInvalidTransition is returned when an event is illegal for the item's current status
	ErrInvalidTransition = errors.New("invalid transition")

	// ErrInvalidToken is returned when no token matches the presented value
	ErrInvalidToken = errors.New("invalid token")

	// ErrTokenExpired is returned when a token is redeemed past its expiry
	ErrTokenExpired = errors.New("token expired")

	// ErrTokenAlreadyUsed is returned when a single-use token is redeemed a second time
	ErrTokenAlreadyUsed = errors.New("token already used")

	// ErrDuplicateAward is returned when a second earned credit entry is attempted for an item
	ErrDuplicateAward = errors.New("credits already awarded for item")

	// ErrConflict is returned when a transaction fails due to contention or a constraint
	// violation; the operation was not applied and the caller may retry
	ErrConflict = errors.New("conflicting concurrent update")
)
