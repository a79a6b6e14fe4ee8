package repository

import "errors"

// Not-found errors, one per entity, mapped to 404 by the handlers.
var (
	ErrUserNotFound     = errors.New("user not found")
	ErrCercleNotFound   = errors.New("cercle not found")
	ErrLocationNotFound = errors.New("location not found")
	ErrEventNotFound    = errors.New("event not found")
)

// Rule violations, mapped to 400 by the handlers.
var (
	ErrEmailTaken          = errors.New("email already in use")
	ErrTooYoung            = errors.New("user must be at least 16 years old")
	ErrAssociationRequired = errors.New("association_id is required for association members")
	ErrSelfFriend          = errors.New("a user cannot befriend themselves")
	ErrFriendNotFound      = errors.New("friend does not exist")
	ErrStartInPast         = errors.New("startAt must be in the future")
	ErrEndBeforeStart      = errors.New("endAt must be after startAt")
	// ErrEventLocationMissing reports a lieu_id pointing at no location during
	// event creation, after the just-inserted event has been rolled back.
	ErrEventLocationMissing = errors.New("lieu_id does not reference an existing location")
)

// Login-flow failures. The login route reports both as 400, like the rest of
// its input validation.
var (
	ErrUnknownUser   = errors.New("unknown user")
	ErrWrongPassword = errors.New("incorrect password")
)
