package service

import "errors"

var (
	// ErrEmailRegistered is the business rule violation returned when a
	// registration uses an email that already belongs to a user.
	ErrEmailRegistered = errors.New("email already registered")

	// ErrMissingID is returned when an update or delete is attempted on
	// an entry that has no assigned ID. This is a precondition violation
	// by the caller, a programming error rather than a business rule,
	// and its message is not meant for end users.
	ErrMissingID = errors.New("entry has no assigned id")
)
