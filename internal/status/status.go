package status

import "errors"

var (
	ErrRegistrationsClosed = errors.New("registrations: registrations are disabled")
	ErrEventNotFound       = errors.New("events: event not found")
)
