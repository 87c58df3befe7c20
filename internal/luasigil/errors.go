package luasigil

import "errors"

var (
	// ErrSigilNotFound indicates no script registered the sigil name.
	ErrSigilNotFound = errors.New("sigil not found")
	// ErrSigilAlreadyRegistered indicates a sigil name was registered twice.
	ErrSigilAlreadyRegistered = errors.New("sigil already registered")
	// ErrHandleExpired indicates a script used a card or fight handle after the
	// activation it was passed to returned.
	ErrHandleExpired = errors.New("handle expired")
	// ErrUnknownEvent indicates an event name outside the fight taxonomy.
	ErrUnknownEvent = errors.New("unknown event")
	// ErrUnknownPlayer indicates a player name other than first or second.
	ErrUnknownPlayer = errors.New("unknown player")
)
