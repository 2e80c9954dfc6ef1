package beancomplete

import "errors"

// Sentinel errors.
var (
	// ErrConfigNotFound is returned when no .beancomplete.yaml is found.
	ErrConfigNotFound = errors.New("beancomplete: no .beancomplete.yaml found")

	// ErrInvalidArgument is returned when a caller violates an API contract,
	// such as a negative replacement offset or out-of-range bounds.
	ErrInvalidArgument = errors.New("beancomplete: invalid argument")

	// ErrUnknownMatcher is returned when a config names a matcher that does not exist.
	ErrUnknownMatcher = errors.New("beancomplete: unknown matcher")
)
