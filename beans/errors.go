package beans

import "errors"

// Sentinel errors.
var (
	ErrDuplicateType = errors.New("beans: duplicate type")
	ErrInvalidName   = errors.New("beans: invalid name")
)
