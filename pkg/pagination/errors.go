package pagination

import "errors"

var (
	// ErrInvalidConfiguration indicates that the page capacity or strategy
	// would make the page arithmetic undefined.
	ErrInvalidConfiguration = errors.New("invalid pagination configuration")

	// ErrUnknownStrategy indicates a strategy name that could not be parsed.
	ErrUnknownStrategy = errors.New("unknown scroll strategy")
)
