package trajectory

import "errors"

var (
	ErrDuplicatePhase      = errors.New("duplicate phase")
	ErrDuplicateVariable   = errors.New("duplicate variable")
	ErrInvalidBounds       = errors.New("invalid bounds")
	ErrUnknownPhase        = errors.New("unknown phase")
	ErrUnknownVariable     = errors.New("unknown variable")
	ErrInvalidLinkage      = errors.New("invalid linkage declaration")
	ErrDuplicateLinkage    = errors.New("duplicate linkage")
	ErrDuplicateConnection = errors.New("duplicate connection")
	ErrConnectionCycle     = errors.New("connection cycle")
)
