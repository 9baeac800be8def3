package fixture

import "errors"

var (
	ErrReadFixture     = errors.New("fixture: read failed")
	ErrParseFixture    = errors.New("fixture: parse failed")
	ErrUnknownTenant   = errors.New("fixture: unknown tenant reference")
	ErrUnknownUser     = errors.New("fixture: unknown user reference")
	ErrDuplicateRecord = errors.New("fixture: duplicate record")
	ErrMissingField    = errors.New("fixture: missing required field")
)
