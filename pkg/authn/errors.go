package authn

import "errors"

var (
	ErrMissingSecret    = errors.New("authn: signing secret is empty")
	ErrInvalidToken     = errors.New("authn: invalid token")
	ErrUnknownPrincipal = errors.New("authn: unknown principal")
)
