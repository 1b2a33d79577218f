package adapter

import "errors"

var (
	ErrBadRequest        = errors.New("bad request")
	ErrUnauthorized      = errors.New("client unauthorized")
	ErrRateLimited       = errors.New("too many attempts")
	ErrServerUnavailable = errors.New("server unavailable")
)
