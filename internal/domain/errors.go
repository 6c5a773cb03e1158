package domain

import "errors"

var (
	ErrInvalidAction     = errors.New("invalid action")
	ErrInvalidIdentifier = errors.New("invalid identifier")
)
