package config

import "errors"

var (
	ErrInvalidPath     = errors.New("config: path must start with /")
	ErrInvalidDuration = errors.New("config: invalid duration")
	ErrInvalidGroups   = errors.New("config: invalid health groups")
)
