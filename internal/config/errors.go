package config

import (
	"errors"
)

var (
	ErrConfigLoadFailed = errors.New("failed to load host configuration")
	ErrConfigSaveFailed = errors.New("failed to save host configuration")
)
