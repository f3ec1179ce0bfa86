package report

import "errors"

var (
	// ErrInvalidField is wrapped by Row.Err when a column cannot be parsed.
	ErrInvalidField = errors.New("invalid field")
	// ErrMissingFields is wrapped by Row.Err when a row has fewer than the required columns.
	ErrMissingFields = errors.New("missing fields")
)
