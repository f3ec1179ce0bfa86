package installation

import "errors"

var (
	// ErrUnknownComputerType is returned when a computer type token is neither desktop nor laptop.
	ErrUnknownComputerType = errors.New("unknown computer type")
	// ErrNilFilter is returned when licenses are counted without a filter.
	ErrNilFilter = errors.New("installation filter must not be nil")
	// ErrNilAssessor is returned when licenses are counted without an assessor.
	ErrNilAssessor = errors.New("license assessor must not be nil")
)
