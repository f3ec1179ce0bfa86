package installation

import (
	"fmt"
	"strings"
)

// ComputerType is the kind of machine an application is installed on.
type ComputerType uint8

const (
	// Desktop machines need a license of their own.
	Desktop ComputerType = iota
	// Laptop machines may share a license with a second machine of the same user.
	Laptop
)

// String returns the canonical name of the computer type.
func (c ComputerType) String() string {
	switch c {
	case Desktop:
		return "Desktop"
	case Laptop:
		return "Laptop"
	default:
		return fmt.Sprintf("ComputerType(%d)", uint8(c))
	}
}

// Valid reports whether c is one of the known computer types.
func (c ComputerType) Valid() bool {
	return c == Desktop || c == Laptop
}

// ParseComputerType converts a report token into a ComputerType. Surrounding
// white space is ignored and the comparison is case-insensitive.
func ParseComputerType(raw string) (ComputerType, error) {
	token := strings.TrimSpace(raw)
	switch {
	case strings.EqualFold(token, Desktop.String()):
		return Desktop, nil
	case strings.EqualFold(token, Laptop.String()):
		return Laptop, nil
	default:
		return Desktop, fmt.Errorf("%w: %q", ErrUnknownComputerType, raw)
	}
}

// Installation is one application installed on one computer owned by one user.
// Two installations are the same only when every field matches.
type Installation struct {
	ComputerID    int
	UserID        int
	ApplicationID int
	ComputerType  ComputerType
}

// MarshalText encodes the computer type by name.
func (c ComputerType) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownComputerType, uint8(c))
	}
	return []byte(c.String()), nil
}

// UnmarshalText accepts the same tokens as ParseComputerType.
func (c *ComputerType) UnmarshalText(text []byte) error {
	parsed, err := ParseComputerType(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
