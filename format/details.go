package format

import (
	"errors"
	"fmt"
	"strings"
)

// Details controls how much of the process hierarchy a line shows.
type Details int

const (
	// Default shows the immediate parent's tag.
	Default Details = iota
	// Light is equivalent to [Default].
	Light
	// Detailed shows the full path from the root process.
	Detailed
)

// ErrUnknownDetails indicates an unrecognized details level name.
var ErrUnknownDetails = errors.New("unknown details level")

// GetAllDetailsStrings returns the names accepted by [ParseDetails].
func GetAllDetailsStrings() []string {
	return []string{"default", "light", "detailed"}
}

// ParseDetails parses a case-insensitive details level name.
func ParseDetails(s string) (Details, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "default", "":
		return Default, nil
	case "light":
		return Light, nil
	case "detailed":
		return Detailed, nil
	}

	return Default, fmt.Errorf("%w: %q", ErrUnknownDetails, s)
}

// String returns the details level name.
func (d Details) String() string {
	switch d {
	case Default:
		return "default"
	case Light:
		return "light"
	case Detailed:
		return "detailed"
	}

	return fmt.Sprintf("details(%d)", int(d))
}
