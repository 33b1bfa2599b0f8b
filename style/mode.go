package style

import (
	"errors"
	"fmt"
	"strings"
)

// Mode is the display mode of the logger. It selects the style preset and the
// color assignment strategy.
type Mode int

const (
	// Classic renders every process in a single neutral color.
	Classic Mode = iota
	// Colored gives each main process and each direct child of a main
	// process its own color; deeper sub-processes inherit.
	Colored
	// Docker gives each main process its own color and lets sub-processes
	// inherit from their parent, similar to compose output.
	Docker
)

// ErrUnknownMode indicates an unrecognized mode name.
var ErrUnknownMode = errors.New("unknown logger mode")

// GetAllModeStrings returns the names accepted by [ParseMode].
func GetAllModeStrings() []string {
	return []string{"classic", "colored", "docker"}
}

// ParseMode parses a case-insensitive mode name. "default" is an alias for
// [Classic].
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "classic", "default":
		return Classic, nil
	case "colored", "coloured":
		return Colored, nil
	case "docker":
		return Docker, nil
	}

	return Classic, fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case Classic:
		return "classic"
	case Colored:
		return "colored"
	case Docker:
		return "docker"
	}

	return fmt.Sprintf("mode(%d)", int(m))
}
