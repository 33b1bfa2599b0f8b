package style

import (
	"errors"
	"fmt"
	"strings"
)

// Color is a process display color.
type Color int

const (
	// NoColor marks metadata that has not been assigned a color yet. It renders
	// as [White].
	NoColor Color = iota
	Blue
	Green
	Cyan
	Magenta
	Yellow
	Red
	White
	Black
)

// ErrUnknownColor indicates an unrecognized color name.
var ErrUnknownColor = errors.New("unknown color")

var colorNames = [...]string{
	NoColor: "none",
	Blue:    "blue",
	Green:   "green",
	Cyan:    "cyan",
	Magenta: "magenta",
	Yellow:  "yellow",
	Red:     "red",
	White:   "white",
	Black:   "black",
}

// Palette returns every assignable color in declaration order.
func Palette() []Color {
	return []Color{Blue, Green, Cyan, Magenta, Yellow, Red, White, Black}
}

// Neutral reports whether c is one of the reserved neutral colors.
func (c Color) Neutral() bool {
	return c == White || c == Black
}

// String returns the lowercase color name.
func (c Color) String() string {
	if c < NoColor || c > Black {
		return fmt.Sprintf("color(%d)", int(c))
	}

	return colorNames[c]
}

// MarshalText implements [encoding.TextMarshaler].
func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (c *Color) UnmarshalText(text []byte) error {
	parsed, err := ParseColor(string(text))
	if err != nil {
		return err
	}

	*c = parsed

	return nil
}

// ParseColor parses a case-insensitive color name.
func ParseColor(s string) (Color, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for c, n := range colorNames {
		if n == name {
			return Color(c), nil
		}
	}

	return NoColor, fmt.Errorf("%w: %q", ErrUnknownColor, s)
}

// Scheme selects the ANSI color table used to render a [Color].
type Scheme int

const (
	// Dark uses the standard foreground colors (30-37).
	Dark Scheme = iota
	// Light uses the bright foreground colors (90-97).
	Light
)

// ErrUnknownScheme indicates an unrecognized color scheme name.
var ErrUnknownScheme = errors.New("unknown color scheme")

// GetAllSchemeStrings returns the names accepted by [ParseScheme].
func GetAllSchemeStrings() []string {
	return []string{"dark", "light"}
}

// ParseScheme parses a case-insensitive scheme name.
func ParseScheme(s string) (Scheme, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "dark", "":
		return Dark, nil
	case "light":
		return Light, nil
	}

	return Dark, fmt.Errorf("%w: %q", ErrUnknownScheme, s)
}

// String returns the scheme name.
func (s Scheme) String() string {
	if s == Light {
		return "light"
	}

	return "dark"
}

var (
	darkCodes = map[Color]string{
		Black:   "\x1b[30m",
		Red:     "\x1b[31m",
		Green:   "\x1b[32m",
		Yellow:  "\x1b[33m",
		Blue:    "\x1b[34m",
		Magenta: "\x1b[35m",
		Cyan:    "\x1b[36m",
		White:   "\x1b[37m",
	}
	lightCodes = map[Color]string{
		Black:   "\x1b[90m",
		Red:     "\x1b[91m",
		Green:   "\x1b[92m",
		Yellow:  "\x1b[93m",
		Blue:    "\x1b[94m",
		Magenta: "\x1b[95m",
		Cyan:    "\x1b[96m",
		White:   "\x1b[97m",
	}
)

// Code returns the escape sequence for c in this scheme. Unassigned and
// unknown colors render as [White].
func (s Scheme) Code(c Color) string {
	codes := darkCodes
	if s == Light {
		codes = lightCodes
	}

	if code, ok := codes[c]; ok {
		return code
	}

	return codes[White]
}
