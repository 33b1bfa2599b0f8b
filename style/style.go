package style

import (
	"errors"
	"fmt"
	"strings"
)

// Style is a text decoration flag applied independently of color.
type Style int

const (
	Reset Style = iota
	Bright
	Dim
	Underscore
	Blink
	Reverse
	Hidden
)

// ErrUnknownStyle indicates an unrecognized style name.
var ErrUnknownStyle = errors.New("unknown style")

var (
	styleNames = [...]string{
		Reset:      "reset",
		Bright:     "bright",
		Dim:        "dim",
		Underscore: "underscore",
		Blink:      "blink",
		Reverse:    "reverse",
		Hidden:     "hidden",
	}
	styleCodes = [...]string{
		Reset:      "\x1b[0m",
		Bright:     "\x1b[1m",
		Dim:        "\x1b[2m",
		Underscore: "\x1b[4m",
		Blink:      "\x1b[5m",
		Reverse:    "\x1b[7m",
		Hidden:     "\x1b[8m",
	}
)

func (s Style) valid() bool {
	return s >= Reset && s <= Hidden
}

// String returns the lowercase style name.
func (s Style) String() string {
	if !s.valid() {
		return fmt.Sprintf("style(%d)", int(s))
	}

	return styleNames[s]
}

// Code returns the escape sequence for s. Unknown styles have no code.
func (s Style) Code() string {
	if !s.valid() {
		return ""
	}

	return styleCodes[s]
}

// MarshalText implements [encoding.TextMarshaler].
func (s Style) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (s *Style) UnmarshalText(text []byte) error {
	parsed, err := ParseStyle(string(text))
	if err != nil {
		return err
	}

	*s = parsed

	return nil
}

// ParseStyle parses a case-insensitive style name. "bold" is accepted as an
// alias for [Bright].
func ParseStyle(s string) (Style, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "bold" {
		return Bright, nil
	}

	for st, n := range styleNames {
		if n == name {
			return Style(st), nil
		}
	}

	return Reset, fmt.Errorf("%w: %q", ErrUnknownStyle, s)
}

// Apply renders text with the color code of c, then every style code in
// order, then a single reset code. The reset is always present, even when
// styles is empty.
func Apply(text string, c Color, styles []Style, scheme Scheme) string {
	var sb strings.Builder

	sb.Grow(len(text) + 8*(len(styles)+2))
	sb.WriteString(scheme.Code(c))

	for _, s := range styles {
		sb.WriteString(s.Code())
	}

	sb.WriteString(text)
	sb.WriteString(Reset.Code())

	return sb.String()
}
