package level

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Level is a log severity.
type Level int

const (
	// None disables the level tag semantics; as a minimum level it lets
	// everything through.
	None Level = iota
	// Trace is the most verbose level.
	Trace
	// Debug is for diagnostic output.
	Debug
	// Info is the default minimum level.
	Info
	// Warn flags recoverable problems.
	Warn
	// Error flags failures.
	Error
)

// ErrUnknownLevel indicates an unrecognized level string.
var ErrUnknownLevel = errors.New("unknown log level")

var names = [...]string{
	None:  "NONE",
	Trace: "TRACE",
	Debug: "DEBUG",
	Info:  "INFO",
	Warn:  "WARN",
	Error: "ERROR",
}

// All returns every defined level in ascending order.
func All() []Level {
	return []Level{None, Trace, Debug, Info, Warn, Error}
}

// GetAllLevelStrings returns the lowercase names of all levels, for flag help
// and shell completions.
func GetAllLevelStrings() []string {
	out := make([]string, 0, len(names))
	for _, l := range All() {
		out = append(out, strings.ToLower(l.String()))
	}

	return out
}

// Valid reports whether l is one of the defined levels.
func (l Level) Valid() bool {
	return l >= None && l <= Error
}

// String returns the upper-case level name.
func (l Level) String() string {
	if !l.Valid() {
		return "LEVEL(" + strconv.Itoa(int(l)) + ")"
	}

	return names[l]
}

// MarshalText implements [encoding.TextMarshaler].
func (l Level) MarshalText() ([]byte, error) {
	if !l.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownLevel, int(l))
	}

	return []byte(strings.ToLower(l.String())), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (l *Level) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}

	*l = parsed

	return nil
}

// Parse parses a case-insensitive level name.
func Parse(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "none":
		return None, nil
	case "trace":
		return Trace, nil
	case "debug":
		return Debug, nil
	case "info":
		return Info, nil
	case "warn", "warning":
		return Warn, nil
	case "error":
		return Error, nil
	}

	return None, fmt.Errorf("%w: %q", ErrUnknownLevel, s)
}

// Tag returns the bracketed label for l, e.g. "[INFO]".
func Tag(l Level) string {
	return "[" + l.String() + "]"
}

// TagWidth returns the width of the widest tag across all defined levels.
func TagWidth() int {
	width := 0
	for _, l := range All() {
		width = max(width, len(Tag(l)))
	}

	return width
}
