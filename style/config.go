package style

import (
	"maps"
	"slices"

	"go.jacobcolvin.com/proclog/level"
)

// Field identifies a styled part of a log line.
type Field int

const (
	FieldTimestamp Field = iota
	FieldLevel
	FieldServiceName
	FieldMessage
)

// String returns the field name as used in style files.
func (f Field) String() string {
	switch f {
	case FieldTimestamp:
		return "timestamp"
	case FieldLevel:
		return "level"
	case FieldServiceName:
		return "serviceName"
	case FieldMessage:
		return "message"
	}

	return "unknown"
}

// Rule maps levels to styles, with a fallback for unlisted levels.
type Rule struct {
	Levels  map[level.Level][]Style
	Default []Style
}

func (r Rule) lookup(l level.Level) []Style {
	if s, ok := r.Levels[l]; ok {
		return slices.Clone(s)
	}

	return slices.Clone(r.Default)
}

func (r Rule) clone() Rule {
	out := Rule{Default: slices.Clone(r.Default)}
	if r.Levels != nil {
		out.Levels = make(map[level.Level][]Style, len(r.Levels))
		for l, s := range r.Levels {
			out.Levels[l] = slices.Clone(s)
		}
	}

	return out
}

// Element holds the rules for one field, split by process role.
type Element struct {
	Main Rule
	Sub  Rule
}

func (e Element) clone() Element {
	return Element{Main: e.Main.clone(), Sub: e.Sub.clone()}
}

// Config is a complete style configuration. Treat values as immutable once
// shared; use [Config.Override] to derive a modified copy.
type Config struct {
	Timestamp   Element
	Level       Element
	ServiceName Element
	Message     Element
	Scheme      Scheme
}

// Element returns the element for f. Unknown fields yield an empty element.
func (c *Config) Element(f Field) Element {
	if c == nil {
		return Element{}
	}

	switch f {
	case FieldTimestamp:
		return c.Timestamp
	case FieldLevel:
		return c.Level
	case FieldServiceName:
		return c.ServiceName
	case FieldMessage:
		return c.Message
	}

	return Element{}
}

// Styles resolves the styles for a field, role and level. It falls back to the
// rule default when the level has no entry and to no styles at all when the
// default is also missing.
func (c *Config) Styles(f Field, isMain bool, l level.Level) []Style {
	e := c.Element(f)
	if isMain {
		return e.Main.lookup(l)
	}

	return e.Sub.lookup(l)
}

// Clone returns a deep copy of c.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}

	return &Config{
		Timestamp:   c.Timestamp.clone(),
		Level:       c.Level.clone(),
		ServiceName: c.ServiceName.clone(),
		Message:     c.Message.clone(),
		Scheme:      c.Scheme,
	}
}

// WithScheme returns a copy of c using scheme s.
func (c *Config) WithScheme(s Scheme) *Config {
	out := c.Clone()
	if out == nil {
		out = &Config{}
	}

	out.Scheme = s

	return out
}

func (c *Config) element(f Field) *Element {
	switch f {
	case FieldTimestamp:
		return &c.Timestamp
	case FieldLevel:
		return &c.Level
	case FieldServiceName:
		return &c.ServiceName
	case FieldMessage:
		return &c.Message
	}

	return nil
}

// Fields returns every styled field in line order.
func Fields() []Field {
	return []Field{FieldTimestamp, FieldLevel, FieldServiceName, FieldMessage}
}

func levelsOf(r Rule) []level.Level {
	return slices.Sorted(maps.Keys(r.Levels))
}
