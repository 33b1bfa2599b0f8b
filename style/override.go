package style

import (
	"errors"
	"fmt"
	"strings"

	"go.jacobcolvin.com/proclog/level"
)

// DefaultKey is the [RuleOverride] key that sets a rule's fallback styles.
const DefaultKey = "default"

// ErrInvalidOverride indicates a style override that cannot be applied.
var ErrInvalidOverride = errors.New("invalid style override")

// Overrides is the file form of a partial style configuration. Only the
// entries present replace the corresponding entries of the base config.
type Overrides struct {
	Timestamp   *ElementOverride `json:"timestamp,omitempty"   yaml:"timestamp,omitempty"`
	Level       *ElementOverride `json:"level,omitempty"       yaml:"level,omitempty"`
	ServiceName *ElementOverride `json:"serviceName,omitempty" yaml:"serviceName,omitempty"`
	Message     *ElementOverride `json:"message,omitempty"     yaml:"message,omitempty"`
	Scheme      string           `json:"scheme,omitempty"      yaml:"scheme,omitempty"`
}

// ElementOverride holds per-role overrides for one field.
type ElementOverride struct {
	Main RuleOverride `json:"main,omitempty" yaml:"main,omitempty"`
	Sub  RuleOverride `json:"sub,omitempty"  yaml:"sub,omitempty"`
}

// RuleOverride maps a level name, or [DefaultKey], to a list of style names.
type RuleOverride map[string][]string

func (o Overrides) element(f Field) *ElementOverride {
	switch f {
	case FieldTimestamp:
		return o.Timestamp
	case FieldLevel:
		return o.Level
	case FieldServiceName:
		return o.ServiceName
	case FieldMessage:
		return o.Message
	}

	return nil
}

// Override returns a copy of c with o applied. The receiver is not modified.
// A nil receiver is treated as an empty config.
func (c *Config) Override(o Overrides) (*Config, error) {
	out := c.Clone()
	if out == nil {
		out = &Config{}
	}

	if o.Scheme != "" {
		s, err := ParseScheme(o.Scheme)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidOverride, err)
		}

		out.Scheme = s
	}

	for _, f := range Fields() {
		eo := o.element(f)
		if eo == nil {
			continue
		}

		e := out.element(f)

		err := eo.Main.apply(&e.Main)
		if err != nil {
			return nil, fmt.Errorf("%w: %s.main: %w", ErrInvalidOverride, f, err)
		}

		err = eo.Sub.apply(&e.Sub)
		if err != nil {
			return nil, fmt.Errorf("%w: %s.sub: %w", ErrInvalidOverride, f, err)
		}
	}

	return out, nil
}

func (ro RuleOverride) apply(r *Rule) error {
	for key, names := range ro {
		styles, err := parseStyles(names)
		if err != nil {
			return err
		}

		if strings.EqualFold(strings.TrimSpace(key), DefaultKey) {
			r.Default = styles

			continue
		}

		l, err := level.Parse(key)
		if err != nil {
			return err
		}

		if r.Levels == nil {
			r.Levels = map[level.Level][]Style{}
		}

		r.Levels[l] = styles
	}

	return nil
}

func parseStyles(names []string) ([]Style, error) {
	styles := make([]Style, 0, len(names))
	for _, n := range names {
		s, err := ParseStyle(n)
		if err != nil {
			return nil, err
		}

		styles = append(styles, s)
	}

	return styles, nil
}

// Overrides exports c as a complete set of overrides. Applying the result to
// an empty config reproduces c.
func (c *Config) Overrides() Overrides {
	if c == nil {
		return Overrides{}
	}

	o := Overrides{Scheme: c.Scheme.String()}
	for _, f := range Fields() {
		e := c.Element(f)
		eo := &ElementOverride{Main: exportRule(e.Main), Sub: exportRule(e.Sub)}

		switch f {
		case FieldTimestamp:
			o.Timestamp = eo
		case FieldLevel:
			o.Level = eo
		case FieldServiceName:
			o.ServiceName = eo
		case FieldMessage:
			o.Message = eo
		}
	}

	return o
}

func exportRule(r Rule) RuleOverride {
	ro := RuleOverride{}
	if r.Default != nil {
		ro[DefaultKey] = styleNamesOf(r.Default)
	}

	for _, l := range levelsOf(r) {
		ro[strings.ToLower(l.String())] = styleNamesOf(r.Levels[l])
	}

	return ro
}

func styleNamesOf(styles []Style) []string {
	out := make([]string, 0, len(styles))
	for _, s := range styles {
		out = append(out, s.String())
	}

	return out
}
