package style

import "go.jacobcolvin.com/proclog/level"

func uniform(styles ...Style) Rule {
	return Rule{Default: styles}
}

func rule(def []Style, levels map[level.Level][]Style) Rule {
	return Rule{Default: def, Levels: levels}
}

func same(r Rule) Element {
	return Element{Main: r, Sub: r.clone()}
}

// Base returns the general-purpose configuration: dim timestamps, severity
// emphasis on level tags and messages, and bright service names for main
// processes.
func Base() *Config {
	message := rule([]Style{Reset}, map[level.Level][]Style{
		level.Trace: {Dim},
		level.Debug: {Reset},
		level.Info:  {Reset},
		level.Warn:  {Reset},
		level.Error: {Bright},
	})

	return &Config{
		Timestamp: same(uniform(Dim)),
		Level: Element{
			Main: rule([]Style{Reset}, map[level.Level][]Style{
				level.Trace: {Dim},
				level.Debug: {Dim},
				level.Info:  {Reset},
				level.Warn:  {Bright},
				level.Error: {Bright},
			}),
			Sub: rule([]Style{Reset}, map[level.Level][]Style{
				level.Trace: {Dim},
				level.Debug: {Reset},
				level.Info:  {Reset},
				level.Warn:  {Reset},
				level.Error: {Bright},
			}),
		},
		ServiceName: Element{
			Main: uniform(Bright),
			Sub:  uniform(Reset),
		},
		Message: same(message),
	}
}

// Preset returns a fresh configuration for mode m. Unknown modes get the
// [Classic] preset.
func Preset(m Mode) *Config {
	switch m {
	case Colored:
		return severityPreset([]Style{Bright, Underscore})
	case Docker:
		return severityPreset([]Style{Bright})
	case Classic:
	}

	return classicPreset()
}

func classicPreset() *Config {
	r := uniform(Reset)

	return &Config{
		Timestamp:   same(r),
		Level:       same(r),
		ServiceName: same(r),
		Message:     same(r),
	}
}

// severityPreset builds the shared shape of the colored and docker presets,
// which differ only in how info lines are emphasized.
func severityPreset(info []Style) *Config {
	r := rule([]Style{Bright}, map[level.Level][]Style{
		level.Trace: {Dim},
		level.Debug: {Reset},
		level.Info:  info,
		level.Warn:  {Blink},
		level.Error: {Reverse},
	})

	return &Config{
		Timestamp:   same(r),
		Level:       same(r.clone()),
		ServiceName: same(r.clone()),
		Message:     same(r.clone()),
	}
}
