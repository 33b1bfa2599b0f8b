// Package style resolves terminal styling for log line fields.
//
// A [Config] holds, for each [Field] (timestamp, level tag, service tag,
// message) and each role (main or sub process), a [Rule] mapping log levels to
// a set of [Style] flags with a default fallback. [Config.Styles] never fails:
// a missing level falls back to the rule default, and a missing default falls
// back to no styling at all.
//
// [Apply] turns resolved styles and a process [Color] into the final escape
// sequence: color code, style codes, text, then exactly one reset code.
//
// Each display [Mode] has a preset returned by [Preset]. Configs are treated as
// immutable; [Config.Override] returns a new value instead of mutating the
// receiver, so a logger can swap configs wholesale when its mode changes.
package style
