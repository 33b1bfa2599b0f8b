// Package format renders log entries for registered processes.
//
// A [Formatter] looks up the emitting process in a [process.Database] and
// builds the line from independent fields, each styled with the process
// color and the styles resolved from the active [style.Config]:
//
//	[15:04:05] [INFO]  [API] [Worker] - started
//	 timestamp  level   parent service   message
//
// The level tag is padded to [level.TagWidth] and the service tag to the
// longest registered name (capped by [Options.TagsMaxLength], truncating with
// "..."), so messages line up in a column.
//
// With [Options.ShowHierarchy], [Default] and [Light] details show the
// immediate parent's tag. [Detailed] shows the whole path from the root,
// joined by " -> ", drops the now redundant service tag, and ends the entry
// with an empty line.
//
// Values passed to [Formatter.Format] are rendered by [Values]: strings as
// is, errors by their message, structured values as indented JSON with
// unquoted keys, and slices flattened one level.
package format
