// Package level defines the severity levels understood by the process-aware
// console logger.
//
// Levels are ordered from [None] to [Error]. A logger configured with a
// minimum level emits every line whose level is greater than or equal to it.
// Use [Parse] to read a level from a flag or config file and [Tag] to render
// the bracketed label that prefixes each line:
//
//	lvl, err := level.Parse("warn")
//	fmt.Println(level.Tag(lvl)) // [WARN]
//
// [TagWidth] reports the widest tag across all defined levels, which the
// formatter uses to keep the message column aligned.
package level
