package process

import "go.jacobcolvin.com/proclog/style"

// ID uniquely identifies a registered process.
type ID string

// Info is the data shared by both metadata variants.
type Info struct {
	ServiceName string
	Color       style.Color
}

// Metadata describes a registered process. The only implementations are
// [Main] and [Sub]; handle them with a type switch.
type Metadata interface {
	// Details returns the shared metadata fields.
	Details() Info

	sealed()
}

// Main describes a top-level process.
type Main struct {
	Info
}

// Details implements [Metadata].
func (m Main) Details() Info { return m.Info }

func (Main) sealed() {}

// Sub describes a process nested under another registered process.
type Sub struct {
	Info

	ParentID ID
}

// Details implements [Metadata].
func (s Sub) Details() Info { return s.Info }

func (Sub) sealed() {}

// IsMain reports whether md is a [Main] variant.
func IsMain(md Metadata) bool {
	_, ok := md.(Main)

	return ok
}
