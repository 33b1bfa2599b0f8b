package treeview

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2/tree"

	"go.jacobcolvin.com/proclog/process"
	"go.jacobcolvin.com/proclog/style"
)

// Options controls tree rendering.
type Options struct {
	// Scheme selects the color table used when Color is set.
	Scheme style.Scheme
	// Color paints each label with its process color.
	Color bool
	// Rounded draws the last branch of each level with a rounded corner.
	Rounded bool
}

// Render draws every tree in db. It returns an empty string when nothing is
// registered.
func Render(db *process.Database, opts Options) string {
	var out []string

	db.View(func(trees []*process.Tree) {
		out = make([]string, 0, len(trees))
		for _, t := range trees {
			out = append(out, build(t.Root(), opts).String())
		}
	})

	return strings.Join(out, "\n")
}

// RenderTree draws the tree rooted at the main process of id. It reports false
// when id is not registered.
func RenderTree(db *process.Database, id process.ID, opts Options) (string, bool) {
	path := db.Path(id)
	if len(path) == 0 {
		return "", false
	}

	var out string

	db.View(func([]*process.Tree) {
		out = build(path[0], opts).String()
	})

	return out, true
}

func build(n *process.Node, opts Options) *tree.Tree {
	t := tree.Root(Label(n, opts))
	if opts.Rounded {
		t = t.Enumerator(tree.RoundedEnumerator)
	}

	for _, c := range n.Children() {
		t = t.Child(build(c, opts))
	}

	return t
}

// Label returns the "name (id)" label of n, colored when opts.Color is set.
func Label(n *process.Node, opts Options) string {
	info := n.Info()

	label := fmt.Sprintf("%s (%s)", info.ServiceName, n.ID)
	if !opts.Color {
		return label
	}

	return style.Apply(label, info.Color, nil, opts.Scheme)
}
