package process

// Tree is one main process and everything registered beneath it.
type Tree struct {
	root *Node
}

func newTree(root *Node) *Tree {
	return &Tree{root: root}
}

// Root returns the main process node.
func (t *Tree) Root() *Node {
	return t.root
}
