package process

// Node is a single registered process and its direct children. Nodes are
// owned by a [Database] and must only be read while its lock is held, either
// through [Database.View] or between other database calls.
type Node struct {
	Metadata Metadata
	ID       ID

	children []*Node
}

func newNode(id ID, md Metadata) *Node {
	return &Node{ID: id, Metadata: md}
}

// Info returns the shared metadata fields of the node.
func (n *Node) Info() Info {
	return n.Metadata.Details()
}

// IsMain reports whether the node is a main process.
func (n *Node) IsMain() bool {
	return IsMain(n.Metadata)
}

// Children returns the direct children in insertion order.
func (n *Node) Children() []*Node {
	out := make([]*Node, len(n.children))
	copy(out, n.children)

	return out
}

func (n *Node) addChild(c *Node) {
	n.children = append(n.children, c)
}
