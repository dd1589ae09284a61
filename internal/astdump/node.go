package astdump

// Node is one arena slot in a Tree. Children are referenced by index into
// the owning Tree's node slice rather than by pointer, and there is no
// parent back-reference: Design Note 1 calls out the source's cyclic
// parent/child graph as an artifact of a destructor-driven language, not a
// requirement. Construction needs "walk up to an ancestor by indent"; once
// built, the walker only ever iterates children.
type Node struct {
	Indent   int
	Tag      Kind
	Payload  string
	Children []int
}

// Tree is an arena of Nodes. Root is the index of the synthetic root node
// (indent -1); its children (by convention exactly one, the translation unit)
// are the real top of the dump.
type Tree struct {
	Nodes []Node
	Root  int
}

// Child returns the i'th child node of n by index lookup into the tree.
func (t *Tree) Child(n *Node, i int) *Node {
	return &t.Nodes[n.Children[i]]
}

// At returns the node at the given arena index.
func (t *Tree) At(i int) *Node {
	return &t.Nodes[i]
}

func (t *Tree) newNode(indent int, tag Kind, payload string) int {
	idx := len(t.Nodes)
	t.Nodes = append(t.Nodes, Node{Indent: indent, Tag: tag, Payload: payload})
	return idx
}
