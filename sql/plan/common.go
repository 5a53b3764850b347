package plan

import "github.com/src-d/go-unnest/sql"

// UnaryNode is a node that has only one child.
type UnaryNode struct {
	Child sql.Node
}

// Schema implements the Node interface.
func (n UnaryNode) Schema() sql.Schema {
	return n.Child.Schema()
}

// Children implements the Node interface.
func (n UnaryNode) Children() []sql.Node {
	return []sql.Node{n.Child}
}

// BinaryNode is a node with two children.
type BinaryNode struct {
	left  sql.Node
	right sql.Node
}

// Left returns the left child.
func (n BinaryNode) Left() sql.Node {
	return n.left
}

// Right returns the right child.
func (n BinaryNode) Right() sql.Node {
	return n.right
}

// Children implements the Node interface.
func (n BinaryNode) Children() []sql.Node {
	return []sql.Node{n.left, n.right}
}
