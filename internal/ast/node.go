package ast

import "strings"

// Node is a node in a Bali Document Notation syntax tree. Nodes are built by
// the parser and are immutable afterwards; every consumer sees only read-only
// accessors. The tree is strict: each child has exactly one parent and there
// are no cycles.
type Node interface {
	Kind() NodeType
	Size() int
	String() string
	Accept(Visitor)
}

// multiline marks nodes that can only be formatted across multiple lines,
// for example a text block literal or any composite containing one.
const multiline = -1

// Terminal is a leaf node holding the canonical lexeme of an element.
// Example: the NUMBER "5", the SYMBOL "$foo", the VERSION "v1.2.3".
type Terminal struct {
	kind  NodeType
	value string
}

func NewTerminal(kind NodeType, value string) *Terminal {
	return &Terminal{kind: kind, value: value}
}

func (t *Terminal) Kind() NodeType { return t.kind }

// Value returns the canonical string value of the terminal, after any
// lexical normalization (indentation stripping, complex-number assembly).
func (t *Terminal) Value() string { return t.value }

func (t *Terminal) Size() int {
	if strings.ContainsRune(t.value, '\n') {
		return multiline
	}
	return len(t.value)
}

func (t *Terminal) Accept(v Visitor) { v.VisitTerminal(t) }

// Tree is an interior node holding an ordered sequence of children. The
// operator field records the operator lexeme actually matched for binary and
// unary expression nodes; several textual operators share a node kind and are
// distinguished only by this string.
type Tree struct {
	kind     NodeType
	children []Node
	operator string
	size     int
}

func NewTree(kind NodeType, children ...Node) *Tree {
	return NewTreeWithOperator(kind, "", children...)
}

func NewTreeWithOperator(kind NodeType, operator string, children ...Node) *Tree {
	size := len(operator) + 4
	for _, child := range children {
		if child.Size() == multiline {
			size = multiline
			break
		}
		size += child.Size() + 2
	}
	return &Tree{kind: kind, children: children, operator: operator, size: size}
}

func (t *Tree) Kind() NodeType { return t.kind }

// Children returns the ordered child nodes. The returned slice is owned by
// the tree and must not be modified.
func (t *Tree) Children() []Node { return t.children }

// Child returns the i-th child node.
func (t *Tree) Child(i int) Node { return t.children[i] }

// Operator returns the operator lexeme captured when the node was built, or
// the empty string for nodes without one.
func (t *Tree) Operator() string { return t.operator }

// Size is an aggregate complexity weight used by the formatter to decide
// between inline and newline-delimited emission.
func (t *Tree) Size() int { return t.size }

func (t *Tree) Accept(v Visitor) { v.VisitTree(t) }

func (t *Terminal) String() string { return Format(t) }

func (t *Tree) String() string { return Format(t) }
