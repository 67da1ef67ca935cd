package ast

// Visitor is the double-dispatch interface for external consumers that must
// stay decoupled from the node enumeration, such as the formatter and any
// downstream evaluator.
type Visitor interface {
	VisitTerminal(t *Terminal)
	VisitTree(t *Tree)
}
