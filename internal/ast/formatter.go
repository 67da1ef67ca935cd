package ast

import (
	"fmt"
	"strings"
)

// maximumInline is the largest size weight a composite may have and still be
// emitted on a single line. Anything heavier is re-emitted in the
// newline-delimited surface form.
const maximumInline = 50

// indentation is one level of canonical indentation.
const indentation = "    "

// Format renders a node as canonical Bali Document Notation source text.
// Formatting is a left inverse of parsing for canonical documents, and is
// idempotent: formatting the same tree twice yields identical text.
func Format(node Node) string {
	var f formatter
	node.Accept(&f)
	return f.builder.String()
}

type formatter struct {
	builder strings.Builder
	depth   int
}

func (f *formatter) VisitTerminal(t *Terminal) {
	value := t.Value()
	if strings.ContainsRune(value, '\n') {
		// Multi-line text blocks and binaries are stored with their interior
		// indentation stripped; re-indent them to the current nesting depth.
		value = strings.ReplaceAll(value, "\n", "\n"+f.indent())
	}
	f.write(value)
}

func (f *formatter) VisitTree(t *Tree) {
	switch t.Kind() {
	case DOCUMENT:
		f.formatDocument(t)
	case COMPONENT:
		f.formatComponent(t)
	case PARAMETERS:
		f.formatComposite(t.Children(), "(", ")", "( )")
	case ARRAY:
		f.formatComposite(t.Children(), "[", "]", "[ ]")
	case TABLE:
		f.formatComposite(t.Children(), "[", "]", "[:]")
	case RANGE:
		f.write("[")
		f.format(t.Child(0))
		f.write("..")
		f.format(t.Child(1))
		f.write("]")
	case ASSOCIATION:
		f.format(t.Child(0))
		f.write(": ")
		f.format(t.Child(1))
	case BLOCK:
		f.formatBlock(t)
	case PROCEDURE:
		f.formatProcedure(t)
	case STATEMENT:
		f.formatList(t.Children(), " ")
	case EVALUATE_CLAUSE:
		if len(t.Children()) == 2 {
			f.format(t.Child(0))
			f.write(" := ")
			f.format(t.Child(1))
		} else {
			f.format(t.Child(0))
		}
	case CHECKOUT_CLAUSE:
		f.write("checkout ")
		f.format(t.Child(0))
		f.write(" from ")
		f.format(t.Child(1))
	case SAVE_CLAUSE:
		f.write("save ")
		f.format(t.Child(0))
		if len(t.Children()) == 2 {
			f.write(" to ")
			f.format(t.Child(1))
		}
	case DISCARD_CLAUSE:
		f.write("discard ")
		f.format(t.Child(0))
	case COMMIT_CLAUSE:
		f.write("commit ")
		f.format(t.Child(0))
		f.write(" to ")
		f.format(t.Child(1))
	case PUBLISH_CLAUSE:
		f.write("publish ")
		f.format(t.Child(0))
	case QUEUE_CLAUSE:
		f.write("queue ")
		f.format(t.Child(0))
		f.write(" on ")
		f.format(t.Child(1))
	case WAIT_CLAUSE:
		f.write("wait for ")
		f.format(t.Child(0))
		f.write(" from ")
		f.format(t.Child(1))
	case IF_CLAUSE:
		f.formatIfClause(t)
	case SELECT_CLAUSE:
		f.formatSelectClause(t)
	case WHILE_CLAUSE:
		f.write("while ")
		f.format(t.Child(0))
		f.write(" do ")
		f.format(t.Child(1))
	case WITH_CLAUSE:
		f.write("with each ")
		f.format(t.Child(0))
		f.write(" in ")
		f.format(t.Child(1))
		f.write(" do ")
		f.format(t.Child(2))
	case CONTINUE_CLAUSE:
		f.write("continue")
	case BREAK_CLAUSE:
		f.write("break")
	case RETURN_CLAUSE:
		f.write("return")
		if len(t.Children()) == 1 {
			f.write(" ")
			f.format(t.Child(0))
		}
	case THROW_CLAUSE:
		f.write("throw ")
		f.format(t.Child(0))
	case HANDLE_CLAUSE:
		f.write("handle ")
		f.format(t.Child(0))
		f.write(" matching ")
		f.format(t.Child(1))
		f.write(" with ")
		f.format(t.Child(2))
	case FINISH_CLAUSE:
		f.write("finish with ")
		f.format(t.Child(0))
	case ARITHMETIC_EXPRESSION, COMPARISON_EXPRESSION, LOGICAL_EXPRESSION, DEFAULT_EXPRESSION:
		f.format(t.Child(0))
		f.write(" " + t.Operator() + " ")
		f.format(t.Child(1))
	case MESSAGE_EXPRESSION:
		f.format(t.Child(0))
		f.write(".")
		f.format(t.Child(1))
		f.write("(")
		f.formatList(t.Children()[2:], ", ")
		f.write(")")
	case SUBCOMPONENT_EXPRESSION:
		f.format(t.Child(0))
		f.write("[")
		f.formatList(t.Children()[1:], ", ")
		f.write("]")
	case FUNCTION_EXPRESSION:
		f.format(t.Child(0))
		f.write("(")
		f.formatList(t.Children()[1:], ", ")
		f.write(")")
	case FACTORIAL_EXPRESSION:
		f.format(t.Child(0))
		f.write("!")
	case DEREFERENCE_EXPRESSION:
		f.write("@")
		f.format(t.Child(0))
	case INVERSION_EXPRESSION:
		f.write(t.Operator())
		f.format(t.Child(0))
	case COMPLEMENT_EXPRESSION:
		f.write("not ")
		f.format(t.Child(0))
	case MAGNITUDE_EXPRESSION:
		f.write("|")
		f.format(t.Child(0))
		f.write("|")
	case PRECEDENCE_EXPRESSION:
		f.write("(")
		f.format(t.Child(0))
		f.write(")")
	default:
		f.write(fmt.Sprintf("<%s>", t.Kind()))
	}
}

func (f *formatter) formatDocument(t *Tree) {
	for _, child := range t.Children() {
		f.format(child)
		f.write("\n")
	}
}

func (f *formatter) formatComponent(t *Tree) {
	f.format(t.Child(0))
	if len(t.Children()) == 2 {
		f.format(t.Child(1))
	}
}

// formatComposite emits a delimited collection inline when its size weight
// permits, and newline-delimited otherwise.
func (f *formatter) formatComposite(items []Node, open, close, empty string) {
	if len(items) == 0 {
		f.write(empty)
		return
	}
	if f.fitsInline(items) {
		f.write(open)
		f.formatList(items, ", ")
		f.write(close)
		return
	}
	f.write(open)
	f.depth++
	for _, item := range items {
		f.newline()
		f.format(item)
	}
	f.depth--
	f.newline()
	f.write(close)
}

func (f *formatter) formatBlock(t *Tree) {
	procedure := t.Child(0).(*Tree)
	statements := procedure.Children()
	if len(statements) == 0 {
		f.write("{ }")
		return
	}
	if f.fitsInline(statements) {
		f.write("{")
		f.formatList(statements, "; ")
		f.write("}")
		return
	}
	f.write("{")
	f.depth++
	for _, statement := range statements {
		f.newline()
		f.format(statement)
	}
	f.depth--
	f.newline()
	f.write("}")
}

func (f *formatter) formatProcedure(t *Tree) {
	statements := t.Children()
	if f.fitsInline(statements) {
		f.formatList(statements, "; ")
		return
	}
	for i, statement := range statements {
		if i > 0 {
			f.newline()
		}
		f.format(statement)
	}
}

func (f *formatter) formatIfClause(t *Tree) {
	children := t.Children()
	pairs := len(children) / 2
	for i := 0; i < pairs; i++ {
		if i > 0 {
			f.write(" else ")
		}
		f.write("if ")
		f.format(children[2*i])
		f.write(" then ")
		f.format(children[2*i+1])
	}
	// An odd child count means a trailing unconditional else block.
	if len(children)%2 == 1 {
		f.write(" else ")
		f.format(children[len(children)-1])
	}
}

func (f *formatter) formatSelectClause(t *Tree) {
	children := t.Children()
	f.write("select ")
	f.format(children[0])
	rest := children[1:]
	pairs := len(rest) / 2
	for i := 0; i < pairs; i++ {
		f.write(" matching ")
		f.format(rest[2*i])
		f.write(" do ")
		f.format(rest[2*i+1])
	}
	if len(rest)%2 == 1 {
		f.write(" else ")
		f.format(rest[len(rest)-1])
	}
}

func (f *formatter) formatList(items []Node, separator string) {
	for i, item := range items {
		if i > 0 {
			f.write(separator)
		}
		f.format(item)
	}
}

func (f *formatter) fitsInline(items []Node) bool {
	total := 0
	for _, item := range items {
		size := item.Size()
		if size == multiline {
			return false
		}
		total += size + 2
	}
	return total <= maximumInline
}

func (f *formatter) format(node Node) {
	node.Accept(f)
}

func (f *formatter) write(text string) {
	f.builder.WriteString(text)
}

func (f *formatter) newline() {
	f.builder.WriteString("\n")
	f.builder.WriteString(f.indent())
}

func (f *formatter) indent() string {
	return strings.Repeat(indentation, f.depth)
}
