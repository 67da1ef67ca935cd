package ast

import (
	"encoding/base64"
	"fmt"
	"math"
	"math/cmplx"
	"strconv"
	"strings"
	"time"
)

// ConversionError reports an attempt to coerce a procedural expression node
// into a static value. Expressions are code, not data; the boundary is hard.
type ConversionError struct {
	Kind NodeType
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("a %s cannot be converted into a static value", e.Kind)
}

// Association is one key-value pair extracted from a table.
type Association struct {
	Key   any
	Value any
}

// Range is the pair of endpoint values extracted from a range structure.
type Range struct {
	First any
	Last  any
}

// Value converts a literal node into a concrete Go value. Only literal
// elements, fully-literal structures, and blocks (quoted procedures) can be
// converted; any expression node yields a *ConversionError.
func Value(node Node) (any, error) {
	if node.Kind().IsExpression() {
		return nil, &ConversionError{Kind: node.Kind()}
	}

	switch n := node.(type) {
	case *Terminal:
		return terminalValue(n)
	case *Tree:
		return treeValue(n)
	}
	return nil, &ConversionError{Kind: node.Kind()}
}

func terminalValue(t *Terminal) (any, error) {
	value := t.Value()
	switch t.Kind() {
	case NUMBER:
		return numberValue(value), nil
	case PROBABILITY:
		switch value {
		case "true":
			return true, nil
		case "false":
			return false, nil
		}
		probability, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return nil, fmt.Errorf("malformed probability %q: %w", value, err)
		}
		return probability, nil
	case TEXT:
		return textValue(value), nil
	case BINARY:
		return binaryValue(value)
	case MOMENT:
		return momentValue(value), nil
	case SYMBOL, TAG, VERSION, REFERENCE, DURATION, PATTERN, TEMPLATE, IDENTIFIER, SHELL:
		return value, nil
	}
	return nil, &ConversionError{Kind: t.Kind()}
}

func treeValue(t *Tree) (any, error) {
	switch t.Kind() {
	case DOCUMENT:
		// The component is the last child; an optional shell line precedes it.
		return Value(t.Child(len(t.Children()) - 1))
	case COMPONENT:
		return Value(t.Child(0))
	case ARRAY:
		items := make([]any, 0, len(t.Children()))
		for _, child := range t.Children() {
			item, err := Value(child)
			if err != nil {
				return nil, err
			}
			items = append(items, item)
		}
		return items, nil
	case TABLE:
		associations := make([]Association, 0, len(t.Children()))
		for _, child := range t.Children() {
			value, err := Value(child)
			if err != nil {
				return nil, err
			}
			associations = append(associations, value.(Association))
		}
		return associations, nil
	case ASSOCIATION:
		key, err := Value(t.Child(0))
		if err != nil {
			return nil, err
		}
		value, err := Value(t.Child(1))
		if err != nil {
			return nil, err
		}
		return Association{Key: key, Value: value}, nil
	case RANGE:
		first, err := Value(t.Child(0))
		if err != nil {
			return nil, err
		}
		last, err := Value(t.Child(1))
		if err != nil {
			return nil, err
		}
		return Range{First: first, Last: last}, nil
	case BLOCK:
		// A block is quoted code treated as literal data.
		return t, nil
	}
	return nil, &ConversionError{Kind: t.Kind()}
}

// numberValue interprets the canonical lexeme of a number element. Integers
// yield int64, reals yield float64, and imaginary, rectangular, and polar
// forms yield complex128.
func numberValue(value string) any {
	switch value {
	case "infinity":
		return math.Inf(1)
	case "undefined":
		return math.NaN()
	case "e":
		return math.E
	case "pi":
		return math.Pi
	case "phi":
		return math.Phi
	case "i":
		return complex(0, 1)
	case "-i":
		return complex(0, -1)
	}
	if strings.HasPrefix(value, "(") && strings.HasSuffix(value, ")") {
		return complexValue(value[1 : len(value)-1])
	}
	if strings.HasSuffix(value, "i") {
		imaginary := realValue(value[:len(value)-1])
		return complex(0, imaginary)
	}
	if integer, err := strconv.ParseInt(value, 10, 64); err == nil {
		return integer
	}
	return realValue(value)
}

func complexValue(body string) any {
	if real, angle, ok := strings.Cut(body, " e^ "); ok {
		return cmplx.Rect(realValue(real), realValue(strings.TrimSuffix(angle, "i")))
	}
	if real, imaginary, ok := strings.Cut(body, ", "); ok {
		return complex(realValue(real), realValue(strings.TrimSuffix(imaginary, "i")))
	}
	return realValue(body)
}

func realValue(value string) float64 {
	switch value {
	case "e":
		return math.E
	case "-e":
		return -math.E
	case "pi":
		return math.Pi
	case "-pi":
		return -math.Pi
	case "phi":
		return math.Phi
	case "-phi":
		return -math.Phi
	case "infinity":
		return math.Inf(1)
	case "-infinity":
		return math.Inf(-1)
	}
	real, _ := strconv.ParseFloat(value, 64)
	return real
}

// textValue strips the quotes from a text literal. The block form keeps its
// interior newlines; escapes only apply to the single-line form.
func textValue(value string) string {
	body := value[1 : len(value)-1]
	if strings.HasPrefix(body, "\n") {
		return strings.TrimSuffix(strings.TrimPrefix(body, "\n"), "\n")
	}
	body = strings.ReplaceAll(body, `\"`, `"`)
	body = strings.ReplaceAll(body, `\\`, `\`)
	return body
}

func binaryValue(value string) (any, error) {
	body := value[1 : len(value)-1]
	body = strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '\n':
			return -1
		}
		return r
	}, body)
	bytes, err := base64.StdEncoding.DecodeString(body)
	if err != nil {
		return nil, fmt.Errorf("malformed binary %q: %w", value, err)
	}
	return bytes, nil
}

var momentLayouts = []string{
	"2006-01-02T15:04:05.999",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02T15",
	"2006-01-02",
	"2006-01",
	"2006",
}

// momentValue parses as much of a partial ISO-8601 moment as was given,
// falling back to the canonical string for forms the time package cannot
// represent (such as negative years).
func momentValue(value string) any {
	body := value[1 : len(value)-1]
	for _, layout := range momentLayouts {
		if moment, err := time.Parse(layout, body); err == nil {
			return moment
		}
	}
	return value
}
