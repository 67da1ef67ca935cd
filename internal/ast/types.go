package ast

type NodeType int

const (
	// Special / error
	ILLEGAL NodeType = iota

	// Terminal elements
	SHELL
	SYMBOL
	TAG
	NUMBER
	PROBABILITY
	TEXT
	VERSION
	REFERENCE
	MOMENT
	DURATION
	BINARY
	PATTERN
	TEMPLATE
	IDENTIFIER
	VARIABLE

	// Composite structures
	DOCUMENT
	COMPONENT
	PARAMETERS
	RANGE
	ARRAY
	TABLE
	ASSOCIATION
	BLOCK
	PROCEDURE
	STATEMENT

	// Statement clauses
	EVALUATE_CLAUSE
	CHECKOUT_CLAUSE
	SAVE_CLAUSE
	DISCARD_CLAUSE
	COMMIT_CLAUSE
	PUBLISH_CLAUSE
	QUEUE_CLAUSE
	WAIT_CLAUSE
	IF_CLAUSE
	SELECT_CLAUSE
	WHILE_CLAUSE
	WITH_CLAUSE
	CONTINUE_CLAUSE
	BREAK_CLAUSE
	RETURN_CLAUSE
	THROW_CLAUSE
	HANDLE_CLAUSE
	FINISH_CLAUSE

	// Expressions
	ARITHMETIC_EXPRESSION
	COMPARISON_EXPRESSION
	LOGICAL_EXPRESSION
	DEFAULT_EXPRESSION
	MESSAGE_EXPRESSION
	SUBCOMPONENT_EXPRESSION
	FUNCTION_EXPRESSION
	FACTORIAL_EXPRESSION
	DEREFERENCE_EXPRESSION
	INVERSION_EXPRESSION
	COMPLEMENT_EXPRESSION
	MAGNITUDE_EXPRESSION
	PRECEDENCE_EXPRESSION
)

var nodeNames = map[NodeType]string{
	ILLEGAL:                 "ILLEGAL",
	SHELL:                   "SHELL",
	SYMBOL:                  "SYMBOL",
	TAG:                     "TAG",
	NUMBER:                  "NUMBER",
	PROBABILITY:             "PROBABILITY",
	TEXT:                    "TEXT",
	VERSION:                 "VERSION",
	REFERENCE:               "REFERENCE",
	MOMENT:                  "MOMENT",
	DURATION:                "DURATION",
	BINARY:                  "BINARY",
	PATTERN:                 "PATTERN",
	TEMPLATE:                "TEMPLATE",
	IDENTIFIER:              "IDENTIFIER",
	VARIABLE:                "VARIABLE",
	DOCUMENT:                "DOCUMENT",
	COMPONENT:               "COMPONENT",
	PARAMETERS:              "PARAMETERS",
	RANGE:                   "RANGE",
	ARRAY:                   "ARRAY",
	TABLE:                   "TABLE",
	ASSOCIATION:             "ASSOCIATION",
	BLOCK:                   "BLOCK",
	PROCEDURE:               "PROCEDURE",
	STATEMENT:               "STATEMENT",
	EVALUATE_CLAUSE:         "EVALUATE_CLAUSE",
	CHECKOUT_CLAUSE:         "CHECKOUT_CLAUSE",
	SAVE_CLAUSE:             "SAVE_CLAUSE",
	DISCARD_CLAUSE:          "DISCARD_CLAUSE",
	COMMIT_CLAUSE:           "COMMIT_CLAUSE",
	PUBLISH_CLAUSE:          "PUBLISH_CLAUSE",
	QUEUE_CLAUSE:            "QUEUE_CLAUSE",
	WAIT_CLAUSE:             "WAIT_CLAUSE",
	IF_CLAUSE:               "IF_CLAUSE",
	SELECT_CLAUSE:           "SELECT_CLAUSE",
	WHILE_CLAUSE:            "WHILE_CLAUSE",
	WITH_CLAUSE:             "WITH_CLAUSE",
	CONTINUE_CLAUSE:         "CONTINUE_CLAUSE",
	BREAK_CLAUSE:            "BREAK_CLAUSE",
	RETURN_CLAUSE:           "RETURN_CLAUSE",
	THROW_CLAUSE:            "THROW_CLAUSE",
	HANDLE_CLAUSE:           "HANDLE_CLAUSE",
	FINISH_CLAUSE:           "FINISH_CLAUSE",
	ARITHMETIC_EXPRESSION:   "ARITHMETIC_EXPRESSION",
	COMPARISON_EXPRESSION:   "COMPARISON_EXPRESSION",
	LOGICAL_EXPRESSION:      "LOGICAL_EXPRESSION",
	DEFAULT_EXPRESSION:      "DEFAULT_EXPRESSION",
	MESSAGE_EXPRESSION:      "MESSAGE_EXPRESSION",
	SUBCOMPONENT_EXPRESSION: "SUBCOMPONENT_EXPRESSION",
	FUNCTION_EXPRESSION:     "FUNCTION_EXPRESSION",
	FACTORIAL_EXPRESSION:    "FACTORIAL_EXPRESSION",
	DEREFERENCE_EXPRESSION:  "DEREFERENCE_EXPRESSION",
	INVERSION_EXPRESSION:    "INVERSION_EXPRESSION",
	COMPLEMENT_EXPRESSION:   "COMPLEMENT_EXPRESSION",
	MAGNITUDE_EXPRESSION:    "MAGNITUDE_EXPRESSION",
	PRECEDENCE_EXPRESSION:   "PRECEDENCE_EXPRESSION",
}

func (nt NodeType) String() string {
	if name, ok := nodeNames[nt]; ok {
		return name
	}
	return "UNKNOWN"
}

// IsExpression reports whether the node kind represents procedural code
// rather than literal data. Expression nodes can never be converted into
// static values.
func (nt NodeType) IsExpression() bool {
	switch nt {
	case ARITHMETIC_EXPRESSION, COMPARISON_EXPRESSION, LOGICAL_EXPRESSION,
		DEFAULT_EXPRESSION, MESSAGE_EXPRESSION, SUBCOMPONENT_EXPRESSION,
		FUNCTION_EXPRESSION, FACTORIAL_EXPRESSION, DEREFERENCE_EXPRESSION,
		INVERSION_EXPRESSION, COMPLEMENT_EXPRESSION, MAGNITUDE_EXPRESSION,
		PRECEDENCE_EXPRESSION, VARIABLE:
		return true
	}
	return false
}
