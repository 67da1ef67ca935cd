package parser

type TokenType int

const (
	// Special tokens
	ILLEGAL TokenType = iota
	EOF
	NEWLINE

	// Literals
	SHELL
	TAG
	SYMBOL
	FRACTION
	NUMBER
	FLOAT
	MOMENT
	DURATION
	RESOURCE
	VERSION
	BINARY
	TEXT_BLOCK
	TEXT
	IDENTIFIER

	// Statement keywords
	HANDLE
	MATCHING
	WITH
	FINISH
	CHECKOUT
	FROM
	SAVE
	TO
	DISCARD
	COMMIT
	PUBLISH
	QUEUE
	ON
	WAIT
	FOR
	IF
	THEN
	ELSE
	SELECT
	DO
	WHILE
	EACH
	IN
	CONTINUE
	BREAK
	RETURN
	THROW

	// Operator keywords
	AND
	SANS
	XOR
	OR
	IS
	MATCHES
	NOT

	// Literal keywords
	TRUE
	FALSE
	UNDEFINED
	INFINITY
	NONE
	ANY
	IMAGINARY
	CONSTANT

	// Brackets
	LEFT_BRACKET
	RIGHT_BRACKET
	LEFT_PAREN
	RIGHT_PAREN
	LEFT_BRACE
	RIGHT_BRACE

	// Separators
	COLON
	COMMA
	SEMICOLON
	RANGE
	DOT
	ASSIGN

	// Operators
	QUESTION
	BAR
	AT
	CARET
	STAR
	SLASH
	DOUBLE_SLASH
	PLUS
	MINUS
	LESS
	EQUAL
	GREATER
	BANG
)

var tokenNames = map[TokenType]string{
	ILLEGAL:       "ILLEGAL",
	EOF:           "EOF",
	NEWLINE:       "NEWLINE",
	SHELL:         "SHELL",
	TAG:           "TAG",
	SYMBOL:        "SYMBOL",
	FRACTION:      "FRACTION",
	NUMBER:        "NUMBER",
	FLOAT:         "FLOAT",
	MOMENT:        "MOMENT",
	DURATION:      "DURATION",
	RESOURCE:      "RESOURCE",
	VERSION:       "VERSION",
	BINARY:        "BINARY",
	TEXT_BLOCK:    "TEXT_BLOCK",
	TEXT:          "TEXT",
	IDENTIFIER:    "IDENTIFIER",
	HANDLE:        "handle",
	MATCHING:      "matching",
	WITH:          "with",
	FINISH:        "finish",
	CHECKOUT:      "checkout",
	FROM:          "from",
	SAVE:          "save",
	TO:            "to",
	DISCARD:       "discard",
	COMMIT:        "commit",
	PUBLISH:       "publish",
	QUEUE:         "queue",
	ON:            "on",
	WAIT:          "wait",
	FOR:           "for",
	IF:            "if",
	THEN:          "then",
	ELSE:          "else",
	SELECT:        "select",
	DO:            "do",
	WHILE:         "while",
	EACH:          "each",
	IN:            "in",
	CONTINUE:      "continue",
	BREAK:         "break",
	RETURN:        "return",
	THROW:         "throw",
	AND:           "and",
	SANS:          "sans",
	XOR:           "xor",
	OR:            "or",
	IS:            "is",
	MATCHES:       "matches",
	NOT:           "not",
	TRUE:          "true",
	FALSE:         "false",
	UNDEFINED:     "undefined",
	INFINITY:      "infinity",
	NONE:          "none",
	ANY:           "any",
	IMAGINARY:     "i",
	CONSTANT:      "CONSTANT",
	LEFT_BRACKET:  "[",
	RIGHT_BRACKET: "]",
	LEFT_PAREN:    "(",
	RIGHT_PAREN:   ")",
	LEFT_BRACE:    "{",
	RIGHT_BRACE:   "}",
	COLON:         ":",
	COMMA:         ",",
	SEMICOLON:     ";",
	RANGE:         "..",
	DOT:           ".",
	ASSIGN:        ":=",
	QUESTION:      "?",
	BAR:           "|",
	AT:            "@",
	CARET:         "^",
	STAR:          "*",
	SLASH:         "/",
	DOUBLE_SLASH:  "//",
	PLUS:          "+",
	MINUS:         "-",
	LESS:          "<",
	EQUAL:         "=",
	GREATER:       ">",
	BANG:          "!",
}

func (tt TokenType) String() string {
	if name, ok := tokenNames[tt]; ok {
		return name
	}
	return "UNKNOWN"
}

type Position struct {
	Line   int // 1-based
	Column int // 1-based
	Offset int // 0-based absolute index in input
}
