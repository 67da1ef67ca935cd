package parser

var KEYWORDS = map[string]TokenType{
	"handle":    HANDLE,
	"matching":  MATCHING,
	"with":      WITH,
	"finish":    FINISH,
	"checkout":  CHECKOUT,
	"from":      FROM,
	"save":      SAVE,
	"to":        TO,
	"discard":   DISCARD,
	"commit":    COMMIT,
	"publish":   PUBLISH,
	"queue":     QUEUE,
	"on":        ON,
	"wait":      WAIT,
	"for":       FOR,
	"if":        IF,
	"then":      THEN,
	"else":      ELSE,
	"select":    SELECT,
	"do":        DO,
	"while":     WHILE,
	"each":      EACH,
	"in":        IN,
	"continue":  CONTINUE,
	"break":     BREAK,
	"return":    RETURN,
	"throw":     THROW,
	"and":       AND,
	"sans":      SANS,
	"xor":       XOR,
	"or":        OR,
	"is":        IS,
	"matches":   MATCHES,
	"not":       NOT,
	"true":      TRUE,
	"false":     FALSE,
	"undefined": UNDEFINED,
	"infinity":  INFINITY,
	"none":      NONE,
	"any":       ANY,
	"i":         IMAGINARY,
	"e":         CONSTANT,
	"pi":        CONSTANT,
	"phi":       CONSTANT,
}
