package parser

import (
	"fmt"
	"unicode"
)

type Token struct {
	Type     TokenType
	Lexeme   string
	Position Position
}

type Scanner struct {
	source      string
	tokens      []Token
	start       int
	current     int
	line        int
	column      int
	startLine   int
	startColumn int
}

type ScanError struct {
	Message  string
	Position Position // line, column, offset
	Length   int      // how many characters it covers
}

func (e *ScanError) Error() string {
	return fmt.Sprintf("lexical error at %d:%d: %s", e.Position.Line, e.Position.Column, e.Message)
}

func NewScanner(source string) *Scanner {
	return &Scanner{
		source: source,
		line:   1,
		column: 1,
	}
}

// ScanTokens tokenizes the entire source string. The first character that
// does not begin any token aborts the whole scan; no tokens are returned on
// failure.
func (s *Scanner) ScanTokens() ([]Token, error) {
	for !s.isAtEnd() {
		s.start = s.current
		s.startLine = s.line
		s.startColumn = s.column
		if err := s.scanToken(); err != nil {
			return nil, err
		}
	}
	s.tokens = append(s.tokens, Token{Type: EOF, Position: Position{Line: s.line, Column: s.column, Offset: s.current}})
	return s.tokens, nil
}

func (s *Scanner) scanToken() error {
	c := s.advance()
	switch c {
	// Simple single-character tokens
	case '(':
		s.addToken(LEFT_PAREN)
	case ')':
		s.addToken(RIGHT_PAREN)
	case '{':
		s.addToken(LEFT_BRACE)
	case '}':
		s.addToken(RIGHT_BRACE)
	case ']':
		s.addToken(RIGHT_BRACKET)
	case '[':
		s.addToken(LEFT_BRACKET)
	case ',':
		s.addToken(COMMA)
	case ';':
		s.addToken(SEMICOLON)
	case '?':
		s.addToken(QUESTION)
	case '|':
		s.addToken(BAR)
	case '@':
		s.addToken(AT)
	case '^':
		s.addToken(CARET)
	case '*':
		s.addToken(STAR)
	case '+':
		s.addToken(PLUS)
	case '=':
		s.addToken(EQUAL)
	case '>':
		s.addToken(GREATER)
	case '!':
		s.addToken(BANG)

	// Operators with multi-character variants
	case ':':
		if s.matchNext('=') {
			s.addToken(ASSIGN)
		} else {
			s.addToken(COLON)
		}
	case '/':
		if s.matchNext('/') {
			s.addToken(DOUBLE_SLASH)
		} else {
			s.addToken(SLASH)
		}
	case '.':
		s.scanDotOrFraction()
	case '-':
		s.scanMinusOrNegativeZero()

	// Context-sensitive token classes
	case '#':
		s.scanShellOrTag()
	case '$':
		return s.scanSymbol()
	case '"':
		return s.scanTextOrTextBlock()
	case '\'':
		return s.scanBinary()
	case '<':
		return s.scanAngle()
	case '~':
		return s.scanDuration()

	// Whitespace (hidden channel) and significant newlines
	case ' ', '\r', '\t':
		// Ignore whitespace
	case '\n':
		s.addToken(NEWLINE)

	default:
		return s.scanDefault(c)
	}
	return nil
}

func (s *Scanner) scanDefault(c byte) error {
	if isDigit(c) {
		s.scanNumber(false)
		return nil
	}
	if c == 'v' && isDigit(s.peek()) {
		s.scanVersion()
		return nil
	}
	if isAlpha(c) {
		s.scanIdentifier()
		return nil
	}
	return s.failToken(fmt.Sprintf("unexpected character: %q", c))
}

// scanShellOrTag handles the '#' prefix. A shebang line is only recognized at
// the very start of the input; everywhere else '#' begins a tag.
func (s *Scanner) scanShellOrTag() {
	if s.start == 0 && s.peek() == '!' {
		for s.peek() != '\n' && !s.isAtEnd() {
			s.advance()
		}
		s.addToken(SHELL)
		return
	}
	for isBase32(s.peek()) {
		s.advance()
	}
	s.addToken(TAG)
}

func (s *Scanner) scanSymbol() error {
	if !isAlpha(s.peek()) {
		return s.failToken("a symbol requires a letter after '$'")
	}
	for isAlpha(s.peek()) || isDigit(s.peek()) {
		s.advance()
	}
	s.addToken(SYMBOL)
	return nil
}

// scanDotOrFraction disambiguates '..' range, '.digits' fraction, and the
// bare '.' message-send operator. The final digit of a fraction must be
// nonzero, so trailing zeros are pushed back onto the input.
func (s *Scanner) scanDotOrFraction() {
	if s.matchNext('.') {
		s.addToken(RANGE)
		return
	}
	if isDigit(s.peek()) {
		digits := s.current
		for isDigit(s.peek()) {
			s.advance()
		}
		s.trimTrailingZeros(digits)
		if s.current > digits {
			s.addToken(FRACTION)
			return
		}
	}
	s.addToken(DOT)
}

// scanMinusOrNegativeZero recognizes the '-0.x' negative-zero-magnitude float
// form; any other '-' is the arithmetic operator.
func (s *Scanner) scanMinusOrNegativeZero() {
	if s.peek() == '0' && s.peekAt(1) == '.' && isDigit(s.peekAt(2)) {
		s.advance() // '0'
		s.scanNumber(true)
		return
	}
	s.addToken(MINUS)
}

// scanNumber consumes the remainder of a numeric literal. The leading digit
// (and a possible '-0' prefix) has already been consumed.
func (s *Scanner) scanNumber(negative bool) {
	for isDigit(s.peek()) {
		s.advance()
	}

	hasFraction := false
	if s.peek() == '.' && isDigit(s.peekAt(1)) {
		dot := s.current
		s.advance() // '.'
		digits := s.current
		for isDigit(s.peek()) {
			s.advance()
		}
		s.trimTrailingZeros(digits)
		if s.current > digits {
			hasFraction = true
		} else {
			s.backup(s.current - dot) // dangling '.' is not part of the number
		}
	}

	hasExponent := false
	if s.peek() == 'E' {
		lookahead := 1
		if s.peekAt(1) == '-' {
			lookahead = 2
		}
		if isDigit(s.peekAt(lookahead)) {
			for i := 0; i < lookahead; i++ {
				s.advance()
			}
			for isDigit(s.peek()) {
				s.advance()
			}
			hasExponent = true
		}
	}

	// An adjacent 'i' suffix makes the literal imaginary.
	if s.peek() == 'i' && !isAlpha(s.peekAt(1)) && !isDigit(s.peekAt(1)) {
		s.advance()
	}

	if hasFraction || hasExponent || negative {
		s.addToken(FLOAT)
	} else {
		s.addToken(NUMBER)
	}
}

func (s *Scanner) scanVersion() {
	for isDigit(s.peek()) {
		s.advance()
	}
	for s.peek() == '.' && isDigit(s.peekAt(1)) {
		s.advance() // '.'
		for isDigit(s.peek()) {
			s.advance()
		}
	}
	s.addToken(VERSION)
}

func (s *Scanner) scanIdentifier() {
	for isAlpha(s.peek()) || isDigit(s.peek()) {
		s.advance()
	}
	s.addToken(lookupIdentifier(s.source[s.start:s.current]))
}

func lookupIdentifier(text string) TokenType {
	if t, ok := KEYWORDS[text]; ok {
		return t
	}
	return IDENTIFIER
}

// scanTextOrTextBlock decides between the single-line and block forms of a
// quoted string. The block form only applies when a real newline immediately
// follows the opening quote.
func (s *Scanner) scanTextOrTextBlock() error {
	if s.peek() == '\n' {
		return s.scanTextBlock()
	}
	for !s.isAtEnd() {
		c := s.peek()
		if c == '"' {
			s.advance()
			s.addToken(TEXT)
			return nil
		}
		if c == '\n' {
			break
		}
		if c == '\\' && !s.isAtEndAt(1) {
			s.advance()
		}
		s.advance()
	}
	return s.failToken("unterminated text literal")
}

func (s *Scanner) scanTextBlock() error {
	s.advance() // the newline after the opening quote
	for !s.isAtEnd() {
		c := s.advance()
		if c != '\n' {
			continue
		}
		// A closing quote may be preceded by indentation on its own line.
		j := s.current
		for j < len(s.source) && s.source[j] == ' ' {
			j++
		}
		if j < len(s.source) && s.source[j] == '"' {
			for s.current <= j {
				s.advance()
			}
			s.addTokenAt(TEXT_BLOCK, s.startLine, s.startColumn)
			return nil
		}
	}
	return s.failToken("unterminated text block")
}

func (s *Scanner) scanBinary() error {
	for !s.isAtEnd() {
		c := s.peek()
		if c == '\'' {
			s.advance()
			s.addTokenAt(BINARY, s.startLine, s.startColumn)
			return nil
		}
		if !isBase64(c) && c != ' ' && c != '\t' && c != '\n' {
			return s.failToken(fmt.Sprintf("invalid character in binary literal: %q", c))
		}
		s.advance()
	}
	return s.failToken("unterminated binary literal")
}

// scanAngle disambiguates '<' into a moment, a resource, or the less-than
// operator by probing the upcoming characters without consuming them.
func (s *Scanner) scanAngle() error {
	if isDigit(s.peek()) || (s.peek() == '-' && isDigit(s.peekAt(1))) {
		return s.scanMoment()
	}
	if s.resourceAhead() {
		return s.scanResource()
	}
	s.addToken(LESS)
	return nil
}

func (s *Scanner) scanMoment() error {
	for !s.isAtEnd() {
		c := s.peek()
		if c == '>' {
			s.advance()
			s.addToken(MOMENT)
			return nil
		}
		if !isDigit(c) && c != '-' && c != ':' && c != 'T' && c != '.' {
			break
		}
		s.advance()
	}
	return s.failToken("malformed moment literal")
}

// resourceAhead reports whether the characters after a consumed '<' shape a
// '<scheme:context>' resource.
func (s *Scanner) resourceAhead() bool {
	i := s.current
	if i >= len(s.source) || !isAlpha(s.source[i]) {
		return false
	}
	for i < len(s.source) {
		c := s.source[i]
		if c == ':' {
			return true
		}
		if !isAlpha(c) && !isDigit(c) && c != '+' && c != '-' && c != '.' {
			return false
		}
		i++
	}
	return false
}

func (s *Scanner) scanResource() error {
	for !s.isAtEnd() {
		c := s.peek()
		if c == '>' {
			s.advance()
			s.addToken(RESOURCE)
			return nil
		}
		if c == '\n' {
			break
		}
		s.advance()
	}
	return s.failToken("unterminated resource literal")
}

func (s *Scanner) scanDuration() error {
	if s.peek() != 'P' {
		return s.failToken("a duration requires 'P' after '~'")
	}
	s.advance()
	// Weeks stand alone and never combine with the other designators.
	if s.scanDurationComponent('W') {
		s.addToken(DURATION)
		return nil
	}
	components := 0
	for _, designator := range []byte{'Y', 'M', 'D'} {
		if s.scanDurationComponent(designator) {
			components++
		}
	}
	if s.peek() == 'T' {
		s.advance()
		timed := 0
		for _, designator := range []byte{'H', 'M', 'S'} {
			if s.scanDurationComponent(designator) {
				timed++
			}
		}
		if timed == 0 {
			return s.failToken("a duration time part requires at least one component")
		}
		components += timed
	}
	if components == 0 {
		return s.failToken("a duration requires at least one component")
	}
	s.addToken(DURATION)
	return nil
}

// scanDurationComponent consumes one 'digits designator' run when the input
// starts with one. Only the seconds component may carry a fraction.
func (s *Scanner) scanDurationComponent(designator byte) bool {
	if !isDigit(s.peek()) {
		return false
	}
	i := 0
	for isDigit(s.peekAt(i)) {
		i++
	}
	if designator == 'S' && s.peekAt(i) == '.' && isDigit(s.peekAt(i+1)) {
		i++
		for isDigit(s.peekAt(i)) {
			i++
		}
	}
	if s.peekAt(i) != designator {
		return false
	}
	for ; i >= 0; i-- {
		s.advance()
	}
	return true
}

func (s *Scanner) advance() byte {
	c := s.source[s.current]
	s.current++
	if c == '\n' {
		s.line++
		s.column = 1
	} else {
		s.column++
	}
	return c
}

// backup pushes n previously consumed single-line characters back onto the
// input. It must never cross a newline.
func (s *Scanner) backup(n int) {
	s.current -= n
	s.column -= n
}

// trimTrailingZeros backs off over trailing '0' digits, but never past the
// given low-water mark.
func (s *Scanner) trimTrailingZeros(mark int) {
	for s.current > mark && s.source[s.current-1] == '0' {
		s.backup(1)
	}
}

func (s *Scanner) matchNext(expected byte) bool {
	if s.isAtEnd() || s.source[s.current] != expected {
		return false
	}
	s.advance()
	return true
}

func (s *Scanner) peek() byte {
	return s.peekAt(0)
}

func (s *Scanner) peekAt(n int) byte {
	if s.current+n >= len(s.source) {
		return 0
	}
	return s.source[s.current+n]
}

func (s *Scanner) addToken(tokenType TokenType) {
	s.addTokenAt(tokenType, s.startLine, s.startColumn)
}

func (s *Scanner) addTokenAt(tokenType TokenType, line, column int) {
	s.tokens = append(s.tokens, Token{
		Type:   tokenType,
		Lexeme: s.source[s.start:s.current],
		Position: Position{
			Line:   line,
			Column: column,
			Offset: s.start,
		},
	})
}

func (s *Scanner) failToken(message string) error {
	return &ScanError{
		Message:  message,
		Position: Position{Line: s.startLine, Column: s.startColumn, Offset: s.start},
		Length:   s.current - s.start,
	}
}

func (s *Scanner) isAtEnd() bool {
	return s.current >= len(s.source)
}

func (s *Scanner) isAtEndAt(n int) bool {
	return s.current+n >= len(s.source)
}

// Helper functions.

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

func isAlpha(c byte) bool {
	return unicode.IsLetter(rune(c))
}

// isBase32 matches the tag alphabet: digits plus the uppercase letters with
// the vowels E, I, O, and U removed.
func isBase32(c byte) bool {
	if '0' <= c && c <= '9' {
		return true
	}
	if c < 'A' || c > 'Z' {
		return false
	}
	switch c {
	case 'E', 'I', 'O', 'U':
		return false
	}
	return true
}

func isBase64(c byte) bool {
	return ('A' <= c && c <= 'Z') || ('a' <= c && c <= 'z') || isDigit(c) || c == '+' || c == '/' || c == '='
}
