package lexer

import (
	"iter"

	"github.com/ian-shakespeare/tstm/internal/report"
	"github.com/ian-shakespeare/tstm/internal/source"
	"github.com/ian-shakespeare/tstm/internal/strpool"
)

type Config struct {
	// Pool, when set, interns identifier bytes.
	Pool *strpool.Pool
	// Reporter receives lexical errors. A silent reporter is created when
	// nil.
	Reporter *report.Reporter
	// StrictTermination reports unterminated block comments and '#' without
	// hex digits instead of accepting them.
	StrictTermination bool
}

// Scanner turns a source buffer into tokens one NextToken call at a time.
// Lexical errors are pushed to the reporter and surface as INVALID_TOKEN; the
// scanner itself never writes anywhere.
type Scanner struct {
	src      *source.Source
	data     []byte
	pos      int
	pool     *strpool.Pool
	reporter *report.Reporter
	strict   bool
	finished bool
	halted   bool
	err      error
}

func NewScanner(src *source.Source, cfg Config) *Scanner {
	if cfg.Reporter == nil {
		cfg.Reporter = report.New(0, func(string) {}, 0)
	}
	if src == nil {
		src = source.New("", nil)
	}

	return &Scanner{
		src:      src,
		data:     src.Data,
		pool:     cfg.Pool,
		reporter: cfg.Reporter,
		strict:   cfg.StrictTermination,
	}
}

// Scan tokenizes src in one pass.
func Scan(src *source.Source, cfg Config) (*Stream, error) {
	return NewScanner(src, cfg).Scan()
}

// Reset points the scanner at a new source. The pool and reporter are kept
// as they are.
func (s *Scanner) Reset(src *source.Source) *Scanner {
	if src == nil {
		src = source.New("", nil)
	}
	s.src = src
	s.data = src.Data
	s.pos = 0
	s.finished = false
	s.halted = false
	s.err = nil
	return s
}

func (s *Scanner) Source() *source.Source {
	return s.src
}

func (s *Scanner) Reporter() *report.Reporter {
	return s.reporter
}

// Position is the offset of the next unread byte.
func (s *Scanner) Position() int {
	return s.pos
}

// IsFinished reports whether the EOF token has been produced.
func (s *Scanner) IsFinished() bool {
	return s.finished
}

// Err returns the first allocation failure met while interning.
func (s *Scanner) Err() error {
	return s.err
}

// NextToken returns the token starting at the next non-trivia byte, or
// EOF_TOKEN once the input is exhausted.
func (s *Scanner) NextToken() Token {
	s.skipTrivia()

	if s.atEnd() {
		s.finished = true
		return Token{Type: EOF_TOKEN, Start: uint32(s.pos)}
	}

	c := s.current()
	switch {
	case isDigit(c) || c == '.':
		return s.scanNumeric()
	case isIdentStart(c):
		return s.scanIdentifier()
	case c == '#':
		return s.scanHexColor()
	default:
		return s.scanOperator()
	}
}

// Scan drains the scanner into a stream terminated by one EOF_TOKEN at the
// source length. It stops early when the reporter asks to break on an error
// pushed during this scan.
func (s *Scanner) Scan() (*Stream, error) {
	stream := NewStream(EstimateTokens(s.data[s.pos:]))

	for !s.halted {
		token := s.NextToken()
		if token.Type == EOF_TOKEN {
			break
		}
		stream.Push(token)
	}

	stream.Push(Token{Type: EOF_TOKEN, Start: uint32(len(s.data))})
	s.finished = true

	return stream, s.err
}

// Tokens yields every token before EOF.
func (s *Scanner) Tokens() iter.Seq[Token] {
	return func(yield func(Token) bool) {
		for !s.halted {
			token := s.NextToken()
			if token.Type == EOF_TOKEN {
				return
			}
			if !yield(token) {
				return
			}
		}
	}
}

func (s *Scanner) atEnd() bool {
	return s.pos >= len(s.data)
}

func (s *Scanner) current() byte {
	if s.atEnd() {
		return 0
	}
	return s.data[s.pos]
}

func (s *Scanner) peek(n int) byte {
	if s.pos+n >= len(s.data) {
		return 0
	}
	return s.data[s.pos+n]
}

func (s *Scanner) token(t TokenType, start int) Token {
	return Token{Type: t, Value: s.data[start:s.pos:s.pos], Start: uint32(start)}
}

func (s *Scanner) report(e report.SourceError) {
	if s.reporter.Push(e, s.src) {
		s.halted = true
	}
}

// fail reports e and returns an INVALID_TOKEN that runs from start to the end
// of the malformed lexeme.
func (s *Scanner) fail(start int, e report.SourceError) Token {
	s.report(e)
	for !s.atEnd() && !isTerminator(s.current()) {
		s.pos++
	}
	return s.token(INVALID_TOKEN, start)
}

func (s *Scanner) skipTrivia() {
	for !s.atEnd() {
		c := s.current()
		switch {
		case isWhitespace(c):
			s.pos++
		case c == '/' && s.peek(1) == '/':
			s.skipLineComment()
		case c == '/' && s.peek(1) == '*':
			s.skipBlockComment()
		default:
			return
		}
	}
}

func (s *Scanner) skipLineComment() {
	for !s.atEnd() && s.current() != '\n' {
		s.pos++
	}
}

func (s *Scanner) skipBlockComment() {
	start := s.pos
	s.pos += 2

	for !s.atEnd() {
		if s.current() == '*' && s.peek(1) == '/' {
			s.pos += 2
			return
		}
		s.pos++
	}

	if s.strict {
		s.report(report.NewLexError(uint32(start), 2, msgUnterminatedComment).WithDetails(detailsComment))
	}
}

func (s *Scanner) scanIdentifier() Token {
	start := s.pos
	for !s.atEnd() && isIdentPart(s.current()) {
		s.pos++
	}

	token := s.token(IDENTIFIER_TOKEN, start)
	if s.pool == nil {
		return token
	}

	interned, err := s.pool.Intern(token.Value)
	if err != nil {
		if s.err == nil {
			s.err = err
		}
		return token
	}
	token.Value = interned.Bytes()
	return token
}

// scanHexColor takes '#' and the hex digits after it. No digits at all is
// a valid, empty color unless termination is strict.
func (s *Scanner) scanHexColor() Token {
	start := s.pos
	s.pos++
	for !s.atEnd() && isHexDigit(s.current()) {
		s.pos++
	}

	if s.strict && s.pos-start == 1 {
		return s.fail(start, report.NewLexError(uint32(start), 1, msgIncompletePrefix))
	}
	return s.token(HEX_COLOR_TOKEN, start)
}

// scanOperator matches the longest operator at the current byte. Whitespace
// one or two bytes ahead rules out the longer tables before comparing.
func (s *Scanner) scanOperator() Token {
	start := s.pos
	remaining := len(s.data) - s.pos

	width := 3
	switch {
	case remaining < 2 || isWhitespace(s.peek(1)):
		width = 1
	case remaining < 3 || isWhitespace(s.peek(2)):
		width = 2
	}

	for ; width > 0; width-- {
		if t, ok := lookupOperator(s.data[start : start+width]); ok {
			s.pos += width
			return s.token(t, start)
		}
	}

	s.pos++
	s.report(report.NewLexError(uint32(start), 1, msgUnexpectedCharacter))
	return s.token(INVALID_TOKEN, start)
}

func isWhitespace(c byte) bool {
	switch c {
	case ' ', '\t', '\v', '\r', '\f', '\n':
		return true
	}
	return false
}

// isTerminator reports whether c ends a literal. The hex color introducer
// counts as an operator here.
func isTerminator(c byte) bool {
	return isWhitespace(c) || operatorStart[c] || c == '#'
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

func isHexDigit(c byte) bool {
	return isDigit(c) || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}

func isLetter(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

func isIdentStart(c byte) bool {
	return isLetter(c) || c == '_'
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || isDigit(c)
}
