package lexer

import (
	"iter"

	"github.com/ian-shakespeare/tstm/pkg/array"
)

const minStreamCapacity = 8

// Stream is the ordered token sequence handed to the parser. A stream
// produced by Scan ends with exactly one EOF_TOKEN.
type Stream struct {
	tokens *array.List[Token]
}

func NewStream(capacity int) *Stream {
	if capacity < minStreamCapacity {
		capacity = minStreamCapacity
	}
	return &Stream{tokens: array.NewList[Token](capacity)}
}

func (s *Stream) Push(t Token) {
	s.tokens.Push(t)
}

func (s *Stream) Pop() (Token, bool) {
	return s.tokens.Pop()
}

func (s *Stream) At(i int) (Token, bool) {
	return s.tokens.At(i)
}

func (s *Stream) Last() (Token, bool) {
	return s.tokens.At(s.tokens.Len() - 1)
}

func (s *Stream) Len() int {
	return s.tokens.Len()
}

func (s *Stream) Cap() int {
	return s.tokens.Cap()
}

// IsFinished reports whether a parser positioned at pos has consumed
// everything but the EOF token.
func (s *Stream) IsFinished(pos int) bool {
	t, ok := s.At(pos)
	return !ok || t.Type == EOF_TOKEN
}

func (s *Stream) Tokens() []Token {
	return s.tokens.Items()
}

func (s *Stream) All() iter.Seq2[int, Token] {
	return s.tokens.All()
}

// EstimateTokens guesses how many tokens src holds by counting runs of
// non-whitespace outside comments, plus one for EOF.
func EstimateTokens(src []byte) int {
	count := 1
	inRun := false

	for i := 0; i < len(src); {
		c := src[i]
		switch {
		case isWhitespace(c):
			inRun = false
			i++
		case c == '/' && i+1 < len(src) && src[i+1] == '/':
			inRun = false
			for i < len(src) && src[i] != '\n' {
				i++
			}
		case c == '/' && i+1 < len(src) && src[i+1] == '*':
			inRun = false
			i += 2
			for i < len(src) && !(src[i] == '*' && i+1 < len(src) && src[i+1] == '/') {
				i++
			}
			i += 2
		default:
			if !inRun {
				count++
				inRun = true
			}
			i++
		}
	}

	return count
}
