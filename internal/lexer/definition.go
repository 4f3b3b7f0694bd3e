package lexer

import (
	"io"
	"strings"

	plexer "github.com/alecthomas/participle/v2/lexer"

	"github.com/ian-shakespeare/tstm/internal/report"
	"github.com/ian-shakespeare/tstm/internal/source"
	"github.com/ian-shakespeare/tstm/internal/strpool"
)

// Definition exposes the scanner to participle grammars. Token types are
// addressed by their capitalized names ("Int", "Identifier", "ShiftLeft",
// ...) and operators by their literal text.
type Definition struct {
	Pool              *strpool.Pool
	StrictTermination bool
}

var (
	_ plexer.Definition      = (*Definition)(nil)
	_ plexer.BytesDefinition = (*Definition)(nil)
)

func NewDefinition() *Definition {
	return &Definition{}
}

// Symbol is the participle name of t.
func (t TokenType) Symbol() string {
	if t == EOF_TOKEN {
		return "EOF"
	}
	name := t.String()
	return strings.ToUpper(name[:1]) + name[1:]
}

func (t TokenType) participleType() plexer.TokenType {
	if t == EOF_TOKEN {
		return plexer.EOF
	}
	return plexer.TokenType(t) + 1
}

func (d *Definition) Symbols() map[string]plexer.TokenType {
	symbols := make(map[string]plexer.TokenType, tokenTypeCount)
	for t := TokenType(0); t < tokenTypeCount; t++ {
		symbols[t.Symbol()] = t.participleType()
	}
	return symbols
}

func (d *Definition) Lex(filename string, r io.Reader) (plexer.Lexer, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return d.LexBytes(filename, data)
}

func (d *Definition) LexString(filename string, input string) (plexer.Lexer, error) {
	return d.LexBytes(filename, []byte(input))
}

func (d *Definition) LexBytes(filename string, input []byte) (plexer.Lexer, error) {
	src := source.New(filename, input)
	scanner := NewScanner(src, Config{
		Pool:              d.Pool,
		Reporter:          report.New(0, func(string) {}, 0),
		StrictTermination: d.StrictTermination,
	})
	return &tokenLexer{scanner: scanner, line: 1, col: 1}, nil
}

// tokenLexer adapts Scanner to plexer.Lexer. Positions are tracked
// incrementally because offsets only move forward.
type tokenLexer struct {
	scanner *Scanner
	offset  int
	line    int
	col     int
	errors  int
}

func (l *tokenLexer) Next() (plexer.Token, error) {
	t := l.scanner.NextToken()

	reporter := l.scanner.Reporter()
	if reporter.Len() > l.errors {
		e, _ := reporter.At(l.errors)
		l.errors = reporter.Len()
		return plexer.Token{}, &plexer.Error{Msg: e.Message, Pos: l.position(int(e.Offset))}
	}

	return plexer.Token{
		Type:  t.Type.participleType(),
		Value: string(t.Value),
		Pos:   l.position(int(t.Start)),
	}, nil
}

func (l *tokenLexer) position(offset int) plexer.Position {
	data := l.scanner.Source().Data
	for ; l.offset < offset && l.offset < len(data); l.offset++ {
		if data[l.offset] == '\n' {
			l.line++
			l.col = 1
		} else {
			l.col++
		}
	}

	return plexer.Position{
		Filename: l.scanner.Source().Name,
		Offset:   offset,
		Line:     l.line,
		Column:   l.col,
	}
}
