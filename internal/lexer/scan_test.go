package lexer_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/ian-shakespeare/tstm/internal/lexer"
	"github.com/ian-shakespeare/tstm/internal/report"
	"github.com/ian-shakespeare/tstm/internal/source"
	"github.com/ian-shakespeare/tstm/internal/strpool"
	"github.com/ian-shakespeare/tstm/pkg/iterator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newScanner(input string, flags ...report.Flag) (*lexer.Scanner, *report.Reporter) {
	var f report.Flag
	for _, flag := range flags {
		f |= flag
	}
	r := report.New(4, func(string) {}, f)
	s := lexer.NewScanner(source.FromString("test.tstm", input), lexer.Config{Reporter: r})
	return s, r
}

func types(tokens []lexer.Token) []lexer.TokenType {
	out := make([]lexer.TokenType, len(tokens))
	for i, t := range tokens {
		out[i] = t.Type
	}
	return out
}

func TestScan(t *testing.T) {
	t.Parallel()

	t.Run("empty", func(t *testing.T) {
		t.Parallel()

		s, _ := newScanner("")
		token := s.NextToken()
		assert.Equal(t, lexer.EOF_TOKEN, token.Type)
		assert.Equal(t, uint32(0), token.Start)
		assert.True(t, s.IsFinished())
	})

	t.Run("comment", func(t *testing.T) {
		t.Parallel()

		for _, input := range []string{"// this is a comment", "/* block */", "  /* a */ // b\n /* c */  "} {
			s, r := newScanner(input)
			token := s.NextToken()
			assert.Equal(t, lexer.EOF_TOKEN, token.Type, input)
			assert.Equal(t, uint32(len(input)), token.Start, input)
			assert.False(t, r.HasErrors())
		}
	})

	t.Run("commentBetweenTokens", func(t *testing.T) {
		t.Parallel()

		s, _ := newScanner("a/*x*/b// y\nc")
		tokens := iterator.Collect(s.Tokens())
		require.Len(t, tokens, 3)
		assert.Equal(t, "a", string(tokens[0].Value))
		assert.Equal(t, "b", string(tokens[1].Value))
		assert.Equal(t, "c", string(tokens[2].Value))
		assert.Equal(t, uint32(12), tokens[2].Start)
	})

	validNumerics := []struct {
		name      string
		value     string
		tokenType lexer.TokenType
	}{
		{"integer", "1", lexer.INT_TOKEN},
		{"integerMultidigit", "1234567890", lexer.INT_TOKEN},
		{"integerSeparated", "1_000_000", lexer.INT_TOKEN},
		{"zero", "0", lexer.INT_TOKEN},
		{"real", ".1", lexer.FLOAT_TOKEN},
		{"realMultidigit", "1.234567890", lexer.FLOAT_TOKEN},
		{"realSeparated", "1_0.0_1", lexer.FLOAT_TOKEN},
		{"realScientific", "1.2E7", lexer.EXPONENT_TOKEN},
		{"realScientificLowerCase", "1.2e7", lexer.EXPONENT_TOKEN},
		{"realScientificFraction", "1.2e-7", lexer.EXPONENT_TOKEN},
		{"realScientificPositive", "1e+10", lexer.EXPONENT_TOKEN},
		{"hex", "0xffed", lexer.HEX_TOKEN},
		{"hexUpper", "0XFF_ED", lexer.HEX_TOKEN},
		{"binary", "0b1101011", lexer.BINARY_TOKEN},
		{"binarySeparated", "0b1101_0110", lexer.BINARY_TOKEN},
		{"octal", "0o327316", lexer.OCTAL_TOKEN},
		{"octalUpper", "0O17", lexer.OCTAL_TOKEN},
		{"mask", "0mIIOOr", lexer.MASK_TOKEN},
		{"maskCounts", "0miior3", lexer.MASK_TOKEN},
		{"maskLong", "0moi63", lexer.MASK_TOKEN},
		{"maskSeparated", "0mI_O", lexer.MASK_TOKEN},
		{"hexColor", "#ffe23a2", lexer.HEX_COLOR_TOKEN},
		{"hexColorEmpty", "#", lexer.HEX_COLOR_TOKEN},
	}

	for _, input := range validNumerics {
		t.Run(input.name, func(t *testing.T) {
			t.Parallel()

			s, r := newScanner(input.value)
			token := s.NextToken()
			assert.False(t, r.HasErrors(), r.FormatAll(nil))
			assert.Equal(t, lexer.Token{Type: input.tokenType, Value: []byte(input.value), Start: 0}, token)
			assert.Equal(t, lexer.EOF_TOKEN, s.NextToken().Type)
		})
	}

	invalidNumerics := []struct {
		name    string
		value   string
		message string
		offset  uint32
		lexeme  string
	}{
		{"separatorDoubled", "1__2", "invalid separator", 2, ""},
		{"separatorTrailing", "1_", "invalid separator", 1, ""},
		{"separatorLeadingHex", "0x_1", "invalid separator", 2, ""},
		{"separatorLeadingBinary", "0b_1", "invalid separator", 2, ""},
		{"separatorAfterPoint", "1._5", "invalid separator", 2, ""},
		{"separatorBeforePoint", "1_.5", "invalid separator", 1, ""},
		{"separatorAfterExponent", "1e_5", "invalid separator", 2, ""},
		{"separatorTrailingHex", "0xff_", "invalid separator", 4, ""},
		{"separatorDoubledOctal", "0o1__7", "invalid separator", 4, ""},
		{"hexEmpty", "0x", "incomplete literal: expected digits after prefix", 0, ""},
		{"hexEmptyBeforeOperator", "0x+1", "incomplete literal: expected digits after prefix", 0, "0x"},
		{"binaryEmpty", "0b ", "incomplete literal: expected digits after prefix", 0, ""},
		{"binaryDigit", "0b12", "invalid digit: '2'", 3, ""},
		{"octalDigit", "0o78", "invalid digit: '8'", 3, ""},
		{"hexDigit", "0xfg", "invalid digit: 'g'", 3, ""},
		{"maskDigit", "0mIX", "invalid digit: 'X'", 3, ""},
		{"maskLeadingCount", "0m3", "invalid digit: '3'", 2, ""},
		{"maskSeparatedCount", "0mI1_0", "invalid digit: '0'", 5, ""},
		{"decimalLetter", "12abc", "invalid digit: 'a'", 2, ""},
		{"secondPoint", "1.2.3", "unexpected decimal point", 3, ""},
		{"pointAfterExponent", "1e5.0", "unexpected decimal point", 3, ""},
		{"secondExponent", "1e5e3", "unexpected exponent", 3, ""},
		{"bareExponent", "1e", "incomplete exponent", 1, ""},
		{"bareExponentSign", "1e-", "incomplete exponent", 2, ""},
		{"barePoint", "1.", "incomplete decimal number", 1, ""},
		{"lonePoint", ".", "incomplete decimal number", 0, ""},
		{"pointBeforeExponent", "1.e5", "incomplete decimal number", 1, ""},
	}

	for _, input := range invalidNumerics {
		t.Run(input.name, func(t *testing.T) {
			t.Parallel()

			s, r := newScanner(input.value)
			token := s.NextToken()
			assert.Equal(t, lexer.INVALID_TOKEN, token.Type)
			lexeme := input.lexeme
			if lexeme == "" {
				lexeme = strings.TrimSpace(input.value)
			}
			assert.Equal(t, lexeme, string(token.Value))

			require.Equal(t, 1, r.Len())
			e, _ := r.At(0)
			assert.Equal(t, report.LexError, e.Kind)
			assert.Equal(t, input.message, e.Message)
			assert.Equal(t, input.offset, e.Offset)
		})
	}

	t.Run("identifier", func(t *testing.T) {
		t.Parallel()

		inputs := []string{"abc", "Offset", "_", "_1", "snake_case_42", "x1y2"}

		for _, input := range inputs {
			s, r := newScanner(input)
			token := s.NextToken()
			assert.Equal(t, lexer.IDENTIFIER_TOKEN, token.Type, input)
			assert.Equal(t, input, string(token.Value))
			assert.False(t, r.HasErrors())
		}
	})

	t.Run("identifierInterned", func(t *testing.T) {
		t.Parallel()

		pool := strpool.New(strpool.DefaultOptions())
		s := lexer.NewScanner(source.FromString("", "foo bar foo"), lexer.Config{Pool: pool})
		tokens := iterator.Collect(s.Tokens())
		require.Len(t, tokens, 3)
		require.NoError(t, s.Err())

		assert.Equal(t, 2, pool.Len())
		assert.Equal(t, "foo", string(tokens[2].Value))
		assert.Same(t, &tokens[0].Value[0], &tokens[2].Value[0])
	})

	t.Run("operators", func(t *testing.T) {
		t.Parallel()

		input := "<<< >>> === !== ~== !~= << >> /% ** == != <= >= && || ^^ ?? !! " +
			"$ & | ^ ~ + - * / % ( ) , < > ! ? : ;"
		expect := []lexer.TokenType{
			lexer.ROTATE_LEFT_TOKEN, lexer.ROTATE_RIGHT_TOKEN, lexer.STRICT_EQUAL_TOKEN,
			lexer.STRICT_NOT_EQUAL_TOKEN, lexer.APPROX_EQUAL_TOKEN, lexer.NOT_APPROX_EQUAL_TOKEN,
			lexer.SHIFT_LEFT_TOKEN, lexer.SHIFT_RIGHT_TOKEN, lexer.INT_DIV_TOKEN, lexer.POWER_TOKEN,
			lexer.EQUAL_EQUAL_TOKEN, lexer.NOT_EQUAL_TOKEN, lexer.LESS_EQUAL_TOKEN, lexer.GREATER_EQUAL_TOKEN,
			lexer.LOGICAL_AND_TOKEN, lexer.LOGICAL_OR_TOKEN, lexer.LOGICAL_XOR_TOKEN, lexer.COALESCE_TOKEN,
			lexer.GUARD_TOKEN,
			lexer.DOLLAR_TOKEN, lexer.BIT_AND_TOKEN, lexer.BIT_OR_TOKEN, lexer.BIT_XOR_TOKEN, lexer.BIT_NOT_TOKEN,
			lexer.PLUS_TOKEN, lexer.MINUS_TOKEN, lexer.STAR_TOKEN, lexer.SLASH_TOKEN, lexer.PERCENT_TOKEN,
			lexer.LEFT_PAREN_TOKEN, lexer.RIGHT_PAREN_TOKEN, lexer.COMMA_TOKEN, lexer.LESS_TOKEN,
			lexer.GREATER_TOKEN, lexer.NOT_TOKEN, lexer.QUESTION_TOKEN, lexer.COLON_TOKEN, lexer.SEMICOLON_TOKEN,
		}

		s, r := newScanner(input)
		tokens := iterator.Collect(s.Tokens())
		assert.False(t, r.HasErrors())
		assert.Equal(t, expect, types(tokens))
		for _, token := range tokens {
			assert.True(t, token.Type.IsOperator(), token.String())
		}
	})

	t.Run("operatorsLongestMatch", func(t *testing.T) {
		t.Parallel()

		s, _ := newScanner("a<<<b<<c<=d!~=e!!f**-g")
		tokens := iterator.Collect(s.Tokens())
		assert.Equal(t, []lexer.TokenType{
			lexer.IDENTIFIER_TOKEN, lexer.ROTATE_LEFT_TOKEN,
			lexer.IDENTIFIER_TOKEN, lexer.SHIFT_LEFT_TOKEN,
			lexer.IDENTIFIER_TOKEN, lexer.LESS_EQUAL_TOKEN,
			lexer.IDENTIFIER_TOKEN, lexer.NOT_APPROX_EQUAL_TOKEN,
			lexer.IDENTIFIER_TOKEN, lexer.GUARD_TOKEN,
			lexer.IDENTIFIER_TOKEN, lexer.POWER_TOKEN, lexer.MINUS_TOKEN,
			lexer.IDENTIFIER_TOKEN,
		}, types(tokens))
	})

	t.Run("operatorAtEnd", func(t *testing.T) {
		t.Parallel()

		s, _ := newScanner("1<")
		tokens := iterator.Collect(s.Tokens())
		assert.Equal(t, []lexer.TokenType{lexer.INT_TOKEN, lexer.LESS_TOKEN}, types(tokens))
	})

	t.Run("unexpectedCharacter", func(t *testing.T) {
		t.Parallel()

		s, r := newScanner("a @ = b")
		tokens := iterator.Collect(s.Tokens())
		assert.Equal(t, []lexer.TokenType{
			lexer.IDENTIFIER_TOKEN, lexer.INVALID_TOKEN, lexer.INVALID_TOKEN, lexer.IDENTIFIER_TOKEN,
		}, types(tokens))
		assert.Equal(t, "@", string(tokens[1].Value))

		require.Equal(t, 2, r.Len())
		e, _ := r.At(1)
		assert.Equal(t, "unexpected character", e.Message)
		assert.Equal(t, uint32(4), e.Offset)
		assert.Equal(t, uint32(1), e.Length)
	})

	t.Run("literalTerminatedByOperator", func(t *testing.T) {
		t.Parallel()

		s, r := newScanner("0xff+0b1*(1.5e3-2)")
		tokens := iterator.Collect(s.Tokens())
		assert.False(t, r.HasErrors())
		assert.Equal(t, []lexer.TokenType{
			lexer.HEX_TOKEN, lexer.PLUS_TOKEN, lexer.BINARY_TOKEN, lexer.STAR_TOKEN,
			lexer.LEFT_PAREN_TOKEN, lexer.EXPONENT_TOKEN, lexer.MINUS_TOKEN, lexer.INT_TOKEN,
			lexer.RIGHT_PAREN_TOKEN,
		}, types(tokens))
	})

	t.Run("literalTerminatedByHexColor", func(t *testing.T) {
		t.Parallel()

		inputs := []struct {
			value  string
			expect []lexer.TokenType
		}{
			{"12#ff", []lexer.TokenType{lexer.INT_TOKEN, lexer.HEX_COLOR_TOKEN}},
			{"0x1#f", []lexer.TokenType{lexer.HEX_TOKEN, lexer.HEX_COLOR_TOKEN}},
			{"1.5e3#a", []lexer.TokenType{lexer.EXPONENT_TOKEN, lexer.HEX_COLOR_TOKEN}},
			{"0mIO#0", []lexer.TokenType{lexer.MASK_TOKEN, lexer.HEX_COLOR_TOKEN}},
			{"#fff#000", []lexer.TokenType{lexer.HEX_COLOR_TOKEN, lexer.HEX_COLOR_TOKEN}},
		}

		for _, input := range inputs {
			s, r := newScanner(input.value)
			tokens := iterator.Collect(s.Tokens())
			assert.False(t, r.HasErrors(), input.value)
			assert.Equal(t, input.expect, types(tokens), input.value)
		}

		s, r := newScanner("0x#f")
		tokens := iterator.Collect(s.Tokens())
		assert.Equal(t, []lexer.TokenType{lexer.INVALID_TOKEN, lexer.HEX_COLOR_TOKEN}, types(tokens))
		assert.Equal(t, "0x", string(tokens[0].Value))
		assert.Equal(t, 1, r.Len())
	})

	t.Run("recoversAfterError", func(t *testing.T) {
		t.Parallel()

		s, r := newScanner("0b12 + 1__2 x")
		tokens := iterator.Collect(s.Tokens())
		assert.Equal(t, []lexer.TokenType{
			lexer.INVALID_TOKEN, lexer.PLUS_TOKEN, lexer.INVALID_TOKEN, lexer.IDENTIFIER_TOKEN,
		}, types(tokens))
		assert.Equal(t, "1__2", string(tokens[2].Value))
		assert.Equal(t, 2, r.Len())
	})

	t.Run("all", func(t *testing.T) {
		t.Parallel()

		input := "123 0xffed 0b1101011 0o327316 12.34 1e5 6e-5 1e+10"
		expect := []struct {
			tokenType lexer.TokenType
			value     string
		}{
			{lexer.INT_TOKEN, "123"},
			{lexer.HEX_TOKEN, "0xffed"},
			{lexer.BINARY_TOKEN, "0b1101011"},
			{lexer.OCTAL_TOKEN, "0o327316"},
			{lexer.FLOAT_TOKEN, "12.34"},
			{lexer.EXPONENT_TOKEN, "1e5"},
			{lexer.EXPONENT_TOKEN, "6e-5"},
			{lexer.EXPONENT_TOKEN, "1e+10"},
		}

		s, r := newScanner(input)
		stream, err := s.Scan()
		require.NoError(t, err)
		assert.False(t, r.HasErrors())
		require.Equal(t, len(expect)+1, stream.Len())

		for i, e := range expect {
			token, ok := stream.At(i)
			require.True(t, ok)
			assert.Equal(t, e.tokenType, token.Type)
			assert.Equal(t, e.value, string(token.Value))
			assert.Equal(t, e.value, input[token.Start:token.End()])
		}

		last, ok := stream.Last()
		require.True(t, ok)
		assert.Equal(t, lexer.EOF_TOKEN, last.Type)
		assert.Equal(t, uint32(len(input)), last.Start)
	})
}

func TestLexemesReproduceSource(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"hello, world #ffe23a2\n 123 0xffed 0b1101011 0o327316 0miior3 0moi63 12.34 1e5 6e-5 1e+10\n" +
			" === == ~== !~= ** * / /% % ^^ ^ & && | || - + \n",
		"f(x, y) /* two args */ ?? $default // fallback\n",
		"a<<<b>>>c",
	}

	for _, input := range inputs {
		s, r := newScanner(input)
		stream, err := s.Scan()
		require.NoError(t, err)
		require.False(t, r.HasErrors(), r.FormatAll(s.Source()))

		var got bytes.Buffer
		for _, token := range stream.Tokens() {
			assert.Equal(t, input[token.Start:token.End()], string(token.Value))
			got.Write(token.Value)
		}

		assert.Equal(t, stripTrivia(input), got.String())
	}
}

// stripTrivia drops whitespace and comments.
func stripTrivia(input string) string {
	var b strings.Builder
	for i := 0; i < len(input); {
		switch {
		case strings.HasPrefix(input[i:], "//"):
			end := strings.IndexByte(input[i:], '\n')
			if end < 0 {
				return b.String()
			}
			i += end
		case strings.HasPrefix(input[i:], "/*"):
			end := strings.Index(input[i+2:], "*/")
			if end < 0 {
				return b.String()
			}
			i += end + 4
		case strings.ContainsRune(" \t\v\r\f\n", rune(input[i])):
			i++
		default:
			b.WriteByte(input[i])
			i++
		}
	}
	return b.String()
}

func TestStrictTermination(t *testing.T) {
	t.Parallel()

	t.Run("blockCommentPermissive", func(t *testing.T) {
		t.Parallel()

		s, r := newScanner("a /* never closed")
		tokens := iterator.Collect(s.Tokens())
		assert.Len(t, tokens, 1)
		assert.False(t, r.HasErrors())
		assert.Equal(t, 17, s.Position())
	})

	t.Run("blockCommentStrict", func(t *testing.T) {
		t.Parallel()

		r := report.New(1, func(string) {}, 0)
		s := lexer.NewScanner(source.FromString("", "a /* never closed"), lexer.Config{Reporter: r, StrictTermination: true})
		tokens := iterator.Collect(s.Tokens())
		assert.Len(t, tokens, 1)

		require.Equal(t, 1, r.Len())
		e, _ := r.At(0)
		assert.Equal(t, "unterminated block comment", e.Message)
		assert.Equal(t, uint32(2), e.Offset)
	})

	t.Run("hexColorStrict", func(t *testing.T) {
		t.Parallel()

		r := report.New(1, func(string) {}, 0)
		s := lexer.NewScanner(source.FromString("", "# #1"), lexer.Config{Reporter: r, StrictTermination: true})
		tokens := iterator.Collect(s.Tokens())
		assert.Equal(t, []lexer.TokenType{lexer.INVALID_TOKEN, lexer.HEX_COLOR_TOKEN}, types(tokens))
		assert.Equal(t, 1, r.Len())
	})
}

func TestBreakOnPush(t *testing.T) {
	t.Parallel()

	input := "1 0b2 3 4"
	s, r := newScanner(input, report.BreakOnPush)
	stream, err := s.Scan()
	require.NoError(t, err)
	assert.True(t, r.HasBreakError())

	assert.Equal(t, []lexer.TokenType{lexer.INT_TOKEN, lexer.INVALID_TOKEN, lexer.EOF_TOKEN}, types(stream.Tokens()))
	last, _ := stream.Last()
	assert.Equal(t, uint32(len(input)), last.Start)
}

func TestReset(t *testing.T) {
	t.Parallel()

	s, _ := newScanner("a b")
	first := iterator.Collect(s.Tokens())
	assert.Len(t, first, 2)
	assert.True(t, s.IsFinished())

	s.Reset(source.FromString("", "c"))
	assert.False(t, s.IsFinished())
	assert.Equal(t, 0, s.Position())
	second := iterator.Collect(s.Tokens())
	require.Len(t, second, 1)
	assert.Equal(t, "c", string(second[0].Value))
}

func TestPositionAdvances(t *testing.T) {
	t.Parallel()

	s, _ := newScanner("x + 0b1 @ 1__ /* c */ #fff")
	last := -1
	for !s.IsFinished() {
		token := s.NextToken()
		if token.Type == lexer.EOF_TOKEN {
			break
		}
		assert.Greater(t, s.Position(), last)
		last = s.Position()
	}
}

func TestNoDirectOutput(t *testing.T) {
	t.Parallel()

	var printed []string
	r := report.New(1, func(s string) { printed = append(printed, s) }, 0)
	_, err := lexer.Scan(source.FromString("", "0b2 @ 1__2"), lexer.Config{Reporter: r})
	require.NoError(t, err)

	assert.Equal(t, 3, r.Len())
	assert.Empty(t, printed)
}

func BenchmarkScan(b *testing.B) {
	src := source.FromString("bench", strings.Repeat("alpha_1 + 0xff * (beta / 12.5e3) // note\n", 256))
	pool := strpool.New(strpool.DefaultOptions())
	s := lexer.NewScanner(src, lexer.Config{Pool: pool})

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		pool.Reset()
		s.Reset(src)
		if _, err := s.Scan(); err != nil {
			b.Fatal(err)
		}
	}
}
