package lexer

import (
	"fmt"

	"github.com/ian-shakespeare/tstm/internal/convert"
)

type TokenType int

const (
	INT_TOKEN TokenType = iota
	FLOAT_TOKEN
	HEX_TOKEN
	BINARY_TOKEN
	OCTAL_TOKEN
	MASK_TOKEN
	EXPONENT_TOKEN
	HEX_COLOR_TOKEN
	IDENTIFIER_TOKEN
	DOLLAR_TOKEN

	PLUS_TOKEN
	MINUS_TOKEN
	STAR_TOKEN
	SLASH_TOKEN
	PERCENT_TOKEN
	INT_DIV_TOKEN
	POWER_TOKEN
	BIT_AND_TOKEN
	BIT_OR_TOKEN
	BIT_XOR_TOKEN
	BIT_NOT_TOKEN
	SHIFT_LEFT_TOKEN
	SHIFT_RIGHT_TOKEN
	ROTATE_LEFT_TOKEN
	ROTATE_RIGHT_TOKEN
	QUESTION_TOKEN
	COLON_TOKEN
	SEMICOLON_TOKEN

	NOT_TOKEN
	EQUAL_EQUAL_TOKEN
	NOT_EQUAL_TOKEN
	STRICT_EQUAL_TOKEN
	STRICT_NOT_EQUAL_TOKEN
	APPROX_EQUAL_TOKEN
	NOT_APPROX_EQUAL_TOKEN
	LESS_TOKEN
	GREATER_TOKEN
	LESS_EQUAL_TOKEN
	GREATER_EQUAL_TOKEN

	LOGICAL_AND_TOKEN
	LOGICAL_OR_TOKEN
	LOGICAL_XOR_TOKEN
	COALESCE_TOKEN
	GUARD_TOKEN

	LEFT_PAREN_TOKEN
	RIGHT_PAREN_TOKEN
	COMMA_TOKEN
	INVALID_TOKEN
	EOF_TOKEN

	tokenTypeCount
)

var tokenTypeNames = [tokenTypeCount]string{
	"int", "float", "hex", "bin", "oct", "mask", "exp",
	"hexColor", "identifier", "dollar",

	"plus", "minus", "star", "slash", "percent", "intDiv", "power",
	"bitAnd", "bitOr", "bitXor", "bitNot",
	"shiftLeft", "shiftRight", "rotLeft", "rotRight",
	"question", "colon", "semicolon",

	"not", "equalEqual", "notEqual",
	"strictEqual", "strictNotEqual", "approxEqual", "notApproxEqual",
	"less", "greater", "lessEqual", "greaterEqual",

	"logicalAnd", "logicalOr", "logicalXor",
	"coalesce", "guard",

	"lParen", "rParen", "comma",
	"invalid", "eof",
}

func (t TokenType) String() string {
	if t < 0 || t >= tokenTypeCount {
		return fmt.Sprintf("TokenType(%d)", int(t))
	}
	return tokenTypeNames[t]
}

// IsNumeric reports whether t is one of the literal number types.
func (t TokenType) IsNumeric() bool {
	return t >= INT_TOKEN && t <= HEX_COLOR_TOKEN
}

func (t TokenType) IsOperator() bool {
	return t >= DOLLAR_TOKEN && t <= COMMA_TOKEN
}

// Token is one lexical unit. Value holds the exact bytes scanned from
// [Start, Start+len(Value)) of the source, either borrowed from the source or
// interned in a string pool.
type Token struct {
	Type  TokenType
	Value []byte
	Start uint32
}

func (t Token) Len() uint32 {
	return uint32(len(t.Value))
}

func (t Token) End() uint32 {
	return t.Start + t.Len()
}

var literalKinds = [...]convert.Kind{
	INT_TOKEN:       convert.KindDecimal,
	FLOAT_TOKEN:     convert.KindFloat,
	HEX_TOKEN:       convert.KindHex,
	BINARY_TOKEN:    convert.KindBinary,
	OCTAL_TOKEN:     convert.KindOctal,
	MASK_TOKEN:      convert.KindMask,
	EXPONENT_TOKEN:  convert.KindExponent,
	HEX_COLOR_TOKEN: convert.KindColor,
}

// Kind is the literal notation of t, or convert.KindNone for non-literals.
func (t TokenType) Kind() convert.Kind {
	if !t.IsNumeric() {
		return convert.KindNone
	}
	return literalKinds[t]
}

// AsInt decodes integer-valued literals. Other types yield 0.
func (t Token) AsInt() int32 {
	return convert.Int(t.Type.Kind(), t.Value)
}

func (t Token) AsFloat() float32 {
	return convert.Float(t.Type.Kind(), t.Value)
}

func (t Token) String() string {
	return fmt.Sprintf("%s('%s')", t.Type, t.Value)
}

const (
	clrLiteral  = "\x1b[96m"
	clrOperator = "\x1b[93m"
	clrInvalid  = "\x1b[91m"
	clrType     = "\x1b[90m"
	clrReset    = "\x1b[0m"
)

// ColoredString is String with the type dimmed and the lexeme colored by
// token class.
func (t Token) ColoredString() string {
	lexeme := ""
	switch {
	case t.Type.IsNumeric():
		lexeme = clrLiteral
	case t.Type.IsOperator():
		lexeme = clrOperator
	case t.Type == INVALID_TOKEN:
		lexeme = clrInvalid
	}
	return fmt.Sprintf("%s%s%s('%s%s%s')", clrType, t.Type, clrReset, lexeme, t.Value, clrReset)
}
