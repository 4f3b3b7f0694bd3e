package lexer

import (
	"github.com/ian-shakespeare/tstm/internal/report"
)

const separator = '_'

// What the previous byte of a literal was; drives the separator and
// terminal-state checks.
type numberState uint8

const (
	stateStart numberState = iota
	stateDigit
	stateSeparator
	stateDot
	stateExponent
	stateSign
)

type radix struct {
	typ  TokenType
	name string
	// lead accepts the first digit and any digit after a separator.
	lead func(byte) bool
	// digit accepts every other digit.
	digit func(byte) bool
}

func isMaskOpcode(c byte) bool {
	switch c | 0x20 {
	case 'o', 'i', 'r':
		return true
	}
	return false
}

var (
	hexRadix = radix{HEX_TOKEN, "hex", isHexDigit, isHexDigit}
	binRadix = radix{BINARY_TOKEN, "binary", isBinDigit, isBinDigit}
	octRadix = radix{OCTAL_TOKEN, "octal", isOctDigit, isOctDigit}
	// Mask digits are O/I/R opcodes, each optionally followed by a count.
	maskRadix = radix{MASK_TOKEN, "mask", isMaskOpcode, func(c byte) bool {
		return isMaskOpcode(c) || isDigit(c)
	}}
)

func isBinDigit(c byte) bool {
	return c == '0' || c == '1'
}

func isOctDigit(c byte) bool {
	return '0' <= c && c <= '7'
}

// scanNumeric dispatches on the first two bytes: 0x, 0b, 0o and 0m select a
// radix literal, anything else is decimal.
func (s *Scanner) scanNumeric() Token {
	start := s.pos

	if s.current() == '0' {
		switch s.peek(1) | 0x20 {
		case 'x':
			return s.scanRadix(start, hexRadix)
		case 'b':
			return s.scanRadix(start, binRadix)
		case 'o':
			return s.scanRadix(start, octRadix)
		case 'm':
			return s.scanRadix(start, maskRadix)
		}
	}

	return s.scanDecimal(start)
}

func (s *Scanner) invalidDigit(start int, r radix) Token {
	c := s.current()
	e := report.NewLexErrorf(uint32(s.pos), 1, msgInvalidDigit, c)
	if r.name != "" {
		e = e.WithDetails("not a valid " + r.name + " digit")
	}
	return s.fail(start, e)
}

func (s *Scanner) invalidSeparator(start, at int) Token {
	return s.fail(start, report.NewLexError(uint32(at), 1, msgInvalidSeparator).WithDetails(detailsSeparator))
}

func (s *Scanner) scanRadix(start int, r radix) Token {
	s.pos += 2

	if s.atEnd() || (isTerminator(s.current()) && s.current() != separator) {
		return s.fail(start, report.NewLexError(uint32(start), 2, msgIncompletePrefix))
	}

	state := stateStart
digits:
	for ; !s.atEnd(); s.pos++ {
		c := s.current()
		switch {
		case r.lead(c), state == stateDigit && r.digit(c):
			state = stateDigit
		case c == separator:
			if state != stateDigit {
				return s.invalidSeparator(start, s.pos)
			}
			state = stateSeparator
		case isTerminator(c):
			break digits
		default:
			return s.invalidDigit(start, r)
		}
	}

	if state == stateSeparator {
		return s.invalidSeparator(start, s.pos-1)
	}
	if s.pos-start <= 2 || state != stateDigit {
		return s.fail(start, report.NewLexError(uint32(start), uint32(s.pos-start), msgInvalidLiteral))
	}

	return s.token(r.typ, start)
}

// scanDecimal handles integers, floats with at most one '.', and exponents
// with at most one 'e' and an optional sign. A leading '.' starts a float.
func (s *Scanner) scanDecimal(start int) Token {
	typ := INT_TOKEN
	state := stateStart
	sawDot, sawExponent := false, false

number:
	for ; !s.atEnd(); s.pos++ {
		c := s.current()
		switch {
		case isDigit(c):
			state = stateDigit
		case c == separator:
			if state != stateDigit {
				return s.invalidSeparator(start, s.pos)
			}
			state = stateSeparator
		case c == '.':
			if sawDot || sawExponent {
				return s.fail(start, report.NewLexError(uint32(s.pos), 1, msgUnexpectedPoint))
			}
			if state == stateSeparator {
				return s.invalidSeparator(start, s.pos-1)
			}
			sawDot = true
			state = stateDot
			typ = FLOAT_TOKEN
		case c|0x20 == 'e':
			if sawExponent {
				return s.fail(start, report.NewLexError(uint32(s.pos), 1, msgUnexpectedExponent))
			}
			switch state {
			case stateSeparator:
				return s.invalidSeparator(start, s.pos-1)
			case stateDot:
				return s.fail(start, report.NewLexError(uint32(s.pos-1), 1, msgIncompleteDecimal).WithDetails(detailsDecimal))
			}
			sawExponent = true
			state = stateExponent
			typ = EXPONENT_TOKEN
			if next := s.peek(1); next == '+' || next == '-' {
				s.pos++
				state = stateSign
			}
		case isTerminator(c):
			break number
		default:
			return s.invalidDigit(start, radix{name: "decimal"})
		}
	}

	switch state {
	case stateSeparator:
		return s.invalidSeparator(start, s.pos-1)
	case stateDot:
		return s.fail(start, report.NewLexError(uint32(s.pos-1), 1, msgIncompleteDecimal).WithDetails(detailsDecimal))
	case stateExponent, stateSign:
		return s.fail(start, report.NewLexError(uint32(s.pos-1), 1, msgIncompleteExponent).WithDetails(detailsExponent))
	}

	return s.token(typ, start)
}
