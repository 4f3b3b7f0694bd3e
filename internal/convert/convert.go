// Package convert turns literal lexemes into values. Every decoder accepts
// the lexeme as the lexer produced it: an optional sign, the base prefix and
// '_' separators are tolerated. Decoding is lazy; the lexer never calls into
// this package while scanning.
package convert

import (
	"errors"
	"math"
)

var (
	ErrInvalidDigit = errors.New("invalid digit")
	ErrInvalidColor = errors.New("invalid hex color")
	ErrMaskOverflow = errors.New("mask exceeds 64 bits")
)

const separator = '_'

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

func hexValue(c byte) (uint32, bool) {
	switch {
	case '0' <= c && c <= '9':
		return uint32(c - '0'), true
	case 'a' <= c && c <= 'f':
		return uint32(c-'a') + 10, true
	case 'A' <= c && c <= 'F':
		return uint32(c-'A') + 10, true
	}
	return 0, false
}

// sign consumes an optional leading '+' or '-'.
func sign(s []byte) (negative bool, i int) {
	if len(s) == 0 {
		return false, 0
	}
	switch s[0] {
	case '-':
		return true, 1
	case '+':
		return false, 1
	}
	return false, 0
}

func skipPrefix(s []byte, i int, lower byte) int {
	if len(s)-i >= 2 && s[i] == '0' && s[i+1]|0x20 == lower {
		return i + 2
	}
	return i
}

// DecimalToInt saturates to the int32 range instead of wrapping.
func DecimalToInt(s []byte) int32 {
	negative, i := sign(s)
	limit := int64(math.MaxInt32)
	if negative {
		limit++
	}

	var result int64
	for ; i < len(s); i++ {
		c := s[i]
		if c == separator {
			continue
		}
		if !isDigit(c) {
			break
		}

		result = result*10 + int64(c-'0')
		if result > limit {
			if negative {
				return math.MinInt32
			}
			return math.MaxInt32
		}
	}

	if negative {
		return int32(-result)
	}
	return int32(result)
}

// radixToInt accumulates digits of a power-of-two base. Values wider than
// 32 bits keep their low 32 bits.
func radixToInt(s []byte, prefix byte, shift uint, valid func(byte) (uint32, bool)) int32 {
	negative, i := sign(s)
	i = skipPrefix(s, i, prefix)

	var result uint32
	for ; i < len(s); i++ {
		c := s[i]
		if c == separator {
			continue
		}
		v, ok := valid(c)
		if !ok {
			break
		}
		result = result<<shift | v
	}

	if negative {
		return -int32(result)
	}
	return int32(result)
}

func HexToInt(s []byte) int32 {
	return radixToInt(s, 'x', 4, hexValue)
}

func OctToInt(s []byte) int32 {
	return radixToInt(s, 'o', 3, func(c byte) (uint32, bool) {
		return uint32(c - '0'), '0' <= c && c <= '7'
	})
}

func BinToInt(s []byte) int32 {
	return radixToInt(s, 'b', 1, func(c byte) (uint32, bool) {
		return uint32(c - '0'), c == '0' || c == '1'
	})
}
