package convert

// Mask decodes the run-length bit notation behind the 0m prefix.
//
//	O  emit N zero bits
//	I  emit N one bits
//	R  append the last pattern N more times
//
// N is the decimal number following the opcode, or else the length of the
// run of identical opcodes (case-insensitive), or else 1. For R that makes
// an explicit count add N copies, not N-1: "0mIIOOr2" and "0mIIOOrr" both
// give 0b110011001100. The pattern an R
// repeats is the whole value as of the most recent O or I; an R before any
// O or I does nothing. Bits are packed MSB-first, so "0mIIOOr" is 0b11001100.
//
// More than 64 bits is rejected: Mask returns the bits accumulated before
// the overflowing opcode together with ErrMaskOverflow.
func Mask(s []byte) (uint64, error) {
	i := skipPrefix(s, 0, 'm')

	var (
		m          mask
		pattern    uint64
		patternLen int
		hasPattern bool
	)

	for i < len(s) {
		op := s[i] | 0x20
		if s[i] == separator {
			i++
			continue
		}
		if op != 'o' && op != 'i' && op != 'r' {
			return m.value, ErrInvalidDigit
		}

		var n int
		n, i = maskCount(s, i)

		switch op {
		case 'o', 'i':
			var bit uint64
			if op == 'i' {
				bit = 1
			}
			if !m.fits(n) {
				return m.value, ErrMaskOverflow
			}
			for j := 0; j < n; j++ {
				m.value = m.value<<1 | bit
			}
			m.bits += n
			pattern, patternLen, hasPattern = m.value, m.bits, true
		case 'r':
			if !hasPattern || patternLen == 0 {
				continue
			}
			if n > maskBits || !m.fits(patternLen*n) {
				return m.value, ErrMaskOverflow
			}
			for j := 0; j < n; j++ {
				m.value = m.value<<patternLen | pattern
			}
			m.bits += patternLen * n
		}
	}

	return m.value, nil
}

const maskBits = 64

type mask struct {
	value uint64
	bits  int
}

func (m mask) fits(n int) bool {
	return n <= maskBits && m.bits+n <= maskBits
}

// maskCount reads the repeat count of the opcode at i and returns it with
// the index of the next opcode. Separators may sit between opcodes but not
// inside a count.
func maskCount(s []byte, i int) (int, int) {
	op := s[i] | 0x20
	i++

	if i < len(s) && isDigit(s[i]) {
		n := 0
		for ; i < len(s) && isDigit(s[i]); i++ {
			// Anything this large overflows; stop growing n.
			if n <= maskBits {
				n = n*10 + int(s[i]-'0')
			}
		}
		return n, i
	}

	n := 1
	for ; i < len(s) && s[i]|0x20 == op; i++ {
		n++
	}
	return n, i
}
