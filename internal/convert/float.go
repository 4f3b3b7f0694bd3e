package convert

// FloatToFloat decodes "123.456" style lexemes. A leading '.' is allowed.
func FloatToFloat(s []byte) float32 {
	negative, i := sign(s)
	result, _, ok := mantissa(s, i)
	if !ok {
		return 0
	}
	if negative {
		return -result
	}
	return result
}

// ExpToFloat decodes lexemes with a decimal exponent such as "6.02e+23".
// The exponent is applied by repeated multiplication or division by ten.
func ExpToFloat(s []byte) float32 {
	negative, i := sign(s)
	result, i, ok := mantissa(s, i)
	if !ok {
		return 0
	}

	if i < len(s) && s[i]|0x20 == 'e' {
		i++
		exponent, expNegative, hasDigits := exponent(s, i)
		if hasDigits {
			result = scale(result, exponent, expNegative)
		}
	}

	if negative {
		return -result
	}
	return result
}

// mantissa reads the integer and fractional digits starting at i. Fraction
// digits are weighted by successive powers of 0.1. It stops at the first
// byte that is neither a digit, a separator nor the decimal point.
func mantissa(s []byte, i int) (float32, int, bool) {
	var (
		result     float32
		weight     float32 = 1
		inFraction bool
		hasDigits  bool
	)

	for ; i < len(s); i++ {
		c := s[i]
		switch {
		case c == separator:
			continue
		case c == '.' && !inFraction:
			inFraction = true
			continue
		case !isDigit(c):
			return result, i, hasDigits
		}

		hasDigits = true
		digit := float32(c - '0')
		if inFraction {
			weight *= 0.1
			result += digit * weight
		} else {
			result = result*10 + digit
		}
	}

	return result, i, hasDigits
}

const maxExponent = 1 << 20

func exponent(s []byte, i int) (value int, negative, hasDigits bool) {
	if i < len(s) {
		switch s[i] {
		case '-':
			negative = true
			i++
		case '+':
			i++
		}
	}

	for ; i < len(s); i++ {
		c := s[i]
		if c == separator {
			continue
		}
		if !isDigit(c) {
			break
		}
		hasDigits = true
		if value < maxExponent {
			value = value*10 + int(c-'0')
		}
	}

	return value, negative, hasDigits
}

func scale(v float32, exponent int, negative bool) float32 {
	for e := 0; e < exponent; e++ {
		if negative {
			v /= 10
		} else {
			v *= 10
		}
		// Once the value has collapsed to zero or infinity further steps
		// cannot change it.
		if v == 0 || v-v != 0 {
			break
		}
	}
	return v
}
