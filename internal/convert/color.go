package convert

// ArgbColor packs alpha in the high byte followed by red, green and blue.
type ArgbColor uint32

func (c ArgbColor) A() uint8 { return uint8(c >> 24) }
func (c ArgbColor) R() uint8 { return uint8(c >> 16) }
func (c ArgbColor) G() uint8 { return uint8(c >> 8) }
func (c ArgbColor) B() uint8 { return uint8(c) }

func gray(c uint32) uint32 {
	return c<<16 | c<<8 | c
}

func nibble(v uint32, shift uint) uint32 {
	return (v >> shift & 0xF) * 0x11
}

// HexToColor reads value with trailing alpha (RGBA convention). The width of
// the value selects the form:
//
//	0xC        -> 0xFFCCCCCC
//	0xCA       -> 0xAACCCCCC
//	0xRGB      -> 0xFFRRGGBB
//	0xRGBA     -> 0xAARRGGBB
//	0xRRGGBB   -> 0xFFRRGGBB
//	0xRRGGBBAA -> 0xAARRGGBB
func HexToColor(value uint32) ArgbColor {
	switch {
	case value <= 0xF:
		return ArgbColor(0xFF000000 | gray(value*0x11))
	case value <= 0xFF:
		return ArgbColor(nibble(value, 0)<<24 | gray(nibble(value, 4)))
	case value <= 0xFFF:
		return ArgbColor(0xFF000000 | nibble(value, 8)<<16 | nibble(value, 4)<<8 | nibble(value, 0))
	case value <= 0xFFFF:
		return ArgbColor(nibble(value, 0)<<24 | nibble(value, 12)<<16 | nibble(value, 8)<<8 | nibble(value, 4))
	case value <= 0xFFFFFF:
		return ArgbColor(0xFF000000 | value)
	}
	return ArgbColor(value<<24 | value>>8)
}

// HexToColorARGB reads value with leading alpha (ARGB convention):
//
//	0xC        -> 0xFFCCCCCC
//	0xAC       -> 0xAACCCCCC
//	0xRGB      -> 0xFFRRGGBB
//	0xARGB     -> 0xAARRGGBB
//	0xRRGGBB   -> 0xFFRRGGBB
//	0xAARRGGBB -> unchanged
func HexToColorARGB(value uint32) ArgbColor {
	switch {
	case value <= 0xF:
		return ArgbColor(0xFF000000 | gray(value*0x11))
	case value <= 0xFF:
		return ArgbColor(nibble(value, 4)<<24 | gray(nibble(value, 0)))
	case value <= 0xFFF:
		return ArgbColor(0xFF000000 | nibble(value, 8)<<16 | nibble(value, 4)<<8 | nibble(value, 0))
	case value <= 0xFFFF:
		return ArgbColor(nibble(value, 12)<<24 | nibble(value, 8)<<16 | nibble(value, 4)<<8 | nibble(value, 0))
	case value <= 0xFFFFFF:
		return ArgbColor(0xFF000000 | value)
	}
	return ArgbColor(value)
}

const maxColorDigits = 8

// colorDigits strips an optional '#' and separators and returns the digit
// values.
func colorDigits(s []byte) ([]uint32, error) {
	i := 0
	if len(s) > 0 && s[0] == '#' {
		i = 1
	}

	digits := make([]uint32, 0, maxColorDigits)
	for ; i < len(s); i++ {
		c := s[i]
		if c == separator {
			continue
		}
		v, ok := hexValue(c)
		if !ok {
			return nil, ErrInvalidDigit
		}
		if len(digits) == maxColorDigits {
			return nil, ErrInvalidColor
		}
		digits = append(digits, v)
	}

	if len(digits) == 0 {
		return nil, ErrInvalidColor
	}
	return digits, nil
}

// expand builds AARRGGBB from eight digit indexes. Index -1 stands for 0xF.
func expand(digits []uint32, order [8]int) ArgbColor {
	var result uint32
	for _, idx := range order {
		d := uint32(0xF)
		if idx >= 0 {
			d = digits[idx]
		}
		result = result<<4 | d
	}
	return ArgbColor(result)
}

// HexStrToColor parses "C", "CA", "RGB", "RGBA", "RRGGBB" or "RRGGBBAA",
// with trailing alpha, into an ARGB color.
func HexStrToColor(s []byte) (ArgbColor, error) {
	digits, err := colorDigits(s)
	if err != nil {
		return 0, err
	}

	switch len(digits) {
	case 1:
		return expand(digits, [8]int{-1, -1, 0, 0, 0, 0, 0, 0}), nil
	case 2:
		return expand(digits, [8]int{1, 1, 0, 0, 0, 0, 0, 0}), nil
	case 3:
		return expand(digits, [8]int{-1, -1, 0, 0, 1, 1, 2, 2}), nil
	case 4:
		return expand(digits, [8]int{3, 3, 0, 0, 1, 1, 2, 2}), nil
	case 6:
		return expand(digits, [8]int{-1, -1, 0, 1, 2, 3, 4, 5}), nil
	case 8:
		return expand(digits, [8]int{6, 7, 0, 1, 2, 3, 4, 5}), nil
	}
	return 0, ErrInvalidColor
}

// HexStrToColorARGB parses "C", "AC", "RGB", "ARGB", "RRGGBB" or "AARRGGBB",
// with leading alpha, into an ARGB color.
func HexStrToColorARGB(s []byte) (ArgbColor, error) {
	digits, err := colorDigits(s)
	if err != nil {
		return 0, err
	}

	switch len(digits) {
	case 1:
		return expand(digits, [8]int{-1, -1, 0, 0, 0, 0, 0, 0}), nil
	case 2:
		return expand(digits, [8]int{0, 0, 1, 1, 1, 1, 1, 1}), nil
	case 3:
		return expand(digits, [8]int{-1, -1, 0, 0, 1, 1, 2, 2}), nil
	case 4:
		return expand(digits, [8]int{0, 0, 1, 1, 2, 2, 3, 3}), nil
	case 6:
		return expand(digits, [8]int{-1, -1, 0, 1, 2, 3, 4, 5}), nil
	case 8:
		return expand(digits, [8]int{0, 1, 2, 3, 4, 5, 6, 7}), nil
	}
	return 0, ErrInvalidColor
}
