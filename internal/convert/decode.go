package convert

// Kind names the literal notation a lexeme is written in.
type Kind uint8

const (
	KindNone Kind = iota
	KindDecimal
	KindHex
	KindOctal
	KindBinary
	KindMask
	KindColor
	KindFloat
	KindExponent
)

// Int decodes an integer-valued lexeme. Masks keep their low 32 bits and
// colors yield their ARGB bit pattern. Kinds without an integer value, and
// malformed masks or colors, decode to 0.
func Int(kind Kind, s []byte) int32 {
	switch kind {
	case KindDecimal:
		return DecimalToInt(s)
	case KindHex:
		return HexToInt(s)
	case KindOctal:
		return OctToInt(s)
	case KindBinary:
		return BinToInt(s)
	case KindMask:
		v, err := Mask(s)
		if err != nil {
			return 0
		}
		return int32(uint32(v))
	case KindColor:
		c, err := HexStrToColor(s)
		if err != nil {
			return 0
		}
		return int32(c)
	}
	return 0
}

func Float(kind Kind, s []byte) float32 {
	switch kind {
	case KindFloat:
		return FloatToFloat(s)
	case KindExponent:
		return ExpToFloat(s)
	}
	return 0
}
