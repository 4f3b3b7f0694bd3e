package lexer

const (
	msgUnexpectedCharacter = "unexpected character"
	msgIncompletePrefix    = "incomplete literal: expected digits after prefix"
	msgInvalidSeparator    = "invalid separator"
	msgInvalidDigit        = "invalid digit: '%c'"
	msgInvalidLiteral      = "invalid literal"
	msgUnexpectedPoint     = "unexpected decimal point"
	msgUnexpectedExponent  = "unexpected exponent"
	msgIncompleteDecimal   = "incomplete decimal number"
	msgIncompleteExponent  = "incomplete exponent"
	msgUnterminatedComment = "unterminated block comment"
)

const (
	detailsSeparator = "'_' may only appear between two digits"
	detailsExponent  = "an exponent needs at least one digit after 'e' and its sign"
	detailsDecimal   = "a decimal point must be followed by at least one digit"
	detailsComment   = "the comment runs to the end of the input; close it with '*/'"
)
