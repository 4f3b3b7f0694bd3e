package lexer

import "github.com/ian-shakespeare/tstm/pkg/array"

type operator struct {
	text string
	typ  TokenType
}

var operators3 = []operator{
	{"<<<", ROTATE_LEFT_TOKEN},
	{">>>", ROTATE_RIGHT_TOKEN},
	{"===", STRICT_EQUAL_TOKEN},
	{"!==", STRICT_NOT_EQUAL_TOKEN},
	{"~==", APPROX_EQUAL_TOKEN},
	{"!~=", NOT_APPROX_EQUAL_TOKEN},
}

var operators2 = []operator{
	{"<<", SHIFT_LEFT_TOKEN},
	{">>", SHIFT_RIGHT_TOKEN},
	{"/%", INT_DIV_TOKEN},
	{"**", POWER_TOKEN},
	{"==", EQUAL_EQUAL_TOKEN},
	{"!=", NOT_EQUAL_TOKEN},
	{"<=", LESS_EQUAL_TOKEN},
	{">=", GREATER_EQUAL_TOKEN},
	{"&&", LOGICAL_AND_TOKEN},
	{"||", LOGICAL_OR_TOKEN},
	{"^^", LOGICAL_XOR_TOKEN},
	{"??", COALESCE_TOKEN},
	{"!!", GUARD_TOKEN},
}

var operators1 = []operator{
	{"$", DOLLAR_TOKEN},
	{"&", BIT_AND_TOKEN},
	{"|", BIT_OR_TOKEN},
	{"^", BIT_XOR_TOKEN},
	{"~", BIT_NOT_TOKEN},
	{"+", PLUS_TOKEN},
	{"-", MINUS_TOKEN},
	{"*", STAR_TOKEN},
	{"/", SLASH_TOKEN},
	{"%", PERCENT_TOKEN},
	{"(", LEFT_PAREN_TOKEN},
	{")", RIGHT_PAREN_TOKEN},
	{",", COMMA_TOKEN},
	{"<", LESS_TOKEN},
	{">", GREATER_TOKEN},
	{"!", NOT_TOKEN},
	{"?", QUESTION_TOKEN},
	{":", COLON_TOKEN},
	{";", SEMICOLON_TOKEN},
}

var operatorTables = [...][]operator{1: operators1, 2: operators2, 3: operators3}

// operatorStart marks every byte that can begin an operator. Such a byte
// also ends a literal.
var operatorStart [256]bool

func init() {
	for _, table := range operatorTables {
		for _, op := range table {
			operatorStart[op.text[0]] = true
		}
	}
}

func lookupOperator(text []byte) (TokenType, bool) {
	if len(text) == 0 || len(text) >= len(operatorTables) {
		return INVALID_TOKEN, false
	}

	table := operatorTables[len(text)]
	i := array.Index(table, func(op operator) bool {
		return op.text == string(text)
	})
	if i < 0 {
		return INVALID_TOKEN, false
	}
	return table[i].typ, true
}
