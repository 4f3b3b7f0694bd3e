package report

import (
	"strconv"
	"strings"

	"github.com/ian-shakespeare/tstm/internal/source"
)

const (
	clrErrorType   = "\x1b[91m"
	clrMessage     = "\x1b[37m"
	clrName        = "\x1b[39m"
	clrContext     = "\x1b[90m"
	clrLocation    = "\x1b[39m"
	clrCaret       = "\x1b[32m"
	clrPunctuation = "\x1b[93m"
	clrSymbols     = "\x1b[94m"
	clrReset       = "\x1b[0m"
)

const noDetails = "( No Details Provided )"

// Format renders e against src as
//
//	LexError(message)
//	    File name at @row:col
//
//	<source line>
//	    ^^^
//	details
//
// Colored output wraps each field in ANSI escapes and is otherwise identical.
func Format(e SourceError, src *source.Source, colored bool) string {
	loc := src.Locate(int(e.Offset))
	details := e.Details
	if details == "" {
		details = noDetails
	}

	var b strings.Builder
	paint := func(color, text string) {
		if colored {
			b.WriteString(color)
		}
		b.WriteString(text)
	}

	paint(clrErrorType, e.Kind.String())
	paint(clrPunctuation, "(")
	paint(clrMessage, e.Message)
	paint(clrPunctuation, ")")
	b.WriteString("\n    ")
	paint(clrContext, "File ")
	paint(clrName, src.DisplayName()+" ")
	paint(clrContext, "at ")
	paint(clrSymbols, "@")
	paint(clrLocation, strconv.Itoa(loc.Row))
	paint(clrSymbols, ":")
	paint(clrLocation, strconv.Itoa(loc.Col))
	b.WriteString("\n\n")
	paint(clrReset, string(src.Line(loc)))
	b.WriteString("\n")
	paint(clrCaret, strings.Repeat(" ", loc.Col-1)+strings.Repeat("^", int(e.Length)))
	b.WriteString("\n")
	b.WriteString(details)
	if colored {
		b.WriteString(clrReset)
	}

	return b.String()
}
