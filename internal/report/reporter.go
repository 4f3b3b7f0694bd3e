package report

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ian-shakespeare/tstm/internal/source"
	"github.com/ian-shakespeare/tstm/pkg/array"
)

type Flag uint8

const (
	Colored Flag = 1 << iota
	BreakOnPush
	PrintImmediately
	Enabled
)

// Printer receives every block of formatted diagnostics.
type Printer func(string)

// WriterPrinter writes each block to w followed by a newline.
func WriterPrinter(w io.Writer) Printer {
	return func(s string) {
		fmt.Fprintln(w, s)
	}
}

var (
	DefaultPrinter = WriterPrinter(os.Stdout)
	StderrPrinter  = WriterPrinter(os.Stderr)
)

// Reporter collects lexical and parse diagnostics for one compilation unit.
// A nil *Reporter accepts and drops everything. A Reporter is not safe for
// concurrent use.
type Reporter struct {
	errors  *array.List[SourceError]
	printer Printer
	flags   Flag
}

// New always enables the reporter. A nil printer selects DefaultPrinter.
func New(capacity int, printer Printer, flags Flag) *Reporter {
	if printer == nil {
		printer = DefaultPrinter
	}
	return &Reporter{
		errors:  array.NewList[SourceError](capacity),
		printer: printer,
		flags:   flags | Enabled,
	}
}

func (r *Reporter) Flags() Flag {
	if r == nil {
		return 0
	}
	return r.flags
}

func (r *Reporter) Enable() {
	if r != nil {
		r.flags |= Enabled
	}
}

func (r *Reporter) Disable() {
	if r != nil {
		r.flags &^= Enabled
	}
}

func (r *Reporter) enabled() bool {
	return r != nil && r.errors != nil && r.flags&Enabled != 0
}

// Push records e. With PrintImmediately set, e is formatted against src and
// printed right away. The result is true when the caller should stop: the
// reporter breaks on push and holds at least one error.
func (r *Reporter) Push(e SourceError, src *source.Source) bool {
	if !r.enabled() {
		return false
	}

	r.errors.Push(e)
	if r.flags&PrintImmediately != 0 {
		r.printer(Format(e, src, r.flags&Colored != 0))
	}

	return r.HasBreakError()
}

func (r *Reporter) Len() int {
	if r == nil || r.errors == nil {
		return 0
	}
	return r.errors.Len()
}

func (r *Reporter) HasErrors() bool {
	return r.Len() != 0
}

func (r *Reporter) HasBreakError() bool {
	return r.Flags()&BreakOnPush != 0 && r.HasErrors()
}

// Errors returns the recorded diagnostics in push order.
func (r *Reporter) Errors() []SourceError {
	if r.Len() == 0 {
		return nil
	}
	return r.errors.Items()
}

// At returns the i-th recorded diagnostic.
func (r *Reporter) At(i int) (SourceError, bool) {
	if r == nil || r.errors == nil {
		return SourceError{}, false
	}
	return r.errors.At(i)
}

// Clear drops every recorded diagnostic.
func (r *Reporter) Clear() {
	if r != nil && r.errors != nil {
		r.errors.Clear()
	}
}

// FormatAll renders every recorded error separated by a blank line. Without
// a source each error falls back to its one-line form.
func (r *Reporter) FormatAll(src *source.Source) string {
	if r.Len() == 0 {
		return ""
	}

	colored := r.flags&Colored != 0
	blocks := make([]string, 0, r.Len())
	for _, e := range r.errors.Items() {
		if src == nil {
			blocks = append(blocks, e.Error())
			continue
		}
		blocks = append(blocks, Format(e, src, colored))
	}

	return strings.Join(blocks, "\n\n")
}

// ThrowIfAny prints every recorded error and reports whether there were any.
func (r *Reporter) ThrowIfAny(src *source.Source) bool {
	if !r.HasErrors() {
		return false
	}
	r.printer(r.FormatAll(src))
	return true
}
