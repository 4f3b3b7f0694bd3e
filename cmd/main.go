package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"

	"github.com/ian-shakespeare/tstm/internal/lexer"
	"github.com/ian-shakespeare/tstm/internal/report"
	"github.com/ian-shakespeare/tstm/internal/source"
	"github.com/ian-shakespeare/tstm/internal/strpool"
	"github.com/ian-shakespeare/tstm/pkg/iterator"
)

const (
	historyFile = ".tstm_history"
	prompt      = "tstm> "
)

type options struct {
	colored bool
	strict  bool
	brk     bool
	repl    bool
	values  bool
}

func main() {
	log.SetFlags(0)
	log.SetPrefix("tstm: ")

	var opts options
	flag.BoolVar(&opts.colored, "color", false, "color diagnostics and token output")
	flag.BoolVar(&opts.strict, "strict", false, "reject unterminated block comments and empty hex colors")
	flag.BoolVar(&opts.brk, "break", false, "stop at the first lexical error")
	flag.BoolVar(&opts.repl, "repl", false, "lex lines read interactively")
	flag.BoolVar(&opts.values, "values", false, "print decoded literal values only")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: tstm [flags] [file ...]\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	pool := strpool.New(strpool.DefaultOptions())
	reporter := report.New(8, report.StderrPrinter, opts.reporterFlags())

	if opts.repl {
		if err := repl(pool, reporter, opts); err != nil {
			log.Fatal(err.Error())
		}
		return
	}

	sources, err := readSources(flag.Args())
	if err != nil {
		log.Fatal(err.Error())
	}

	failed := false
	for _, src := range sources {
		if !lex(src, pool, reporter, opts, os.Stdout) {
			failed = true
		}
	}
	if failed {
		os.Exit(1)
	}
}

func (o options) reporterFlags() report.Flag {
	var flags report.Flag
	if o.colored {
		flags |= report.Colored
	}
	if o.brk {
		flags |= report.BreakOnPush
	}
	return flags
}

func readSources(paths []string) ([]*source.Source, error) {
	if len(paths) == 0 {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, err
		}
		return []*source.Source{source.New("<stdin>", data)}, nil
	}

	sources := make([]*source.Source, 0, len(paths))
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		sources = append(sources, source.New(path, data))
	}
	return sources, nil
}

// lex prints the tokens of src and then its diagnostics. It reports whether
// src was free of errors.
func lex(src *source.Source, pool *strpool.Pool, reporter *report.Reporter, opts options, w io.Writer) bool {
	defer reporter.Clear()

	stream, err := lexer.Scan(src, lexer.Config{
		Pool:              pool,
		Reporter:          reporter,
		StrictTermination: opts.strict,
	})
	if err != nil {
		log.Printf("%s: %s", src.DisplayName(), err)
	}

	tokens := iterator.Values(stream.All())
	if opts.values {
		tokens = iterator.Filter(tokens, func(t lexer.Token) bool {
			return t.Type.IsNumeric()
		})
	}

	for t := range tokens {
		fmt.Fprintln(w, formatToken(t, opts))
	}

	return !reporter.ThrowIfAny(src) && err == nil
}

func formatToken(t lexer.Token, opts options) string {
	var b strings.Builder
	if opts.colored {
		fmt.Fprintf(&b, "%5d  %s", t.Start, t.ColoredString())
	} else {
		fmt.Fprintf(&b, "%5d  %s", t.Start, t)
	}

	if opts.values {
		switch t.Type {
		case lexer.FLOAT_TOKEN, lexer.EXPONENT_TOKEN:
			fmt.Fprintf(&b, " = %g", t.AsFloat())
		case lexer.HEX_COLOR_TOKEN:
			fmt.Fprintf(&b, " = 0x%08X", uint32(t.AsInt()))
		default:
			fmt.Fprintf(&b, " = %d", t.AsInt())
		}
	}

	return b.String()
}

func repl(pool *strpool.Pool, reporter *report.Reporter, opts options) error {
	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}
	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	for line := 1; ; line++ {
		input, err := ln.Prompt(prompt)
		if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
			fmt.Println()
			return nil
		}
		if err != nil {
			return err
		}

		switch strings.TrimSpace(input) {
		case "":
			continue
		case ":quit":
			return nil
		case ":stats":
			s := pool.Stats()
			fmt.Printf("strings %d, arena %d/%d bytes, index %d/%d (load %.2f)\n",
				pool.Len(), s.ArenaUsed, s.ArenaCapacity, s.IndexLength, s.IndexCapacity, s.Load)
			continue
		case ":reset":
			pool.Reset()
			continue
		}

		ln.AppendHistory(input)
		lex(source.FromString(fmt.Sprintf("<repl:%d>", line), input), pool, reporter, opts, os.Stdout)
	}
}
