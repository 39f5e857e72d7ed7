package main

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/funvibe/tyfold/internal/config"
	"github.com/funvibe/tyfold/internal/pipeline"
	"github.com/funvibe/tyfold/internal/utils"
)

const (
	ansiReset = "\x1b[0m"
	ansiRed   = "\x1b[31m"
	ansiGreen = "\x1b[32m"
	ansiDim   = "\x1b[2m"
)

type palette struct {
	enabled bool
}

func (p palette) wrap(code, s string) string {
	if !p.enabled {
		return s
	}
	return code + s + ansiReset
}

func (p palette) pass() string { return p.wrap(ansiGreen, "PASS") }
func (p palette) fail() string { return p.wrap(ansiRed, "FAIL") }

// newPalette picks the colour mode: an explicit --color wins over the
// fixture's setting, and auto colours only terminals.
func newPalette(flagMode string, cfg *config.Config, out io.Writer) palette {
	mode := flagMode
	if !rootCmd.PersistentFlags().Changed("color") && cfg != nil && cfg.Color != "" {
		mode = cfg.Color
	}
	switch mode {
	case config.ColorAlways:
		return palette{enabled: true}
	case config.ColorNever:
		return palette{}
	}
	return palette{enabled: isTerminal(out)}
}

func isTerminal(out io.Writer) bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	if os.Getenv("TERM") == "dumb" {
		return false
	}
	f, ok := out.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// report prints one line per query and returns the number of failures.
func report(w io.Writer, p palette, path string, ctx *pipeline.PipelineContext) int {
	fmt.Fprintf(w, "%s\n", p.wrap(ansiDim, utils.FixtureName(path)))
	for _, err := range ctx.Errors {
		fmt.Fprintf(w, "  %s %s\n", p.fail(), err)
	}

	failed := 0
	for _, r := range ctx.Results {
		if r.Passed() {
			fmt.Fprintf(w, "  %s %s: %s\n", p.pass(), r.Name, r.Output)
			continue
		}
		failed++
		if r.Err != nil {
			fmt.Fprintf(w, "  %s %s: %s\n", p.fail(), r.Name, r.Err)
			continue
		}
		fmt.Fprintf(w, "  %s %s\n      got:  %s\n      want: %s\n", p.fail(), r.Name, r.Output, r.Expect)
	}
	return failed
}
