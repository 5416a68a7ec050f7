// Package repl provides an interactive, line-at-a-time front end to the
// compiler pipeline: each line of input is appended to the session's
// accumulated lines, which are wrapped in a throwaway main function, run
// through the full scan/parse/typecheck/IR/(optimize)/emit pipeline, and
// the resulting C is echoed back. This is the debug/pretty
// printing surface the batch driver deliberately leaves out.
package repl

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/fatih/color"

	pytocerrors "github.com/marcom97/pytoc/internal/errors"
	"github.com/marcom97/pytoc/internal/pipeline"
)

const prompt = "pytoc> "

// Run starts the interactive loop, reading from stdin until EOF or Ctrl-D.
func Run(optimize bool) error {
	rl, err := readline.New(prompt)
	if err != nil {
		return err
	}
	defer rl.Close()

	fmt.Println("pytoc repl -- one statement per line, Ctrl-D to exit")

	var body []string
	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			continue
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		body = append(body, "    "+line)
		source := wrapAsMain(body)

		result, compileErr := pipeline.Compile("<repl>", source, pipeline.Options{Optimize: optimize})
		if compileErr != nil {
			reporter := pytocerrors.NewErrorReporter("<repl>", source)
			fmt.Println(reporter.FormatError(compileErr))
			// Drop the line that failed so the session can keep going.
			body = body[:len(body)-1]
			continue
		}

		color.Cyan("%s", result.C)
	}
}

// wrapAsMain wraps the accumulated lines in a synthetic main function with
// a trailing "return 0" so partial sessions (no explicit return yet) still
// type-check against main's mandatory int return type.
func wrapAsMain(lines []string) string {
	var b strings.Builder
	b.WriteString("def main():\n")
	for _, l := range lines {
		b.WriteString(l)
		b.WriteString("\n")
	}
	if !endsWithReturn(lines) {
		b.WriteString("    return 0\n")
	}
	return b.String()
}

func endsWithReturn(lines []string) bool {
	if len(lines) == 0 {
		return false
	}
	return strings.HasPrefix(strings.TrimSpace(lines[len(lines)-1]), "return")
}
