package errors

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/marcom97/pytoc/internal/ast"
)

// ErrorLevel is the severity of a diagnostic.
type ErrorLevel string

const (
	Error   ErrorLevel = "error"
	Warning ErrorLevel = "warning"
	Note    ErrorLevel = "note"
	Help    ErrorLevel = "help"
)

// CompilerError is a diagnostic raised by any compiler stage: scanning,
// parsing, type checking, or constant folding. Suggestions/Notes/HelpText
// are optional annotations a stage can attach on top of the core message.
type CompilerError struct {
	Level       ErrorLevel
	Code        string
	Message     string
	Position    ast.Position
	Length      int
	Suggestions []Suggestion
	Notes       []string
	HelpText    string
}

// Error satisfies the error interface so a *CompilerError threads through
// ordinary Go error-handling paths; FormatError is used where the richer,
// source-annotated rendering is wanted instead.
func (e *CompilerError) Error() string {
	return fmt.Sprintf("%s: [%s] %s", e.Position.String(), e.Code, e.Message)
}

// Suggestion is a proposed fix a stage can attach to a CompilerError.
type Suggestion struct {
	Message     string
	Replacement string
	Position    ast.Position
	Length      int
}

var (
	boldStyle  = color.New(color.Bold).SprintFunc()
	dimStyle   = color.New(color.Faint).SprintFunc()
	cyanStyle  = color.New(color.FgCyan).SprintFunc()
	blueStyle  = color.New(color.FgBlue).SprintFunc()
	greenStyle = color.New(color.FgGreen).SprintFunc()
)

// gutter sizes and renders the line-number column shared by every row of a
// rendered snippet, so the snippet body never has to recompute padding.
type gutter struct{ width int }

func newGutter(lastLine int) gutter {
	w := len(fmt.Sprintf("%d", lastLine))
	if w < 3 {
		w = 3
	}
	return gutter{width: w}
}

func (g gutter) pad() string          { return strings.Repeat(" ", g.width) }
func (g gutter) number(n int) string  { return fmt.Sprintf("%*d", g.width, n) }
func (g gutter) bar() string          { return dimStyle("│") }
func (g gutter) rule(out *strings.Builder) {
	fmt.Fprintf(out, "%s %s\n", g.pad(), g.bar())
}

// ErrorReporter renders a CompilerError against the source file it came
// from: a one-line heading, a source snippet with a gutter and a caret
// under the offending span, and any suggestions/notes/help text attached.
type ErrorReporter struct {
	filename string
	lines    []string
}

// NewErrorReporter builds a reporter for a single source file.
func NewErrorReporter(filename, source string) *ErrorReporter {
	return &ErrorReporter{filename: filename, lines: strings.Split(source, "\n")}
}

// sourceLine returns the 1-indexed source line n, or ok=false if it falls
// outside the file (used for the context lines around a diagnostic).
func (er *ErrorReporter) sourceLine(n int) (string, bool) {
	if n < 1 || n > len(er.lines) {
		return "", false
	}
	return er.lines[n-1], true
}

// FormatError renders err as a multi-line diagnostic block.
func (er *ErrorReporter) FormatError(err *CompilerError) string {
	var out strings.Builder
	g := newGutter(len(er.lines))
	levelFn := levelColor(err.Level)

	if err.Code != "" {
		fmt.Fprintf(&out, "%s[%s]: %s\n", levelFn(string(err.Level)), err.Code, err.Message)
	} else {
		fmt.Fprintf(&out, "%s: %s\n", levelFn(string(err.Level)), err.Message)
	}

	fmt.Fprintf(&out, "%s %s %s:%d:%d\n", g.pad(), dimStyle("-->"), er.filename, err.Position.Line, err.Position.Column)
	g.rule(&out)

	er.renderSnippet(&out, g, err.Position, err.Length, err.Level)
	er.renderAnnotations(&out, g, err)

	out.WriteString("\n")
	return out.String()
}

// renderSnippet writes the line before the diagnostic (if any), the line it
// points at with its caret underneath, and the line after (if any).
func (er *ErrorReporter) renderSnippet(out *strings.Builder, g gutter, pos ast.Position, length int, level ErrorLevel) {
	writeLine := func(lineNo int, emphasize bool) bool {
		text, ok := er.sourceLine(lineNo)
		if !ok {
			return false
		}
		num := g.number(lineNo)
		if emphasize {
			num = boldStyle(num)
		} else {
			num = dimStyle(num)
		}
		fmt.Fprintf(out, "%s %s %s\n", num, g.bar(), text)
		return true
	}

	if pos.Line > 1 {
		writeLine(pos.Line-1, false)
	}
	if writeLine(pos.Line, true) {
		fmt.Fprintf(out, "%s %s %s\n", g.pad(), g.bar(), renderCaret(pos.Column, length, level))
	}
	writeLine(pos.Line+1, false)
}

// renderCaret draws the "^^^" underline beneath the offending column span.
func renderCaret(column, length int, level ErrorLevel) string {
	if length <= 0 {
		length = 1
	}
	lead := strings.Repeat(" ", maxInt(0, column-1))
	caretColor := color.New(color.FgRed, color.Bold).SprintFunc()
	if level == Warning {
		caretColor = color.New(color.FgYellow, color.Bold).SprintFunc()
	}
	return lead + caretColor(strings.Repeat("^", length))
}

// renderAnnotations appends any suggestions, notes, and help text trailing
// the snippet, in that fixed order.
func (er *ErrorReporter) renderAnnotations(out *strings.Builder, g gutter, err *CompilerError) {
	if len(err.Suggestions) > 0 {
		g.rule(out)
		for i, s := range err.Suggestions {
			if i == 0 {
				fmt.Fprintf(out, "%s %s %s: %s\n", g.pad(), cyanStyle("help"), cyanStyle("try"), s.Message)
			} else {
				fmt.Fprintf(out, "%s %s %s\n", g.pad(), cyanStyle("    "), s.Message)
			}
			if s.Replacement == "" {
				continue
			}
			g.rule(out)
			replacement := strings.ReplaceAll(s.Replacement, "\n", fmt.Sprintf("\n%s %s ", g.pad(), g.bar()))
			fmt.Fprintf(out, "%s %s %s\n", g.pad(), cyanStyle("│"), cyanStyle(replacement))
		}
	}

	for _, note := range err.Notes {
		fmt.Fprintf(out, "%s %s %s %s\n", g.pad(), g.bar(), blueStyle("note:"), note)
	}

	if err.HelpText != "" {
		fmt.Fprintf(out, "%s %s %s %s\n", g.pad(), g.bar(), greenStyle("help:"), err.HelpText)
	}
}

// levelColor picks the heading color for a diagnostic's severity.
func levelColor(level ErrorLevel) func(...interface{}) string {
	switch level {
	case Warning:
		return color.New(color.FgYellow, color.Bold).SprintFunc()
	case Note:
		return color.New(color.FgBlue, color.Bold).SprintFunc()
	case Help:
		return color.New(color.FgGreen, color.Bold).SprintFunc()
	default:
		return color.New(color.FgRed, color.Bold).SprintFunc()
	}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
