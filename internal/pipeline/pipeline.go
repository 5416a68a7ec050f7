// Package pipeline strings the whole compiler together: scan, parse, type
// check, generate IR, optionally optimize, and emit C. cmd/pytoc and
// internal/repl both drive the compiler through this one entry point so
// batch compilation and the interactive REPL never drift apart.
package pipeline

import (
	"github.com/marcom97/pytoc/internal/ast"
	"github.com/marcom97/pytoc/internal/emit"
	pytocerrors "github.com/marcom97/pytoc/internal/errors"
	"github.com/marcom97/pytoc/internal/ir"
	"github.com/marcom97/pytoc/internal/optimize"
	"github.com/marcom97/pytoc/internal/parser"
	"github.com/marcom97/pytoc/internal/semantic"
)

// Stage names a point at which Compile can stop short of full emission,
// matching the batch driver's "-p stop after parsing" / "-t stop after type
// checking" flags: a program that only gets as far as "-p" should never pay
// for (or fail on) a stage it never asked to run.
type Stage int

const (
	StageEmit      Stage = iota // run every stage through C emission (default)
	StageParse                  // stop once the program has parsed
	StageTypeCheck              // stop once the program has type-checked
)

// Options controls which optional stages run.
type Options struct {
	Optimize  bool
	StopAfter Stage
}

// Result carries every intermediate artifact produced along the way, so a
// verbose driver (or the REPL) can print whichever stage the user asked for.
// Fields belonging to a stage Compile didn't reach are left at their zero
// value.
type Result struct {
	Program      *ast.Program
	Instructions []ir.Instruction
	Optimized    []ir.Instruction
	C            string
}

// Compile runs source through as many stages as opts.StopAfter allows,
// stopping immediately (with no error) once that stage succeeds.
func Compile(filename, source string, opts Options) (*Result, *pytocerrors.CompilerError) {
	prog, err := parser.Parse(filename, source)
	if err != nil {
		return nil, err
	}
	result := &Result{Program: prog}
	if opts.StopAfter == StageParse {
		return result, nil
	}

	checker := semantic.NewChecker()
	if err := checker.CheckProgram(prog); err != nil {
		return nil, err
	}
	if opts.StopAfter == StageTypeCheck {
		return result, nil
	}

	instrs := ir.Build(prog)
	result.Instructions = instrs

	final := instrs
	if opts.Optimize {
		optimized, err := optimize.Optimize(instrs)
		if err != nil {
			return nil, err
		}
		result.Optimized = optimized
		final = optimized
	}

	result.C = emit.Emit(final)
	return result, nil
}
