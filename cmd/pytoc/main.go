// Command pytoc compiles SimplePython source to C.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/urfave/cli/v3"

	pytocerrors "github.com/marcom97/pytoc/internal/errors"
	"github.com/marcom97/pytoc/internal/pipeline"
)

func main() {
	app := &cli.Command{
		Name:  "pytoc",
		Usage: "Translate SimplePython source into compilable C",
		Commands: []*cli.Command{
			replCommand,
		},
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "o", Value: "a.c", Usage: "output path for the generated C"},
			&cli.BoolFlag{Name: "a", Usage: "print the parsed AST"},
			&cli.BoolFlag{Name: "p", Usage: "stop after parsing"},
			&cli.BoolFlag{Name: "t", Usage: "stop after type checking"},
			&cli.BoolFlag{Name: "i", Usage: "print the IR to stdout"},
			&cli.BoolFlag{Name: "O", Usage: "enable the constant/dead-branch optimizer"},
			&cli.BoolFlag{Name: "v", Usage: "verbose: report the input file and the written output path"},
		},
		Action: run,
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		color.Red("%s", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	path := cmd.Args().Get(0)
	if path == "" {
		return fmt.Errorf("usage: pytoc [flags] <file.sp>")
	}

	verbose := cmd.Bool("v")
	source, ioErr := os.ReadFile(path)
	if ioErr != nil {
		return fmt.Errorf("reading %s: %w", path, ioErr)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "pytoc: compiling %s\n", path)
	}

	stopAfter := pipeline.StageEmit
	switch {
	case cmd.Bool("t"):
		stopAfter = pipeline.StageTypeCheck
	case cmd.Bool("p"):
		stopAfter = pipeline.StageParse
	}

	result, compileErr := pipeline.Compile(path, string(source), pipeline.Options{
		Optimize:  cmd.Bool("O"),
		StopAfter: stopAfter,
	})
	if compileErr != nil {
		reporter := pytocerrors.NewErrorReporter(path, string(source))
		fmt.Fprintln(os.Stderr, reporter.FormatError(compileErr))
		os.Exit(1)
	}

	if cmd.Bool("a") {
		fmt.Println(result.Program.String())
	}

	if cmd.Bool("i") {
		for _, instr := range result.Instructions {
			fmt.Println(instr.String())
		}
	}

	if stopAfter != pipeline.StageEmit {
		// The requested stage ran (and succeeded); there's no C to write.
		return nil
	}

	outPath := cmd.String("o")
	if err := os.WriteFile(outPath, []byte(result.C), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", outPath, err)
	}

	if verbose {
		color.Green("pytoc: wrote %s", outPath)
	}
	return nil
}
