package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/marcom97/pytoc/internal/repl"
)

var replCommand = &cli.Command{
	Name:  "repl",
	Usage: "start an interactive pytoc session",
	Flags: []cli.Flag{
		&cli.BoolFlag{Name: "O", Usage: "enable the constant/dead-branch optimizer"},
	},
	Action: func(ctx context.Context, cmd *cli.Command) error {
		return repl.Run(cmd.Bool("O"))
	},
}
