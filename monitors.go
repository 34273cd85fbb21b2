package main

import (
	"fmt"

	"github.com/urfave/cli/v2"
)

func monitorsCommand() *cli.Command {
	cmd := &cli.Command{}
	cmd.Name = "monitors"
	cmd.Usage = "List monitors with the numbers used by the other commands"
	cmd.Action = monitorsAction
	return cmd
}

func monitorsAction(ctxt *cli.Context) error {
	monitors, err := getMonitors(ctxt)
	if err != nil {
		return err
	}

	for i, m := range monitors {
		fmt.Printf("%d: %dx%d @ (%d, %d)\n", i+1, m.Width, m.Height, m.X, m.Y)
	}
	return nil
}
