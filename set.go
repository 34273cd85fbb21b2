package main

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	lib "github.com/awused/multiwall/lib"
	"github.com/urfave/cli/v2"
)

const monitor = "monitor"
const file = "file"
const clearFile = "clear"
const mode = "mode"
const background = "background"

func setCommand() *cli.Command {
	cmd := &cli.Command{}
	cmd.Name = "set"
	cmd.Usage = "Change the settings of one monitor"
	cmd.Flags = []cli.Flag{
		&cli.IntFlag{
			Name:     monitor,
			Aliases:  []string{"m"},
			Usage:    "Monitor number, as printed by the monitors command",
			Required: true,
		},
		&cli.StringFlag{
			Name:    file,
			Aliases: []string{"f"},
			Usage:   "Image to show on the monitor",
		},
		&cli.BoolFlag{
			Name:  clearFile,
			Usage: "Remove the image, filling the monitor with its background",
		},
		&cli.StringFlag{
			Name:  mode,
			Usage: "One of " + strings.Join(lib.ModeNames(), ", "),
		},
		&cli.StringFlag{
			Name:    background,
			Aliases: []string{"bg"},
			Usage:   "Background colour as #RRGGBB",
		},
	}
	cmd.Action = setAction
	return cmd
}

func setAction(ctxt *cli.Context) error {
	if ctxt.IsSet(file) && ctxt.Bool(clearFile) {
		return errors.New("--file and --clear are mutually exclusive")
	}

	c, s, err := loadSettings()
	if err != nil {
		return err
	}

	monitors, err := getMonitors(ctxt)
	if err != nil {
		return err
	}

	n := ctxt.Int(monitor)
	if n < 1 || n > len(monitors) {
		return fmt.Errorf("Monitor must be between 1 and %d", len(monitors))
	}

	rows := lib.NewRows(monitors, s.Monitors, defaultState(c))
	row := rows[n-1]

	if ctxt.IsSet(file) {
		if err = row.SetFile(ctxt.String(file)); err != nil {
			return err
		}
		s.LastDirectory = filepath.Dir(*row.State().File)
	}
	if ctxt.Bool(clearFile) {
		row.ClearFile()
	}
	if ctxt.IsSet(mode) {
		if err = row.SetMode(ctxt.String(mode)); err != nil {
			return err
		}
	}
	if ctxt.IsSet(background) {
		if err = row.SetBackground(ctxt.String(background)); err != nil {
			return err
		}
	}

	// Keep settings for monitors that are currently disconnected
	for k, v := range lib.GatherStates(rows) {
		s.Monitors[k] = v
	}
	if err = saveSettings(c, s); err != nil {
		return err
	}

	fmt.Println(row)
	return nil
}
