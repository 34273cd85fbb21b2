package main

import (
	"fmt"
	"os"

	lib "github.com/awused/multiwall/lib"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

const geometry = "geometry"
const layout = "layout"

var logger = zap.NewNop()

func main() {
	lib.AttachParentConsole()

	app := cli.NewApp()
	app.Name = "multiwall"
	app.Usage = "Compose a different wallpaper for each monitor into one spanned image"
	app.Flags = []cli.Flag{
		&cli.StringSliceFlag{
			Name:    geometry,
			Aliases: []string{"g"},
			Usage: "Monitor geometry as WxH+X+Y, repeat once per monitor. " +
				"Overrides monitor detection",
		},
		&cli.StringFlag{
			Name:    layout,
			Aliases: []string{"L"},
			Usage:   "TOML file of [[monitor]] tables with x, y, width and height",
		},
	}
	app.Before = beforeFunc
	app.After = func(*cli.Context) error {
		_ = logger.Sync()
		return nil
	}
	app.Commands = []*cli.Command{
		monitorsCommand(),
		previewCommand(),
		applyCommand(),
		setCommand(),
		interactiveCommand(),
		randomCommand(),
		syncCommand(),
	}

	err := app.Run(os.Args)
	checkErr(err)
}

func beforeFunc(ctxt *cli.Context) error {
	c, warning, err := lib.Init()
	if err != nil {
		return err
	}

	logger, err = lib.NewLogger(c)
	if err != nil {
		return fmt.Errorf("Error creating logger: %w", err)
	}

	if warning != nil {
		logger.Warn("Could not load multiwall.toml, using defaults", zap.Error(warning))
	}
	return nil
}

// getMonitors prefers explicit geometries, then a layout file, then asks the
// display server.
func getMonitors(ctxt *cli.Context) ([]lib.MonitorRect, error) {
	var monitors []lib.MonitorRect

	if gs := ctxt.StringSlice(geometry); len(gs) > 0 {
		for _, g := range gs {
			m, err := lib.ParseGeometry(g)
			if err != nil {
				return nil, err
			}
			monitors = append(monitors, m)
		}
	} else if path := ctxt.String(layout); path != "" {
		ms, err := lib.LoadLayoutFile(path)
		if err != nil {
			return nil, err
		}
		monitors = ms
	} else {
		ms, err := lib.GetMonitors()
		if err != nil {
			return nil, err
		}
		monitors = ms
	}

	if len(monitors) == 0 {
		return nil, lib.ErrNoMonitors
	}
	return monitors, nil
}

func loadSettings() (*lib.Config, *lib.Settings, error) {
	c, err := lib.GetConfig()
	if err != nil {
		return nil, nil, err
	}

	s, err := lib.LoadSettings(c.StateFile)
	if err != nil {
		return nil, nil, err
	}
	return c, s, nil
}

func saveSettings(c *lib.Config, s *lib.Settings) error {
	err := lib.SaveSettings(c.StateFile, s)
	if err == nil {
		logger.Debug("Saved settings", zap.String("file", c.StateFile))
	}
	return err
}

func defaultState(c *lib.Config) lib.MonitorState {
	mode, _ := lib.ParseMode(c.DefaultMode)
	return lib.MonitorState{Mode: mode, Background: c.DefaultBackground}
}

func checkErr(err error) {
	if err != nil {
		logger.Error("Fatal error", zap.Error(err))
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
