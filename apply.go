package main

import (
	"fmt"

	lib "github.com/awused/multiwall/lib"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

const noApply = "no-apply"

func applyCommand() *cli.Command {
	cmd := &cli.Command{}
	cmd.Name = "apply"
	cmd.Usage = "Compose the full resolution wallpaper and set it as the desktop background"
	cmd.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    output,
			Aliases: []string{"o"},
			Usage:   "Where to write the wallpaper, defaults to OutputFile from the config",
		},
		&cli.BoolFlag{
			Name:  noApply,
			Usage: "Only write the wallpaper file",
		},
	}
	cmd.Action = applyAction
	return cmd
}

func applyAction(ctxt *cli.Context) error {
	c, s, err := loadSettings()
	if err != nil {
		return err
	}

	monitors, err := getMonitors(ctxt)
	if err != nil {
		return err
	}

	out := c.OutputFile
	if ctxt.IsSet(output) {
		out = ctxt.String(output)
	}

	if err = writeWallpaper(c, monitors, s.Monitors, out); err != nil {
		return err
	}

	if ctxt.Bool(noApply) {
		fmt.Println(out)
		return nil
	}

	reportApply(lib.ApplyWallpaper(out, logger), out)
	return nil
}

func writeWallpaper(
	c *lib.Config, monitors []lib.MonitorRect, states lib.States, out string) error {
	co := lib.NewComposerFromConfig(logger, c)

	img, err := co.Compose(monitors, states)
	if err != nil {
		return err
	}

	if err = lib.SaveWallpaper(img, out); err != nil {
		return fmt.Errorf("Error writing wallpaper [%s]: %w", out, err)
	}
	logger.Info("Wrote wallpaper",
		zap.String("file", out), zap.Stringer("size", img.Bounds().Size()))
	return nil
}

// Failing to apply is a warning, the wallpaper file is still usable.
func reportApply(r lib.ApplyResult, out string) {
	if r.OK {
		fmt.Println(r.Message)
		return
	}

	logger.Warn("Wallpaper was not applied",
		zap.String("file", out), zap.String("script", r.Script))
	fmt.Printf("Wallpaper generated at %s\nWarning: %s\n", out, r.Message)
}
