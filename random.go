package main

import (
	"errors"
	"fmt"

	"github.com/awused/go-strpick/persistent"
	lib "github.com/awused/multiwall/lib"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

func randomCommand() *cli.Command {
	cmd := &cli.Command{}
	cmd.Name = "random"
	cmd.Usage = "Give each monitor a different random image from ImageDirectory"
	cmd.Description = "Images that were picked recently are less likely to be " +
		"picked again. Modes and backgrounds are kept."
	cmd.Flags = []cli.Flag{
		&cli.BoolFlag{
			Name:  noApply,
			Usage: "Only update the settings and write the wallpaper file",
		},
		jobsFlag(),
	}
	cmd.Action = randomAction
	return cmd
}

func randomAction(ctxt *cli.Context) error {
	c, s, err := loadSettings()
	if err != nil {
		return err
	}

	monitors, err := getMonitors(ctxt)
	if err != nil {
		return err
	}

	if c.DatabaseDir == "" {
		return errors.New("Config missing DatabaseDir")
	}

	picker, err := persistent.NewPicker(c.DatabaseDir)
	if err != nil {
		return err
	}
	defer picker.Close()

	// Unreadable images are never picked
	_, _, err = lib.SyncImageDB(
		picker, c.ImageDirectory, c.ImageFileExtensions, ctxt.Int(jobs), logger)
	if err != nil {
		return err
	}

	sz, err := picker.Size()
	if err != nil {
		return err
	}
	if sz == 0 {
		return fmt.Errorf("No images present in ImageDirectory [%s]", c.ImageDirectory)
	}

	picked, err := picker.TryUniqueN(len(monitors))
	if err != nil {
		return err
	}

	rows := lib.NewRows(monitors, s.Monitors, defaultState(c))
	for i, relPath := range picked {
		if i >= len(rows) {
			break
		}

		absPath, err := lib.GetFullImagePath(c.ImageDirectory, relPath)
		if err != nil {
			return err
		}
		if err = rows[i].SetFile(absPath); err != nil {
			return err
		}
		logger.Info("Picked image", zap.Int("monitor", i+1), zap.String("file", absPath))
	}

	for k, v := range lib.GatherStates(rows) {
		s.Monitors[k] = v
	}
	if err = saveSettings(c, s); err != nil {
		return err
	}

	out := c.OutputFile
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
