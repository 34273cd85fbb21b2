package main

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/awused/go-strpick/persistent"
	lib "github.com/awused/multiwall/lib"
	"github.com/urfave/cli/v2"
)

const jobs = "jobs"

func jobsFlag() cli.Flag {
	return &cli.IntFlag{
		Name:    jobs,
		Aliases: []string{"j"},
		Value:   runtime.NumCPU(),
		Usage:   "How many images to check at once",
	}
}

func syncCommand() *cli.Command {
	cmd := &cli.Command{}
	cmd.Name = "sync"
	cmd.Usage = "Update the random image database from ImageDirectory"
	cmd.Description = "Every image is decoded once and images that cannot be " +
		"read are dropped from the database. Reports how many were skipped."
	cmd.Flags = []cli.Flag{jobsFlag()}
	cmd.Action = syncAction
	return cmd
}

func syncAction(ctxt *cli.Context) error {
	c, err := lib.GetConfig()
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

	valid, total, err := lib.SyncImageDB(
		picker, c.ImageDirectory, c.ImageFileExtensions, ctxt.Int(jobs), logger)
	if err != nil {
		return err
	}

	fmt.Printf("%d images, %d unreadable\n", len(valid), total-len(valid))
	return nil
}
